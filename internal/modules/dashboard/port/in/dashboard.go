package in

import (
	"context"

	"lumen/internal/modules/dashboard/dto"
)

type Usecase interface {
	Summary(ctx context.Context) (dto.SummaryOutput, error)
}
