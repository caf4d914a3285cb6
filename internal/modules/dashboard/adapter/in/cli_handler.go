package in

import (
	"context"

	dashboarddto "lumen/internal/modules/dashboard/dto"
	dashboardin "lumen/internal/modules/dashboard/port/in"
)

type CLIHandler struct {
	usecase dashboardin.Usecase
}

func NewCLIHandler(usecase dashboardin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Summary(ctx context.Context) (dashboarddto.SummaryOutput, error) {
	return h.usecase.Summary(ctx)
}
