package in

import (
	"context"

	focusdto "lumen/internal/modules/focus/dto"
	focusin "lumen/internal/modules/focus/port/in"
)

type CLIHandler struct {
	usecase focusin.Usecase
}

func NewCLIHandler(usecase focusin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) ListSessions(ctx context.Context) ([]focusdto.SessionOutput, error) {
	return h.usecase.ListSessions(ctx)
}

func (h CLIHandler) GetActive(ctx context.Context) (focusdto.ActiveSessionOutput, error) {
	return h.usecase.GetActive(ctx)
}

func (h CLIHandler) Stop(ctx context.Context) (focusdto.StopOutput, error) {
	return h.usecase.StopActive(ctx)
}
