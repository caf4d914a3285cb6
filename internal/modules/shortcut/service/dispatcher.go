package service

import (
	"go.uber.org/zap"

	"lumen/internal/modules/shortcut/domain"
)

// Event is one normalized key press together with the UI context it
// happened in.
type Event struct {
	Combo        string
	Page         domain.Page
	InputFocused bool
}

// Result tells the caller what to do. Handled is false when the combo is not
// bound or was suppressed, and the key should reach the focused widget.
type Result struct {
	Handled   bool
	Action    domain.Action
	Target    domain.Page
	Direction domain.Direction
}

type Dispatcher struct {
	table domain.Table
	log   *zap.Logger
}

func NewDispatcher(table domain.Table, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{table: table, log: log}
}

func (d *Dispatcher) Table() domain.Table {
	return d.table
}

// Dispatch resolves ev. The help combo and navigation always win; other
// shortcuts are dropped while a text input has focus and only fire on the
// page they belong to.
func (d *Dispatcher) Dispatch(ev Event) Result {
	binding, ok := d.table.Lookup(ev.Combo)
	if !ok {
		return Result{}
	}

	switch binding.Action {
	case domain.ActionShowHelp:
		return Result{Handled: true, Action: binding.Action}
	case domain.ActionNavigatePrevious, domain.ActionNavigateNext:
		dir := domain.Forward
		if binding.Action == domain.ActionNavigatePrevious {
			dir = domain.Backward
		}
		target := domain.Adjacent(ev.Page, dir)
		d.log.Debug("navigate", zap.String("from", string(ev.Page)), zap.String("to", string(target)))
		return Result{
			Handled:   true,
			Action:    binding.Action,
			Target:    target,
			Direction: domain.TransitionDirection(ev.Page, target),
		}
	}

	if ev.InputFocused {
		return Result{}
	}
	if binding.Page != "" && binding.Page != ev.Page {
		return Result{}
	}
	return Result{Handled: true, Action: binding.Action}
}
