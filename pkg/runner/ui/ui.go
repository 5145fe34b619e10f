package ui

import (
	"context"
	"errors"

	"tableflip.dev/tempo/pkg/app"
	"tableflip.dev/tempo/pkg/store"
	tuiapp "tableflip.dev/tempo/pkg/tui/app"
)

type UI struct {
	Persistence store.Persistence
}

func (u *UI) Do(ctx context.Context) error {
	if u.Persistence == nil {
		return errors.New("can not open ui, no persistence")
	}
	svc := &app.Service{Persistence: u.Persistence}
	return tuiapp.Run(svc)
}
