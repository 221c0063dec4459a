package main

import (
	"context"
	"errors"
	"fmt"

	"moneybook/internal/dashboard"
	"moneybook/internal/worker"
)

var errNoSession = errors.New("no valid session in the slot store; log in with the moneybook CLI")

type sessionReader interface {
	Restore(ctx context.Context) error
	IsAuthenticated() bool
}

// sessionLoader re-reads the credential before every export so a login or
// logout done through the CLI takes effect without a restart.
type sessionLoader struct {
	session sessionReader
	loader  worker.Loader
}

func (l *sessionLoader) Load(ctx context.Context) (dashboard.View, error) {
	if err := l.session.Restore(ctx); err != nil {
		return dashboard.View{}, fmt.Errorf("restore session: %w", err)
	}
	if !l.session.IsAuthenticated() {
		return dashboard.View{}, errNoSession
	}
	return l.loader.Load(ctx)
}
