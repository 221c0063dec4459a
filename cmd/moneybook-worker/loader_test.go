package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneybook/internal/dashboard"
)

type fakeSession struct {
	restoreErr error
	authed     bool
	restores   int
}

func (f *fakeSession) Restore(context.Context) error {
	f.restores++
	return f.restoreErr
}

func (f *fakeSession) IsAuthenticated() bool { return f.authed }

type fakeLoader struct {
	calls int
}

func (f *fakeLoader) Load(context.Context) (dashboard.View, error) {
	f.calls++
	return dashboard.View{}, nil
}

func TestSessionLoaderRestoresBeforeEveryLoad(t *testing.T) {
	sess := &fakeSession{authed: true}
	inner := &fakeLoader{}
	l := &sessionLoader{session: sess, loader: inner}

	_, err := l.Load(context.Background())
	require.NoError(t, err)
	_, err = l.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, sess.restores)
	assert.Equal(t, 2, inner.calls)
}

func TestSessionLoaderWithoutSession(t *testing.T) {
	inner := &fakeLoader{}
	l := &sessionLoader{session: &fakeSession{}, loader: inner}

	_, err := l.Load(context.Background())
	assert.ErrorIs(t, err, errNoSession)
	assert.Zero(t, inner.calls)
}

func TestSessionLoaderRestoreFailure(t *testing.T) {
	boom := errors.New("disk gone")
	inner := &fakeLoader{}
	l := &sessionLoader{session: &fakeSession{restoreErr: boom}, loader: inner}

	_, err := l.Load(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, inner.calls)
}
