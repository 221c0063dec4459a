package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"moneybook/internal/amqp"
	"moneybook/internal/api"
	"moneybook/internal/backend"
	"moneybook/internal/cache"
	"moneybook/internal/cli"
	"moneybook/internal/config"
	"moneybook/internal/dashboard"
	"moneybook/internal/ledger"
	"moneybook/internal/log"
	"moneybook/internal/prefs"
	"moneybook/internal/services"
	"moneybook/internal/session"
	"moneybook/internal/store"
)

var errNotLoggedIn = errors.New("not logged in; run 'moneybook login' first")

// app holds everything a command needs. It is built once per invocation.
type app struct {
	cfg    *config.Config
	logger *log.Logger
	out    io.Writer

	stores       *backend.StoreResult
	session      *session.Manager
	prefs        *prefs.Preferences
	client       *api.Client
	caches       *cache.Manager
	dashboard    *dashboard.Service
	transactions *services.TransactionService
}

func newApp(ctx context.Context, cfg *config.Config, out io.Writer) (*app, error) {
	logger := cli.SetupLogger(cfg, log.ComponentApp)

	stores, err := cli.OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open slot store: %w", err)
	}

	sess := session.NewManager(stores.Store.Slot(store.TokenSlot), session.WithLogger(logger))
	if err := sess.Restore(ctx); err != nil {
		_ = stores.Cleanup()
		return nil, fmt.Errorf("restore session: %w", err)
	}

	preferences := prefs.New(stores.Store.Slot(store.ThemeSlot), logger)
	if _, err := preferences.Load(ctx); err != nil {
		logger.WarnContext(ctx, "Theme preference unavailable, using light", log.FieldError, err)
	}

	client, caches, err := cli.NewAPIClient(cfg, sess, logger)
	if err != nil {
		_ = stores.Cleanup()
		return nil, err
	}

	reducer := ledger.NewReducer(ledger.WithSettlementPolicy(cfg.Settlement()))
	dash := dashboard.NewService(client,
		dashboard.WithReducer(reducer),
		dashboard.WithTieBreak(cfg.TieBreak()),
		dashboard.WithLogger(logger),
	)

	var publisher services.Publisher
	if cfg.AMQPEnabled() {
		c, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
		if err != nil {
			logger.WarnContext(ctx, "AMQP unavailable, change events will not be published", log.FieldError, err)
		} else {
			publisher = c
		}
	}

	return &app{
		cfg:          cfg,
		logger:       logger,
		out:          out,
		stores:       stores,
		session:      sess,
		prefs:        preferences,
		client:       client,
		caches:       caches,
		dashboard:    dash,
		transactions: services.NewTransactionService(client, publisher, logger),
	}, nil
}

func (a *app) styles() cli.Styles {
	return cli.NewStyles(a.prefs.Theme())
}

// requireSession fails fast when no valid session is held.
func (a *app) requireSession() error {
	if !a.session.IsAuthenticated() {
		return errNotLoggedIn
	}
	return nil
}

// apiError drops the session when the server rejects its token.
func (a *app) apiError(ctx context.Context, err error) error {
	if errors.Is(err, api.ErrUnauthorized) {
		if lerr := a.session.Logout(ctx); lerr != nil {
			a.logger.ErrorContext(ctx, "Failed to clear rejected session", log.FieldError, lerr)
		}
		return fmt.Errorf("session rejected by server, please log in again: %w", err)
	}
	return err
}

func (a *app) Close() error {
	a.caches.Stop()
	var errs []error
	if err := a.transactions.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := a.stores.Cleanup(); err != nil {
		errs = append(errs, fmt.Errorf("close slot store: %w", err))
	}
	return errors.Join(errs...)
}
