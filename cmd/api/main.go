package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	jwtauth "vet-clinic/internal/adapters/auth/jwt"
	"vet-clinic/internal/adapters/auth/remote"
	"vet-clinic/internal/adapters/mq/rabbitmq"
	"vet-clinic/internal/adapters/render/textreport"
	pg "vet-clinic/internal/adapters/storage/postgres"
	"vet-clinic/internal/config"
	"vet-clinic/internal/platform/logger"
	"vet-clinic/internal/platform/obs"
	"vet-clinic/internal/ports/auth"
	"vet-clinic/internal/ports/notify"
	"vet-clinic/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("config", map[string]any{"err": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", map[string]any{"err": err})
		os.Exit(1)
	}
}

func run(cfg config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := obs.InitTracer(ctx, obs.Options{
		ServiceName: cfg.AppName,
		Environment: cfg.Env,
		Endpoint:    cfg.OTLPEndpoint,
	})
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		_ = shutdownTracer(sctx)
	}()

	// Storage: Postgres si hay DSN, si no in-memory.
	var db *sql.DB
	if cfg.DBDSN != "" {
		db, err = pg.Open(cfg.DBDSN)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := pg.Migrate(ctx, db); err != nil {
			return err
		}
		log.Info("postgres ready", nil)
	} else {
		log.Warn("DB_DSN not set, using in-memory store", nil)
	}

	// Eventos
	var pub notify.Publisher = notify.Noop{}
	if cfg.AMQPURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AppName)
		if err != nil {
			return err
		}
		defer p.Close()
		pub = p
		log.Info("publishing events", map[string]any{"exchange": cfg.AMQPExchange})
	}

	verifier, issuer, err := authFor(cfg)
	if err != nil {
		return err
	}
	log.Info("auth mode", map[string]any{"mode": cfg.AuthMode})

	opts := router.Options{
		AuthVerifier: verifier,
		Issuer:       issuer,
		DB:           db,
		Logger:       log,
		Publisher:    pub,
		Renderer:     textreport.New(),
	}
	svcs := router.NewServices(opts)

	if cfg.BootstrapAdminEmail != "" {
		u, created, err := svcs.Users.EnsureAdmin(ctx, cfg.BootstrapAdminName, cfg.BootstrapAdminEmail, cfg.BootstrapAdminPassword)
		if err != nil {
			return err
		}
		if created {
			log.Info("bootstrap admin created", map[string]any{"user_id": u.ID, "email": u.Email})
		}
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.New(opts, svcs),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "env": cfg.Env})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}

// authFor: dev => sin verifier (headers X-Debug-*), jwt => HS256 local,
// remote => introspección contra el IdP. El issuer solo existe en modo jwt.
func authFor(cfg config.Config) (auth.AuthVerifier, auth.TokenIssuer, error) {
	switch cfg.AuthMode {
	case config.AuthModeJWT:
		m, err := jwtauth.NewManager(cfg.JWTSecret, cfg.JWTTTL)
		if err != nil {
			return nil, nil, err
		}
		return m, m, nil
	case config.AuthModeRemote:
		v, err := remote.NewVerifier(remote.Config{
			BaseURL: cfg.AuthRemoteURL,
			APIKey:  cfg.AuthRemoteAPIKey,
			Timeout: cfg.AuthRemoteTimeout,
		})
		if err != nil {
			return nil, nil, err
		}
		return v, nil, nil
	default:
		return nil, nil, nil
	}
}
