package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/odontocare/odontocare/internal/api"
	"github.com/odontocare/odontocare/internal/core/ports"
	"github.com/odontocare/odontocare/internal/core/service"
	"github.com/odontocare/odontocare/internal/infrastructure/config"
	"github.com/odontocare/odontocare/internal/infrastructure/db/mongo"
	"github.com/odontocare/odontocare/internal/infrastructure/db/mysql"
	"github.com/odontocare/odontocare/internal/infrastructure/db/redis"
	"github.com/odontocare/odontocare/internal/infrastructure/gestion"
	"github.com/odontocare/odontocare/internal/infrastructure/http/handlers"
	"github.com/odontocare/odontocare/internal/infrastructure/queue"
	"github.com/odontocare/odontocare/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run one of the HTTP services",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "gestion",
		Short: "Run the gestión API (users, doctors, patients, centers, login)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := bootstrap(cmd.Context(), "gestion")
			if err != nil {
				return err
			}
			return runGestion(cmd.Context(), cfg)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "citas",
		Short: "Run the citas API (appointments)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := bootstrap(cmd.Context(), "citas")
			if err != nil {
				return err
			}
			return runCitas(cmd.Context(), cfg)
		},
	})
	return cmd
}

func runGestion(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()

	db, err := openMySQL(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	users := mysql.NewUserRepository(db)
	e := api.NewGestionRouter(api.GestionDeps{
		Common: api.Common{
			JWTSecret: cfg.JWTSecret,
			Log:       log,
			Checks:    []handlers.Check{handlers.MySQLCheck(db)},
		},
		Auth:     service.NewAuthService(users, cfg.JWTSecret, cfg.TokenTTL, log),
		Users:    service.NewUserService(users, log),
		Doctors:  service.NewDoctorService(users, mysql.NewDoctorRepository(db), log),
		Patients: service.NewPatientService(users, mysql.NewPatientRepository(db), log),
		Centers:  service.NewCenterService(mysql.NewCenterRepository(db), log),
	})

	return serve(ctx, e, cfg.ListenPort("gestion"), log)
}

func runCitas(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()

	db, err := openMySQL(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	checks := []handlers.Check{handlers.MySQLCheck(db)}

	var idem ports.IdempotencyStore
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()
		idem = redis.NewIdempotencyStore(rdb)
		checks = append(checks, handlers.RedisCheck(rdb))
	} else {
		log.Warn().Msg("REDIS_ADDR not set, Idempotency-Key is ignored")
	}

	var sinks []ports.AppointmentEventSink
	if cfg.Mongo.URI != "" {
		client, mdb, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		audit := mongo.NewAuditRepository(mdb)
		if err := audit.EnsureIndexes(ctx); err != nil {
			return err
		}
		sinks = append(sinks, audit)
		checks = append(checks, handlers.MongoCheck(mdb))
	}
	if cfg.RabbitMQ.URL != "" {
		pub := queue.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue, log)
		defer pub.Close()
		sinks = append(sinks, pub)
	}

	// Workers outlive request contexts and stop after the HTTP server drains.
	workerCtx, stopWorkers := context.WithCancel(context.WithoutCancel(ctx))
	var events ports.AppointmentEventQueue
	if len(sinks) > 0 {
		dispatcher := queue.NewDispatcher(cfg.EventWorkers, sinks, log)
		dispatcher.Start(workerCtx)
		defer dispatcher.Wait()
		events = dispatcher
	}
	defer stopWorkers()

	directory := gestion.NewClient(cfg.Gestion.URL, cfg.Gestion.Timeout, log)
	e := api.NewCitasRouter(api.CitasDeps{
		Common: api.Common{
			JWTSecret: cfg.JWTSecret,
			Log:       log,
			Checks:    checks,
		},
		Appointments: service.NewAppointmentService(mysql.NewAppointmentRepository(db), directory, idem, events, log),
	})

	return serve(ctx, e, cfg.ListenPort("citas"), log)
}

// serve runs e until SIGINT/SIGTERM, then shuts down gracefully.
func serve(ctx context.Context, e *echo.Echo, port string, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", port).Msg("server starting")
		if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
