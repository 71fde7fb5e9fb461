package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mbrandeis/taskloom/internal/authz"
	"github.com/mbrandeis/taskloom/internal/config"
	"github.com/mbrandeis/taskloom/internal/httpapi"
	"github.com/mbrandeis/taskloom/internal/identity"
	"github.com/mbrandeis/taskloom/internal/notify"
	"github.com/mbrandeis/taskloom/internal/repository"
	"github.com/mbrandeis/taskloom/internal/service"
	"github.com/mbrandeis/taskloom/internal/store"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "taskloom",
		Short:         "Collaborative project management backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := newLogger(cfg.LogLevel)

	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	users := repository.NewDocUserRepo(st, log)
	projects := repository.NewDocProjectRepo(st, log)
	milestones := repository.NewDocMilestoneRepo(st, log)
	subtasks := repository.NewDocSubtaskRepo(st, log)
	invitations := repository.NewDocInvitationRepo(st, log)

	idp := identity.NewJWTProvider(cfg.JWTSecret, cfg.TokenTTL, st, log)
	guard := authz.NewGuard(projects, milestones, subtasks)
	cascader := service.NewCascader(users, projects, milestones, subtasks, invitations, log)
	observer := service.NewLogUseCaseObserver(os.Stderr)

	var notifier notify.Notifier = notify.NewLogNotifier(log)
	if cfg.AMQPURL != "" {
		amqpNotifier, err := notify.NewAMQPNotifier(cfg.AMQPURL, cfg.AMQPExchange, log)
		if err != nil {
			return fmt.Errorf("connecting notifier: %w", err)
		}
		defer amqpNotifier.Close()
		notifier = amqpNotifier
	}

	api := &httpapi.API{
		Users:       service.NewUserService(users, idp, cascader, observer),
		Projects:    service.NewProjectService(users, projects, guard, cascader, observer),
		Milestones:  service.NewMilestoneService(projects, milestones, guard, cascader, observer),
		Subtasks:    service.NewSubtaskService(users, projects, milestones, subtasks, guard, observer),
		Invitations: service.NewInvitationService(users, projects, invitations, guard, cascader, idp, notifier, observer),
		Identity:    idp,
		Log:         log,
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(api),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.HTTPAddr, "store", cfg.StoreDriver)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
	}
	return nil
}

func openStore(cfg config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		return store.OpenSQLite(cfg.StorePath)
	default:
		return store.OpenBadger(cfg.StorePath)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
