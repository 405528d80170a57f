package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alexanderramin/effortlog/internal/cli"
	"github.com/alexanderramin/effortlog/internal/config"
	"github.com/alexanderramin/effortlog/internal/db"
	"github.com/alexanderramin/effortlog/internal/metrics"
	"github.com/alexanderramin/effortlog/internal/notify"
	"github.com/alexanderramin/effortlog/internal/repository"
	"github.com/alexanderramin/effortlog/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(context.Background())
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	// Determine DB path: config or default ~/.effortlog/effortlog.db
	dbPath := cfg.DBPath
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".effortlog", "effortlog.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	userRepo := repository.NewSQLiteUserRepo(database)
	cohortRepo := repository.NewSQLiteCohortRepo(database)
	effortRepo := repository.NewSQLiteEffortRepo(database)
	summaryRepo := repository.NewSQLiteSummaryRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	m := metrics.NewManager()

	// Notifications fan out to the log, email and metrics.
	notifiers := notify.Multi{m}
	if cfg.NotifyLog {
		notifiers = append(notifiers, notify.NewLogNotifier(logger))
	}
	if cfg.EmailEnabled() {
		sender := &notify.SMTPSender{
			Addr:     cfg.SMTPAddr,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
		}
		notifiers = append(notifiers, notify.NewEmailNotifier(sender, cfg.SMTPFrom, cfg.Recipients(), logger))
	}

	observers := []service.UseCaseObserver{m}
	if cfg.LogUseCases {
		observers = append(observers, service.NewSlogUseCaseObserver(logger))
	}

	loc := cfg.Location()
	clock := func() time.Time { return time.Now().In(loc) }

	app := &cli.App{
		Efforts:    service.NewEffortService(effortRepo, summaryRepo, uow, notifiers, clock, observers...),
		Directory:  service.NewDirectoryService(userRepo, cohortRepo, uow, observers...),
		ActingUser: cfg.ActingUser,
		Now:        clock,
	}

	// Detect interactive terminal for the week form.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	execErr := rootCmd.Execute()

	if cfg.MetricsTextfile != "" {
		if err := m.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logger.Warn("metrics textfile not written", "path", cfg.MetricsTextfile, "error", err)
		}
	}
	return execErr
}
