package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/alexanderramin/pdsops/internal/app"
	"github.com/alexanderramin/pdsops/internal/cli"
	"github.com/alexanderramin/pdsops/internal/config"
	"github.com/alexanderramin/pdsops/internal/db"
	"github.com/alexanderramin/pdsops/internal/logger"
	"github.com/alexanderramin/pdsops/internal/repository"
	"github.com/alexanderramin/pdsops/internal/service"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		var ae *app.AnalyticsError
		if errors.As(err, &ae) {
			fmt.Fprintf(os.Stderr, "Error [%s]: %s\n", ae.Code, ae.Message)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run() error {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	log := logger.New(logger.Options{Env: cfg.Env, Level: cfg.LogLevel})

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()
	log.WithField("db_path", cfg.DBPath).Debug("database ready")

	// Wire repositories
	clientRepo := repository.NewSQLiteClientRepo(database)
	projectRepo := repository.NewSQLiteProjectRepo(database)
	templateRepo := repository.NewSQLiteTemplateRepo(database)
	feedbackRepo := repository.NewSQLiteRuleFeedbackRepo(database)
	decisionRepo := repository.NewSQLiteDecisionRepo(database)
	outcomeRepo := repository.NewSQLiteOutcomeRepo(database)
	riskRepo := repository.NewSQLiteRiskRepo(database)
	resourceRepo := repository.NewSQLiteResourceRepo(database)
	gapRepo := repository.NewSQLiteGapRepo(database)

	// Wire unit of work for snapshot reads and transactional writes
	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(log.WithComponent("service")))
	}

	// Wire services
	analyticsSvc := service.NewAnalyticsService(uow, observers...)
	feedbackSvc := service.NewFeedbackService(
		feedbackRepo,
		time.Duration(cfg.Feedback.MaxRetryElapsedMs)*time.Millisecond,
		observers...,
	)

	a := &cli.App{
		Analytics: analyticsSvc,
		Brief:     service.NewBriefService(uow, observers...),
		Feedback:  feedbackSvc,
		Decisions: service.NewDecisionService(decisionRepo, outcomeRepo, analyticsSvc, feedbackSvc, observers...),
		Import:    service.NewImportService(clientRepo, projectRepo, uow, observers...),
		Templates: service.NewTemplateService(templateRepo, uow, observers...),
		Projects:  service.NewProjectService(projectRepo),
		Resources: service.NewResourceService(resourceRepo, observers...),
		Gaps:      service.NewGapService(gapRepo, observers...),
		Risks:     service.NewRiskService(riskRepo, projectRepo, observers...),

		ScenarioDefaults: cfg.ScenarioParams(),
		TemplateSeedPath: cfg.TemplateSeedPath,
	}

	// Detect interactive terminal for prompts, spinners and the review TUI.
	a.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return cli.NewRootCmd(a).ExecuteContext(ctx)
}
