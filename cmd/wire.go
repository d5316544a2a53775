package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	statusadapter "github.com/bnema/mission-control/internal/adapters/render/status"
	sqliterepo "github.com/bnema/mission-control/internal/adapters/repo/sqlite"
	tomlrepo "github.com/bnema/mission-control/internal/adapters/repo/toml"
	chainstore "github.com/bnema/mission-control/internal/adapters/secrets/chain"
	"github.com/bnema/mission-control/internal/adapters/upstream"
	"github.com/bnema/mission-control/internal/application"
	"github.com/bnema/mission-control/internal/config"
	"github.com/bnema/mission-control/internal/domain"
	"github.com/bnema/mission-control/internal/ports"
	"github.com/spf13/cobra"
)

type app struct {
	cfg           config.Config
	logger        *slog.Logger
	db            *sql.DB
	roster        domain.Roster
	secretStore   ports.SecretStore
	ingest        *application.IngestService
	dashboard     *application.DashboardService
	journal       *application.JournalService
	rosterService *application.RosterService
	boardRenderer func(statusadapter.Board, statusadapter.RenderOptions) (string, error)
	now           func() time.Time
}

func (a *app) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// appLoader wires the application on demand so commands see the --config
// flag and commands such as version never open the database.
type appLoader struct {
	configFile string
}

func (l *appLoader) run(fn func(cmd *cobra.Command, args []string, app *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := wireApp(cmd.Context(), l.configFile, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer app.Close()

		return fn(cmd, args, app)
	}
}

func wireApp(ctx context.Context, configFile string, logOutput io.Writer) (*app, error) {
	v, err := config.New(configFile)
	if err != nil {
		return nil, fmt.Errorf("wire config: %w", err)
	}
	cfg, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(logOutput, &slog.HandlerOptions{Level: cfg.LogLevel}))

	rosterRepo, err := tomlrepo.NewRosterRepository(v)
	if err != nil {
		return nil, fmt.Errorf("wire roster repository: %w", err)
	}
	roster, err := rosterRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}

	secretStore, err := chainstore.NewEnvFirstWithFileFallback(cfg.SecretsDir)
	if err != nil {
		return nil, fmt.Errorf("wire secret store chain: %w", err)
	}

	db, err := sqliterepo.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("wire database: %w", err)
	}

	snapshots := sqliterepo.NewSnapshotRepository(db)
	events := sqliterepo.NewEventRepository(db)
	comms := sqliterepo.NewCommRepository(db)
	activities := sqliterepo.NewActivityRepository(db)
	sessions := upstream.Client{
		URL:            cfg.Upstream.URL,
		TokenRef:       cfg.Upstream.TokenRef,
		Source:         cfg.Upstream.Source,
		Secrets:        secretStore,
		HTTPClient:     http.DefaultClient,
		RequestTimeout: cfg.Upstream.Timeout,
	}
	clock := ports.SystemClock{}

	ingestCfg := application.IngestConfig{
		Normalizer:     cfg.NormalizerConfig(),
		AlertThreshold: cfg.Ingest.AlertThreshold,
		AlertPolicy:    cfg.Ingest.AlertPolicy,
	}

	return &app{
		cfg:           cfg,
		logger:        logger,
		db:            db,
		roster:        roster,
		secretStore:   secretStore,
		ingest:        application.NewIngestService(roster, ingestCfg, snapshots, events, sessions, clock, logger),
		dashboard:     application.NewDashboardService(roster, cfg.NormalizerConfig(), snapshots, events, comms, sessions, clock, logger),
		journal:       application.NewJournalService(events, comms, activities, clock, logger),
		rosterService: application.NewRosterService(rosterRepo),
		boardRenderer: statusadapter.Render,
		now:           clock.Now,
	}, nil
}
