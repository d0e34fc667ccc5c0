// Package commands wires the cobra command tree to the application services
package commands

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/openmfg/prodplan/pkg/application/services/lifecycle"
	"github.com/openmfg/prodplan/pkg/infrastructure/config"
	"github.com/openmfg/prodplan/pkg/infrastructure/logging"
	"github.com/openmfg/prodplan/pkg/infrastructure/repositories/sqlite"
)

var (
	flagConfig  string
	flagVerbose bool
	flagFormat  string
)

// NewRootCommand builds the prodplan command tree
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "prodplan",
		Short:        "Production plans and raw material requirements",
		Long:         "prodplan manages production plans of semi-finished items,\ntracks output against targets and derives raw material shortages\nby exploding pending demand through single-level recipes.",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "", "path to a TOML config file")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&flagFormat, "format", "", "output format: text or json (overrides config)")

	root.AddCommand(PlanCmd())
	root.AddCommand(ShortageCmd())
	root.AddCommand(StatsCmd())
	root.AddCommand(RecordCmd())
	root.AddCommand(LoadCmd())
	return root
}

// app bundles the opened store and services for one command invocation
type app struct {
	cfg     *config.Config
	logger  *log.Logger
	db      *sql.DB
	plans   *sqlite.PlanRepository
	recipes *sqlite.RecipeRepository
	stock   *sqlite.StockRepository
	records *sqlite.ProductionRecordRepository
	manager *lifecycle.Manager
}

func openApp() (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagFormat != "" {
		if flagFormat != "text" && flagFormat != "json" {
			return nil, fmt.Errorf("unsupported output format %q", flagFormat)
		}
		cfg.Format = flagFormat
	}

	logger := logging.New(flagVerbose)

	db, err := sqlite.Open(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}
	logger.Debug("store opened", "path", cfg.DatabasePath)

	plans := sqlite.NewPlanRepository(db)
	return &app{
		cfg:     cfg,
		logger:  logger,
		db:      db,
		plans:   plans,
		recipes: sqlite.NewRecipeRepository(db),
		stock:   sqlite.NewStockRepository(db),
		records: sqlite.NewProductionRecordRepository(db),
		manager: lifecycle.NewManager(plans, logger),
	}, nil
}

func (a *app) close() {
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close store", "err", err)
	}
}

func parseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", what, arg)
	}
	return id, nil
}

func parseQty(arg string) (int64, error) {
	qty, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q", arg)
	}
	return qty, nil
}
