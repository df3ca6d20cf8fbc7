package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"poll-engine/internal/collaborators"
	"poll-engine/internal/database"
	"poll-engine/internal/database/store"
	"poll-engine/internal/engine"
	"poll-engine/pkg/config"
	"poll-engine/pkg/logger"
)

var (
	configPath string
	logLevel   string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/pollengine.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level (debug, info, warn, error)")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(votersCmd)
	rootCmd.AddCommand(votingsCmd)
	rootCmd.AddCommand(summaryCmd)
}

var rootCmd = &cobra.Command{
	Use:          "pollengine",
	Short:        "Poll lifecycle validation and resolution engine",
	Long:         "Registers voters, votings and votes against the configured store and resolves voting summaries",
	Args:         validateNoPosArgsFn,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.HelpFunc()(cmd, args)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func validateNoPosArgsFn(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("this command does not take positional arguments")
	}
	return nil
}

// app bundles everything a command needs once the config is loaded
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	db       *sql.DB
	store    *store.Store
	services *engine.Services
}

func (a *app) Close() error {
	logErr := a.log.Close()
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			return err
		}
	}
	return logErr
}

// withApp opens the app, runs fn and closes the app whatever fn returns
func withApp(fn func(a *app) error) (err error) {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := a.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("Unable to close database : %w", closeErr)
		}
	}()
	return fn(a)
}

// openApp loads the config, connects and migrates the database and
// installs the SQL store into the process-wide collaborator registry
func openApp() (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("Failed to load config: %w", err)
	}

	log := logger.New(logger.Options{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		File:       cfg.Logging.File,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAge,
		Compress:   cfg.Logging.Compress,
		Output:     os.Stderr,
	})
	if logLevel != "" {
		if err := log.SetLogLevel(logLevel); err != nil {
			return nil, fmt.Errorf("Invalid log level %q: %w", logLevel, err)
		}
	}
	log.Debug("configuration loaded", "config", fmt.Sprintf("%+v", *cfg.SanitizeForLogging()))

	rules, err := config.NewRuleSet(cfg.Rules)
	if err != nil {
		return nil, fmt.Errorf("Invalid rules: %w", err)
	}
	cfg.WatchRules(rules,
		func(r config.RulesConfig) { log.Info("rules reloaded", "min_candidates_election", r.MinCandidatesElection) },
		func(err error) { log.Warning("rules reload rejected", "error", err.Error()) },
	)

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("Failed to connect to database: %w", err)
	}
	if err := database.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("Failed to run migrations: %w", err)
	}
	log.Infof("Connected to %s database", cfg.Database.Type)

	st := store.New(db, store.Options{RunningCounters: cfg.Database.RunningCounters}, log)
	collaborators.Default().InstallCollaborators(st)

	return &app{
		cfg:      cfg,
		log:      log,
		db:       db,
		store:    st,
		services: engine.New(rules, nil, log),
	}, nil
}
