// Package cmd provides the command-line interface for the flight data
// manager: an interactive shell over the generic data engine plus
// maintenance commands for seeding and resetting the store.
package cmd

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"flightdb/internal/domain"
	"flightdb/internal/logging"
	"flightdb/internal/seed"
	"flightdb/internal/service"
	"flightdb/internal/storage"
)

var (
	flagProject  string
	flagSeedDir  string
	flagDriver   string
	flagHost     string
	flagPort     int
	flagDatabase string
	flagUsername string
	flagPassword string
	flagSSLMode  string
	flagLogPath  string
)

var rootCmd = &cobra.Command{
	Use:           "flightdb",
	Short:         "Relational data manager for pilots, destinations, and flights",
	Long:          "flightdb bootstraps its own schema, seeds it from flat files, and exposes generic CRUD, filtering, grouping, and joined aggregates through an interactive shell.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runShell, // bare invocation drops into the shell
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		pterm.Println("Error: " + err.Error())
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagProject, "project", "flights", "project name; derives the store file and log file names")
	pf.StringVar(&flagSeedDir, "seed-dir", "seeds", "directory holding the per-table seed files")
	pf.StringVar(&flagDriver, "driver", storage.DriverSQLite, "store driver: sqlite, mysql, or postgres")
	pf.StringVar(&flagHost, "host", "", "store host (mysql/postgres)")
	pf.IntVar(&flagPort, "port", 0, "store port (mysql/postgres)")
	pf.StringVar(&flagDatabase, "database", "", "database name (mysql/postgres)")
	pf.StringVar(&flagUsername, "username", "", "store user (mysql/postgres)")
	pf.StringVar(&flagPassword, "password", "", "store password (mysql/postgres)")
	pf.StringVar(&flagSSLMode, "ssl-mode", "", "ssl mode (mysql/postgres)")
	pf.StringVar(&flagLogPath, "log", "", "diagnostic log path (default flight_management_<project>.log)")

	rootCmd.AddCommand(shellCmd, seedCmd, resetCmd, versionCmd)
}

// env bundles the wired core a command operates on.
type env struct {
	storePath string
	log       *logging.Log
	db        *sql.DB
	ds        *service.Dataset
	seeder    *seed.Seeder
}

// openEnv opens the log, the store, and the service stack from the
// root flags.
func openEnv() (*env, error) {
	logPath := flagLogPath
	if logPath == "" {
		logPath = fmt.Sprintf("flight_management_%s.log", flagProject)
	}
	log, err := logging.Open(logPath)
	if err != nil {
		return nil, err
	}

	storePath := storeFileName(flagProject)
	db, err := storage.Open(storage.Config{
		Driver:   flagDriver,
		Path:     storePath,
		Host:     flagHost,
		Port:     flagPort,
		Database: flagDatabase,
		Username: flagUsername,
		Password: flagPassword,
		SSLMode:  flagSSLMode,
	})
	if err != nil {
		log.Close()
		return nil, err
	}

	reg := domain.NewRegistry()
	exec := storage.NewExecutor(db, log.Logger)
	intro := storage.NewIntrospector(db, flagDriver, log.Logger)

	return &env{
		storePath: storePath,
		log:       log,
		db:        db,
		ds:        service.NewDataset(reg, exec, intro, log.Logger),
		seeder:    seed.NewSeeder(reg, exec, flagSeedDir, log.Logger),
	}, nil
}

// Close releases the store and flushes the log.
func (e *env) Close() {
	e.db.Close()
	e.log.Close()
}

// storeFileName derives the store file from the project name, e.g.
// "flights" becomes "Flights.db".
func storeFileName(project string) string {
	if project == "" {
		project = "flights"
	}
	return strings.ToUpper(project[:1]) + project[1:] + ".db"
}
