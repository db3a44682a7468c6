package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/stemsi/schoolcrm-backend/internal/config"
	"github.com/stemsi/schoolcrm-backend/internal/database"
	"github.com/stemsi/schoolcrm-backend/internal/logger"
)

func main() {
	cfg := config.Load()

	flag.StringVar(&cfg.MigrationsPath, "path", cfg.MigrationsPath, "Path to migration files (MIGRATIONS_PATH)")
	flag.Usage = printUsage
	flag.Parse()

	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(2)
	}

	if cfg.StoreDriver != config.DriverPostgres {
		log.Fatal().Str("driver", cfg.StoreDriver).Msg("Migrations only apply to STORE_DRIVER=postgres")
	}

	mg, err := database.NewMigrator(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Migration failed to initialize")
	}
	defer func() {
		if err := mg.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close migrator")
		}
	}()

	switch args[0] {
	case "up":
		err = mg.Up()
	case "down":
		err = mg.Down()
	case "steps":
		var n int
		if n, err = intArg(args, "steps"); err == nil {
			err = mg.Steps(n)
		}
	case "force":
		var v int
		if v, err = intArg(args, "force"); err == nil {
			err = mg.Force(v)
		}
	case "version":
		var (
			v     uint
			dirty bool
		)
		if v, dirty, err = mg.Version(); err == nil {
			fmt.Printf("Version: %d, Dirty: %t\n", v, dirty)
		}
	default:
		printUsage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal().Err(err).Str("command", args[0]).Msg("Migration failed")
	}
}

func intArg(args []string, command string) (int, error) {
	if len(args) < 2 {
		return 0, fmt.Errorf("%s requires a number argument", command)
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, fmt.Errorf("invalid %s argument %q: %w", command, args[1], err)
	}
	return n, nil
}

func printUsage() {
	fmt.Println("Usage: migrate [flags] <command>")
	fmt.Println("Commands: up, down, steps <n>, version, force <version>")
	fmt.Println("Flags:")
	flag.PrintDefaults()
}
