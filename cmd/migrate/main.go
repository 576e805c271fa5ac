package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/lib/pq"
	"github.com/shopfeed/backend/internal/infrastructure/config"
	"github.com/shopfeed/backend/internal/infrastructure/logger"
	"github.com/shopfeed/backend/internal/infrastructure/migration"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const defaultMigrationsPath = "migrations"

func main() {
	app := &cli.App{
		Name:  "migrate",
		Usage: "manage the shopfeed database schema",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Value: defaultMigrationsPath, Usage: "migrations directory"},
			&cli.StringFlag{Name: "log-level", Value: "info", Usage: "debug, info, warn or error"},
		},
		Commands: []*cli.Command{
			{Name: "up", Usage: "apply all pending migrations", Action: withMigrator(func(_ *cli.Context, m *migration.Migrator) error {
				return m.Up()
			})},
			{Name: "down", Usage: "roll back all migrations", Action: withMigrator(func(_ *cli.Context, m *migration.Migrator) error {
				return m.Down()
			})},
			{Name: "steps", Usage: "apply n migrations, negative n rolls back", ArgsUsage: "<n>", Action: withMigrator(func(c *cli.Context, m *migration.Migrator) error {
				n, err := strconv.Atoi(c.Args().First())
				if err != nil {
					return fmt.Errorf("invalid step count %q", c.Args().First())
				}
				return m.Steps(n)
			})},
			{Name: "goto", Usage: "migrate up or down to a version", ArgsUsage: "<version>", Action: withMigrator(func(c *cli.Context, m *migration.Migrator) error {
				v, err := strconv.ParseUint(c.Args().First(), 10, 32)
				if err != nil {
					return fmt.Errorf("invalid version %q", c.Args().First())
				}
				return m.GoTo(uint(v))
			})},
			{Name: "force", Usage: "set the version without running migrations", ArgsUsage: "<version>", Action: withMigrator(func(c *cli.Context, m *migration.Migrator) error {
				v, err := strconv.Atoi(c.Args().First())
				if err != nil {
					return fmt.Errorf("invalid version %q", c.Args().First())
				}
				return m.Force(v)
			})},
			{Name: "status", Usage: "print the current version", Action: withMigrator(func(_ *cli.Context, m *migration.Migrator) error {
				s, err := m.Status()
				if err != nil {
					return err
				}
				fmt.Printf("version %d, dirty %t\n", s.Version, s.Dirty)
				return nil
			})},
			{Name: "create", Usage: "create an empty up/down pair", ArgsUsage: "<name>", Action: func(c *cli.Context) error {
				if c.Args().Len() == 0 {
					return fmt.Errorf("migration name required")
				}
				f, err := migration.Create(c.String("path"), c.Args().First())
				if err != nil {
					return err
				}
				fmt.Println(f.UpPath)
				fmt.Println(f.DownPath)
				return nil
			}},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// withMigrator opens the configured database and runs fn with a migrator on it
func withMigrator(fn func(*cli.Context, *migration.Migrator) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		log, err := logger.New(logger.Config{Level: c.String("log-level"), Format: "console", Output: "stdout"})
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer func() { _ = log.Sync() }()

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		path, err := filepath.Abs(c.String("path"))
		if err != nil {
			return err
		}

		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			return fmt.Errorf("failed to ping database: %w", err)
		}

		m, err := migration.New(db, path, log)
		if err != nil {
			return err
		}
		defer m.Close()

		log.Info("Running migration command", zap.String("command", c.Command.Name), zap.String("path", path))
		return fn(c, m)
	}
}
