package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/yourusername/quiz-game-api/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}

	var configPath, sourceURL string

	cmd := &cobra.Command{
		Use:           "migrate",
		Short:         "Управление миграциями базы данных игры",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.PersistentFlags().StringVar(&sourceURL, "source", "", "migrations source URL (default: database.migrations_path)")

	withMigrator := func(run func(m *migrate.Migrate) error) func(cmd *cobra.Command, args []string) error {
		return func(cmd *cobra.Command, args []string) error {
			m, closeFn, err := openMigrator(configPath, sourceURL)
			if err != nil {
				return err
			}
			defer closeFn()
			return run(m)
		}
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Применить все новые миграции",
		Args:  cobra.NoArgs,
		RunE: withMigrator(func(m *migrate.Migrate) error {
			if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
				return fmt.Errorf("migrate up: %w", err)
			}
			return printVersion(m)
		}),
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Откатить последние миграции",
		Args:  cobra.NoArgs,
		RunE: withMigrator(func(m *migrate.Migrate) error {
			if steps <= 0 {
				return fmt.Errorf("--steps must be positive, got %d", steps)
			}
			if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
				return fmt.Errorf("migrate down: %w", err)
			}
			return printVersion(m)
		}),
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")
	cmd.AddCommand(down)

	cmd.AddCommand(&cobra.Command{
		Use:   "force <version>",
		Short: "Установить версию и снять флаг dirty после неудачной миграции",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid version %q: %w", args[0], err)
			}
			return withMigrator(func(m *migrate.Migrate) error {
				log.Printf("Принудительная установка версии миграции %d", version)
				if err := m.Force(version); err != nil {
					return fmt.Errorf("migrate force: %w", err)
				}
				return printVersion(m)
			})(cmd, args)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Показать текущую версию схемы",
		Args:  cobra.NoArgs,
		RunE:  withMigrator(printVersion),
	})

	return cmd
}

// openMigrator подключается к БД через lib/pq и создает migrate.Migrate
func openMigrator(configPath, sourceURL string) (*migrate.Migrate, func(), error) {
	dbCfg, err := config.LoadDatabase(configPath)
	if err != nil {
		return nil, nil, err
	}
	if sourceURL == "" {
		sourceURL = dbCfg.MigrationsPath
	}

	db, err := sql.Open("postgres", dbCfg.PostgresConnectionString())
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("create migrate driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("create migrate instance: %w", err)
	}

	closeFn := func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.Printf("Ошибка при закрытии migrate: source=%v, database=%v", srcErr, dbErr)
		}
	}
	return m, closeFn, nil
}

func printVersion(m *migrate.Migrate) error {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		fmt.Println("Миграции еще не применялись")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate version: %w", err)
	}
	fmt.Printf("Версия схемы: %d (dirty=%t)\n", version, dirty)
	return nil
}
