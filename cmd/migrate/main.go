package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/inventory-service/internal/app/inventory/repo/gormstore"
	"github.com/light-bringer/inventory-service/internal/config"
	"github.com/light-bringer/inventory-service/internal/pkg/logger"
)

var configFile = flag.String("config", "", "optional config file (env, yaml or json)")

// migrator applies the schema for the configured driver.
type migrator struct {
	cfg *config.Config
	log zerolog.Logger
}

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log := logger.Default()
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	log := logger.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	if emulatorHost := os.Getenv("SPANNER_EMULATOR_HOST"); emulatorHost != "" && cfg.StoreDriver == config.DriverSpanner {
		log.Info().Str("host", emulatorHost).Msg("Using Spanner emulator")
	}

	m := &migrator{cfg: cfg, log: log}
	if err := m.run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}

	log.Info().Msg("Migrations completed successfully!")
}

func (m *migrator) run(ctx context.Context) error {
	if m.cfg.StoreDriver != config.DriverSpanner {
		return m.migrateSQL(ctx)
	}

	if err := m.ensureInstance(ctx); err != nil {
		return fmt.Errorf("failed to ensure instance: %w", err)
	}
	if err := m.ensureDatabase(ctx); err != nil {
		return fmt.Errorf("failed to ensure database: %w", err)
	}
	if err := m.applyMigrations(ctx); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// migrateSQL creates the GORM schema. Opening the store migrates it.
func (m *migrator) migrateSQL(ctx context.Context) error {
	var (
		store *gormstore.Store
		err   error
	)
	switch m.cfg.StoreDriver {
	case config.DriverPostgres:
		store, err = gormstore.OpenPostgres(ctx, m.cfg.PostgresDSN, m.log)
	default:
		store, err = gormstore.OpenSQLite(ctx, m.cfg.SQLitePath, m.log)
	}
	if err != nil {
		return err
	}
	m.log.Info().Str("driver", m.cfg.StoreDriver).Msg("Schema is up to date")
	return store.Close()
}

func (m *migrator) instanceName() string {
	return fmt.Sprintf("projects/%s/instances/%s", m.cfg.SpannerProjectID, m.cfg.SpannerInstanceID)
}

func (m *migrator) ensureInstance(ctx context.Context) error {
	m.log.Info().Str("instance", m.cfg.SpannerInstanceID).Msg("Ensuring instance exists...")

	instanceAdmin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create instance admin client: %w", err)
	}
	defer instanceAdmin.Close()

	_, err = instanceAdmin.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: m.instanceName()})
	if err == nil {
		m.log.Info().Msg("Instance already exists")
		return nil
	}
	if status.Code(err) != codes.NotFound {
		m.log.Warn().Err(err).Msg("unexpected error checking instance")
		return nil
	}

	m.log.Info().Msg("Creating instance...")
	op, err := instanceAdmin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     fmt.Sprintf("projects/%s", m.cfg.SpannerProjectID),
		InstanceId: m.cfg.SpannerInstanceID,
		Instance: &instancepb.Instance{
			Config:      fmt.Sprintf("projects/%s/instanceConfigs/emulator-config", m.cfg.SpannerProjectID),
			DisplayName: "Inventory Instance",
			NodeCount:   1,
		},
	})
	if err != nil {
		if status.Code(err) != codes.AlreadyExists {
			return fmt.Errorf("failed to create instance: %w", err)
		}
		m.log.Info().Msg("Instance already exists")
		return nil
	}

	// The emulator may finish before Wait is called.
	if _, err := op.Wait(ctx); err != nil && status.Code(err) != codes.AlreadyExists {
		m.log.Warn().Err(err).Msg("instance creation did not report success")
	}

	m.log.Info().Msg("Instance created successfully")
	return nil
}

func (m *migrator) ensureDatabase(ctx context.Context) error {
	m.log.Info().Str("database", m.cfg.SpannerDatabaseID).Msg("Ensuring database exists...")

	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	_, err = adminClient.GetDatabase(ctx, &databasepb.GetDatabaseRequest{Name: m.cfg.SpannerDatabase()})
	if err == nil {
		m.log.Info().Msg("Database already exists")
		return nil
	}

	if status.Code(err) == codes.NotFound {
		m.log.Info().Msg("Creating database...")
		op, err := adminClient.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
			Parent:          m.instanceName(),
			CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", m.cfg.SpannerDatabaseID),
		})
		if err != nil {
			if status.Code(err) != codes.AlreadyExists {
				return fmt.Errorf("failed to create database: %w", err)
			}
			m.log.Info().Msg("Database already exists")
			return nil
		}

		if _, err := op.Wait(ctx); err != nil {
			return fmt.Errorf("failed to wait for database creation: %w", err)
		}

		m.log.Info().Msg("Database created successfully")
		return nil
	}

	// For other errors on emulator, just proceed - the DB might exist
	if os.Getenv("SPANNER_EMULATOR_HOST") != "" {
		m.log.Warn().Err(err).Msg("Proceeding with database (emulator mode)")
		return nil
	}

	return fmt.Errorf("failed to check database: %w", err)
}

// applyMigrations runs every *.sql file in name order, skipping statements that
// create an object the database already has.
func (m *migrator) applyMigrations(ctx context.Context) error {
	m.log.Info().Str("dir", m.cfg.MigrationsDir).Msg("Applying migrations...")

	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	files, err := filepath.Glob(filepath.Join(m.cfg.MigrationsDir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to list migration files: %w", err)
	}
	if len(files) == 0 {
		m.log.Info().Msg("No migration files found")
		return nil
	}
	sort.Strings(files)

	current, err := adminClient.GetDatabaseDdl(ctx, &databasepb.GetDatabaseDdlRequest{Database: m.cfg.SpannerDatabase()})
	if err != nil {
		return fmt.Errorf("failed to read current schema: %w", err)
	}
	existing := make(map[string]bool)
	for _, stmt := range current.Statements {
		if name := createdObject(stmt); name != "" {
			existing[name] = true
		}
	}

	for _, file := range files {
		migrationName := filepath.Base(file)

		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		statements := pendingStatements(splitDDLStatements(string(content)), existing)
		if len(statements) == 0 {
			m.log.Info().Str("migration", migrationName).Msg("Already applied")
			continue
		}

		m.log.Info().Str("migration", migrationName).Int("statements", len(statements)).Msg("Applying...")
		op, err := adminClient.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
			Database:   m.cfg.SpannerDatabase(),
			Statements: statements,
		})
		if err != nil {
			return fmt.Errorf("failed to start DDL update for %s: %w", migrationName, err)
		}
		if err := op.Wait(ctx); err != nil {
			return fmt.Errorf("failed to apply DDL for %s: %w", migrationName, err)
		}

		for _, stmt := range statements {
			if name := createdObject(stmt); name != "" {
				existing[name] = true
			}
		}
		m.log.Info().Str("migration", migrationName).Msg("Successfully applied")
	}

	return nil
}

func splitDDLStatements(content string) []string {
	// Remove comments and empty lines
	lines := strings.Split(content, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		cleaned = append(cleaned, line)
	}

	content = strings.Join(cleaned, "\n")

	// Split by semicolon
	statements := strings.Split(content, ";")
	var result []string
	for _, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		if stmt != "" {
			result = append(result, stmt)
		}
	}

	return result
}

var createPattern = regexp.MustCompile(`(?is)^\s*CREATE\s+(?:UNIQUE\s+)?(?:NULL_FILTERED\s+)?(TABLE|INDEX)\s+` + "`?" + `(\w+)`)

// createdObject returns "table:name" or "index:name" for a CREATE statement and
// "" for anything else.
func createdObject(stmt string) string {
	match := createPattern.FindStringSubmatch(stmt)
	if match == nil {
		return ""
	}
	return strings.ToLower(match[1]) + ":" + strings.ToLower(match[2])
}

func pendingStatements(statements []string, existing map[string]bool) []string {
	var pending []string
	for _, stmt := range statements {
		if name := createdObject(stmt); name != "" && existing[name] {
			continue
		}
		pending = append(pending, stmt)
	}
	return pending
}
