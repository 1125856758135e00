package database

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/rpupo63/project-catalog-backend/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

const (
	TypePostgres = "postgres"
	TypeSupabase = "supa"
	TypeSQLite   = "sqlite"
)

// Options selects a driver and connection for Open.
type Options struct {
	Type        string
	DSN         string
	ReplicaDSNs []string
	LogLevel    logger.LogLevel
}

// OptionsFromConfig builds connection options from DB_TYPE and the matching settings.
func OptionsFromConfig(c map[string]string) (Options, error) {
	opts := Options{
		Type:        strings.ToLower(config.GetString(c, "DB_TYPE", TypeSQLite)),
		ReplicaDSNs: config.GetList(c, "DB_REPLICA_URLS"),
		LogLevel:    logger.Warn,
	}

	switch opts.Type {
	case TypeSupabase:
		opts.DSN = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
			config.GetString(c, "SUPABASE_DB_HOST", ""),
			config.GetString(c, "SUPABASE_DB_USER", ""),
			config.GetString(c, "SUPABASE_DB_PASSWORD", ""),
			config.GetString(c, "SUPABASE_DB_NAME", ""),
			config.GetString(c, "SUPABASE_DB_PORT", "5432"),
		)
	case TypePostgres:
		opts.DSN = config.GetString(c, "DATABASE_URL", "")
		if opts.DSN == "" {
			return opts, fmt.Errorf("DATABASE_URL is required when DB_TYPE=%s", TypePostgres)
		}
	case TypeSQLite:
		opts.DSN = config.GetString(c, "SQLITE_PATH", "catalog.db")
	default:
		return opts, fmt.Errorf("unsupported DB_TYPE %q", opts.Type)
	}
	return opts, nil
}

// Open connects to the configured store. Postgres connections may register read replicas.
func Open(opts Options) (*gorm.DB, error) {
	level := opts.LogLevel
	if level == 0 {
		level = logger.Warn
	}
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
	gormConfig := &gorm.Config{
		PrepareStmt:    false,
		Logger:         gormLogger,
		TranslateError: true,
	}

	switch opts.Type {
	case TypePostgres, TypeSupabase:
		db, err := gorm.Open(postgres.New(postgres.Config{
			DSN:                  opts.DSN,
			PreferSimpleProtocol: true,
		}), gormConfig)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		if len(opts.ReplicaDSNs) > 0 {
			replicas := make([]gorm.Dialector, 0, len(opts.ReplicaDSNs))
			for _, dsn := range opts.ReplicaDSNs {
				replicas = append(replicas, postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true}))
			}
			if err := db.Use(dbresolver.Register(dbresolver.Config{
				Replicas: replicas,
				Policy:   dbresolver.RandomPolicy{},
			})); err != nil {
				return nil, fmt.Errorf("register read replicas: %w", err)
			}
		}
		return db, nil

	case TypeSQLite:
		db, err := gorm.Open(sqlite.Open(sqliteDSN(opts.DSN)), gormConfig)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// sqlite allows one writer; a single connection also keeps in-memory databases alive
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	}

	return nil, fmt.Errorf("unsupported database type %q", opts.Type)
}

func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on"
}
