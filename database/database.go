package database

import (
	"context"

	"github.com/rpupo63/project-catalog-backend/errs"
	"gorm.io/gorm"
)

type Database struct {
	db          *gorm.DB
	projectRepo *ProjectRepo
	tagRepo     *TagRepo
	seeder      *Seeder
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	tagRepo := NewTagRepo(db)
	projectRepo := NewProjectRepo(db)
	return Database{
		db:          db,
		projectRepo: projectRepo,
		tagRepo:     tagRepo,
		seeder:      NewSeeder(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

func (d Database) Seeder() *Seeder {
	return d.seeder
}

// Ping checks that the underlying connection is usable.
func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return errs.NewDatabaseError("ping", "database", err)
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func (d Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
