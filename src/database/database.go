package database

import (
	"fmt"

	"credchain/src/config"
	"credchain/src/logger"
	"credchain/src/model"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ConnectToDatabase opens the configured database. MySQL is the production
// driver, sqlite serves local development.
func ConnectToDatabase(cfg config.Database) (*gorm.DB, error) {
	log := logger.Default()
	log.Infof("Establishing %s database connection...", cfg.Driver)

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("cannot establish database connection: %w", err)
	}

	log.Info("Database connection established.")
	return db, nil
}

// RunMigrations creates or updates all tables.
func RunMigrations(db *gorm.DB) error {
	log := logger.Default()
	log.Info("Running migrations for tables...")

	err := db.AutoMigrate(
		&model.University{},
		&model.Admin{},
		&model.SuperAdmin{},
		&model.ApiToken{},
		&model.Credential{},
	)
	if err != nil {
		return fmt.Errorf("migrating database failed: %w", err)
	}

	log.Info("All tables created (or already exist).")
	return nil
}
