package database

import (
	"fmt"

	"github.com/thrivecorp/platform/internal/model"
	"github.com/thrivecorp/platform/pkg/config"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens a pooled connection to Postgres. The returned *gorm.DB is safe
// for concurrent use; every request checks a connection out of the pool and
// returns it when its statement or transaction finishes.
func InitDB(dbConfig *config.DBConfig, log *zap.Logger) (*gorm.DB, error) {
	pgConfig := postgres.Config{
		DSN:                  dbConfig.GetDSN(),
		PreferSimpleProtocol: true, // Disables implicit prepared statement usage
	}

	db, err := gorm.Open(postgres.New(pgConfig), &gorm.Config{
		Logger: logger.Default.LogMode(dbConfig.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	if dbConfig.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(dbConfig.MaxIdleConns)
	}
	if dbConfig.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(dbConfig.MaxOpenConns)
	}
	if dbConfig.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(dbConfig.ConnMaxLifetime)
	}

	log.Info("Database connected",
		zap.String("host", dbConfig.Host),
		zap.String("db_name", dbConfig.DBName),
		zap.Int("max_open_conns", dbConfig.MaxOpenConns))

	return db, nil
}

// Models lists every table owned by the platform, parents first
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Company{},
		&model.Collaborator{},
		&model.Provider{},
		&model.Gym{},
		&model.Plan{},
		&model.Access{},
		&model.BillingHistory{},
	}
}

// Migrate creates or updates the schema
func Migrate(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database is not initialized")
	}
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	return nil
}

// Close releases the connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
