package orm

import (
	"fmt"
	"strings"

	"foodgram-api/config"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the storage gateway handle. Its lifecycle is owned by the process
// entry point; request handling receives it by injection.
type DB struct {
	dbGorm *gorm.DB
}

func InitDB(cfg *config.AppConfig) *DB {
	dsn := fmt.Sprintf(
		"host='%s' port='%d' user='%s' password='%s' dbname='%s' sslmode='%s'",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Database,
		cfg.Database.SSLMode,
	)

	dsnRedacted := strings.ReplaceAll(dsn, cfg.Database.Password, "*****")
	log.Debug().
		Msgf("Connecting to postgres using the following information: %s", dsnRedacted)

	db, err := Open(postgres.Open(dsn))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to the database")
	}

	log.Debug().Msg("Successfully connected to the database")

	return db
}

// Open connects through the given dialector and runs migrations. Split out of
// InitDB so tests can open an in-memory sqlite store.
func Open(dialector gorm.Dialector) (*DB, error) {
	dbGorm, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	err = dbGorm.AutoMigrate(
		&User{},
		&Tag{},
		&Ingredient{},
		&Recipe{},
		&RecipeTag{},
		&RecipeIngredient{},
		&Comment{},
		&Rating{},
		&Favorite{},
		&ShoppingListItem{},
		&Subscription{},
	)
	if err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return &DB{dbGorm: dbGorm}, nil
}

// UseTransaction returns a DB bound to an already-open gorm transaction.
func (db *DB) UseTransaction(tx *gorm.DB) *DB {
	return &DB{dbGorm: tx}
}

// Transaction runs fn inside a single transaction; every read and write the
// request performs goes through the handle passed to fn, committed on nil and
// rolled back on error.
func (db *DB) Transaction(fn func(tx *DB) error) error {
	//nolint:wrapcheck // Errors from fn are already wrapped by the orm layer
	return db.dbGorm.Transaction(func(tx *gorm.DB) error {
		return fn(db.UseTransaction(tx))
	})
}

// Gorm exposes the underlying handle for test setup.
func (db *DB) Gorm() *gorm.DB {
	return db.dbGorm
}
