package database

import (
	"fmt"
	"time"

	"powercup-backend/internal/database/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Options struct {
	LogLevel        logger.LogLevel
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	SkipMigrate     bool
}

// Initialize opens a Postgres connection and creates the schema from GORM models.
func Initialize(dsn string, opts *Options) (*gorm.DB, error) {
	// Defaults
	if opts == nil {
		opts = &Options{}
	}
	if opts.LogLevel == 0 {
		opts.LogLevel = logger.Error
	}
	if opts.MaxOpenConns == 0 {
		opts.MaxOpenConns = 20
	}
	if opts.MaxIdleConns == 0 {
		opts.MaxIdleConns = 10
	}
	if opts.ConnMaxLifetime == 0 {
		opts.ConnMaxLifetime = 30 * time.Minute
	}
	if opts.ConnMaxIdleTime == 0 {
		opts.ConnMaxIdleTime = 10 * time.Minute
	}

	// Open DB
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(opts.LogLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
		sqlDB.SetConnMaxIdleTime(opts.ConnMaxIdleTime)
	}

	if !opts.SkipMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}

// Models lists every persisted model in dependency order
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Admin{},
		&models.Team{},
		&models.TeamMember{},
		&models.TeamJoinRequest{},
		&models.Match{},
		&models.MatchMember{},
		&models.Game{},
		&models.Tournament{},
		&models.TournamentMember{},
	}
}

// Indexes that GORM tags cannot express: case-insensitive uniqueness and the single owner rule
var indexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_name_lower ON users (lower(name))`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_teams_name_lower ON teams (lower(name))`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_games_name_lower ON games (lower(name))`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_games_short_name_lower ON games (lower(short_name))`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_team_members_single_owner ON team_members (team_id) WHERE role = 'owner'`,
}

// Migrate creates or updates the schema
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}
