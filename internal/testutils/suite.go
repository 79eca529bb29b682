package testutils

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"testing"
	"time"

	"powercup-backend/internal/config"
	"powercup-backend/internal/database"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for the readiness ping
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"gorm.io/gorm"
)

const (
	pgUser     = "powercup"
	pgPassword = "powercup"
	pgDatabase = "powercup_test"
)

// tables in truncation order; CASCADE covers anything missed
var tables = []string{
	"tournament_members",
	"tournaments",
	"games",
	"match_members",
	"matches",
	"team_join_requests",
	"team_members",
	"teams",
	"admins",
	"users",
}

// one Postgres container per test binary
var container struct {
	once     sync.Once
	err      error
	pool     *dockertest.Pool
	resource *dockertest.Resource
	db       *gorm.DB
	config   *config.Config
}

// BaseTestSuite gives a test suite access to the migrated shared database
type BaseTestSuite struct {
	DB     *gorm.DB
	Config *config.Config
}

// SetupTestSuite starts the shared container on first use and returns a handle to it
func SetupTestSuite(t *testing.T) *BaseTestSuite {
	container.once.Do(func() { container.err = startPostgres() })
	if container.err != nil {
		t.Fatalf("start postgres container: %v", container.err)
	}
	return &BaseTestSuite{DB: container.db, Config: container.config}
}

// CleanupSharedContainer closes the pool and purges the container; called from TestMain
func CleanupSharedContainer() {
	if container.db != nil {
		if sqlDB, err := container.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		container.db = nil
	}
	if container.pool == nil || container.resource == nil {
		return
	}
	if err := container.pool.Purge(container.resource); err != nil {
		log.Printf("testutils: purge %s: %v", container.resource.Container.Name, err)
	}
	container.pool, container.resource = nil, nil
}

// SetupTest empties every table before a test
func (s *BaseTestSuite) SetupTest() { s.CleanTestDB() }

// TearDownTest empties every table after a test
func (s *BaseTestSuite) TearDownTest() { s.CleanTestDB() }

// TeardownTestSuite leaves the container running for the next suite and only empties the tables
func (s *BaseTestSuite) TeardownTestSuite() { s.CleanTestDB() }

// CleanTestDB truncates the domain tables and resets their sequences
func (s *BaseTestSuite) CleanTestDB() {
	if s.DB == nil {
		return
	}
	migrator := s.DB.Migrator()
	for _, table := range tables {
		if migrator.HasTable(table) {
			s.DB.Exec(fmt.Sprintf(`TRUNCATE TABLE %q RESTART IDENTITY CASCADE`, table))
		}
	}
}

func startPostgres() error {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return fmt.Errorf("connect to docker: %w", err)
	}
	pool.MaxWait = 2 * time.Minute

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "15-alpine",
		Env: []string{
			"POSTGRES_USER=" + pgUser,
			"POSTGRES_PASSWORD=" + pgPassword,
			"POSTGRES_DB=" + pgDatabase,
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return fmt.Errorf("run postgres: %w", err)
	}
	container.pool, container.resource = pool, resource

	port := resource.GetPort("5432/tcp")
	dsn := fmt.Sprintf("postgres://%s:%s@127.0.0.1:%s/%s?sslmode=disable", pgUser, pgPassword, port, pgDatabase)

	err = pool.Retry(func() error {
		conn, err := sql.Open("pgx", dsn)
		if err != nil {
			return err
		}
		defer conn.Close()
		if err := conn.Ping(); err != nil {
			return err
		}

		db, err := database.Initialize(dsn, nil)
		if err != nil {
			return err
		}
		container.db = db
		return nil
	})
	if err != nil {
		return fmt.Errorf("wait for postgres: %w", err)
	}

	container.config = &config.Config{
		Environment:    "test",
		Port:           "8080",
		LogLevel:       "debug",
		DatabaseURL:    dsn,
		JWTSecret:      "test-secret",
		JWTTTLMinutes:  60,
		CookieName:     "access_token",
		S3Bucket:       "powercup-test",
		PosterMaxBytes: 1 << 20,
	}
	log.Printf("testutils: postgres ready on port %s", port)
	return nil
}
