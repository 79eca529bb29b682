package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"powercup-backend/internal/auth"
	"powercup-backend/internal/config"
	"powercup-backend/internal/database"
	"powercup-backend/internal/database/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GameData is one entry of the game catalogue
type GameData struct {
	Name      string `yaml:"name"`
	ShortName string `yaml:"short_name"`
}

// AdminData is an administrator account created on first load
type AdminData struct {
	Name      string  `yaml:"name"`
	Password  string  `yaml:"password"`
	FirstName *string `yaml:"first_name,omitempty"`
	LastName  *string `yaml:"last_name,omitempty"`
}

type GamesFile struct {
	Games []GameData `yaml:"games"`
}

type AdminsFile struct {
	Admins []AdminData `yaml:"admins"`
}

func main() {
	log.Println("Loading initial data from YAML files...")

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database with retry (for dockerized Postgres startup)
	db, err := connectWithRetry(cfg.DatabaseURL, 60, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	dataDir := "scripts/data"
	if len(os.Args) > 1 {
		dataDir = os.Args[1]
	}
	if err := loadDataFromYAMLFiles(db, dataDir); err != nil {
		log.Fatalf("Failed to load data from YAML files: %v", err)
	}

	log.Println("Initial data loaded successfully")
}

// connectWithRetry attempts to initialize the DB with retries to wait for Postgres readiness.
func connectWithRetry(dsn string, maxAttempts int, delay time.Duration) (*gorm.DB, error) {
	opts := &database.Options{
		LogLevel: logger.Silent,
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Initialize(dsn, opts)
		if err == nil {
			return db, nil
		}
		if attempt%10 == 0 || attempt == maxAttempts {
			log.Printf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database not ready after %d attempts", maxAttempts)
}

func loadDataFromYAMLFiles(db *gorm.DB, dataDir string) error {
	var games GamesFile
	if err := loadYAMLFiles(dataDir, "games", func(data []byte) error {
		var file GamesFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return err
		}
		games.Games = append(games.Games, file.Games...)
		return nil
	}); err != nil {
		return fmt.Errorf("failed to load games: %w", err)
	}

	var admins AdminsFile
	if err := loadYAMLFiles(dataDir, "admins", func(data []byte) error {
		var file AdminsFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return err
		}
		admins.Admins = append(admins.Admins, file.Admins...)
		return nil
	}); err != nil {
		return fmt.Errorf("failed to load admins: %w", err)
	}

	gamesCreated := 0
	for _, game := range games.Games {
		created, err := createGame(db, game)
		if err != nil {
			return fmt.Errorf("failed to create game %s: %w", game.Name, err)
		}
		if created {
			gamesCreated++
		}
	}
	log.Printf("Games: %d created, %d total", gamesCreated, len(games.Games))

	adminsCreated := 0
	for _, admin := range admins.Admins {
		created, err := createAdmin(db, admin)
		if err != nil {
			return fmt.Errorf("failed to create admin %s: %w", admin.Name, err)
		}
		if created {
			adminsCreated++
		}
	}
	log.Printf("Admins: %d created, %d total", adminsCreated, len(admins.Admins))

	return nil
}

// loadYAMLFiles calls parse for every .yaml file whose path mentions kind
func loadYAMLFiles(dataDir, kind string, parse func([]byte) error) error {
	return filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".yaml") || !strings.Contains(filepath.Base(path), kind) {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := parse(data); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		return nil
	})
}

func createGame(db *gorm.DB, data GameData) (bool, error) {
	var game models.Game
	err := db.Where("LOWER(name) = LOWER(?) OR LOWER(short_name) = LOWER(?)", data.Name, data.ShortName).First(&game).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to query game: %w", err)
	}

	game = models.Game{Name: data.Name, ShortName: data.ShortName}
	if err := db.Create(&game).Error; err != nil {
		return false, err
	}
	return true, nil
}

// createAdmin creates the account when missing and grants the administrator flag. An existing
// account keeps its password.
func createAdmin(db *gorm.DB, data AdminData) (bool, error) {
	created := false
	err := db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		err := tx.Where("LOWER(name) = LOWER(?)", data.Name).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			hash, err := auth.HashPassword(data.Password)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}
			user = models.User{Name: data.Name, Password: hash, FirstName: data.FirstName, LastName: data.LastName}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
		} else if err != nil {
			return fmt.Errorf("failed to query user: %w", err)
		}

		result := tx.Where(models.Admin{UserID: user.ID}).FirstOrCreate(&models.Admin{UserID: user.ID})
		if result.Error != nil {
			return result.Error
		}
		created = result.RowsAffected > 0
		return nil
	})
	return created, err
}
