package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"github.com/jmurrell/mgc-calendar/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	DataDir       string
	DashboardPort string
}

// LoadConfig resolves the data directory and dashboard port. Everything
// lives under ~/.mgc-calendar unless MGC_CALENDAR_DIR overrides it.
func LoadConfig() (*Config, error) {
	dataDir := os.Getenv("MGC_CALENDAR_DIR")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %v", err)
		}
		dataDir = filepath.Join(home, ".mgc-calendar")
	}

	port := os.Getenv("MGC_DASHBOARD_PORT")
	if port == "" {
		port = "3737"
	}

	return &Config{
		DataDir:       dataDir,
		DashboardPort: port,
	}, nil
}

// DatabasePath is the single sqlite file backing the event store.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "events.db")
}

// ICSDir is where the per-uid interchange documents are written.
func (c *Config) ICSDir() string {
	return filepath.Join(c.DataDir, "ics-files")
}

// InitDatabase opens the store file and runs migrations. It must complete
// before a store is constructed, so callers never see a half-initialized
// database.
func InitDatabase(cfg *Config) (*gorm.DB, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %v", err)
	}

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.Event{}); err != nil {
		return nil, err
	}

	return db, nil
}
