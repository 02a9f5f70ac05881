package database

import (
	"fmt"
	"log"

	"github.com/galisofc/notificacondo/internal/config"
	"github.com/galisofc/notificacondo/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var GormDB *gorm.DB

func InitGorm(cfg *config.Config) {
	var err error

	switch cfg.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode)
		GormDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		})
	default:
		GormDB, err = gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
	}

	if err != nil {
		log.Fatalf("Failed to connect to database (%s): %v", cfg.DBDriver, err)
	}

	log.Printf("Connected to %s database", cfg.DBDriver)

	err = GormDB.AutoMigrate(
		&models.MessageTemplate{},
		&models.Plan{},
		&models.SystemSetting{},
	)
	if err != nil {
		log.Fatalf("Failed to run auto-migration: %v", err)
	}

	log.Println("Database migration completed")
}

// SyncConfig reconciles environment configuration with the system_settings
// table: a value stored in the database wins over the environment, and a
// value only present in the environment is persisted for next boot.
func SyncConfig(cfg *config.Config) {
	settings := []struct {
		Key   string
		Value *string
	}{
		{"VERIFY_TOKEN", &cfg.VerifyToken},
		{"WHATSAPP_TOKEN", &cfg.WhatsAppToken},
		{"WABA_ID", &cfg.WhatsAppBusinessAccountID},
		{"GRAPH_API_VERSION", &cfg.GraphAPIVersion},
	}

	for _, s := range settings {
		var setting models.SystemSetting
		if err := GormDB.Where("key = ?", s.Key).First(&setting).Error; err == nil {
			if setting.Value != "" {
				*s.Value = setting.Value
			}
		} else {
			if *s.Value != "" {
				GormDB.Create(&models.SystemSetting{
					Key:   s.Key,
					Value: *s.Value,
				})
			}
		}
	}
	log.Println("System settings synchronized from database")
}
