package initializers

import (
	"github.com/levelup-gaming/levelup-api/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func SyncDatabase(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.LineItem{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		return err
	}
	logrus.Info("Database synced successfully.")
	return nil
}
