package migrations

import (
	"uzmanrandevu.link/configs/configslog"
	"uzmanrandevu.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateProfessionsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating professions table...")
	err := db.AutoMigrate(&models.Profession{})
	if err != nil {
		configslog.Log.Error("Failed to migrate professions table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Professions table migrated successfully")
	return nil
}
