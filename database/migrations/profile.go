package migrations

import (
	"uzmanrandevu.link/configs/configslog"
	"uzmanrandevu.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateProfilesTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating specialist_profiles table...")
	err := db.AutoMigrate(&models.SpecialistProfile{})
	if err != nil {
		configslog.Log.Error("Failed to migrate specialist_profiles table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Specialist_profiles table migrated successfully")
	return nil
}
