package migrations

import (
	"uzmanrandevu.link/configs/configslog"
	"uzmanrandevu.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateSlotsTable slots tablosunu oluşturur. (specialist_id, date, time)
// üçlüsü üzerindeki unique index ve is_booked/client_id check constraint'i
// model tag'lerinden gelir.
func MigrateSlotsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating slots table...")
	err := db.AutoMigrate(&models.Slot{})
	if err != nil {
		configslog.Log.Error("Failed to migrate slots table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Slots table migrated successfully")
	return nil
}
