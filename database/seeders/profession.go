package seeders

import (
	"context"
	"errors"

	"uzmanrandevu.link/configs/configslog"
	"uzmanrandevu.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func SeedProfessions(db *gorm.DB) error {
	systemUserID := uint(1)
	ctx := context.WithValue(context.Background(), models.CtxUserIDKey, systemUserID)

	professionsToSeed := []models.Profession{
		{Name: models.ProfessionNameTech},
		{Name: models.ProfessionNameLegal},
		{Name: models.ProfessionNameFinance},
		{Name: models.ProfessionNameHealth},
		{Name: models.ProfessionNameMarketing},
		{Name: models.ProfessionNameCoaching},
		{Name: models.ProfessionNameDesign},
		{Name: models.ProfessionNameEngineering},
		{Name: models.ProfessionNameOther},
	}

	var createdCount int64 = 0
	var errorOccurred bool = false

	configslog.SLog.Info("Meslek alanları seed işlemi başlıyor...")

	for _, professionToSeed := range professionsToSeed {
		var existingProfession models.Profession
		result := db.Where("name = ?", professionToSeed.Name).First(&existingProfession)

		if result.Error == nil {
			configslog.SLog.Debugf("Meslek alanı '%s' zaten mevcut, oluşturma atlanıyor.", professionToSeed.Name)
			continue
		} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			configslog.Log.Error("Meslek alanı kontrol edilirken veritabanı hatası",
				zap.String("profession_name", professionToSeed.Name),
				zap.Error(result.Error),
			)
			errorOccurred = true
			continue
		}

		configslog.SLog.Infof("Meslek alanı '%s' oluşturuluyor...", professionToSeed.Name)

		err := db.WithContext(ctx).Create(&professionToSeed).Error
		if err != nil {
			configslog.Log.Error("Meslek alanı oluşturulamadı",
				zap.String("profession_name", professionToSeed.Name),
				zap.Error(err),
			)
			errorOccurred = true
			continue
		}

		configslog.SLog.Infof("Meslek alanı '%s' başarıyla oluşturuldu (ID: %d).", professionToSeed.Name, professionToSeed.ID)
		createdCount++
	}

	if createdCount > 0 {
		configslog.SLog.Infof("%d adet yeni meslek alanı başarıyla seed edildi.", createdCount)
	} else if !errorOccurred {
		configslog.SLog.Info("Tüm meslek alanları zaten mevcut, yeni ekleme yapılmadı.")
	}

	if errorOccurred {
		return errors.New("meslek alanları seed edilirken en az bir hata oluştu")
	}

	configslog.SLog.Info("Meslek alanları seed işlemi başarıyla tamamlandı.")
	return nil
}
