package models

// Profession uzman profillerinin seçebileceği sabit meslek alanları.
type Profession struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string `gorm:"type:text"`
}

// Seed edilen meslek alanları.
const (
	ProfessionNameTech        = "Teknoloji ve BT"
	ProfessionNameLegal       = "Hukuk Danışmanlığı"
	ProfessionNameFinance     = "Finansal Danışmanlık"
	ProfessionNameHealth      = "Sağlık ve İyi Yaşam"
	ProfessionNameMarketing   = "Dijital Pazarlama"
	ProfessionNameCoaching    = "Profesyonel Koçluk"
	ProfessionNameDesign      = "Tasarım ve Yaratıcılık"
	ProfessionNameEngineering = "Mühendislik ve Mimarlık"
	ProfessionNameOther       = "Diğer"
)
