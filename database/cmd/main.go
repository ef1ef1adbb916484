package main

import (
	"flag"

	"uzmanrandevu.link/configs/configsapp"
	"uzmanrandevu.link/configs/configsdatabase"
	"uzmanrandevu.link/configs/configslog"
	"uzmanrandevu.link/database"
)

func main() {
	configsapp.LoadEnv() // DATABASE_DSN / DB_* değerleri .env'den gelebilir
	configslog.InitLogger()
	defer configslog.SyncLogger()
	migrateFlag := flag.Bool("migrate", false, "Veritabanı başlatma işlemini çalıştır (migrasyonları içerir)")
	seedFlag := flag.Bool("seed", false, "Veritabanı başlatma işlemini çalıştır (seederları içerir)")
	flag.Parse()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	db := configsdatabase.GetDB()

	configslog.SLog.Info("Veritabanı başlatma işlemi çalıştırılıyor...")
	database.Initialize(db, *migrateFlag, *seedFlag)

	configslog.SLog.Info("Veritabanı başlatma işlemi tamamlandı.")
}
