package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"

	"uzmanrandevu.link/configs/configsapp"
	"uzmanrandevu.link/configs/configsdatabase"
	"uzmanrandevu.link/configs/configslog"
	"uzmanrandevu.link/routes"
)

func main() {
	configsapp.LoadEnv()
	configslog.InitLogger()
	defer configslog.SyncLogger()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	cfg := configsapp.GetConfig()

	engine := html.New("./views", ".html")
	app := fiber.New(fiber.Config{
		Views:       engine,
		ViewsLayout: "layouts/site_layout",
	})

	routes.SetupRoutes(app)

	// Graceful shutdown: SIGINT/SIGTERM geldiğinde açık istekler tamamlanır.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		configslog.SLog.Info("Kapatma sinyali alındı, sunucu durduruluyor...")
		if err := app.Shutdown(); err != nil {
			configslog.Log.Error("Sunucu kapatılırken hata oluştu", zap.Error(err))
		}
	}()

	configslog.SLog.Infof("Sunucu %s portunda başlatılıyor...", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		configslog.Log.Fatal("Sunucu başlatılamadı", zap.Error(err))
	}

	configslog.SLog.Info("Sunucu durduruldu.")
}
