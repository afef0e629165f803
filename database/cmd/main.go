package main

import (
	"flag"
	"os"

	"etkinlik.link/configs"
	"etkinlik.link/configs/configsdatabase"
	"etkinlik.link/configs/configslog"
	"etkinlik.link/database"

	"go.uber.org/zap"
)

func main() {
	cfg, err := configs.Load()
	configslog.InitLogger()
	defer configslog.SyncLogger()
	if err != nil {
		configslog.Log.Fatal("Ayarlar yüklenemedi", zap.Error(err))
	}
	migrateFlag := flag.Bool("migrate", false, "Veritabanı başlatma işlemini çalıştır (migrasyonları içerir)")
	seedFlag := flag.Bool("seed", false, "Veritabanı başlatma işlemini çalıştır (seederları içerir)")
	flag.Parse()

	db := configsdatabase.InitDB(cfg.Database)

	configslog.SLog.Info("Veritabanı başlatma işlemi çalıştırılıyor...")
	err = database.Initialize(db, cfg.Seed, *migrateFlag, *seedFlag)
	if cerr := configsdatabase.CloseDB(); cerr != nil {
		configslog.Log.Warn("Veritabanı bağlantısı kapatılamadı", zap.Error(cerr))
	}
	if err != nil {
		configslog.Log.Error("Veritabanı başlatma işlemi başarısız", zap.Error(err))
		configslog.SyncLogger()
		os.Exit(1)
	}

	configslog.SLog.Info("Veritabanı başlatma işlemi tamamlandı.")
}
