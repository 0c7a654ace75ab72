package main

import (
	"github.com/sirupsen/logrus"

	"shoplite/internal/catalog"
	"shoplite/internal/config"
	"shoplite/internal/db"
	"shoplite/internal/storage"
	"shoplite/internal/web"
)

func main() {
	log := logrus.New()

	cfg, err := config.Load(log)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.Warnf("unknown log level %q, using info", cfg.LogLevel)
	}

	gdb, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		log.Fatalf("database handle: %v", err)
	}
	defer sqlDB.Close()

	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	if err := db.EnsureAdmin(gdb, log, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("seed admin: %v", err)
	}

	images, err := storage.NewStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("init image store: %v", err)
	}

	srv := web.NewServer(gdb, catalog.NewService(gdb, log), images, cfg, log)

	log.Infof("server listening on :%s", cfg.Port)
	if err := srv.Router().Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
