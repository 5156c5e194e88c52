package app

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sekolahvote/pemira-api/internal/api"
	"github.com/sekolahvote/pemira-api/internal/config"
	"github.com/sekolahvote/pemira-api/internal/db"
	"github.com/sekolahvote/pemira-api/internal/logger"
	"github.com/sekolahvote/pemira-api/internal/service"
	"github.com/sekolahvote/pemira-api/internal/storage"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Addr,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})

	var uploader service.ObjectUploader = storage.Disabled{}
	if conf.Storage.Bucket != "" {
		gcs, err := storage.NewGCSUploader(context.Background(), conf.Storage.Bucket)
		if err != nil {
			return fmt.Errorf("failed to initialize object storage -> %w", err)
		}
		uploader = gcs
	}

	s := api.NewServer(conf, postgresDB, rdb, uploader)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}
