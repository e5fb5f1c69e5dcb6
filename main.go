package main

import (
	"fmt"

	"foodgram-api/api"
	"foodgram-api/auth"
	"foodgram-api/config"
	"foodgram-api/media"
	"foodgram-api/media/filesystemStore"
	"foodgram-api/media/s3Store"
	"foodgram-api/orm"
	"foodgram-api/service"

	"github.com/rs/zerolog/log"
)

func main() {
	if err := config.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db := orm.InitDB(config.Cfg)

	store, mediaDir := initializeMediaStore()
	tokens := auth.NewTokenIssuer(
		config.Cfg.Auth.Secret,
		config.Cfg.AccessTTL(),
		config.Cfg.RefreshTTL(),
	)

	svc := service.New(db, media.NewService(store), tokens)
	router := api.NewRouter(svc, mediaDir)

	addr := fmt.Sprintf(":%d", config.Cfg.Port)
	log.Info().Str("addr", addr).Msg("starting http server")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("http server stopped")
	}
}

// initializeMediaStore picks the image persister from configuration. The
// returned directory is non-empty only for the filesystem store, where the
// router serves it under /media.
func initializeMediaStore() (media.Store, string) {
	switch config.Cfg.Media.Store {
	case "filesystem":
		return initFilesystemStore()
	case "s3":
		return initS3Store(), ""
	default:
		log.Warn().Msgf(
			"unknown media store '%s', defaulting to filesystem",
			config.Cfg.Media.Store,
		)

		return initFilesystemStore()
	}
}

func initFilesystemStore() (media.Store, string) {
	store, err := filesystemStore.New(config.Cfg.Media.Root)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize filesystem media store")
	}
	log.Info().
		Str("root", config.Cfg.Media.Root).
		Msg("filesystem media store initialized")

	return store, store.BaseDir()
}

func initS3Store() media.Store {
	store, err := s3Store.New(config.Cfg.Media.S3)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize s3 media store")
	}
	log.Info().Msg("s3 media store initialized")

	return store
}
