package backend

import (
	"strings"

	"github.com/wildhavenhq/media/config"
	"github.com/wildhavenhq/media/logger"
	"github.com/wildhavenhq/media/storage"
	"github.com/wildhavenhq/media/upload"
)

// Setup builds a ready-to-use upload service from the configuration
// received. The storage provider is selected here, once, and never changes
// per-call afterwards.
func Setup(cfg config.AppConfig) (*upload.Service, error) {
	config.Current = cfg

	log := logger.Get(cfg)

	var store storage.Storer
	if strings.EqualFold(cfg.StorageProvider, storage.StorageProviderS3) {
		s3store, err := storage.NewS3(cfg)
		if err != nil {
			log.Error().Err(err).Msg("failed to create s3 storage client")
			return nil, err
		}
		store = s3store
	} else {
		store = storage.NewLocal(cfg.LocalStoragePath)
	}

	return upload.New(store, log), nil
}
