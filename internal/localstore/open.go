package localstore

import (
	"fmt"

	"github.com/techboard/techboard/internal/config"
)

// Open builds the configured storage backend.
func Open(cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "sqlite":
		return NewSQLiteStore(cfg.Path)
	case "fs":
		return NewFSStore(cfg.Path)
	case "s3":
		return NewS3Store(cfg.S3.AccessKeyID, cfg.S3.AccessKeySecret, cfg.S3.Endpoint, cfg.S3.Bucket)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
