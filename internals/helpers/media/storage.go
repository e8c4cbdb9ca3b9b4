package media

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"campusevents_backend/internals/configs"
)

// Storage is where processed uploads end up.
type Storage interface {
	// Put stores content under key.
	Put(ctx context.Context, key string, content io.Reader, contentType string) error

	// Delete removes key; a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// URL is the public address clients use to fetch key.
	URL(key string) string

	// KeyFromURL reverses URL; ok is false for URLs this storage did not produce.
	KeyFromURL(url string) (key string, ok bool)
}

type StorageType string

const (
	StorageTypeLocal StorageType = "local"
	StorageTypeS3    StorageType = "s3"
)

type StorageConfig struct {
	Type       StorageType
	LocalPath  string
	PublicBase string
	S3         *S3Config
}

type S3Config struct {
	Bucket     string
	Region     string
	PublicBase string
}

func NewStorage(cfg StorageConfig) (Storage, error) {
	switch cfg.Type {
	case StorageTypeLocal, "":
		return NewLocalStorage(cfg.LocalPath, cfg.PublicBase)
	case StorageTypeS3:
		if cfg.S3 == nil || cfg.S3.Bucket == "" {
			return nil, fmt.Errorf("S3 storage requires S3_BUCKET")
		}
		return NewS3Storage(context.Background(), *cfg.S3)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// NewStorageFromEnv builds the storage selected by UPLOAD_DRIVER.
func NewStorageFromEnv() (Storage, error) {
	cfg := StorageConfig{
		Type:       StorageType(strings.ToLower(configs.UploadDriver)),
		LocalPath:  configs.UploadDir,
		PublicBase: configs.UploadPublicBase,
	}
	if cfg.Type == StorageTypeS3 {
		cfg.S3 = &S3Config{
			Bucket:     configs.S3Bucket,
			Region:     configs.S3Region,
			PublicBase: configs.GetEnv("S3_PUBLIC_BASE"),
		}
	}
	return NewStorage(cfg)
}

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_/]+`)

func sanitizeKey(key string) string {
	key = strings.TrimLeft(unsafeKeyChars.ReplaceAllString(key, "_"), "/")
	for strings.Contains(key, "..") {
		key = strings.ReplaceAll(key, "..", ".")
	}
	return key
}
