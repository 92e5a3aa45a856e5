package config

import "os"

// Current reflects the configuration loaded at process start
var Current AppConfig

type AppConfig struct {
	// AppEnv represent the environment in which the service runs
	AppEnv string

	// StorageProvider used as the file storage implementation
	StorageProvider string
	// LocalStoragePath base directory for files when using local storage provider
	LocalStoragePath string

	// S3Endpoint URL of the S3-compatible object store (R2, MinIO, AWS)
	S3Endpoint string
	// S3Region region token, "auto" for R2-style endpoints
	S3Region string
	// S3AccessKey access key for the object store
	S3AccessKey string
	// S3SecretKey secret key for the object store
	S3SecretKey string
	// S3Bucket bucket receiving uploaded objects
	S3Bucket string

	// LogFilename if set, logs are also written to this rotating file
	LogFilename string
	// LogConsoleLevel minimum level for log output
	LogConsoleLevel string
}

func LoadConfig() AppConfig {
	return AppConfig{
		AppEnv:           os.Getenv("APP_ENV"),
		StorageProvider:  os.Getenv("STORAGE_PROVIDER"),
		LocalStoragePath: os.Getenv("LOCAL_STORAGE_PATH"),
		S3Endpoint:       os.Getenv("S3_ENDPOINT"),
		S3Region:         os.Getenv("S3_REGION"),
		S3AccessKey:      os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:      os.Getenv("S3_SECRET_KEY"),
		S3Bucket:         os.Getenv("S3_BUCKET"),
		LogFilename:      os.Getenv("LOG_FILENAME"),
		LogConsoleLevel:  os.Getenv("LOG_CONSOLE_LEVEL"),
	}
}
