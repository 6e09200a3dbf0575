package config

import (
	"fmt"
	"os"
)

// Config holds application configuration read from the environment.
type Config struct {
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3UseSSL    bool

	// DataPath is the directory holding the CSV tables (export, identifiers,
	// items, upload, upload_headers).
	DataPath string

	// ConversionDir is where converted (pyramidal) images land before a run.
	ConversionDir string

	// UploadBaseDir is the local root mirroring the bucket layout; batches
	// are staged under UploadBaseDir/<subpath> before upload.
	UploadBaseDir string
}

type ErrMissingRequiredEnvVar struct {
	Name string
}

func (e *ErrMissingRequiredEnvVar) Error() string {
	return fmt.Sprintf("required environment variable %q is not set", e.Name)
}

// Load reads configuration from environment variables.
// Returns an error if required variables are missing.
func Load() (*Config, error) {
	config := Config{}

	required := []struct {
		name string
		dest *string
	}{
		{"S3_ACCESS_KEY", &config.S3AccessKey},
		{"S3_SECRET_KEY", &config.S3SecretKey},
		{"S3_BUCKET", &config.S3Bucket},
		{"DATA_PATH", &config.DataPath},
		{"CONVERSION_DIR", &config.ConversionDir},
		{"UPLOAD_BASE_DIR", &config.UploadBaseDir},
	}
	for _, v := range required {
		*v.dest = os.Getenv(v.name)
		if *v.dest == "" {
			return nil, &ErrMissingRequiredEnvVar{Name: v.name}
		}
	}

	config.S3Endpoint = os.Getenv("S3_ENDPOINT")
	if config.S3Endpoint == "" {
		config.S3Endpoint = "s3.amazonaws.com"
	}
	// SSL stays on unless explicitly disabled (local MinIO testing).
	config.S3UseSSL = os.Getenv("S3_USE_SSL") != "false"

	return &config, nil
}
