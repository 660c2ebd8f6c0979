package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config is everything the process reads from its environment.
type Config struct {
	Port     string
	GinMode  string
	LogLevel string
	Dataset  DatasetConfig
}

// DatasetConfig names where the dataset comes from. At most one of DSN,
// S3Bucket and Path may be set; with none the bundled dataset is used.
type DatasetConfig struct {
	Path      string
	S3Bucket  string
	S3Key     string
	AWSRegion string
	DSN       string
	Table     string
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		Port:     getenv("PORT", "8080"),
		GinMode:  os.Getenv("GIN_MODE"),
		LogLevel: getenv("LOG_LEVEL", "info"),
		Dataset: DatasetConfig{
			Path:      os.Getenv("DATASET_PATH"),
			S3Bucket:  os.Getenv("DATASET_S3_BUCKET"),
			S3Key:     os.Getenv("DATASET_S3_KEY"),
			AWSRegion: os.Getenv("AWS_REGION"),
			DSN:       os.Getenv("DATASET_DSN"),
			Table:     getenv("DATASET_TABLE", "food_records"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT must not be empty")
	}
	return c.Dataset.Validate()
}

func (d DatasetConfig) Validate() error {
	set := 0
	for _, v := range []string{d.Path, d.S3Bucket, d.DSN} {
		if v != "" {
			set++
		}
	}
	if set > 1 {
		return errors.New("only one of DATASET_PATH, DATASET_S3_BUCKET and DATASET_DSN may be set")
	}
	if d.S3Bucket != "" && d.S3Key == "" {
		return errors.New("DATASET_S3_KEY is required with DATASET_S3_BUCKET")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
