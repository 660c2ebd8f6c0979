package services

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/RehanAli357/baby-food/config"
	"github.com/RehanAli357/baby-food/dataset"
	"github.com/RehanAli357/baby-food/models"
	"github.com/RehanAli357/baby-food/utils"
	"go.uber.org/zap"
)

// DatasetSource produces the dataset once, at startup.
type DatasetSource interface {
	// Name identifies the source in logs.
	Name() string
	// Load returns the records and any fields that were read as empty
	// values. An error means there is no usable dataset.
	Load(ctx context.Context) ([]models.FoodRecord, []DatasetIssue, error)
}

// BytesSource decodes an in-memory document, such as the bundled dataset.
type BytesSource struct {
	Label  string
	Data   []byte
	Format Format
}

func (s BytesSource) Name() string { return s.Label }

func (s BytesSource) Load(ctx context.Context) ([]models.FoodRecord, []DatasetIssue, error) {
	return DecodeDataset(s.Data, s.Format)
}

// FileSource reads a JSON or YAML file from disk.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return "file:" + s.Path }

func (s FileSource) Load(ctx context.Context) ([]models.FoodRecord, []DatasetIssue, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("read dataset file: %w", err)
	}
	return DecodeDataset(data, FormatFromPath(s.Path))
}

// BundledSource is the dataset compiled into the binary.
func BundledSource() BytesSource {
	return BytesSource{Label: "bundled:food.json", Data: dataset.FoodJSON, Format: FormatJSON}
}

// NewDatasetSource picks the source named by cfg, falling back to the bundled
// dataset when none is configured.
func NewDatasetSource(ctx context.Context, cfg config.DatasetConfig) (DatasetSource, error) {
	switch {
	case cfg.DSN != "":
		db, err := config.OpenDB(cfg.DSN)
		if err != nil {
			return nil, err
		}
		return NewPostgresSource(db, cfg.Table), nil
	case cfg.S3Bucket != "":
		client, err := utils.NewS3Client(ctx, cfg.AWSRegion)
		if err != nil {
			return nil, err
		}
		return NewS3Source(client, cfg.S3Bucket, cfg.S3Key), nil
	case cfg.Path != "":
		return FileSource{Path: cfg.Path}, nil
	default:
		return BundledSource(), nil
	}
}

// LoadCatalog is the single initialization step: load the records once,
// validate them and derive the age-group options. Fields read as empty values
// are logged at warn. A source that holds connections is closed once loaded.
func LoadCatalog(ctx context.Context, src DatasetSource, log *zap.Logger) (*Catalog, error) {
	if c, ok := src.(io.Closer); ok {
		defer func() {
			if err := c.Close(); err != nil {
				log.Warn("close dataset source", zap.String("source", src.Name()), zap.Error(err))
			}
		}()
	}

	foods, issues, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset from %s: %w", src.Name(), err)
	}
	for _, issue := range issues {
		log.Warn("dataset field ignored",
			zap.String("source", src.Name()),
			zap.String("record", issue.Record),
			zap.String("field", issue.Field),
			zap.Error(issue.Err))
	}

	c, err := NewCatalog(foods)
	if err != nil {
		return nil, fmt.Errorf("validate dataset from %s: %w", src.Name(), err)
	}
	return c, nil
}
