package services

import (
	"context"

	"github.com/RehanAli357/baby-food/models"
	"github.com/RehanAli357/baby-food/utils"
)

// S3Source reads the dataset document from an S3 object.
type S3Source struct {
	client utils.ObjectGetter
	bucket string
	key    string
}

func NewS3Source(client utils.ObjectGetter, bucket, key string) *S3Source {
	return &S3Source{client: client, bucket: bucket, key: key}
}

func (s *S3Source) Name() string { return "s3://" + s.bucket + "/" + s.key }

func (s *S3Source) Load(ctx context.Context) ([]models.FoodRecord, []DatasetIssue, error) {
	data, err := utils.ReadObject(ctx, s.client, s.bucket, s.key)
	if err != nil {
		return nil, nil, err
	}
	return DecodeDataset(data, FormatFromPath(s.key))
}
