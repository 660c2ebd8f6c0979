package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeObjects struct {
	objects map[string]string
	gotKey  string
}

func (f *fakeObjects) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.gotKey = aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	body, ok := f.objects[f.gotKey]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestS3Source(t *testing.T) {
	objects := &fakeObjects{objects: map[string]string{
		"foods/v1/food.json": arrayJSON,
		"foods/v1/food.yaml": "- {id: 4, food_name: Kiwi, age_group: 12+ months}\n",
	}}

	t.Run("JSON object", func(t *testing.T) {
		src := NewS3Source(objects, "foods", "v1/food.json")
		assert.Equal(t, "s3://foods/v1/food.json", src.Name())

		c, err := LoadCatalog(context.Background(), src, zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, "foods/v1/food.json", objects.gotKey)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("YAML object picked by key extension", func(t *testing.T) {
		c, err := LoadCatalog(context.Background(), NewS3Source(objects, "foods", "v1/food.yaml"), zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, []string{"12+ months"}, c.AgeGroups())
	})

	t.Run("Missing object is fatal", func(t *testing.T) {
		_, err := LoadCatalog(context.Background(), NewS3Source(objects, "foods", "v2/food.json"), zap.NewNop())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "s3://foods/v2/food.json")
	})
}
