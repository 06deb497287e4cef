package seed

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 serves objects from memory.
type fakeS3 struct {
	objects map[string][]byte
	err     error
}

func (f *fakeS3) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, ok := f.objects[aws.ToString(params.Bucket)+"/"+aws.ToString(params.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

// mockLoader is a Loader driven by a function.
type mockLoader struct {
	loadFunc func(ctx context.Context, path string) ([]Record, error)
}

func (m *mockLoader) Load(ctx context.Context, path string) ([]Record, error) {
	return m.loadFunc(ctx, path)
}

func TestS3Loader_Load(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRecords(&buf, sampleRecords()))

	client := &fakeS3{objects: map[string][]byte{"seeds/catalog/sample.gz": buf.Bytes()}}
	loader := NewS3LoaderWithClient(client, "seeds", zerolog.Nop())

	records, err := loader.Load(context.Background(), "catalog/sample.gz")
	require.NoError(t, err)
	assert.Len(t, records, 2)

	_, err = loader.Load(context.Background(), "catalog/missing.gz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket=seeds")
}

func TestFallbackLoader(t *testing.T) {
	ctx := context.Background()
	s3Records := []Record{{Name: "from-s3"}}
	localRecords := []Record{{Name: "from-disk"}}

	tests := []struct {
		name         string
		s3Loader     Loader
		expectedName string
	}{
		{
			name: "S3 success",
			s3Loader: &mockLoader{loadFunc: func(_ context.Context, key string) ([]Record, error) {
				assert.Equal(t, "catalog/sample.gz", key)
				return s3Records, nil
			}},
			expectedName: "from-s3",
		},
		{
			name: "S3 failure falls back",
			s3Loader: &mockLoader{loadFunc: func(context.Context, string) ([]Record, error) {
				return nil, errors.New("S3 connection failed")
			}},
			expectedName: "from-disk",
		},
		{
			name:         "S3 disabled",
			s3Loader:     nil,
			expectedName: "from-disk",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fileLoader := &mockLoader{loadFunc: func(_ context.Context, path string) ([]Record, error) {
				assert.Equal(t, "data/sample.gz", path)
				return localRecords, nil
			}}

			loader := NewFallbackLoader(tt.s3Loader, fileLoader, "catalog/sample.gz", zerolog.Nop())

			records, err := loader.Load(ctx, "data/sample.gz")
			require.NoError(t, err)
			require.Len(t, records, 1)
			assert.Equal(t, tt.expectedName, records[0].Name)
		})
	}
}
