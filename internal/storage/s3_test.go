package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-booking/internal/config"
)

type recordingPutter struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (p *recordingPutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	p.in = in
	p.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, p.err
}

func TestPhotoStore_Put(t *testing.T) {
	putter := &recordingPutter{}
	store := NewPhotoStore(putter, "shop-photos", "us-east-1", "https://cdn.example.com/")

	url, err := store.Put(context.Background(), "appointments/a/b.webp", []byte("data"), "image/webp")
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/appointments/a/b.webp", url)
	assert.Equal(t, "shop-photos", aws.ToString(putter.in.Bucket))
	assert.Equal(t, "image/webp", aws.ToString(putter.in.ContentType))
	assert.Equal(t, []byte("data"), putter.body)
}

func TestPhotoStore_DefaultURLAndError(t *testing.T) {
	putter := &recordingPutter{err: errors.New("access denied")}
	store := NewPhotoStore(putter, "b", "sa-east-1", "")

	assert.Equal(t, "https://b.s3.sa-east-1.amazonaws.com/k", store.URL("k"))

	_, err := store.Put(context.Background(), "k", nil, "image/webp")
	assert.ErrorContains(t, err, "access denied")
}

func TestNewS3Client_CustomEndpoint(t *testing.T) {
	client := NewS3Client(&config.Config{
		S3Region:    "us-east-1",
		S3Endpoint:  "http://localhost:9000",
		S3AccessKey: "minio",
		S3SecretKey: "minio123",
	})

	opts := client.Options()
	assert.Equal(t, "http://localhost:9000", aws.ToString(opts.BaseEndpoint))
	assert.True(t, opts.UsePathStyle)
	assert.NotNil(t, opts.Credentials)
}
