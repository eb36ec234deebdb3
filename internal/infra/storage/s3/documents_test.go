package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/rental-platform/internal/config"
)

type fakeAPI struct {
	in   *awss3.PutObjectInput
	body []byte
	err  error
}

func (f *fakeAPI) PutObject(_ context.Context, in *awss3.PutObjectInput, _ ...func(*awss3.Options)) (*awss3.PutObjectOutput, error) {
	f.in = in
	f.body, _ = io.ReadAll(in.Body)
	return &awss3.PutObjectOutput{}, f.err
}

func TestNewClientRequiresBucket(t *testing.T) {
	_, err := NewClient(config.S3Config{Region: "us-east-1"}, nil)
	assert.Error(t, err)
}

func TestDefaultBaseURL(t *testing.T) {
	c, err := NewClient(config.S3Config{Bucket: "docs", Region: "eu-west-1"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://docs.s3.eu-west-1.amazonaws.com", c.publicBaseURL)

	c, err = NewClient(config.S3Config{Bucket: "docs", Region: "us-east-1", Endpoint: "http://minio:9000/", UsePathStyle: true}, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://minio:9000/docs", c.publicBaseURL)
}

func TestUploadPutsObject(t *testing.T) {
	api := &fakeAPI{}
	c := &Client{bucket: "docs", publicBaseURL: "https://cdn.example.com", api: api}

	url, err := c.Upload(context.Background(), "/contracts/abc/lease.pdf", bytes.NewBufferString("%PDF"), "")
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/contracts/abc/lease.pdf", url)
	assert.Equal(t, "docs", aws.ToString(api.in.Bucket))
	assert.Equal(t, "contracts/abc/lease.pdf", aws.ToString(api.in.Key))
	assert.Equal(t, "application/octet-stream", aws.ToString(api.in.ContentType))
	assert.Equal(t, "%PDF", string(api.body))
}

func TestUploadWrapsStoreError(t *testing.T) {
	boom := errors.New("boom")
	c := &Client{bucket: "docs", api: &fakeAPI{err: boom}}

	_, err := c.Upload(context.Background(), "k", bytes.NewBufferString("x"), "text/plain")
	assert.ErrorIs(t, err, boom)

	_, err = c.Upload(context.Background(), " / ", bytes.NewBufferString("x"), "")
	assert.Error(t, err)
}
