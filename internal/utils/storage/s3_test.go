package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"preben-prepper/internal/utils"
	"preben-prepper/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestAllowImage(t *testing.T) {
	assert.True(t, AllowImage("photo.JPG"))
	assert.True(t, AllowImage("a.b.png"))
	assert.False(t, AllowImage("notes.txt"))
	assert.False(t, AllowImage("noext"))
}

func TestGetObjectKeyFromLink(t *testing.T) {
	s := &awsS3{bucket: "prepper", region: "eu-north-1"}

	assert.Equal(t, "items/abc.png", s.GetObjectKeyFromLink("https://prepper.s3.eu-north-1.amazonaws.com/items/abc.png"))
	assert.Empty(t, s.GetObjectKeyFromLink("https://elsewhere.example.com/items/abc.png"))
}

func TestNewAwsS3WithoutBucketIsDisabled(t *testing.T) {
	utils.SetConfig("AWS_S3_BUCKET", "")

	s := NewAwsS3(logger.Discard())
	_, err := s.UploadFile(context.Background(), nil, "items")
	assert.ErrorIs(t, err, ErrStorageDisabled)
	assert.NoError(t, s.DeleteFile(context.Background(), "x"))
}

type stubS3 struct {
	disabledS3
	deleted []string
	err     error
}

func (s *stubS3) GetObjectKeyFromLink(link string) string {
	return strings.TrimPrefix(link, "https://bucket.test/")
}

func (s *stubS3) DeleteFile(_ context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	return s.err
}

func TestDeleteByLink(t *testing.T) {
	ctx := context.Background()
	s := &stubS3{}

	assert.NoError(t, DeleteByLink(ctx, s, ""))
	assert.NoError(t, DeleteByLink(ctx, s, "https://bucket.test/homes/1/items/a.png"))
	assert.Equal(t, []string{"homes/1/items/a.png"}, s.deleted)

	s.err = errors.New("access denied")
	err := DeleteByLink(ctx, s, "https://bucket.test/b.png")
	assert.ErrorContains(t, err, "b.png")
	assert.ErrorIs(t, err, s.err)
}

func TestNewRedisClientWithoutAddr(t *testing.T) {
	utils.SetConfig("REDIS_ADDR", "")
	assert.Nil(t, NewRedisClient())
}

func TestNewRedisClientUnreachable(t *testing.T) {
	utils.SetConfig("REDIS_ADDR", "127.0.0.1:1")
	defer utils.SetConfig("REDIS_ADDR", "")
	assert.Nil(t, NewRedisClient())
}

func TestRedisStorageKeyPrefix(t *testing.T) {
	s := NewRedisStorage(nil, "limiter:")
	assert.Equal(t, "limiter:1.2.3.4", s.key("1.2.3.4"))
}
