package media

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockS3 is a mock implementation of the S3 client for testing
type mockS3 struct {
	putError error
	inputs   []*s3.PutObjectInput
	bodies   []string
}

func (m *mockS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	m.inputs = append(m.inputs, params)
	if params.Body != nil {
		data, _ := io.ReadAll(params.Body)
		m.bodies = append(m.bodies, string(data))
	}
	if m.putError != nil {
		return nil, m.putError
	}
	return &s3.PutObjectOutput{}, nil
}

func newTestUploader(client s3API) *S3Uploader {
	return &S3Uploader{
		logger:        testLogger(),
		client:        client,
		bucket:        "media",
		endpoint:      "http://127.0.0.1:9000",
		publicBaseURL: "",
	}
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestS3Uploader_Upload_Success(t *testing.T) {
	ctx := context.Background()
	client := &mockS3{}
	uploader := newTestUploader(client)

	path := writeTempFile(t, "cat.jpg", "jpeg-bytes")

	url, err := uploader.Upload(ctx, path)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "http://127.0.0.1:9000/media/uploads/"), "unexpected url %s", url)
	assert.True(t, strings.HasSuffix(url, ".jpg"))

	require.Len(t, client.inputs, 1)
	assert.Equal(t, "media", *client.inputs[0].Bucket)
	assert.Equal(t, "jpeg-bytes", client.bodies[0])
	require.NotNil(t, client.inputs[0].ContentType)
	assert.Equal(t, "image/jpeg", *client.inputs[0].ContentType)

	// Временный файл удален после успешной загрузки
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestS3Uploader_Upload_PublicBaseURL(t *testing.T) {
	ctx := context.Background()
	uploader := newTestUploader(&mockS3{})
	uploader.publicBaseURL = "https://cdn.example.com/media"

	path := writeTempFile(t, "cat.png", "png-bytes")

	url, err := uploader.Upload(ctx, path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://cdn.example.com/media/uploads/"), "unexpected url %s", url)
}

func TestS3Uploader_Upload_LocalFileMissing(t *testing.T) {
	ctx := context.Background()
	uploader := newTestUploader(&mockS3{})

	_, err := uploader.Upload(ctx, filepath.Join(t.TempDir(), "nope.jpg"))
	assert.ErrorIs(t, err, ErrLocalFileMissing)
}

func TestS3Uploader_Upload_Rejected(t *testing.T) {
	ctx := context.Background()
	client := &mockS3{putError: &smithy.GenericAPIError{Code: "EntityTooLarge", Message: "your proposed upload exceeds the maximum allowed size"}}
	uploader := newTestUploader(client)

	path := writeTempFile(t, "big.jpg", "huge")

	_, err := uploader.Upload(ctx, path)
	assert.ErrorIs(t, err, ErrUploadRejected)
	assert.Contains(t, err.Error(), "EntityTooLarge")

	// Файл удален и на пути отказа
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestS3Uploader_Upload_TransportFailure(t *testing.T) {
	ctx := context.Background()
	client := &mockS3{putError: errors.New("connection refused")}
	uploader := newTestUploader(client)

	path := writeTempFile(t, "cat.jpg", "jpeg-bytes")

	_, err := uploader.Upload(ctx, path)
	require.Error(t, err)
	// Сетевая ошибка не классифицируется как отказ сервиса
	assert.NotErrorIs(t, err, ErrUploadRejected)
	assert.NotErrorIs(t, err, ErrLocalFileMissing)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
