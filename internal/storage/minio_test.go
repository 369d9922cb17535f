package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"spotapi/internal/config"
)

func TestMinIO_RefRoundTrip(t *testing.T) {
	m := &minioStorage{bucket: "spots"}

	ref := m.ref("img_1.jpg")
	assert.Equal(t, "s3://spots/img_1.jpg", ref)

	key, err := m.keyOf(ref)
	assert.NoError(t, err)
	assert.Equal(t, "img_1.jpg", key)
}

func TestMinIO_ForeignRefs(t *testing.T) {
	m := &minioStorage{bucket: "spots"}

	for _, ref := range []string{
		"file:///data/img_1.jpg",
		"s3://other/img_1.jpg",
		"s3://spots/",
		"::not a url",
	} {
		_, err := m.keyOf(ref)
		assert.ErrorIs(t, err, ErrForeignRef, ref)
	}
}

func TestNewMinIO_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.MinIOConfig
		want string
	}{
		{name: "endpoint", cfg: config.MinIOConfig{}, want: "endpoint is required"},
		{name: "credentials", cfg: config.MinIOConfig{Endpoint: "localhost:9000"}, want: "credentials are required"},
		{name: "bucket", cfg: config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"}, want: "bucket is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMinIO(tt.cfg)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
