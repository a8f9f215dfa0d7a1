package s3_test

import (
	"testing"

	"hotel/config"
	"hotel/infras/otel/mocks"
	"hotel/infras/s3"

	"github.com/stretchr/testify/assert"
)

func TestGetObjectNameFromURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.S3.PublicDomain = "https://cdn.example.com/"
	cfg.External.S3.APIEndpoint = "https://account.r2.example.com"
	cfg.External.S3.BucketName = "hotel"

	storage := s3.New(cfg, mocks.NewOtel())

	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "public url", url: "https://cdn.example.com/room/3f2a.jpg", want: "3f2a.jpg"},
		{name: "api url", url: "https://account.r2.example.com/hotel/gallery/lobby.png", want: "lobby.png"},
		{name: "other bucket", url: "https://account.r2.example.com/archive/gallery/lobby.png", want: ""},
		{name: "foreign host", url: "https://images.example.org/room/3f2a.jpg", want: ""},
		{name: "empty", url: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, storage.GetObjectNameFromURL("", tt.url))
		})
	}
}
