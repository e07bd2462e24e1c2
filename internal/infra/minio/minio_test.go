//go:build !integration

package infra_minio

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/humanbelnik/catalog/internal/config"
	"github.com/humanbelnik/catalog/internal/model"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MinioInfraUnitSuite struct {
	suite.Suite
}

type fakeMinio struct {
	mu      sync.Mutex
	methods []string
	paths   []string
}

func (f *fakeMinio) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_, _ = io.Copy(io.Discard, r.Body)
	f.mu.Lock()
	f.methods = append(f.methods, r.Method)
	f.paths = append(f.paths, r.URL.Path)
	f.mu.Unlock()
	w.Header().Set("ETag", `"etag"`)
	if r.Method == http.MethodDelete {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func initStorage(t provider.T, fake *fakeMinio) (*Storage, func()) {
	srv := httptest.NewServer(fake)
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	client := MustEstablishConn(config.Storage{
		Endpoint:  u.Host,
		AccessKey: "minio",
		SecretKey: "minio123",
		Region:    "us-east-1",
	})
	return &Storage{client: client, bucket: "catalog", prefix: "videos"}, srv.Close
}

func (s *MinioInfraUnitSuite) TestSaveAndDelete(t provider.T) {
	t.Parallel()
	fake := &fakeMinio{}
	storage, stop := initStorage(t, fake)
	defer stop()
	ctx := context.Background()

	key, err := storage.Save(ctx, "abc/media.mp4", model.File{
		Name:        "media.mp4",
		ContentType: "video/mp4",
		Content:     []byte("mp4-bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, "videos/abc/media.mp4", key)

	require.NoError(t, storage.Delete(ctx, key))

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Equal(t, []string{http.MethodPut, http.MethodDelete}, fake.methods)
	assert.Equal(t, []string{"/catalog/videos/abc/media.mp4", "/catalog/videos/abc/media.mp4"}, fake.paths)
}

func (s *MinioInfraUnitSuite) TestGeneratePresignedURL(t provider.T) {
	t.Parallel()
	storage, stop := initStorage(t, &fakeMinio{})
	defer stop()

	u, err := storage.GeneratePresignedURL(context.Background(), "videos/abc/media.mp4", time.Minute)
	require.NoError(t, err)
	assert.Contains(t, u, "/catalog/videos/abc/media.mp4")
	assert.Contains(t, u, "X-Amz-Expires=60")
}

func TestMinioInfraUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(MinioInfraUnitSuite))
}
