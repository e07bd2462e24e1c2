//go:build !integration

package infra_session_cache

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type SessionCacheUnitSuite struct {
	suite.Suite
}

func initDriver(t provider.T) (*Driver, *miniredis.Miniredis, func()) {
	srv, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	return New(client, "session"), srv, func() {
		client.Close()
		srv.Close()
	}
}

func (s *SessionCacheUnitSuite) TestSetGetDelete(t provider.T) {
	t.Parallel()
	d, srv, stop := initDriver(t)
	defer stop()

	require.NoError(t, d.Set("tok", "admin", time.Minute))
	assert.True(t, srv.Exists("session:tok"))

	got, err := d.Get("tok")
	require.NoError(t, err)
	assert.Equal(t, "admin", got)

	require.NoError(t, d.Delete("tok"))
	got, err = d.Get("tok")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func (s *SessionCacheUnitSuite) TestExpiredTokenIsUnknown(t provider.T) {
	t.Parallel()
	d, srv, stop := initDriver(t)
	defer stop()

	require.NoError(t, d.Set("tok", "admin", time.Minute))
	srv.FastForward(2 * time.Minute)

	got, err := d.Get("tok")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func (s *SessionCacheUnitSuite) TestUnprefixedKey(t provider.T) {
	t.Parallel()
	assert.Equal(t, "tok", (&Driver{}).getFullKey("tok"))
	assert.Equal(t, "a:tok", (&Driver{key: "a"}).getFullKey("tok"))
}

func TestSessionCacheUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(SessionCacheUnitSuite))
}
