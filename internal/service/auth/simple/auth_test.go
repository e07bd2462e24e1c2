//go:build !integration

package service_simple_auth

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCache struct {
	mu   sync.Mutex
	data map[string]string
	err  error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string]string)}
}

func (c *memoryCache) Set(key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.data[key] = value
	return nil
}

func (c *memoryCache) Get(key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return "", c.err
	}
	return c.data[key], nil
}

func (c *memoryCache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	delete(c.data, key)
	return nil
}

type SimpleAuthUnitSuite struct {
	suite.Suite
}

func (s *SimpleAuthUnitSuite) TestAuth(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		code        string
		cacheErr    error
		expectError error
	}{
		{name: "Should issue token for right code", code: "s3cret"},
		{name: "Should reject wrong code", code: "nope", expectError: ErrWrongCode},
		{name: "Should wrap cache failure", code: "s3cret", cacheErr: errors.New("down"), expectError: ErrInternal},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			cache := newMemoryCache()
			cache.err = tc.cacheErr
			svc := New("s3cret", cache, time.Minute)

			token, err := svc.Auth(tc.code)
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			valid, err := svc.ValidateToken(token)
			require.NoError(t, err)
			assert.True(t, valid)
		})
	}
}

func (s *SimpleAuthUnitSuite) TestRevoke(t provider.T) {
	t.Parallel()
	svc := New("", newMemoryCache(), 0)

	token, err := svc.Auth(defaultSecret)
	require.NoError(t, err)
	require.NoError(t, svc.Revoke(token))

	valid, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.False(t, valid)

	valid, err = svc.ValidateToken("")
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestSimpleAuthUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(SimpleAuthUnitSuite))
}
