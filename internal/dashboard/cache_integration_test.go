//go:build integration

package dashboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/jtquiroga/DAA-por-region/internal/dashboard"
	"github.com/jtquiroga/DAA-por-region/internal/platform/config"
	platformredis "github.com/jtquiroga/DAA-por-region/internal/platform/redis"
	"github.com/jtquiroga/DAA-por-region/pkg/platform/sentinel"
	"github.com/jtquiroga/DAA-por-region/pkg/testutil/containers"
)

type RedisCacheSuite struct {
	suite.Suite
	redis  *containers.RedisContainer
	client *platformredis.Client
	cache  *dashboard.RedisCache
}

func TestRedisCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())

	client, err := platformredis.New(context.Background(), config.Redis{URL: s.redis.URL, PoolSize: 5})
	s.Require().NoError(err)
	s.Require().NotNil(client)
	s.client = client
	s.cache = dashboard.NewRedisCache(client, time.Minute)
}

func (s *RedisCacheSuite) TearDownSuite() {
	if s.client != nil {
		_ = s.client.Close()
	}
}

func (s *RedisCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisCacheSuite) TestHealth() {
	s.NoError(s.client.Health(context.Background()))
}

func (s *RedisCacheSuite) TestMissThenHit() {
	ctx := context.Background()

	_, err := s.cache.Get(ctx, "frame:2010")
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.Require().NoError(s.cache.Set(ctx, "frame:2010", []byte(`{"year":2010}`)))

	payload, err := s.cache.Get(ctx, "frame:2010")
	s.Require().NoError(err)
	s.Equal(`{"year":2010}`, string(payload))
}

func (s *RedisCacheSuite) TestEntriesExpire() {
	ctx := context.Background()
	shortLived := dashboard.NewRedisCache(s.client, 50*time.Millisecond)

	s.Require().NoError(shortLived.Set(ctx, "frame:2011", []byte(`{"year":2011}`)))

	s.Require().Eventually(func() bool {
		_, err := shortLived.Get(ctx, "frame:2011")
		return errors.Is(err, sentinel.ErrNotFound)
	}, 2*time.Second, 25*time.Millisecond)
}
