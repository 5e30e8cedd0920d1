package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/nkust-web/campus/models"
	"github.com/nkust-web/campus/repository"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingRepo records FetchLatest calls and returns canned results.
type countingRepo struct {
	repository.NewsRepository
	news    []models.News
	err     error
	calls   int
	created []*models.News
}

func (r *countingRepo) FetchLatest(_ context.Context, limit int) ([]models.News, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	if limit < len(r.news) {
		return r.news[:limit], nil
	}
	return r.news, nil
}

func (r *countingRepo) Create(_ context.Context, news *models.News) error {
	r.created = append(r.created, news)
	return nil
}

func setupCache(t *testing.T, inner repository.NewsRepository) (*repository.CachedNewsRepository, *miniredis.Miniredis, *logtest.Hook) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	log, hook := logtest.NewNullLogger()
	return repository.NewCachedNewsRepository(inner, rdb, time.Minute, log), mr, hook
}

func sampleNews() []models.News {
	return []models.News{
		{ID: 3, Title: "Third", Content: "c", PublishedAt: baseTime.Add(2 * time.Hour)},
		{ID: 2, Title: "Second", Content: "b", PublishedAt: baseTime.Add(time.Hour)},
		{ID: 1, Title: "First", Content: "a", PublishedAt: baseTime},
	}
}

func titlesOf(news []models.News) []string {
	out := make([]string, len(news))
	for i, n := range news {
		out[i] = n.Title
	}
	return out
}

func TestCachedFetchLatest_ReadThrough(t *testing.T) {
	inner := &countingRepo{news: sampleNews()}
	repo, mr, _ := setupCache(t, inner)

	first, err := repo.FetchLatest(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Third", "Second"}, titlesOf(first))
	assert.True(t, mr.Exists("news:latest:2"))

	second, err := repo.FetchLatest(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, titlesOf(first), titlesOf(second))
	assert.Equal(t, 1, inner.calls)

	mr.FastForward(2 * time.Minute)
	_, err = repo.FetchLatest(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedFetchLatest_InnerErrorPropagates(t *testing.T) {
	storeErr := &repository.DataAccessError{Op: "repository.FetchLatest", Err: errors.New("connection refused")}
	inner := &countingRepo{err: storeErr}
	repo, mr, _ := setupCache(t, inner)

	_, err := repo.FetchLatest(context.Background(), 3)
	require.Error(t, err)
	assert.True(t, repository.IsDataAccess(err))
	assert.False(t, mr.Exists("news:latest:3"))
}

func TestCachedFetchLatest_RedisDown(t *testing.T) {
	inner := &countingRepo{news: sampleNews()}
	repo, mr, _ := setupCache(t, inner)
	mr.Close()

	news, err := repo.FetchLatest(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, news, 3)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedFetchLatest_MalformedEntry(t *testing.T) {
	inner := &countingRepo{news: sampleNews()}
	repo, mr, hook := setupCache(t, inner)
	require.NoError(t, mr.Set("news:latest:3", "{not json"))

	news, err := repo.FetchLatest(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, news, 3)
	assert.Equal(t, 1, inner.calls)

	var warned *logrus.Entry
	for _, e := range hook.AllEntries() {
		if e.Message == "discarding malformed cache entry" {
			warned = e
		}
	}
	require.NotNil(t, warned)
	assert.Equal(t, logrus.WarnLevel, warned.Level)
	decodeErr, ok := warned.Data[logrus.ErrorKey].(error)
	require.True(t, ok)
	assert.Error(t, decodeErr)

	// the entry is rewritten with the fresh result
	cached, err := mr.Get("news:latest:3")
	require.NoError(t, err)
	assert.Contains(t, cached, "Third")
}

func TestCachedFetchLatest_NonPositiveLimit(t *testing.T) {
	inner := &countingRepo{news: sampleNews()}
	repo, _, _ := setupCache(t, inner)

	news, err := repo.FetchLatest(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, news)
	assert.Zero(t, inner.calls)
}

func TestCachedCreate_Invalidates(t *testing.T) {
	inner := &countingRepo{news: sampleNews()}
	repo, mr, _ := setupCache(t, inner)

	_, err := repo.FetchLatest(context.Background(), 3)
	require.NoError(t, err)
	_, err = repo.FetchLatest(context.Background(), 10)
	require.NoError(t, err)
	require.NoError(t, mr.Set("unrelated", "keep"))

	require.NoError(t, repo.Create(context.Background(), &models.News{Title: "New", Content: "d"}))
	assert.Len(t, inner.created, 1)
	assert.False(t, mr.Exists("news:latest:3"))
	assert.False(t, mr.Exists("news:latest:10"))
	assert.True(t, mr.Exists("unrelated"))
}
