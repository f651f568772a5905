package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedReport struct {
	AssessmentID uint    `json:"assessment_id"`
	Mean         float64 `json:"mean"`
}

func newTestManager(t *testing.T) (*CacheManager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCacheManager(client), mr
}

func TestCacheHelperGetSet(t *testing.T) {
	cm, mr := newTestManager(t)
	ctx := context.Background()

	var got cachedReport
	assert.ErrorIs(t, cm.Stats.Get(ctx, ItemAnalysisKey(1), &got), ErrCacheNotFound)

	require.NoError(t, cm.Stats.Set(ctx, ItemAnalysisKey(1), cachedReport{AssessmentID: 1, Mean: 2.5}, time.Minute))
	assert.True(t, mr.Exists("stats:item_analysis:1"))

	require.NoError(t, cm.Stats.Get(ctx, ItemAnalysisKey(1), &got))
	assert.Equal(t, cachedReport{AssessmentID: 1, Mean: 2.5}, got)

	mr.FastForward(2 * time.Minute)
	assert.ErrorIs(t, cm.Stats.Get(ctx, ItemAnalysisKey(1), &got), ErrCacheNotFound)
}

func TestCacheOrExecute(t *testing.T) {
	cm, _ := newTestManager(t)
	ctx := context.Background()

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return cachedReport{AssessmentID: 7, Mean: 1}, nil
	}

	var first, second cachedReport
	require.NoError(t, cm.Stats.CacheOrExecute(ctx, "k", &first, time.Minute, fetch))
	require.NoError(t, cm.Stats.CacheOrExecute(ctx, "k", &second, time.Minute, fetch))

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

func TestCacheOrExecuteFetchError(t *testing.T) {
	cm, mr := newTestManager(t)
	boom := errors.New("boom")

	var dest cachedReport
	err := cm.Stats.CacheOrExecute(context.Background(), "k", &dest, time.Minute, func() (interface{}, error) {
		return nil, boom
	})

	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("stats:k"))
}

func TestNilClientDegrades(t *testing.T) {
	cm := NewCacheManager(nil)
	ctx := context.Background()

	var dest cachedReport
	assert.ErrorIs(t, cm.Stats.Get(ctx, "k", &dest), ErrCacheNotAvailable)
	assert.NoError(t, cm.Stats.Set(ctx, "k", dest, time.Minute))
	assert.NoError(t, cm.Stats.InvalidatePattern(ctx, "*"))
	assert.ErrorIs(t, cm.HealthCheck(ctx), ErrCacheNotAvailable)

	calls := 0
	require.NoError(t, cm.Stats.CacheOrExecute(ctx, "k", &dest, time.Minute, func() (interface{}, error) {
		calls++
		return cachedReport{Mean: 3}, nil
	}))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 3.0, dest.Mean)
}

func TestInvalidateCourseCache(t *testing.T) {
	cm, mr := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, cm.Course.Set(ctx, CourseKey(3), "course", time.Minute))
	require.NoError(t, cm.Course.Set(ctx, EnrollmentsKey(3, "student"), "x", time.Minute))
	require.NoError(t, cm.Course.Set(ctx, EnrollmentsKey(4, "student"), "y", time.Minute))

	InvalidateCourseCache(ctx, cm, 3)

	assert.False(t, mr.Exists("course:id:3"))
	assert.False(t, mr.Exists("course:enrollments:3:student"))
	assert.True(t, mr.Exists("course:enrollments:4:student"))
	assert.NoError(t, cm.HealthCheck(ctx))
}
