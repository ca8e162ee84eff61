package cache

import (
	"context"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s/lms/internal/config"
	"github.com/s/lms/internal/database"
	"github.com/s/lms/internal/logger"
	"github.com/s/lms/internal/models"
	"github.com/s/lms/internal/storage"
)

// countingStore counts course reads reaching the backend.
type countingStore struct {
	*storage.MemoryStore
	courseReads atomic.Int32
}

type countingCourses struct {
	storage.Collection[models.Course]
	n *atomic.Int32
}

func (c countingCourses) FindAll(ctx context.Context, conds ...storage.Cond) ([]models.Course, error) {
	c.n.Add(1)
	return c.Collection.FindAll(ctx, conds...)
}

func (c countingCourses) FindOne(ctx context.Context, conds ...storage.Cond) (*models.Course, error) {
	c.n.Add(1)
	return c.Collection.FindOne(ctx, conds...)
}

func (s *countingStore) Courses() storage.Collection[models.Course] {
	return countingCourses{Collection: s.MemoryStore.Courses(), n: &s.courseReads}
}

func newBackend() *countingStore {
	clock := clockwork.NewFakeClock()
	return &countingStore{MemoryStore: storage.NewMemoryStore(clock, database.Fixtures(clock.Now()))}
}

func TestStore_RedisDownFallsBack(t *testing.T) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	backend := newBackend()
	s := New(backend, rdb, time.Minute, logger.Nop())
	ctx := context.Background()

	courses, err := s.Courses().FindAll(ctx, storage.Eq(storage.ColPublished, true))
	require.NoError(t, err)
	assert.Len(t, courses, 3)

	c, err := s.Courses().FindOne(ctx, storage.Eq(storage.ColSlug, "english-foundations"))
	require.NoError(t, err)
	require.NotNil(t, c)

	assert.EqualValues(t, 2, backend.courseReads.Load())

	// uncached collections pass straight through
	e, err := s.Enrollments().FindAll(ctx, storage.Eq(storage.ColUser, "usr_student00001"))
	require.NoError(t, err)
	assert.Len(t, e, 2)
}

func TestStore_Redis(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	rdb, err := NewClient(ctx, config.RedisConfig{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })
	require.NoError(t, rdb.FlushDB(ctx).Err())

	backend := newBackend()
	s := New(backend, rdb, time.Minute, logger.Nop())

	for range 3 {
		courses, err := s.Courses().FindAll(ctx, storage.Eq(storage.ColPublished, true))
		require.NoError(t, err)
		assert.Len(t, courses, 3)
	}
	assert.EqualValues(t, 1, backend.courseReads.Load())

	for range 2 {
		c, err := s.Courses().FindOne(ctx, storage.Eq(storage.ColSlug, "missing"))
		require.NoError(t, err)
		assert.Nil(t, c)
	}
	assert.EqualValues(t, 2, backend.courseReads.Load(), "absence is cached")

	lessons, err := s.Lessons().FindAll(ctx, storage.Eq(storage.ColCourse, "crs_foundations01"))
	require.NoError(t, err)
	lessons, err = s.Lessons().FindAll(ctx, storage.Eq(storage.ColCourse, "crs_foundations01"))
	require.NoError(t, err)
	require.Len(t, lessons, 5)
	for _, l := range lessons {
		if l.ID == "les_ef_greet_shd" {
			require.Len(t, l.Transcript, 8)
			assert.Equal(t, "seg_01", l.Transcript[0].ID)
		}
	}
}
