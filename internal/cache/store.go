package cache

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/s/lms/internal/logger"
	"github.com/s/lms/internal/models"
	"github.com/s/lms/internal/storage"
)

const keyPrefix = "lms:"

// Store caches the catalog collections (courses and lessons) of another
// Store. Enrollments, progress and invite codes always go to the backend.
// Catalog entries are not invalidated; they live for the configured TTL.
type Store struct {
	storage.Store
	courses storage.Collection[models.Course]
	lessons storage.Collection[models.Lesson]
}

func New(next storage.Store, rdb goredis.Cmdable, ttl time.Duration, log *logger.Logger) *Store {
	log = log.With("component", "cache")
	return &Store{
		Store:   next,
		courses: &collection[models.Course]{next: next.Courses(), rdb: rdb, log: log, ttl: ttl, name: "courses"},
		lessons: &collection[models.Lesson]{next: next.Lessons(), rdb: rdb, log: log, ttl: ttl, name: "lessons"},
	}
}

func (s *Store) Courses() storage.Collection[models.Course] { return s.courses }

func (s *Store) Lessons() storage.Collection[models.Lesson] { return s.lessons }

type collection[T any] struct {
	next storage.Collection[T]
	rdb  goredis.Cmdable
	log  *logger.Logger
	ttl  time.Duration
	name string
}

func (c *collection[T]) key(op string, conds []storage.Cond) string {
	return keyPrefix + c.name + ":" + op + ":" + storage.Key(conds)
}

func (c *collection[T]) FindAll(ctx context.Context, conds ...storage.Cond) ([]T, error) {
	return readThrough(ctx, c.rdb, c.log, c.key("all", conds), c.ttl, func() ([]T, error) {
		return c.next.FindAll(ctx, conds...)
	})
}

// FindOne caches absence too, as a JSON null.
func (c *collection[T]) FindOne(ctx context.Context, conds ...storage.Cond) (*T, error) {
	return readThrough(ctx, c.rdb, c.log, c.key("one", conds), c.ttl, func() (*T, error) {
		return c.next.FindOne(ctx, conds...)
	})
}
