package lms

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/s/lms/internal/database"
	"github.com/s/lms/internal/logger"
	"github.com/s/lms/internal/models"
	"github.com/s/lms/internal/storage"
)

const john = "usr_student00001"

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type env struct {
	svc   *Service
	store *storage.MemoryStore
	clock *clockwork.FakeClock
}

func newEnv(t *testing.T, mutate ...func(*storage.Dataset)) *env {
	t.Helper()
	clock := clockwork.NewFakeClockAt(testNow)
	ds := database.Fixtures(clock.Now())
	for _, m := range mutate {
		m(&ds)
	}
	store := storage.NewMemoryStore(clock, ds)
	svc := NewService(logger.Nop(), store, store, clock, Files{BaseURL: "http://files.test", Mock: true})
	return &env{svc: svc, store: store, clock: clock}
}

// brokenStore fails every read.
type brokenStore struct{}

type brokenCollection[T any] struct{}

func (brokenCollection[T]) FindAll(context.Context, ...storage.Cond) ([]T, error) {
	return nil, storage.Unavailable("find", context.DeadlineExceeded)
}

func (brokenCollection[T]) FindOne(context.Context, ...storage.Cond) (*T, error) {
	return nil, storage.Unavailable("find one", context.DeadlineExceeded)
}

func (brokenStore) Courses() storage.Collection[models.Course] {
	return brokenCollection[models.Course]{}
}

func (brokenStore) Lessons() storage.Collection[models.Lesson] {
	return brokenCollection[models.Lesson]{}
}

func (brokenStore) Enrollments() storage.Collection[models.Enrollment] {
	return brokenCollection[models.Enrollment]{}
}

func (brokenStore) Progress() storage.Collection[models.Progress] {
	return brokenCollection[models.Progress]{}
}

func (brokenStore) InviteCodes() storage.Collection[models.InviteCode] {
	return brokenCollection[models.InviteCode]{}
}

func lessonIDs(lessons []models.Lesson) []string {
	ids := make([]string, len(lessons))
	for i, l := range lessons {
		ids[i] = l.ID
	}
	return ids
}
