package storage

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s/lms/internal/models"
)

var t0 = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func sampleDataset() Dataset {
	base := func(id string, d time.Duration) models.Base {
		return models.Base{ID: id, CreatedAt: t0.Add(d)}
	}
	return Dataset{
		Courses: []models.Course{
			{Base: base("c2", time.Hour), Slug: "second", Published: true, Order: 1},
			{Base: base("c1", 0), Slug: "first", Published: true, Order: 1},
			{Base: base("c0", time.Hour), Slug: "draft", Order: 2},
		},
		Lessons: []models.Lesson{
			{Base: base("l1", 0), CourseID: "c1", Slug: "intro", Published: true, Type: models.LessonVideo},
			{Base: base("l2", 0), CourseID: "c2", Slug: "intro", Published: true, IsFree: true},
		},
		Enrollments: []models.Enrollment{
			{Base: base("e1", 0), UserID: "u1", CourseID: "c1", Status: models.EnrollmentActive},
			{Base: base("e2", 0), UserID: "u1", CourseID: "c2", Status: models.EnrollmentExpired},
		},
		InviteCodes: []models.InviteCode{
			{Base: base("i1", 0), Code: "Spring", CourseID: "c1", MaxUses: 3, IsActive: true},
			{Base: base("i2", 0), Code: "CLOSED", CourseID: "c1", MaxUses: 3},
			{Base: base("i3", time.Hour), Code: "Summer", CourseID: "c2", MaxUses: 1, IsActive: true},
		},
	}
}

func newMemory(t *testing.T) *MemoryStore {
	t.Helper()
	return NewMemoryStore(clockwork.NewFakeClockAt(t0), sampleDataset())
}

func TestMemoryStore_OrderIsCreatedThenID(t *testing.T) {
	s := newMemory(t)

	all, err := s.Courses().FindAll(context.Background())
	require.NoError(t, err)
	ids := make([]string, len(all))
	for i, c := range all {
		ids[i] = c.ID
	}
	assert.Equal(t, []string{"c1", "c0", "c2"}, ids)

	first, err := s.Courses().FindOne(context.Background(), Eq(ColPublished, true))
	require.NoError(t, err)
	assert.Equal(t, "c1", first.ID)
}

func TestMemoryStore_Conditions(t *testing.T) {
	s := newMemory(t)
	ctx := context.Background()

	l, err := s.Lessons().FindOne(ctx, Eq(ColCourse, "c2"), Eq(ColSlug, "intro"))
	require.NoError(t, err)
	assert.Equal(t, "l2", l.ID)

	// typed constants compare equal to plain strings
	l, err = s.Lessons().FindOne(ctx, Eq("type", models.LessonVideo))
	require.NoError(t, err)
	assert.Equal(t, "l1", l.ID)

	e, err := s.Enrollments().FindAll(ctx, Eq(ColUser, "u1"), Eq(ColStatus, "active"))
	require.NoError(t, err)
	require.Len(t, e, 1)
	assert.Equal(t, "c1", e[0].CourseID)

	ic, err := s.InviteCodes().FindOne(ctx, EqFold(ColCode, "SPRING"))
	require.NoError(t, err)
	assert.Equal(t, "i1", ic.ID)

	ic, err = s.InviteCodes().FindOne(ctx, Eq(ColCode, "SPRING"))
	require.NoError(t, err)
	assert.Nil(t, ic, "plain equality is case sensitive")

	_, err = s.Courses().FindAll(ctx, Eq("nope", 1))
	assert.Error(t, err)
}

func TestMemoryStore_FindOneReturnsCopy(t *testing.T) {
	s := newMemory(t)
	c, err := s.Courses().FindOne(context.Background(), Eq(ColID, "c1"))
	require.NoError(t, err)
	c.Slug = "changed"

	again, err := s.Courses().FindOne(context.Background(), Eq(ColID, "c1"))
	require.NoError(t, err)
	assert.Equal(t, "first", again.Slug)
}

func TestMemoryStore_SaveProgressUpserts(t *testing.T) {
	s := newMemory(t)
	ctx := context.Background()

	p := &models.Progress{UserID: "u1", LessonID: "l1", WatchedSeconds: 10}
	require.NoError(t, s.SaveProgress(ctx, p))
	id := p.ID
	require.NotEmpty(t, id)

	again := &models.Progress{UserID: "u1", LessonID: "l1", WatchedSeconds: 20, Completed: true}
	require.NoError(t, s.SaveProgress(ctx, again))
	assert.Equal(t, id, again.ID)

	rows, err := s.Progress().FindAll(ctx, Eq(ColUser, "u1"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 20, rows[0].WatchedSeconds)
	assert.True(t, rows[0].Completed)
}

func TestMemoryStore_RedeemInvite(t *testing.T) {
	testRedeemInvite(t, newMemory(t))
}

func TestMemoryStore_RedeemInviteCap(t *testing.T) {
	testRedeemInviteCap(t, newMemory(t), 10)
}

func TestMemoryStore_RedeemInviteSameUser(t *testing.T) {
	testRedeemInviteSameUser(t, newMemory(t))
}

func TestMemoryStore_CreateEnrollmentIdempotent(t *testing.T) {
	s := newMemory(t)
	ctx := context.Background()

	e := &models.Enrollment{UserID: "u1", CourseID: "c1", Status: models.EnrollmentActive}
	require.NoError(t, s.CreateEnrollment(ctx, e))
	assert.Equal(t, "e1", e.ID)

	// an expired row does not count
	e = &models.Enrollment{UserID: "u1", CourseID: "c2", Status: models.EnrollmentActive}
	require.NoError(t, s.CreateEnrollment(ctx, e))
	assert.NotEqual(t, "e2", e.ID)

	rows, err := s.Enrollments().FindAll(ctx, Eq(ColUser, "u1"))
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestUnavailable(t *testing.T) {
	assert.NoError(t, Unavailable("op", nil))

	err := Unavailable("find", context.DeadlineExceeded)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Same(t, err, Unavailable("again", err))
}

func TestKey(t *testing.T) {
	assert.Equal(t, "", Key(nil))
	assert.Equal(t, "course_id=c1&published=true&code~=abc",
		Key([]Cond{Eq(ColCourse, "c1"), Eq(ColPublished, true), EqFold(ColCode, "abc")}))
}

// The redemption tests run against both backends loaded with sampleDataset.

func enrollment(user, course string) *models.Enrollment {
	return &models.Enrollment{UserID: user, CourseID: course, Status: models.EnrollmentActive}
}

func uses(t *testing.T, s Store, inviteID string) int {
	t.Helper()
	ic, err := s.InviteCodes().FindOne(context.Background(), Eq(ColID, inviteID))
	require.NoError(t, err)
	require.NotNil(t, ic)
	return ic.CurrentUses
}

func testRedeemInvite(t *testing.T, s interface {
	Store
	Writer
}) {
	ctx := context.Background()

	// u1 already holds e1 for c1
	e := enrollment("u1", "c1")
	outcome, err := s.RedeemInvite(ctx, "i1", e)
	require.NoError(t, err)
	assert.Equal(t, RedeemExisting, outcome)
	assert.Equal(t, "e1", e.ID)
	assert.Equal(t, 0, uses(t, s, "i1"))

	// e2 is expired, so u1 may redeem c2 again
	e = enrollment("u1", "c2")
	outcome, err = s.RedeemInvite(ctx, "i3", e)
	require.NoError(t, err)
	assert.Equal(t, RedeemCreated, outcome)
	assert.NotEmpty(t, e.ID)
	assert.NotEqual(t, "e2", e.ID)
	assert.Equal(t, 1, uses(t, s, "i3"))

	// a pending row also blocks a second redemption
	e = &models.Enrollment{UserID: "u2", CourseID: "c1", Status: models.EnrollmentPending}
	outcome, err = s.RedeemInvite(ctx, "i1", e)
	require.NoError(t, err)
	assert.Equal(t, RedeemCreated, outcome)
	pendingID := e.ID

	e = enrollment("u2", "c1")
	outcome, err = s.RedeemInvite(ctx, "i1", e)
	require.NoError(t, err)
	assert.Equal(t, RedeemExisting, outcome)
	assert.Equal(t, pendingID, e.ID)
	assert.Equal(t, models.EnrollmentPending, e.Status)
	assert.Equal(t, 1, uses(t, s, "i1"))

	for _, id := range []string{"i2", "missing"} {
		outcome, err = s.RedeemInvite(ctx, id, enrollment("u3", "c1"))
		require.NoError(t, err)
		assert.Equal(t, RedeemExhausted, outcome, id)
	}

	rows, err := s.Enrollments().FindAll(ctx, Eq(ColUser, "u3"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func testRedeemInviteCap(t *testing.T, s interface {
	Store
	Writer
}, users int) {
	ctx := context.Background()

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		counts = map[RedeemOutcome]int{}
	)
	for i := range users {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcome, err := s.RedeemInvite(ctx, "i1", enrollment(fmt.Sprintf("user%02d", i), "c1"))
			assert.NoError(t, err)
			mu.Lock()
			counts[outcome]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, counts[RedeemCreated])
	assert.Equal(t, users-3, counts[RedeemExhausted])
	assert.Equal(t, 3, uses(t, s, "i1"))
}

func testRedeemInviteSameUser(t *testing.T, s interface {
	Store
	Writer
}) {
	ctx := context.Background()

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		counts = map[RedeemOutcome]int{}
		ids    = map[string]struct{}{}
	)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e := enrollment("u9", "c1")
			outcome, err := s.RedeemInvite(ctx, "i1", e)
			assert.NoError(t, err)
			mu.Lock()
			counts[outcome]++
			ids[e.ID] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, counts[RedeemCreated])
	assert.Equal(t, 7, counts[RedeemExisting])
	assert.Len(t, ids, 1)
	assert.Equal(t, 1, uses(t, s, "i1"))

	rows, err := s.Enrollments().FindAll(ctx, Eq(ColUser, "u9"))
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
