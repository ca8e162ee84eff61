package storage

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/s/lms/internal/models"
)

// Dataset is the full content of a store, used for fixtures and seeding.
type Dataset struct {
	Courses     []models.Course
	Lessons     []models.Lesson
	Enrollments []models.Enrollment
	Progress    []models.Progress
	InviteCodes []models.InviteCode
}

type record interface {
	RecordID() string
	Created() time.Time
}

// MemoryStore keeps every collection in process. It is safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	clock clockwork.Clock

	courses     []models.Course
	lessons     []models.Lesson
	enrollments []models.Enrollment
	progress    []models.Progress
	invites     []models.InviteCode
}

func NewMemoryStore(clock clockwork.Clock, data Dataset) *MemoryStore {
	s := &MemoryStore{
		clock:       clock,
		courses:     append([]models.Course(nil), data.Courses...),
		lessons:     append([]models.Lesson(nil), data.Lessons...),
		enrollments: append([]models.Enrollment(nil), data.Enrollments...),
		progress:    append([]models.Progress(nil), data.Progress...),
		invites:     append([]models.InviteCode(nil), data.InviteCodes...),
	}
	sortRecords(s.courses)
	sortRecords(s.lessons)
	sortRecords(s.enrollments)
	sortRecords(s.progress)
	sortRecords(s.invites)
	return s
}

func (s *MemoryStore) Courses() Collection[models.Course] {
	return &memCollection[models.Course]{mu: &s.mu, rows: &s.courses, field: courseField}
}

func (s *MemoryStore) Lessons() Collection[models.Lesson] {
	return &memCollection[models.Lesson]{mu: &s.mu, rows: &s.lessons, field: lessonField}
}

func (s *MemoryStore) Enrollments() Collection[models.Enrollment] {
	return &memCollection[models.Enrollment]{mu: &s.mu, rows: &s.enrollments, field: enrollmentField}
}

func (s *MemoryStore) Progress() Collection[models.Progress] {
	return &memCollection[models.Progress]{mu: &s.mu, rows: &s.progress, field: progressField}
}

func (s *MemoryStore) InviteCodes() Collection[models.InviteCode] {
	return &memCollection[models.InviteCode]{mu: &s.mu, rows: &s.invites, field: inviteField}
}

func (s *MemoryStore) SaveProgress(_ context.Context, p *models.Progress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	for i := range s.progress {
		cur := &s.progress[i]
		if cur.UserID == p.UserID && cur.LessonID == p.LessonID {
			p.ID, p.CreatedAt, p.UpdatedAt = cur.ID, cur.CreatedAt, now
			*cur = *p
			return nil
		}
	}

	if p.ID == "" {
		p.ID = models.NewID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	s.progress = append(s.progress, *p)
	sortRecords(s.progress)
	return nil
}

func (s *MemoryStore) RedeemInvite(_ context.Context, inviteID string, e *models.Enrollment) (RedeemOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ic *models.InviteCode
	for i := range s.invites {
		if s.invites[i].ID == inviteID {
			ic = &s.invites[i]
			break
		}
	}
	if ic == nil {
		return RedeemExhausted, nil
	}

	for _, cur := range s.enrollments {
		if cur.UserID == e.UserID && cur.CourseID == e.CourseID && cur.Open() {
			*e = cur
			return RedeemExisting, nil
		}
	}

	if !ic.IsActive || ic.CurrentUses >= ic.MaxUses {
		return RedeemExhausted, nil
	}

	now := s.clock.Now()
	ic.CurrentUses++
	ic.UpdatedAt = now

	if e.ID == "" {
		e.ID = models.NewID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now
	s.enrollments = append(s.enrollments, *e)
	sortRecords(s.enrollments)
	return RedeemCreated, nil
}

type memCollection[T record] struct {
	mu    *sync.RWMutex
	rows  *[]T
	field func(T, string) (any, bool)
}

func (c *memCollection[T]) FindAll(_ context.Context, conds ...Cond) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0, len(*c.rows))
	for _, row := range *c.rows {
		ok, err := c.match(row, conds)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func (c *memCollection[T]) FindOne(_ context.Context, conds ...Cond) (*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, row := range *c.rows {
		ok, err := c.match(row, conds)
		if err != nil {
			return nil, err
		}
		if ok {
			found := row
			return &found, nil
		}
	}
	return nil, nil
}

func (c *memCollection[T]) match(row T, conds []Cond) (bool, error) {
	for _, cond := range conds {
		v, ok := c.field(row, cond.Column)
		if !ok {
			return false, fmt.Errorf("memory store: unknown column %q", cond.Column)
		}
		if !equal(v, cond.Value, cond.Fold) {
			return false, nil
		}
	}
	return true, nil
}

// equal compares by underlying kind so typed string constants match plain strings.
func equal(a, b any, fold bool) bool {
	av, bv := normalize(a), normalize(b)
	if fold {
		as, aok := av.(string)
		bs, bok := bv.(string)
		return aok && bok && strings.EqualFold(as, bs)
	}
	return av == bv
}

func normalize(v any) any {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	default:
		return v
	}
}

func sortRecords[T record](rows []T) {
	sort.SliceStable(rows, func(i, j int) bool {
		ci, cj := rows[i].Created(), rows[j].Created()
		if !ci.Equal(cj) {
			return ci.Before(cj)
		}
		return rows[i].RecordID() < rows[j].RecordID()
	})
}

func courseField(c models.Course, col string) (any, bool) {
	switch col {
	case ColID:
		return c.ID, true
	case ColSlug:
		return c.Slug, true
	case ColPublished:
		return c.Published, true
	case "level":
		return c.Level, true
	}
	return nil, false
}

func lessonField(l models.Lesson, col string) (any, bool) {
	switch col {
	case ColID:
		return l.ID, true
	case ColCourse:
		return l.CourseID, true
	case ColSlug:
		return l.Slug, true
	case ColPublished:
		return l.Published, true
	case ColIsFree:
		return l.IsFree, true
	case "type":
		return l.Type, true
	}
	return nil, false
}

func enrollmentField(e models.Enrollment, col string) (any, bool) {
	switch col {
	case ColID:
		return e.ID, true
	case ColUser:
		return e.UserID, true
	case ColCourse:
		return e.CourseID, true
	case ColStatus:
		return e.Status, true
	}
	return nil, false
}

func progressField(p models.Progress, col string) (any, bool) {
	switch col {
	case ColID:
		return p.ID, true
	case ColUser:
		return p.UserID, true
	case ColLesson:
		return p.LessonID, true
	case ColCompleted:
		return p.Completed, true
	}
	return nil, false
}

func inviteField(ic models.InviteCode, col string) (any, bool) {
	switch col {
	case ColID:
		return ic.ID, true
	case ColCode:
		return ic.Code, true
	case ColCourse:
		return ic.CourseID, true
	case ColIsActive:
		return ic.IsActive, true
	case ColCurrentUses:
		return ic.CurrentUses, true
	}
	return nil, false
}
