package lms

import (
	"cmp"
	"context"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/s/lms/internal/models"
	"github.com/s/lms/internal/storage"
)

// CourseProgress is the completion of one user in one course.
type CourseProgress struct {
	CompletedCount  int `json:"completed_count"`
	TotalCount      int `json:"total_count"`
	PercentComplete int `json:"percent_complete"`
}

// LessonContext is a lesson with its neighbours in the published ordering
// of its course and the caller's state on it.
type LessonContext struct {
	Course    models.Course    `json:"course"`
	Lesson    models.Lesson    `json:"lesson"`
	Prev      *models.Lesson   `json:"prev_lesson"`
	Next      *models.Lesson   `json:"next_lesson"`
	Progress  *models.Progress `json:"progress"`
	HasAccess bool             `json:"has_access"`
	// Position is 1-based; 0 when the lesson is not published.
	Position int `json:"position"`
	Total    int `json:"total"`
}

// CourseSummary is one dashboard row.
type CourseSummary struct {
	Course   models.Course   `json:"course"`
	Lessons  []models.Lesson `json:"lessons"`
	Progress CourseProgress  `json:"progress"`
}

// LessonProgress returns nil when the user has no record for the lesson.
func (s *Service) LessonProgress(ctx context.Context, userID, lessonID string) (*models.Progress, error) {
	if userID == "" {
		return nil, nil
	}
	return s.store.Progress().FindOne(ctx,
		storage.Eq(storage.ColUser, userID),
		storage.Eq(storage.ColLesson, lessonID),
	)
}

// CourseProgressMap maps lesson id to the user's progress record, for the
// published lessons of the course. Lessons without a record are absent.
func (s *Service) CourseProgressMap(ctx context.Context, userID, courseID string) (map[string]models.Progress, error) {
	lessons, err := s.CourseLessons(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return s.progressMap(ctx, userID, lessons)
}

func (s *Service) progressMap(ctx context.Context, userID string, lessons []models.Lesson) (map[string]models.Progress, error) {
	out := make(map[string]models.Progress)
	if userID == "" || len(lessons) == 0 {
		return out, nil
	}

	records, err := s.store.Progress().FindAll(ctx, storage.Eq(storage.ColUser, userID))
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]struct{}, len(lessons))
	for _, l := range lessons {
		wanted[l.ID] = struct{}{}
	}
	// records are oldest first; the first one per lesson wins
	for _, p := range records {
		if _, ok := wanted[p.LessonID]; !ok {
			continue
		}
		if _, dup := out[p.LessonID]; dup {
			continue
		}
		out[p.LessonID] = p
	}
	return out, nil
}

func (s *Service) CourseProgress(ctx context.Context, userID, courseID string) (CourseProgress, error) {
	lessons, err := s.CourseLessons(ctx, courseID)
	if err != nil {
		return CourseProgress{}, err
	}
	pm, err := s.progressMap(ctx, userID, lessons)
	if err != nil {
		return CourseProgress{}, err
	}
	return progressOf(lessons, pm), nil
}

func progressOf(lessons []models.Lesson, pm map[string]models.Progress) CourseProgress {
	cp := CourseProgress{TotalCount: len(lessons)}
	for _, p := range pm {
		if p.Completed {
			cp.CompletedCount++
		}
	}
	cp.PercentComplete = Percent(cp.CompletedCount, cp.TotalCount)
	return cp
}

// Percent rounds completed/total*100 half up. It is 0 when total is 0.
func Percent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return (completed*200 + total) / (2 * total)
}

// LessonNavigationContext fails with ErrCourseNotFound or ErrLessonNotFound.
// A found lesson the caller may not view is not an error: HasAccess is false.
func (s *Service) LessonNavigationContext(ctx context.Context, courseSlug, lessonSlug, userID string) (*LessonContext, error) {
	course, lesson, err := s.LessonBySlugs(ctx, courseSlug, lessonSlug)
	if err != nil {
		return nil, err
	}

	lessons, err := s.CourseLessons(ctx, course.ID)
	if err != nil {
		return nil, err
	}

	lc := &LessonContext{Course: *course, Lesson: *lesson, Total: len(lessons)}
	if i := slices.IndexFunc(lessons, func(l models.Lesson) bool { return l.ID == lesson.ID }); i >= 0 {
		lc.Position = i + 1
		if i > 0 {
			lc.Prev = &lessons[i-1]
		}
		if i < len(lessons)-1 {
			lc.Next = &lessons[i+1]
		}
	}

	if lc.Progress, err = s.LessonProgress(ctx, userID, lesson.ID); err != nil {
		return nil, err
	}
	if lc.HasAccess, err = s.CanAccessLesson(ctx, userID, *lesson); err != nil {
		return nil, err
	}
	return lc, nil
}

// UserCourseSummaries builds one summary per actively enrolled course,
// sorted by course order. Courses are loaded concurrently.
func (s *Service) UserCourseSummaries(ctx context.Context, userID string) ([]CourseSummary, error) {
	courses, err := s.EnrolledCourses(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]CourseSummary, len(courses))
	g, gctx := errgroup.WithContext(ctx)
	for i, course := range courses {
		g.Go(func() error {
			lessons, err := s.CourseLessons(gctx, course.ID)
			if err != nil {
				return err
			}
			pm, err := s.progressMap(gctx, userID, lessons)
			if err != nil {
				return err
			}
			out[i] = CourseSummary{Course: course, Lessons: lessons, Progress: progressOf(lessons, pm)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortStableFunc(out, func(a, b CourseSummary) int { return cmp.Compare(a.Course.Order, b.Course.Order) })
	return out, nil
}
