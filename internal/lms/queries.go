package lms

import (
	"cmp"
	"context"
	"slices"

	"github.com/s/lms/internal/models"
	"github.com/s/lms/internal/storage"
)

// CourseStats summarizes the published lessons of a course.
type CourseStats struct {
	LessonCount      int `json:"lesson_count"`
	TotalMinutes     int `json:"total_minutes"`
	FreePreviewCount int `json:"free_preview_count"`
}

// PublishedCourses returns published courses sorted by display order.
func (s *Service) PublishedCourses(ctx context.Context) ([]models.Course, error) {
	courses, err := s.store.Courses().FindAll(ctx, storage.Eq(storage.ColPublished, true))
	if err != nil {
		return nil, err
	}
	sortCourses(courses)
	return courses, nil
}

// AllCourses includes unpublished courses.
func (s *Service) AllCourses(ctx context.Context) ([]models.Course, error) {
	courses, err := s.store.Courses().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	sortCourses(courses)
	return courses, nil
}

// CourseBySlug returns nil when no course has the slug.
func (s *Service) CourseBySlug(ctx context.Context, slug string) (*models.Course, error) {
	return s.store.Courses().FindOne(ctx, storage.Eq(storage.ColSlug, slug))
}

// CourseByID returns nil when the course does not exist.
func (s *Service) CourseByID(ctx context.Context, id string) (*models.Course, error) {
	return s.store.Courses().FindOne(ctx, storage.Eq(storage.ColID, id))
}

// CourseLessons returns the published lessons of a course sorted by order.
func (s *Service) CourseLessons(ctx context.Context, courseID string) ([]models.Lesson, error) {
	lessons, err := s.store.Lessons().FindAll(ctx,
		storage.Eq(storage.ColCourse, courseID),
		storage.Eq(storage.ColPublished, true),
	)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(lessons, func(a, b models.Lesson) int { return cmp.Compare(a.Order, b.Order) })
	return lessons, nil
}

// LessonBySlugs resolves a lesson by its course slug and its own slug.
// Unpublished lessons are found too. It fails with ErrCourseNotFound or
// ErrLessonNotFound.
func (s *Service) LessonBySlugs(ctx context.Context, courseSlug, lessonSlug string) (*models.Course, *models.Lesson, error) {
	course, err := s.CourseBySlug(ctx, courseSlug)
	if err != nil {
		return nil, nil, err
	}
	if course == nil {
		return nil, nil, ErrCourseNotFound
	}

	lesson, err := s.store.Lessons().FindOne(ctx,
		storage.Eq(storage.ColCourse, course.ID),
		storage.Eq(storage.ColSlug, lessonSlug),
	)
	if err != nil {
		return nil, nil, err
	}
	if lesson == nil {
		return course, nil, ErrLessonNotFound
	}
	return course, lesson, nil
}

// LessonByID returns nil when the lesson does not exist. Any publish state.
func (s *Service) LessonByID(ctx context.Context, id string) (*models.Lesson, error) {
	return s.store.Lessons().FindOne(ctx, storage.Eq(storage.ColID, id))
}

func (s *Service) CourseStats(ctx context.Context, courseID string) (CourseStats, error) {
	lessons, err := s.CourseLessons(ctx, courseID)
	if err != nil {
		return CourseStats{}, err
	}
	return statsOf(lessons), nil
}

// statsOf expects the CourseLessons result, never an unfiltered list.
func statsOf(lessons []models.Lesson) CourseStats {
	st := CourseStats{LessonCount: len(lessons)}
	for _, l := range lessons {
		st.TotalMinutes += l.DurationMinutes
		if l.IsFree {
			st.FreePreviewCount++
		}
	}
	return st
}

func sortCourses(courses []models.Course) {
	slices.SortStableFunc(courses, func(a, b models.Course) int { return cmp.Compare(a.Order, b.Order) })
}
