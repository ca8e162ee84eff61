package lms

import (
	"context"

	"github.com/s/lms/internal/models"
	"github.com/s/lms/internal/storage"
)

// IsEnrolled reports whether the user holds an active enrollment in the
// course. An empty userID is anonymous and never enrolled.
func (s *Service) IsEnrolled(ctx context.Context, userID, courseID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	e, err := s.store.Enrollments().FindOne(ctx,
		storage.Eq(storage.ColUser, userID),
		storage.Eq(storage.ColCourse, courseID),
		storage.Eq(storage.ColStatus, string(models.EnrollmentActive)),
	)
	if err != nil {
		return false, err
	}
	return e != nil, nil
}

// CanAccessLesson is the single access rule: free lessons are open to
// everyone, the rest need an active enrollment in the lesson's course.
func (s *Service) CanAccessLesson(ctx context.Context, userID string, lesson models.Lesson) (bool, error) {
	if lesson.IsFree {
		return true, nil
	}
	if userID == "" {
		return false, nil
	}
	return s.IsEnrolled(ctx, userID, lesson.CourseID)
}

// EnrolledCourseIDs lists the courses with an active enrollment, oldest
// enrollment first, without duplicates.
func (s *Service) EnrolledCourseIDs(ctx context.Context, userID string) ([]string, error) {
	if userID == "" {
		return nil, nil
	}
	enrollments, err := s.store.Enrollments().FindAll(ctx,
		storage.Eq(storage.ColUser, userID),
		storage.Eq(storage.ColStatus, string(models.EnrollmentActive)),
	)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(enrollments))
	ids := make([]string, 0, len(enrollments))
	for _, e := range enrollments {
		if _, ok := seen[e.CourseID]; ok {
			continue
		}
		seen[e.CourseID] = struct{}{}
		ids = append(ids, e.CourseID)
	}
	return ids, nil
}

// EnrolledCourses resolves EnrolledCourseIDs, skipping dangling references.
func (s *Service) EnrolledCourses(ctx context.Context, userID string) ([]models.Course, error) {
	ids, err := s.EnrolledCourseIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	courses := make([]models.Course, 0, len(ids))
	for _, id := range ids {
		c, err := s.CourseByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if c == nil {
			s.log.Warn("enrollment references missing course", "user", userID, "course", id)
			continue
		}
		courses = append(courses, *c)
	}
	return courses, nil
}
