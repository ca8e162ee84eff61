package lms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s/lms/internal/models"
	"github.com/s/lms/internal/storage"
)

func TestCanAccessLesson(t *testing.T) {
	e := newEnv(t, func(ds *storage.Dataset) {
		ds.Enrollments = append(ds.Enrollments, models.Enrollment{
			Base:     models.Base{ID: "enr_jane_busi001", CreatedAt: testNow},
			UserID:   "usr_jane",
			CourseID: "crs_business0001",
			Status:   models.EnrollmentExpired,
		})
	})
	ctx := context.Background()

	lessons := map[string]models.Lesson{}
	for _, courseID := range []string{"crs_foundations01", "crs_conversatn01", "crs_business0001"} {
		ls, err := e.svc.CourseLessons(ctx, courseID)
		require.NoError(t, err)
		for _, l := range ls {
			lessons[l.ID] = l
		}
	}

	t.Run("free lessons are open to everyone", func(t *testing.T) {
		for _, l := range lessons {
			if !l.IsFree {
				continue
			}
			for _, user := range []string{"", john, "usr_jane", "usr_nobody"} {
				ok, err := e.svc.CanAccessLesson(ctx, user, l)
				require.NoError(t, err)
				assert.True(t, ok, "lesson %s user %q", l.ID, user)
			}
		}
	})

	t.Run("paid lessons are closed to anonymous callers", func(t *testing.T) {
		for _, l := range lessons {
			if l.IsFree {
				continue
			}
			ok, err := e.svc.CanAccessLesson(ctx, "", l)
			require.NoError(t, err)
			assert.False(t, ok, l.ID)
		}
	})

	tests := []struct {
		name   string
		user   string
		lesson string
		want   bool
	}{
		{"enrolled", john, "les_ef_alphabet01", true},
		{"enrolled other course", john, "les_ec_shopping1", true},
		{"not enrolled", john, "les_be_meetings1", false},
		{"expired enrollment", "usr_jane", "les_be_meetings1", false},
		{"unknown user", "usr_nobody", "les_ef_alphabet01", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := e.svc.CanAccessLesson(ctx, tt.user, lessons[tt.lesson])
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestIsEnrolled(t *testing.T) {
	e := newEnv(t, func(ds *storage.Dataset) {
		ds.Enrollments = append(ds.Enrollments,
			models.Enrollment{
				Base:     models.Base{ID: "enr_john_busi001", CreatedAt: testNow},
				UserID:   john,
				CourseID: "crs_business0001",
				Status:   models.EnrollmentExpired,
			},
			// duplicate active row for an already enrolled course
			models.Enrollment{
				Base:     models.Base{ID: "enr_john_found02", CreatedAt: testNow},
				UserID:   john,
				CourseID: "crs_foundations01",
				Status:   models.EnrollmentActive,
			},
		)
	})
	ctx := context.Background()

	for course, want := range map[string]bool{
		"crs_foundations01": true,
		"crs_conversatn01":  true,
		"crs_business0001":  false,
		"crs_advanced0001":  false,
	} {
		ok, err := e.svc.IsEnrolled(ctx, john, course)
		require.NoError(t, err)
		assert.Equal(t, want, ok, course)
	}

	ok, err := e.svc.IsEnrolled(ctx, "", "crs_foundations01")
	require.NoError(t, err)
	assert.False(t, ok)

	ids, err := e.svc.EnrolledCourseIDs(ctx, john)
	require.NoError(t, err)
	// both fixture enrollments share a timestamp, so the id breaks the tie
	assert.Equal(t, []string{"crs_conversatn01", "crs_foundations01"}, ids)

	courses, err := e.svc.EnrolledCourses(ctx, john)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "Everyday Conversations", courses[0].Title)
}

func TestEnrolledCourses_SkipsDanglingCourse(t *testing.T) {
	e := newEnv(t, func(ds *storage.Dataset) {
		ds.Enrollments = append(ds.Enrollments, models.Enrollment{
			Base:     models.Base{ID: "enr_john_gone001", CreatedAt: testNow},
			UserID:   john,
			CourseID: "crs_deleted",
			Status:   models.EnrollmentActive,
		})
	})

	courses, err := e.svc.EnrolledCourses(context.Background(), john)
	require.NoError(t, err)
	assert.Len(t, courses, 2)
}
