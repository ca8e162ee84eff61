package database

import (
	"time"

	"github.com/s/lms/internal/models"
	"github.com/s/lms/internal/storage"
)

// Fixtures returns the demo catalog: four courses (one unpublished), ten
// lessons, one student with two active enrollments and three progress rows,
// and two invite codes. Timestamps are relative to now.
func Fixtures(now time.Time) storage.Dataset {
	var (
		yesterday = now.Add(-24 * time.Hour)
		lastWeek  = now.Add(-7 * 24 * time.Hour)
		lastMonth = now.Add(-30 * 24 * time.Hour)
	)
	base := func(id string, created time.Time) models.Base {
		return models.Base{ID: id, CreatedAt: created, UpdatedAt: now}
	}
	welcomeExpiry := time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)

	return storage.Dataset{
		Courses: []models.Course{
			{
				Base:        base("crs_foundations01", lastMonth),
				Title:       "English Foundations",
				Slug:        "english-foundations",
				Description: "<p>Build a rock-solid foundation in English with this comprehensive beginner course.</p>",
				Thumbnail:   "foundations.jpg",
				Level:       models.LevelA1,
				Published:   true,
				Order:       1,
			},
			{
				Base:        base("crs_conversatn01", lastMonth),
				Title:       "Everyday Conversations",
				Slug:        "everyday-conversations",
				Description: "<p>Learn practical English for real-life situations.</p>",
				Thumbnail:   "conversations.jpg",
				Level:       models.LevelA2,
				Published:   true,
				Order:       2,
			},
			{
				Base:        base("crs_business0001", lastWeek),
				Title:       "Business English Pro",
				Slug:        "business-english-pro",
				Description: "<p>Professional English for the modern workplace.</p>",
				Thumbnail:   "business.jpg",
				Level:       models.LevelB1,
				Published:   true,
				Order:       3,
			},
			{
				Base:        base("crs_advanced0001", yesterday),
				Title:       "Advanced English Mastery",
				Slug:        "advanced-english-mastery",
				Description: "<p>Take your English to the next level with advanced vocabulary, idioms, and nuanced expression.</p>",
				Thumbnail:   "advanced.jpg",
				Level:       models.LevelC1,
				Published:   false,
				Order:       4,
			},
		},
		Lessons: []models.Lesson{
			video(base("les_ef_welcome01", lastMonth), "crs_foundations01", "Welcome to the Course", "welcome-to-the-course", 1, 5, true, "dQw4w9WgXcQ"),
			video(base("les_ef_alphabet01", lastMonth), "crs_foundations01", "The English Alphabet", "the-english-alphabet", 2, 15, false, "alphabet123"),
			video(base("les_ef_greetings1", lastMonth), "crs_foundations01", "Basic Greetings", "basic-greetings", 3, 12, false, "greetings123"),
			{
				Base:            base("les_ef_greet_shd", lastMonth),
				CourseID:        "crs_foundations01",
				Title:           "Greetings Shadowing Practice",
				Slug:            "greetings-shadowing-practice",
				Description:     "Practice pronunciation with native speaker audio.",
				Type:            models.LessonShadowing,
				Order:           4,
				DurationMinutes: 8,
				Published:       true,
				AudioFile:       "greetings_audio.mp3",
				Transcript: []models.TranscriptSegment{
					{ID: "seg_01", Start: 0.0, End: 2.0, Text: "Hello! How are you?", Phonetic: "həˈloʊ haʊ ɑr juː"},
					{ID: "seg_02", Start: 2.5, End: 4.5, Text: "I'm fine, thank you.", Phonetic: "aɪm faɪn θæŋk juː"},
					{ID: "seg_03", Start: 5.0, End: 6.5, Text: "Nice to meet you!", Phonetic: "naɪs tuː miːt juː"},
					{ID: "seg_04", Start: 7.0, End: 9.0, Text: "Nice to meet you too!", Phonetic: "naɪs tuː miːt juː tuː"},
					{ID: "seg_05", Start: 9.5, End: 11.0, Text: "What is your name?", Phonetic: "wʌt ɪz jɔːr neɪm"},
					{ID: "seg_06", Start: 11.5, End: 13.5, Text: "My name is John.", Phonetic: "maɪ neɪm ɪz dʒɒn"},
					{ID: "seg_07", Start: 14.0, End: 15.5, Text: "See you later!", Phonetic: "siː juː ˈleɪtər"},
					{ID: "seg_08", Start: 16.0, End: 17.0, Text: "Goodbye!", Phonetic: "ɡʊdˈbaɪ"},
				},
			},
			video(base("les_ef_numbers01", lastMonth), "crs_foundations01", "Numbers 1-20", "numbers-1-20", 5, 10, false, "numbers123"),

			video(base("les_ec_coffee001", lastMonth), "crs_conversatn01", "At the Coffee Shop", "at-the-coffee-shop", 1, 18, true, "coffee123"),
			{
				Base:            base("les_ec_coffee_sh", lastMonth),
				CourseID:        "crs_conversatn01",
				Title:           "Coffee Shop Shadowing",
				Slug:            "coffee-shop-shadowing",
				Description:     "Practice ordering with native speaker dialogue.",
				Type:            models.LessonShadowing,
				Order:           2,
				DurationMinutes: 6,
				Published:       true,
				AudioFile:       "coffee_shop.mp3",
				Transcript: []models.TranscriptSegment{
					{ID: "cs_01", Start: 0.0, End: 1.5, Text: "Hi, can I help you?"},
					{ID: "cs_02", Start: 2.0, End: 4.5, Text: "Yes, I'd like a latte, please."},
					{ID: "cs_03", Start: 5.0, End: 7.0, Text: "What size would you like?"},
					{ID: "cs_04", Start: 7.5, End: 9.0, Text: "Medium, please."},
					{ID: "cs_05", Start: 9.5, End: 11.5, Text: "Would you like anything else?"},
					{ID: "cs_06", Start: 12.0, End: 14.0, Text: "A chocolate muffin, please."},
					{ID: "cs_07", Start: 14.5, End: 16.5, Text: "That'll be six dollars."},
					{ID: "cs_08", Start: 17.0, End: 18.0, Text: "Here you go."},
					{ID: "cs_09", Start: 18.5, End: 20.0, Text: "Thank you! Have a nice day!"},
				},
			},
			video(base("les_ec_shopping1", lastMonth), "crs_conversatn01", "Shopping for Clothes", "shopping-for-clothes", 3, 20, false, "shopping123"),

			video(base("les_be_emails001", lastWeek), "crs_business0001", "Professional Email Writing", "professional-email-writing", 1, 25, true, "emails123"),
			video(base("les_be_meetings1", lastWeek), "crs_business0001", "Meeting Vocabulary", "meeting-vocabulary", 2, 22, false, "meetings123"),
		},
		Enrollments: []models.Enrollment{
			{
				Base:       base("enr_john_found01", lastWeek),
				UserID:     "usr_student00001",
				CourseID:   "crs_foundations01",
				Status:     models.EnrollmentActive,
				EnrolledAt: lastWeek,
			},
			{
				Base:       base("enr_john_conv001", lastWeek),
				UserID:     "usr_student00001",
				CourseID:   "crs_conversatn01",
				Status:     models.EnrollmentActive,
				EnrolledAt: lastWeek,
			},
		},
		Progress: []models.Progress{
			{
				Base:           base("prg_john_welc001", lastWeek),
				UserID:         "usr_student00001",
				LessonID:       "les_ef_welcome01",
				Completed:      true,
				WatchedSeconds: 300,
				LastPosition:   300,
				CompletedAt:    &lastWeek,
			},
			{
				Base:           base("prg_john_alph001", lastWeek),
				UserID:         "usr_student00001",
				LessonID:       "les_ef_alphabet01",
				Completed:      true,
				WatchedSeconds: 900,
				LastPosition:   900,
				CompletedAt:    &yesterday,
			},
			{
				Base:           base("prg_john_greet01", yesterday),
				UserID:         "usr_student00001",
				LessonID:       "les_ef_greetings1",
				WatchedSeconds: 420,
				LastPosition:   420,
			},
		},
		InviteCodes: []models.InviteCode{
			{
				Base:        base("inv_welcome2024a", lastMonth),
				Code:        "WELCOME2024",
				CourseID:    "crs_foundations01",
				MaxUses:     100,
				CurrentUses: 23,
				ExpiresAt:   &welcomeExpiry,
				IsActive:    true,
				AutoApprove: true,
				CreatedBy:   "usr_admin0000001",
			},
			{
				Base:        base("inv_vip2024abcd1", lastWeek),
				Code:        "VIP2024",
				CourseID:    "crs_conversatn01",
				MaxUses:     10,
				CurrentUses: 2,
				IsActive:    true,
				CreatedBy:   "usr_admin0000001",
			},
		},
	}
}

func video(b models.Base, courseID, title, slug string, order, minutes int, free bool, videoID string) models.Lesson {
	return models.Lesson{
		Base:            b,
		CourseID:        courseID,
		Title:           title,
		Slug:            slug,
		Type:            models.LessonVideo,
		Order:           order,
		DurationMinutes: minutes,
		Published:       true,
		IsFree:          free,
		VideoURL:        "https://www.youtube.com/watch?v=" + videoID,
		VideoProvider:   models.ProviderYouTube,
		VideoID:         videoID,
	}
}
