package models

// Level is a CEFR proficiency tier. Tiers are ordered a1 < a2 < ... < c2.
type Level string

const (
	LevelA1 Level = "a1"
	LevelA2 Level = "a2"
	LevelB1 Level = "b1"
	LevelB2 Level = "b2"
	LevelC1 Level = "c1"
	LevelC2 Level = "c2"
)

var levels = []Level{LevelA1, LevelA2, LevelB1, LevelB2, LevelC1, LevelC2}

var levelLabels = map[Level]string{
	LevelA1: "Beginner",
	LevelA2: "Elementary",
	LevelB1: "Intermediate",
	LevelB2: "Upper-Intermediate",
	LevelC1: "Advanced",
	LevelC2: "Mastery",
}

// Label returns the human readable name, or the raw value for unknown tiers.
func (l Level) Label() string {
	if label, ok := levelLabels[l]; ok {
		return label
	}
	return string(l)
}

// Rank returns the 1-based position of the tier, 0 when unknown.
func (l Level) Rank() int {
	for i, lv := range levels {
		if lv == l {
			return i + 1
		}
	}
	return 0
}

func (l Level) Valid() bool { return l.Rank() > 0 }

// LessonType selects which payload fields of a Lesson are populated.
type LessonType string

const (
	LessonVideo     LessonType = "video"
	LessonText      LessonType = "text"
	LessonShadowing LessonType = "shadowing"
)

type VideoProvider string

const (
	ProviderYouTube VideoProvider = "youtube"
	ProviderGDrive  VideoProvider = "gdrive"
)
