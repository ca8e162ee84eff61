package database

import (
	"github.com/s/lms/internal/storage"
	"gorm.io/gorm"
)

// Seed inserts every record of ds that is not present yet (matched by ID).
// Existing rows are left untouched.
func Seed(db *gorm.DB, ds storage.Dataset) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for i := range ds.Courses {
			if err := tx.FirstOrCreate(&ds.Courses[i], "id = ?", ds.Courses[i].ID).Error; err != nil {
				return err
			}
		}
		for i := range ds.Lessons {
			if err := tx.FirstOrCreate(&ds.Lessons[i], "id = ?", ds.Lessons[i].ID).Error; err != nil {
				return err
			}
		}
		for i := range ds.Enrollments {
			if err := tx.FirstOrCreate(&ds.Enrollments[i], "id = ?", ds.Enrollments[i].ID).Error; err != nil {
				return err
			}
		}
		for i := range ds.Progress {
			if err := tx.FirstOrCreate(&ds.Progress[i], "id = ?", ds.Progress[i].ID).Error; err != nil {
				return err
			}
		}
		for i := range ds.InviteCodes {
			if err := tx.FirstOrCreate(&ds.InviteCodes[i], "id = ?", ds.InviteCodes[i].ID).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
