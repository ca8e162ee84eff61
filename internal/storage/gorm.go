package storage

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/s/lms/internal/models"
)

// GormStore reads and writes the collections through gorm.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Courses() Collection[models.Course] {
	return &gormCollection[models.Course]{db: s.db, name: "courses"}
}

func (s *GormStore) Lessons() Collection[models.Lesson] {
	return &gormCollection[models.Lesson]{db: s.db, name: "lessons"}
}

func (s *GormStore) Enrollments() Collection[models.Enrollment] {
	return &gormCollection[models.Enrollment]{db: s.db, name: "enrollments"}
}

func (s *GormStore) Progress() Collection[models.Progress] {
	return &gormCollection[models.Progress]{db: s.db, name: "progress"}
}

func (s *GormStore) InviteCodes() Collection[models.InviteCode] {
	return &gormCollection[models.InviteCode]{db: s.db, name: "invite_codes"}
}

// SaveProgress upserts on the unique (user_id, lesson_id) index.
// A concurrent insert for the same pair surfaces as a duplicate key and is
// retried once as an update.
func (s *GormStore) SaveProgress(ctx context.Context, p *models.Progress) error {
	err := s.saveProgress(ctx, p)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		p.ID = ""
		err = s.saveProgress(ctx, p)
	}
	return Unavailable("save progress", err)
}

func (s *GormStore) saveProgress(ctx context.Context, p *models.Progress) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND lesson_id = ?", p.UserID, p.LessonID).
		Assign(map[string]any{
			"completed":       p.Completed,
			"watched_seconds": p.WatchedSeconds,
			"last_position":   p.LastPosition,
			"completed_at":    p.CompletedAt,
		}).
		FirstOrCreate(p).Error
}

// RedeemInvite locks the invite row for the whole transaction, so
// redemptions of one code are serialized. The partial unique index on open
// enrollments catches a concurrent redemption through another code for the
// same course; that transaction is retried once and then finds the winner.
func (s *GormStore) RedeemInvite(ctx context.Context, inviteID string, e *models.Enrollment) (RedeemOutcome, error) {
	pending := *e
	outcome, err := s.redeemInvite(ctx, inviteID, e)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		*e = pending
		outcome, err = s.redeemInvite(ctx, inviteID, e)
	}
	if err != nil {
		return 0, Unavailable("redeem invite", err)
	}
	return outcome, nil
}

func (s *GormStore) redeemInvite(ctx context.Context, inviteID string, e *models.Enrollment) (RedeemOutcome, error) {
	outcome := RedeemExhausted
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ic models.InviteCode
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", inviteID).
			Take(&ic).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		var existing models.Enrollment
		err = tx.Where("user_id = ? AND course_id = ? AND status <> ?", e.UserID, e.CourseID, models.EnrollmentExpired).
			Order("created_at, id").
			First(&existing).Error
		if err == nil {
			*e = existing
			outcome = RedeemExisting
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		res := tx.Model(&models.InviteCode{}).
			Where("id = ? AND is_active = ? AND current_uses < max_uses", inviteID, true).
			UpdateColumn("current_uses", gorm.Expr("current_uses + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return nil
		}
		if err := tx.Create(e).Error; err != nil {
			return err
		}
		outcome = RedeemCreated
		return nil
	})
	return outcome, err
}

type gormCollection[T any] struct {
	db   *gorm.DB
	name string
}

func (c *gormCollection[T]) FindAll(ctx context.Context, conds ...Cond) ([]T, error) {
	var rows []T
	if err := c.query(ctx, conds).Find(&rows).Error; err != nil {
		return nil, Unavailable("find "+c.name, err)
	}
	return rows, nil
}

func (c *gormCollection[T]) FindOne(ctx context.Context, conds ...Cond) (*T, error) {
	var row T
	err := c.query(ctx, conds).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, Unavailable("find one "+c.name, err)
	}
	return &row, nil
}

func (c *gormCollection[T]) query(ctx context.Context, conds []Cond) *gorm.DB {
	tx := c.db.WithContext(ctx).Model(new(T))
	if len(conds) > 0 {
		tx = tx.Clauses(clause.Where{Exprs: whereExprs(conds)})
	}
	return tx.Order("created_at, id")
}

func whereExprs(conds []Cond) []clause.Expression {
	exprs := make([]clause.Expression, 0, len(conds))
	for _, cond := range conds {
		col := clause.Column{Name: cond.Column}
		if s, ok := cond.Value.(string); ok && cond.Fold {
			exprs = append(exprs, clause.Expr{SQL: "UPPER(?) = ?", Vars: []any{col, strings.ToUpper(s)}})
			continue
		}
		exprs = append(exprs, clause.Eq{Column: col, Value: cond.Value})
	}
	return exprs
}
