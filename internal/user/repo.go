package user

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/luvvtapp/coach/internal/models"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *Repo) GetByID(ctx context.Context, id string) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail returns (nil, nil) when no record matches; callers branch on
// presence rather than unwrapping not-found.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "email = ?", NormalizeEmail(email)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateAssessment fully replaces the self-assessment sub-object.
func (r *Repo) UpdateAssessment(ctx context.Context, id string, a *models.SelfAssessment) error {
	res := r.db.WithContext(ctx).Model(&User{}).
		Where("id = ?", id).
		Update("self_assessment", a)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AdoptCredential attaches a password hash to a legacy passwordless record,
// refreshing name and assessment when the caller supplied them.
func (r *Repo) AdoptCredential(ctx context.Context, id, name, passwordHash string, a *models.SelfAssessment) error {
	updates := map[string]any{"password_hash": passwordHash}
	if name != "" {
		updates["name"] = name
	}
	if a != nil {
		updates["self_assessment"] = a
	}
	res := r.db.WithContext(ctx).Model(&User{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
