package session

import (
	"context"

	"gorm.io/gorm"

	"github.com/luvvtapp/coach/internal/models"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(ctx context.Context, s *Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *Repo) GetBySessionID(ctx context.Context, sessionID string) (*Session, error) {
	var s Session
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// ListByUser returns sessions most-recently-updated first. Turn history is
// never loaded here — list projections stay small by design.
func (r *Repo) ListByUser(ctx context.Context, userID string, limit int) ([]Session, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var out []Session
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateContext refreshes the session's relationship tag, derived context
// type and partner snapshot, and bumps updated_at.
func (r *Repo) UpdateContext(ctx context.Context, sessionID, relationshipType, contextType string, partner *models.PartnerProfile) error {
	updates := map[string]any{
		"relationship_type": relationshipType,
		"context_type":      contextType,
	}
	if partner != nil {
		updates["partner_profile"] = partner
	}
	return r.db.WithContext(ctx).Model(&Session{}).
		Where("session_id = ?", sessionID).
		Updates(updates).Error
}

// AppendTurn inserts one turn and refreshes the session's updated_at so
// list ordering tracks activity.
func (r *Repo) AppendTurn(ctx context.Context, t *Turn) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&Session{}).
		Where("session_id = ?", t.SessionID).
		Update("updated_at", t.CreatedAt).Error
}

// ListRecentTurnsDesc returns the newest turns first; callers reverse into
// chronological order when composing the model context.
func (r *Repo) ListRecentTurnsDesc(ctx context.Context, sessionID string, limit int) ([]Turn, error) {
	if limit <= 0 {
		limit = 10
	}
	var turns []Turn
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("id DESC").
		Limit(limit).
		Find(&turns).Error; err != nil {
		return nil, err
	}
	return turns, nil
}

// ListTurnsAsc returns the full ordered history.
func (r *Repo) ListTurnsAsc(ctx context.Context, sessionID string) ([]Turn, error) {
	var turns []Turn
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("id ASC").
		Find(&turns).Error; err != nil {
		return nil, err
	}
	return turns, nil
}

// DeleteBySessionID removes the session and its turns in one transaction,
// so a failure mid-way never leaves orphaned turn rows.
func (r *Repo) DeleteBySessionID(ctx context.Context, sessionID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("session_id = ?", sessionID).Delete(&Session{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("session_id = ?", sessionID).Delete(&Turn{}).Error
	})
}
