package relationship

import (
	"context"

	"gorm.io/gorm"

	"github.com/luvvtapp/coach/internal/common"
	"github.com/luvvtapp/coach/internal/models"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

// Create always inserts a new record.
func (r *Repo) Create(ctx context.Context, userID, relationshipType string, partner models.PartnerProfile) (*Relationship, error) {
	id, err := common.NewULID()
	if err != nil {
		return nil, err
	}
	rel := &Relationship{
		ID:               id,
		UserID:           userID,
		RelationshipType: relationshipType,
		PartnerProfile:   partner,
	}
	if err := r.db.WithContext(ctx).Create(rel).Error; err != nil {
		return nil, err
	}
	return rel, nil
}

// Update replaces the type and partner profile, scoped by owner. A correct
// id with the wrong owner reads as not-found, never as success.
func (r *Repo) Update(ctx context.Context, id, userID, relationshipType string, partner models.PartnerProfile) error {
	res := r.db.WithContext(ctx).Model(&Relationship{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{
			"relationship_type": relationshipType,
			"partner_profile":   partner,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id, userID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Relationship{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repo) ListByUser(ctx context.Context, userID string) ([]Relationship, error) {
	var rels []Relationship
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rels).Error; err != nil {
		return nil, err
	}
	return rels, nil
}
