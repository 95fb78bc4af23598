package relationship

import (
	"time"

	"github.com/luvvtapp/coach/internal/models"
)

// Relationship holds one partner profile owned by a user. A user may hold
// any number of records of the same type; there is deliberately no
// uniqueness on (user_id, relationship_type).
type Relationship struct {
	ID               string                `gorm:"primaryKey;size:26" json:"relationship_id"`
	UserID           string                `gorm:"size:26;index;not null" json:"user_id"`
	RelationshipType string                `gorm:"type:varchar(32);not null" json:"relationship_type"`
	PartnerProfile   models.PartnerProfile `gorm:"serializer:json" json:"partner_profile"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

func (Relationship) TableName() string { return "relationships" }
