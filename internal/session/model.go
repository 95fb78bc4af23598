package session

import (
	"time"

	"github.com/luvvtapp/coach/internal/models"
)

// Relationship-type tags accepted on a session. Unknown tags are tolerated
// by the prompt builder, so these are advisory, not validated invariants.
const (
	TypeGeneral    = "general"
	TypeRomantic   = "romantic"
	TypeFriendship = "friendship"
	TypeFamily     = "family"
	TypeSelfGrowth = "self-growth"
)

// Context-type tag: "partner" when a partner snapshot is attached and the
// relationship type is not general, else "general". Recomputed on every
// chat call.
const (
	ContextGeneral = "general"
	ContextPartner = "partner"
)

// DeriveContextType implements the tag rule in one place.
func DeriveContextType(relationshipType string, partner *models.PartnerProfile) string {
	if partner != nil && relationshipType != TypeGeneral {
		return ContextPartner
	}
	return ContextGeneral
}

type Session struct {
	ID               uint64                 `gorm:"primaryKey;autoIncrement" json:"-"`
	SessionID        string                 `gorm:"type:varchar(26);uniqueIndex;not null" json:"session_id"`
	UserID           string                 `gorm:"size:26;index;not null" json:"user_id"`
	RelationshipType string                 `gorm:"type:varchar(32);not null" json:"relationship_type"`
	ContextType      string                 `gorm:"type:varchar(16);not null" json:"context_type"`
	PartnerProfile   *models.PartnerProfile `gorm:"serializer:json" json:"partner_profile,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

func (Session) TableName() string { return "chat_sessions" }

// Turn rows are append-only; the autoincrement id gives the strict insertion
// order the conversation window relies on.
type Turn struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	SessionID string    `gorm:"type:varchar(26);index;not null" json:"-"`
	Role      string    `gorm:"type:varchar(16);not null" json:"role"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"timestamp"`
}

func (Turn) TableName() string { return "chat_turns" }
