package user

import (
	"strings"
	"time"

	"github.com/luvvtapp/coach/internal/models"
)

type User struct {
	ID    string `gorm:"primaryKey;size:26" json:"user_id"`
	Name  string `gorm:"type:varchar(128);not null" json:"name"`
	Email string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`

	// nil for legacy passwordless records created via create-or-fetch.
	PasswordHash *string `gorm:"type:varchar(128)" json:"-"`

	SelfAssessment *models.SelfAssessment `gorm:"serializer:json" json:"self_assessment,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string { return "users" }

// NormalizeEmail is the natural lookup key: lower-cased and trimmed.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
