package advice

import (
	"time"

	"github.com/luvvtapp/coach/internal/models"
)

// Record is one generated action plan. Immutable once created, except for
// deletion.
type Record struct {
	ID             string                 `gorm:"primaryKey;size:26" json:"advice_id"`
	UserID         string                 `gorm:"size:26;index;not null" json:"user_id"`
	Topic          string                 `gorm:"type:varchar(255);not null" json:"topic"`
	Situation      string                 `gorm:"type:text;not null" json:"situation"`
	Content        string                 `gorm:"type:text;not null" json:"content"`
	PartnerProfile *models.PartnerProfile `gorm:"serializer:json" json:"partner_profile,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
}

func (Record) TableName() string { return "advice_records" }

// PreviewLimit is the character bound for list projections.
const PreviewLimit = 180

// Preview truncates content for list views, appending an ellipsis when
// anything was cut. Runs on runes so multibyte text never splits.
func (r *Record) Preview() string {
	runes := []rune(r.Content)
	if len(runes) <= PreviewLimit {
		return r.Content
	}
	return string(runes[:PreviewLimit]) + "…"
}
