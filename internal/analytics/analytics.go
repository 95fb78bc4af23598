// Package analytics records coarse product events consumed off the queue
// by cmd/worker. Nothing in the request path reads this table.
package analytics

import (
	"context"
	"time"

	"gorm.io/gorm"
)

const (
	KindChatTurn      = "chat.turn"
	KindAdviceCreated = "advice.created"
)

type Event struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	Kind      string    `gorm:"type:varchar(32);index;not null"`
	UserID    string    `gorm:"size:26;index;not null"`
	EntityID  string    `gorm:"size:26;not null"`
	Tokens    int       `gorm:"not null;default:0"`
	CreatedAt time.Time
}

func (Event) TableName() string { return "analytics_events" }

type Recorder struct {
	db *gorm.DB
}

func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

func (r *Recorder) Record(ctx context.Context, e *Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}
