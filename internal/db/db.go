package db

import (
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/luvvtapp/coach/internal/advice"
	"github.com/luvvtapp/coach/internal/analytics"
	"github.com/luvvtapp/coach/internal/relationship"
	"github.com/luvvtapp/coach/internal/session"
	"github.com/luvvtapp/coach/internal/user"
)

// Connect opens the shared process-scoped gorm handle. The connection pool
// lives for the lifetime of the process; request-scoped code receives the
// handle, never opens its own.
func Connect(dsn string) *gorm.DB {
	// TranslateError turns driver duplicate-key errors into
	// gorm.ErrDuplicatedKey so the user service can detect races on the
	// email unique index.
	gdb, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	return gdb
}

// AutoMigrate creates the four document-style collections plus the
// analytics table. The unique index on users.email is part of the schema,
// so email uniqueness is enforced by storage rather than check-then-insert.
func AutoMigrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&user.User{},
		&session.Session{},
		&session.Turn{},
		&relationship.Relationship{},
		&advice.Record{},
		&analytics.Event{},
	)
}
