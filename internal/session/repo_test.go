package session

import (
	"context"
	"errors"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/luvvtapp/coach/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(gormsqlite.Open("file::memory:?cache=shared"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&Session{}, &Turn{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestAppendTurn_BumpsSessionActivity(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	ctx := context.Background()
	userID := "01USERSESSAAAAAAAAAAAAAAAA"

	older := &Session{SessionID: "01SESSOLDER000000000000000", UserID: userID, RelationshipType: TypeGeneral, ContextType: ContextGeneral}
	newer := &Session{SessionID: "01SESSNEWER000000000000000", UserID: userID, RelationshipType: TypeGeneral, ContextType: ContextGeneral}
	if err := repo.Create(ctx, older); err != nil {
		t.Fatalf("create older: %v", err)
	}
	if err := repo.Create(ctx, newer); err != nil {
		t.Fatalf("create newer: %v", err)
	}

	// appending to the older session makes it the most recently active
	if err := repo.AppendTurn(ctx, &Turn{
		SessionID: older.SessionID,
		Role:      "user",
		Content:   "hello again",
		CreatedAt: time.Now().Add(time.Hour),
	}); err != nil {
		t.Fatalf("append: %v", err)
	}

	sessions, err := repo.ListByUser(ctx, userID, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].SessionID != older.SessionID {
		t.Fatalf("expected the appended-to session first, got %q", sessions[0].SessionID)
	}
}

func TestListRecentTurnsDesc_Window(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	ctx := context.Background()

	sess := &Session{SessionID: "01SESSWINDOW00000000000000", UserID: "01USERSESSBBBBBBBBBBBBBBBB", RelationshipType: TypeGeneral, ContextType: ContextGeneral}
	if err := repo.Create(ctx, sess); err != nil {
		t.Fatalf("create: %v", err)
	}
	for i := 0; i < 7; i++ {
		content := "msg-" + string(rune('a'+i))
		if err := repo.AppendTurn(ctx, &Turn{SessionID: sess.SessionID, Role: "user", Content: content}); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	turns, err := repo.ListRecentTurnsDesc(ctx, sess.SessionID, 3)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(turns) != 3 {
		t.Fatalf("expected 3 turns, got %d", len(turns))
	}
	if turns[0].Content != "msg-g" || turns[2].Content != "msg-e" {
		t.Fatalf("unexpected window order: %q .. %q", turns[0].Content, turns[2].Content)
	}
}

func TestDeleteBySessionID(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	ctx := context.Background()

	sess := &Session{SessionID: "01SESSDELETE00000000000000", UserID: "01USERSESSCCCCCCCCCCCCCCCC", RelationshipType: TypeGeneral, ContextType: ContextGeneral}
	if err := repo.Create(ctx, sess); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.AppendTurn(ctx, &Turn{SessionID: sess.SessionID, Role: "user", Content: "bye"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	if err := repo.DeleteBySessionID(ctx, sess.SessionID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetBySessionID(ctx, sess.SessionID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("session should be gone, got %v", err)
	}
	turns, err := repo.ListTurnsAsc(ctx, sess.SessionID)
	if err != nil {
		t.Fatalf("list turns: %v", err)
	}
	if len(turns) != 0 {
		t.Fatalf("turns should be gone, got %d", len(turns))
	}

	if err := repo.DeleteBySessionID(ctx, "01SESSMISSING0000000000000"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeriveContextType(t *testing.T) {
	partner := &models.PartnerProfile{Name: "Ava"}

	if got := DeriveContextType(TypeGeneral, nil); got != ContextGeneral {
		t.Fatalf("general/nil: %q", got)
	}
	if got := DeriveContextType(TypeRomantic, nil); got != ContextGeneral {
		t.Fatalf("romantic without partner: %q", got)
	}
	if got := DeriveContextType(TypeGeneral, partner); got != ContextGeneral {
		t.Fatalf("general with partner: %q", got)
	}
	if got := DeriveContextType(TypeRomantic, partner); got != ContextPartner {
		t.Fatalf("romantic with partner: %q", got)
	}
}
