package relationship

import (
	"context"
	"errors"
	"testing"

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
	if err := db.AutoMigrate(&Relationship{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestCreate_AlwaysInserts(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	ctx := context.Background()
	userID := "01USERINSERT00000000000000"

	partner := models.PartnerProfile{Name: "Ava"}
	r1, err := repo.Create(ctx, userID, "romantic", partner)
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	r2, err := repo.Create(ctx, userID, "romantic", partner)
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if r1.ID == r2.ID {
		t.Fatalf("identical payloads must still get distinct ids")
	}

	rels, err := repo.ListByUser(ctx, userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rels) != 2 {
		t.Fatalf("expected 2 relationships, got %d", len(rels))
	}
}

func TestUpdate_ScopedByOwner(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	ctx := context.Background()

	rel, err := repo.Create(ctx, "01USEROWNERAAAAAAAAAAAAAAA", "friendship", models.PartnerProfile{Name: "Ben"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	err = repo.Update(ctx, rel.ID, "01USEROTHERBBBBBBBBBBBBBBB", "family", models.PartnerProfile{Name: "Eve"})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("wrong owner must read as not found, got %v", err)
	}

	// untouched
	rels, err := repo.ListByUser(ctx, "01USEROWNERAAAAAAAAAAAAAAA")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rels) != 1 || rels[0].RelationshipType != "friendship" || rels[0].PartnerProfile.Name != "Ben" {
		t.Fatalf("record mutated by non-owner: %+v", rels)
	}

	if err := repo.Update(ctx, rel.ID, rel.UserID, "family", models.PartnerProfile{Name: "Ben"}); err != nil {
		t.Fatalf("owner update: %v", err)
	}
}

func TestDelete_ScopedByOwner(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	ctx := context.Background()

	rel, err := repo.Create(ctx, "01USERDELAAAAAAAAAAAAAAAAA", "family", models.PartnerProfile{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.Delete(ctx, rel.ID, "01USERDELOTHERBBBBBBBBBBBB"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("wrong owner must read as not found, got %v", err)
	}
	if err := repo.Delete(ctx, rel.ID, rel.UserID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if err := repo.Delete(ctx, rel.ID, rel.UserID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("double delete must read as not found, got %v", err)
	}
}
