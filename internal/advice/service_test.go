package advice

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/luvvtapp/coach/internal/ai"
	"github.com/luvvtapp/coach/internal/models"
)

type fakeProvider struct {
	last   []ai.Message
	params ai.GenParams
	reply  string
	err    error
}

func (p *fakeProvider) Chat(ctx context.Context, messages []ai.Message, params ai.GenParams) (*ai.Reply, error) {
	_ = ctx
	p.last = append([]ai.Message(nil), messages...)
	p.params = params
	if p.err != nil {
		return nil, p.err
	}
	return &ai.Reply{Content: p.reply, TotalTokens: 99}, nil
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(gormsqlite.Open("file::memory:?cache=shared"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func newTestService(t *testing.T, db *gorm.DB, prov *fakeProvider) *Service {
	t.Helper()
	reg := ai.NewRegistry()
	reg.Register("fake", func(ctx context.Context, model string) (ai.Provider, error) {
		_ = ctx
		_ = model
		return prov, nil
	})
	return NewService(NewRepo(db), reg, "fake", "default", nil)
}

func TestGenerate_PersistsOneRecord(t *testing.T) {
	db := openTestDB(t)
	prov := &fakeProvider{reply: "Summary: talk it out."}
	svc := newTestService(t, db, prov)

	rec, err := svc.Generate(context.Background(), GenerateRequest{
		UserID:         "01USERADVICEAAAAAAAAAAAAAA",
		Topic:          "date night",
		Situation:      "we keep postponing plans",
		PartnerProfile: &models.PartnerProfile{Name: "Ava", LoveLanguage: "Quality Time"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if rec.Content != "Summary: talk it out." {
		t.Fatalf("unexpected content: %q", rec.Content)
	}

	// exactly one exchange: system + single user message
	if len(prov.last) != 2 {
		t.Fatalf("expected 2 provider messages, got %d", len(prov.last))
	}
	if prov.last[0].Role != "system" {
		t.Fatalf("first msg should be system, got %q", prov.last[0].Role)
	}
	if !strings.Contains(prov.last[1].Content, "Topic: date night") {
		t.Fatalf("user msg missing topic: %q", prov.last[1].Content)
	}
	if prov.params.Temperature != 0.7 || prov.params.MaxTokens != 600 {
		t.Fatalf("unexpected generation params: %+v", prov.params)
	}

	var count int64
	if err := db.Model(&Record{}).Where("user_id = ?", rec.UserID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one record, got %d", count)
	}
}

func TestGenerate_ProviderFailureWritesNothing(t *testing.T) {
	db := openTestDB(t)
	prov := &fakeProvider{err: errors.New("upstream down")}
	svc := newTestService(t, db, prov)

	_, err := svc.Generate(context.Background(), GenerateRequest{
		UserID:    "01USERADVICEBBBBBBBBBBBBBB",
		Topic:     "boundaries",
		Situation: "in-laws visit too often",
	})
	if err == nil {
		t.Fatalf("expected provider error")
	}

	var count int64
	if err := db.Model(&Record{}).Where("user_id = ?", "01USERADVICEBBBBBBBBBBBBBB").Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("failed generation must persist nothing, found %d records", count)
	}
}

func TestPreview_Truncation(t *testing.T) {
	short := &Record{Content: "brief advice"}
	if short.Preview() != "brief advice" {
		t.Fatalf("short content must pass through, got %q", short.Preview())
	}

	long := &Record{Content: strings.Repeat("日", PreviewLimit+20)}
	p := long.Preview()
	if utf8.RuneCountInString(p) != PreviewLimit+1 {
		t.Fatalf("expected %d runes incl ellipsis, got %d", PreviewLimit+1, utf8.RuneCountInString(p))
	}
	if !strings.HasSuffix(p, "…") {
		t.Fatalf("truncated preview must end with ellipsis: %q", p)
	}
	if !utf8.ValidString(p) {
		t.Fatalf("preview split a multibyte rune")
	}

	exact := &Record{Content: strings.Repeat("a", PreviewLimit)}
	if exact.Preview() != exact.Content {
		t.Fatalf("content at the limit must not be truncated")
	}
}
