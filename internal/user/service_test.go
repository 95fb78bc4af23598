package user

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
	if err := db.AutoMigrate(&User{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestCreateOrFetch_IdempotentOnNormalizedEmail(t *testing.T) {
	svc := NewService(NewRepo(openTestDB(t)))
	ctx := context.Background()

	u1, created, err := svc.CreateOrFetch(ctx, "Ava", "  Ava.Fetch@Example.COM ", nil)
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	if !created {
		t.Fatalf("expected first call to create")
	}
	if u1.Email != "ava.fetch@example.com" {
		t.Fatalf("email not normalized: %q", u1.Email)
	}

	u2, created, err := svc.CreateOrFetch(ctx, "Somebody Else", "ava.fetch@example.com", nil)
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if created {
		t.Fatalf("second call must fetch, not create")
	}
	if u2.ID != u1.ID {
		t.Fatalf("expected same user, got %q vs %q", u2.ID, u1.ID)
	}
	if u2.Name != "Ava" {
		t.Fatalf("existing record must win, got name %q", u2.Name)
	}
}

func TestSignupLogin_RoundTrip(t *testing.T) {
	svc := NewService(NewRepo(openTestDB(t)))
	ctx := context.Background()

	u, err := svc.Signup(ctx, "Ben", "ben.roundtrip@example.com", "hunter2hunter2", nil)
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if u.PasswordHash == nil || *u.PasswordHash == "hunter2hunter2" {
		t.Fatalf("password must be stored hashed")
	}

	got, err := svc.Login(ctx, "Ben.Roundtrip@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("login resolved wrong user")
	}
}

func TestLogin_UniformErrorForBadCredentials(t *testing.T) {
	svc := NewService(NewRepo(openTestDB(t)))
	ctx := context.Background()

	if _, err := svc.Signup(ctx, "Cal", "cal.uniform@example.com", "correct-horse", nil); err != nil {
		t.Fatalf("signup: %v", err)
	}

	_, errWrongPass := svc.Login(ctx, "cal.uniform@example.com", "battery-staple")
	_, errNoUser := svc.Login(ctx, "nobody.uniform@example.com", "whatever")

	if !errors.Is(errWrongPass, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v", errWrongPass)
	}
	if !errors.Is(errNoUser, ErrInvalidCredentials) {
		t.Fatalf("unknown email: got %v", errNoUser)
	}
}

func TestSignup_EmailTaken(t *testing.T) {
	svc := NewService(NewRepo(openTestDB(t)))
	ctx := context.Background()

	if _, err := svc.Signup(ctx, "Dee", "dee.taken@example.com", "first-password", nil); err != nil {
		t.Fatalf("signup: %v", err)
	}
	_, err := svc.Signup(ctx, "Imposter", "Dee.Taken@example.com", "other-password", nil)
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestSignup_AdoptsLegacyPasswordlessRecord(t *testing.T) {
	svc := NewService(NewRepo(openTestDB(t)))
	ctx := context.Background()

	legacy, _, err := svc.CreateOrFetch(ctx, "Eli", "eli.legacy@example.com", nil)
	if err != nil {
		t.Fatalf("create legacy: %v", err)
	}

	adopted, err := svc.Signup(ctx, "Eli Updated", "eli.legacy@example.com", "new-password", &models.SelfAssessment{PersonalityType: "INFP"})
	if err != nil {
		t.Fatalf("signup over legacy: %v", err)
	}
	if adopted.ID != legacy.ID {
		t.Fatalf("adoption must keep the record, got %q vs %q", adopted.ID, legacy.ID)
	}
	if adopted.PasswordHash == nil {
		t.Fatalf("credential not adopted")
	}

	if _, err := svc.Login(ctx, "eli.legacy@example.com", "new-password"); err != nil {
		t.Fatalf("login after adoption: %v", err)
	}
}

func TestUpdateAssessment_UnknownUser(t *testing.T) {
	svc := NewService(NewRepo(openTestDB(t)))

	err := svc.UpdateAssessment(context.Background(), "01NOSUCHUSER00000000000000", &models.SelfAssessment{})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
