package user

import (
	"context"
	"errors"
	"testing"
)

type fakeUserRepo struct {
	byEmail map[string]*User
	nextID  int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return ErrEmailTaken
	}
	r.nextID++
	u.ID = r.nextID
	r.byEmail[u.Email] = u
	return nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) UpdateInviteCode(ctx context.Context, id int64, code string) error {
	for _, u := range r.byEmail {
		if u.ID == id {
			u.InviteCode = &code
			return nil
		}
	}
	return ErrUserNotFound
}

func (r *fakeUserRepo) IsInviteCodeTaken(ctx context.Context, code string) (bool, error) {
	for _, u := range r.byEmail {
		if u.InviteCode != nil && *u.InviteCode == code {
			return true, nil
		}
	}
	return false, nil
}

func TestRegisterAssignsInviteCode(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	created, err := svc.Register(context.Background(), " taro@example.com ", "secret", " Taro ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if created.Email != "taro@example.com" {
		t.Fatalf("expected trimmed email, got %q", created.Email)
	}
	if created.InviteCode == nil || len(*created.InviteCode) != 11 {
		t.Fatalf("expected formatted invite code, got %+v", created.InviteCode)
	}
	if created.FamilyID != nil {
		t.Fatalf("expected no family at registration")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo)

	if _, err := svc.Register(context.Background(), "taro@example.com", "a", "Taro"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), "taro@example.com", "b", "Jiro"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterRequiresEmailAndPassword(t *testing.T) {
	svc := NewService(newFakeUserRepo())
	if _, err := svc.Register(context.Background(), "", "secret", ""); err == nil {
		t.Fatalf("expected error for missing email")
	}
	if _, err := svc.Register(context.Background(), "a@example.com", "", ""); err == nil {
		t.Fatalf("expected error for missing password")
	}
}

func TestLoginComparesTrimmedPasswords(t *testing.T) {
	repo := newFakeUserRepo()
	code := "AAA-BBB-CCC"
	repo.byEmail["taro@example.com"] = &User{ID: 1, Email: "taro@example.com", Password: " secret ", InviteCode: &code}

	svc := NewService(repo)
	if _, err := svc.Login(context.Background(), "taro@example.com", "secret"); err != nil {
		t.Fatalf("expected trimmed match to log in, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "taro@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc := NewService(newFakeUserRepo())
	if _, err := svc.Login(context.Background(), "nobody@example.com", "x"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginBackfillsMissingInviteCode(t *testing.T) {
	repo := newFakeUserRepo()
	repo.byEmail["old@example.com"] = &User{ID: 7, Email: "old@example.com", Password: "pw"}

	svc := NewService(repo)
	u, err := svc.Login(context.Background(), "old@example.com", "pw")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if u.InviteCode == nil || *u.InviteCode == "" {
		t.Fatalf("expected invite code backfilled")
	}
	if stored := repo.byEmail["old@example.com"].InviteCode; stored == nil || *stored != *u.InviteCode {
		t.Fatalf("expected backfilled code persisted")
	}
}
