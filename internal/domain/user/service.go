package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a user with a freshly generated invite code and returns
// the stored row.
func (s *Service) Register(ctx context.Context, email, password, userName string) (*User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	code, err := s.uniqueInviteCode(ctx)
	if err != nil {
		return nil, err
	}

	u := User{
		Email:      email,
		Password:   password,
		UserName:   strings.TrimSpace(userName),
		InviteCode: &code,
	}
	if err := s.repo.Create(ctx, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Login compares the password against the stored string, trimming both
// sides the way the clients expect. Users registered before invite codes
// existed get one assigned here.
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if strings.TrimSpace(u.Password) != strings.TrimSpace(password) {
		return nil, ErrInvalidCredentials
	}

	if u.InviteCode == nil || *u.InviteCode == "" {
		code, err := s.uniqueInviteCode(ctx)
		if err != nil {
			return nil, err
		}
		if err := s.repo.UpdateInviteCode(ctx, u.ID, code); err != nil {
			return nil, err
		}
		u.InviteCode = &code
	}

	return u, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.GetByEmail(ctx, strings.TrimSpace(email))
}

func (s *Service) uniqueInviteCode(ctx context.Context) (string, error) {
	for i := 0; i < inviteCodeRetries; i++ {
		code := NewInviteCode()
		taken, err := s.repo.IsInviteCodeTaken(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrCodeGenerationFailed
}
