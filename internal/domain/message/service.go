package message

import (
	"context"
	"fmt"
	"strings"

	familydomain "family-talk-go/internal/domain/family"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Post stores a mood message under the normalized family key.
func (s *Service) Post(ctx context.Context, userName, emotion, comment, familyID string, userID *int64) (int64, error) {
	emotion = strings.TrimSpace(emotion)
	if emotion == "" {
		return 0, fmt.Errorf("emotion is required")
	}

	key := familydomain.NormalizeKey(familyID)
	if key == "" {
		return 0, fmt.Errorf("family_id is required")
	}

	m := Message{
		UserName: strings.TrimSpace(userName),
		Emotion:  emotion,
		Comment:  comment,
		FamilyID: key,
		UserID:   userID,
	}
	if err := s.repo.Create(ctx, &m); err != nil {
		return 0, err
	}
	return m.ID, nil
}

// ListByFamily returns the family's messages newest first. An unusable key
// yields an empty list rather than an error.
func (s *Service) ListByFamily(ctx context.Context, familyID string) ([]Message, error) {
	key := familydomain.NormalizeKey(familyID)
	if key == "" {
		return []Message{}, nil
	}
	return s.repo.ListByFamily(ctx, key)
}
