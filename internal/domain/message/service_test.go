package message

import (
	"context"
	"testing"
)

type fakeMessageRepo struct {
	created []Message
	listed  []string
}

func (r *fakeMessageRepo) Create(ctx context.Context, m *Message) error {
	m.ID = int64(len(r.created) + 1)
	r.created = append(r.created, *m)
	return nil
}

func (r *fakeMessageRepo) ListByFamily(ctx context.Context, familyKey string) ([]Message, error) {
	r.listed = append(r.listed, familyKey)
	var result []Message
	for _, m := range r.created {
		if m.FamilyID == familyKey {
			result = append(result, m)
		}
	}
	return result, nil
}

func TestPostNormalizesFamilyKey(t *testing.T) {
	repo := &fakeMessageRepo{}
	svc := NewService(repo)

	id, err := svc.Post(context.Background(), "Taro", "happy", "hi", "abc-123", nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if id == 0 {
		t.Fatalf("expected assigned id")
	}
	if repo.created[0].FamilyID != "ABC123" {
		t.Fatalf("expected normalized key, got %q", repo.created[0].FamilyID)
	}
}

func TestPostRequiresEmotionAndFamily(t *testing.T) {
	svc := NewService(&fakeMessageRepo{})
	if _, err := svc.Post(context.Background(), "Taro", "", "hi", "ABC123", nil); err == nil {
		t.Fatalf("expected error for missing emotion")
	}
	if _, err := svc.Post(context.Background(), "Taro", "happy", "hi", "---", nil); err == nil {
		t.Fatalf("expected error for unusable family id")
	}
}

func TestListUnusableKeyReturnsEmptyWithoutQuery(t *testing.T) {
	repo := &fakeMessageRepo{}
	svc := NewService(repo)

	messages, err := svc.ListByFamily(context.Background(), "!!!")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("expected empty list, got %d", len(messages))
	}
	if len(repo.listed) != 0 {
		t.Fatalf("expected repository untouched")
	}
}

func TestListNormalizesKey(t *testing.T) {
	repo := &fakeMessageRepo{}
	svc := NewService(repo)

	if _, err := svc.Post(context.Background(), "Taro", "happy", "hi", "ABC123", nil); err != nil {
		t.Fatalf("post: %v", err)
	}
	messages, err := svc.ListByFamily(context.Background(), "abc-123")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(messages))
	}
}
