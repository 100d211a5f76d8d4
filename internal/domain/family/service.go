package family

import (
	"context"
	"errors"
	"strings"
	"time"
)

type Service struct {
	repo     Repository
	cache    Cache
	cacheTTL time.Duration
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, cache: noopCache{}}
}

// WithCache enables read-path caching of resolved families.
func (s *Service) WithCache(cache Cache, ttl time.Duration) *Service {
	s.cache = cache
	s.cacheTTL = ttl
	return s
}

// Create resolves a chosen candidate id to a family, creating one when
// neither the normalized nor the raw form matches an existing row, and
// attaches the calling user to it. Returns the resolved key.
func (s *Service) Create(ctx context.Context, candidateID, name, email string) (string, error) {
	key := NormalizeKey(candidateID)
	if key == "" {
		return "", ErrInvalidFamilyID
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultName
	}

	var resolved string
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		found, err := resolveExisting(ctx, tx, key, strings.TrimSpace(candidateID))
		if err != nil {
			return err
		}
		if found != nil {
			resolved = found.Key
			return tx.SetUserFamily(ctx, email, &resolved)
		}

		if err := tx.Create(ctx, &Family{Key: key, Name: name}); err != nil && !errors.Is(err, ErrFamilyExists) {
			return err
		}
		resolved = key
		return tx.SetUserFamily(ctx, email, &resolved)
	})
	if err != nil {
		return "", err
	}

	s.cache.Delete(resolved)
	return resolved, nil
}

// Join resolves a user-entered code and attaches the user to the resulting
// family. Resolution order: family key (raw, then normalized), then another
// user's invite code (materializing that user's family on first use).
func (s *Service) Join(ctx context.Context, code, email string) (string, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "", ErrInvalidCode
	}

	var resolved string
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if found, err := tx.GetByKey(ctx, trimmed); err == nil {
			resolved = found.Key
			return tx.SetUserFamily(ctx, email, &resolved)
		} else if !errors.Is(err, ErrFamilyNotFound) {
			return err
		}

		normalized := NormalizeKey(trimmed)
		if normalized == "" {
			return ErrInvalidCode
		}

		// Any spelling of an existing family key joins it directly; only
		// codes no family owns fall through to invite-code resolution.
		if normalized != trimmed {
			if found, err := tx.GetByKey(ctx, normalized); err == nil {
				resolved = found.Key
				return tx.SetUserFamily(ctx, email, &resolved)
			} else if !errors.Is(err, ErrFamilyNotFound) {
				return err
			}
		}

		inviter, err := tx.FindInviterByCode(ctx, normalized)
		if err != nil {
			return err
		}

		if inviter.FamilyKey != nil && *inviter.FamilyKey != "" {
			resolved = *inviter.FamilyKey
			return tx.SetUserFamily(ctx, email, &resolved)
		}

		// The inviter has no family yet: their invite code becomes the
		// family key, and the inviter is attached alongside the joiner.
		resolved = NormalizeKey(inviter.InviteCode)
		if err := tx.Create(ctx, &Family{Key: resolved, Name: DefaultName}); err != nil && !errors.Is(err, ErrFamilyExists) {
			return err
		}
		if err := tx.SetUserFamily(ctx, inviter.Email, &resolved); err != nil {
			return err
		}
		return tx.SetUserFamily(ctx, email, &resolved)
	})
	if err != nil {
		return "", err
	}

	s.cache.Delete(NormalizeKey(resolved))
	return resolved, nil
}

// Leave detaches the user from their family. Idempotent; the family row and
// the remaining members are untouched.
func (s *Service) Leave(ctx context.Context, email string) error {
	return s.repo.SetUserFamily(ctx, email, nil)
}

// GetByKey looks a family up by any spelling of its key.
func (s *Service) GetByKey(ctx context.Context, code string) (*Family, error) {
	key := NormalizeKey(code)
	if key == "" {
		return nil, ErrFamilyNotFound
	}

	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	found, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, found, s.cacheTTL)
	return found, nil
}

// resolveExisting checks the normalized key first and falls back to the raw
// candidate for rows written before normalization was enforced.
func resolveExisting(ctx context.Context, tx Repository, key, raw string) (*Family, error) {
	found, err := tx.GetByKey(ctx, key)
	if err == nil {
		return found, nil
	}
	if !errors.Is(err, ErrFamilyNotFound) {
		return nil, err
	}

	if raw == key || raw == "" {
		return nil, nil
	}
	found, err = tx.GetByKey(ctx, raw)
	if err == nil {
		return found, nil
	}
	if errors.Is(err, ErrFamilyNotFound) {
		return nil, nil
	}
	return nil, err
}
