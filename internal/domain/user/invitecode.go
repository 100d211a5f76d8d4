package user

import (
	"strings"

	"github.com/google/uuid"
)

// Invite codes look like "ABC-123-XYZ": nine characters from an alphabet
// without 0/O/1/I, grouped in threes. The hyphens are cosmetic; matching is
// done on the normalized form.
const (
	inviteAlphabet    = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	inviteCodeLength  = 9
	inviteCodeGroup   = 3
	inviteCodeRetries = 10
)

// NewInviteCode derives a formatted code from fresh UUID bytes.
func NewInviteCode() string {
	id := uuid.New()

	var b strings.Builder
	b.Grow(inviteCodeLength + inviteCodeLength/inviteCodeGroup)
	for i := 0; i < inviteCodeLength; i++ {
		if i > 0 && i%inviteCodeGroup == 0 {
			b.WriteByte('-')
		}
		b.WriteByte(inviteAlphabet[int(id[i])%len(inviteAlphabet)])
	}
	return b.String()
}
