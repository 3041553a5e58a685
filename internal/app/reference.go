package app

import (
	"context"
	"crypto/rand"
	"fmt"

	"github.com/quintal/roomdesk/internal/domain"
)

// Booking references are short operator-facing codes, so the alphabet
// drops lookalike characters (0/O, 1/I).
const (
	referencePrefix   = "BK-"
	referenceAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	referenceLength   = 8

	maxReferenceAttempts = 5
)

func newReference() (string, error) {
	buf := make([]byte, referenceLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate reference: %w", err)
	}
	for i, b := range buf {
		buf[i] = referenceAlphabet[int(b)%len(referenceAlphabet)]
	}
	return referencePrefix + string(buf), nil
}

// generateReference draws codes until taken reports one free, bounded by
// maxReferenceAttempts. Collisions are near-impossible but not absent;
// exhaustion surfaces as a transient ErrReferenceConflict, never a reuse.
func generateReference(ctx context.Context, taken func(ctx context.Context, ref string) (bool, error)) (string, error) {
	for i := 0; i < maxReferenceAttempts; i++ {
		ref, err := newReference()
		if err != nil {
			return "", err
		}
		exists, err := taken(ctx, ref)
		if err != nil {
			return "", err
		}
		if !exists {
			return ref, nil
		}
	}
	return "", domain.ErrReferenceConflict
}
