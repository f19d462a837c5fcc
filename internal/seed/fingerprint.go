package seed

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/conorfennell/nyx/internal/domain"
)

// Normalize joins the fields that identify an event, each trimmed and
// lowercased, one per line.
func Normalize(e domain.Event) string {
	clean := func(s string) string {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return strings.Join([]string{clean(e.Title), e.Day(), clean(e.Organizer)}, "\n")
}

// Fingerprint is the SHA-256 of the normalized event, as hex. Two fixture
// entries with the same fingerprint describe the same event.
func Fingerprint(e domain.Event) string {
	sum := sha256.Sum256([]byte(Normalize(e)))
	return fmt.Sprintf("%x", sum)
}
