package oauth

import (
	"fmt"

	"github.com/segmentio/ksuid"

	"github.com/custodia-labs/graphscope/internal/core/ports/driven"
)

// Ensure StateGenerator implements the interface.
var _ driven.StateGenerator = StateGenerator{}

// StateGenerator issues KSUID state tokens: a timestamp followed by a
// 128-bit random payload from crypto/rand, base62 encoded.
type StateGenerator struct{}

// NewState returns a fresh KSUID string.
func (StateGenerator) NewState() (string, error) {
	id, err := ksuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate ksuid: %w", err)
	}
	return id.String(), nil
}
