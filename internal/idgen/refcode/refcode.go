package refcode

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	prefix    = "HS-"
	alphabet  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	suffixLen = 7
)

type Generator struct{}

func New() *Generator {
	return &Generator{}
}

// GetRef issues a fresh booking reference: a fixed prefix plus a short
// uppercase alphanumeric suffix. Codes are not checked against existing
// records; at this suffix length a collision is negligible for a
// single-device booking history.
func (g *Generator) GetRef(_ context.Context) (string, error) {
	suffix := make([]byte, suffixLen)

	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return "", fmt.Errorf("read random index: %w", err)
		}

		suffix[i] = alphabet[n.Int64()]
	}

	return prefix + string(suffix), nil
}
