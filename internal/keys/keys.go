package keys

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// MatchCodeLength is the number of characters in a join code.
const MatchCodeLength = 6

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewMatchCode returns a random join code such as "K3Q9ZD".
func NewMatchCode() (string, error) {
	var sb strings.Builder
	sb.Grow(MatchCodeLength)
	base := big.NewInt(int64(len(codeAlphabet)))
	for i := 0; i < MatchCodeLength; i++ {
		n, err := rand.Int(rand.Reader, base)
		if err != nil {
			return "", err
		}
		sb.WriteByte(codeAlphabet[n.Int64()])
	}
	return sb.String(), nil
}

// NormalizeMatchCode trims and upper-cases a user supplied code. It returns
// "" when the result is not a well-formed code.
func NormalizeMatchCode(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != MatchCodeLength {
		return ""
	}
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(codeAlphabet, s[i]) < 0 {
			return ""
		}
	}
	return s
}
