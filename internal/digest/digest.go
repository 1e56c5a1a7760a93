package digest

import (
	"crypto/sha512"
	"encoding/hex"
	"os"
	"strings"
)

// Normalizer strips the configured ignored characters from migration content
// before it is fingerprinted, so cosmetic formatting differences (line
// endings, reflowed whitespace, byte order marks) do not change the hash.
type Normalizer struct {
	ignored map[rune]struct{}
}

// NewNormalizer builds a Normalizer from the resolved ignored-character set.
// Duplicates in the input are collapsed.
func NewNormalizer(ignored []rune) *Normalizer {
	n := &Normalizer{ignored: make(map[rune]struct{}, len(ignored))}
	for _, r := range ignored {
		n.ignored[r] = struct{}{}
	}
	return n
}

// Strip returns src with every ignored character removed. With an empty
// ignored set the input is returned unchanged.
func (n *Normalizer) Strip(src []byte) []byte {
	if len(n.ignored) == 0 {
		return src
	}
	var b strings.Builder
	b.Grow(len(src))
	for _, r := range string(src) {
		if _, skip := n.ignored[r]; skip {
			continue
		}
		b.WriteRune(r)
	}
	return []byte(b.String())
}

// Fingerprint returns the hex SHA-384 digest of the stripped content.
func (n *Normalizer) Fingerprint(src []byte) string {
	sum := sha512.Sum384(n.Strip(src))
	return hex.EncodeToString(sum[:])
}

// FingerprintFile fingerprints the content of the file at path.
func (n *Normalizer) FingerprintFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return n.Fingerprint(b), nil
}
