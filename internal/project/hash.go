package project

import (
	"crypto/sha256"
	"strings"
)

// Digest - sha256 ключ чистого кэша
type Digest [32]byte

// Sum hashes raw bytes.
func Sum(data []byte) Digest {
	return sha256.Sum256(data)
}

// Combine строит составной хеш: H( content || part1 || part2 ... ).
// Порядок parts должен быть детерминированным.
func Combine(content Digest, parts ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range parts {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// KeywordsDigest hashes a keyword list in order. Order matters only for
// the digest; callers pass the configured order.
func KeywordsDigest(keywords []string) Digest {
	return Sum([]byte(strings.Join(keywords, "\x00")))
}
