package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
)

// maxEscapedKey bounds file names well below common file system limits.
const maxEscapedKey = 200

// fileName maps a key to a file name: the path-escaped key, or its SHA-256
// digest when the escaped form is too long.
func fileName(kind Kind, key string) string {
	name := url.PathEscape(key)
	if len(name) > maxEscapedKey || name == "" || name == "." || name == ".." {
		name = Hash([]byte(key))
	}
	return name + kind.Suffix
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
