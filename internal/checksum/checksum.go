// Package checksum fingerprints data files and researcher documents.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Document encodes v as JSON and returns the encoding with its digest.
// Field order follows the struct, so equal values always hash equally.
func Document(v any) (doc []byte, sum string, err error) {
	doc, err = json.Marshal(v)
	if err != nil {
		return nil, "", fmt.Errorf("checksum: encode: %w", err)
	}
	return doc, Sum(doc), nil
}
