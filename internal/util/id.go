package util

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

func NewID(prefix string) string {
	bytes := make([]byte, 16)
	_, _ = rand.Read(bytes)
	if prefix == "" {
		return hex.EncodeToString(bytes)
	}
	return prefix + "_" + hex.EncodeToString(bytes)
}

// NewDocumentID derives a document id from the current time, matching the
// ids the editor front-end produces for unsaved documents.
func NewDocumentID() string {
	return fmt.Sprintf("doc_%d", time.Now().UnixMilli())
}
