// Package artifact stores exported documents and hands out download
// URLs for them.
package artifact

import "context"

// Store persists a generated artifact and returns a URL the client can
// fetch it from.
type Store interface {
	Put(ctx context.Context, filename, mimeType string, data []byte) (downloadURL string, err error)
}
