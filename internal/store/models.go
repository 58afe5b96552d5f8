package store

import "time"

type User struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Document types mirror the templates the editor offers.
const (
	TypeNotice         = "notice"
	TypeWill           = "will"
	TypePlaintiff      = "plaintiff"
	TypePrecedingDraft = "precedingDraft"
	TypeContract       = "contract"
)

type Document struct {
	ID        string
	OwnerID   string
	Title     string
	Content   string
	Type      string
	LastSaved *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ShareGrant struct {
	ID             string
	DocumentID     string
	RecipientEmail string
	ShareLink      string
	CreatedBy      string
	CreatedAt      time.Time
}

// ValidDocumentType reports whether t is one of the known document types.
func ValidDocumentType(t string) bool {
	switch t {
	case TypeNotice, TypeWill, TypePlaintiff, TypePrecedingDraft, TypeContract:
		return true
	}
	return false
}
