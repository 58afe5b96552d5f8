package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) DB() *sql.DB {
	return s.db
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) CreateUser(ctx context.Context, user User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, display_name, password_hash)
		VALUES ($1, $2, $3, $4)
	`, user.ID, user.Email, user.DisplayName, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (User, error) {
	var user User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, display_name, password_hash, created_at, updated_at
		FROM users WHERE LOWER(email) = LOWER($1)
	`, email).Scan(&user.ID, &user.Email, &user.DisplayName, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id string) (User, error) {
	var user User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, display_name, password_hash, created_at, updated_at
		FROM users WHERE id = $1
	`, id).Scan(&user.ID, &user.Email, &user.DisplayName, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

// SaveDocument upserts the document and stamps last_saved. The returned
// document carries the persisted timestamps.
func (s *PostgresStore) SaveDocument(ctx context.Context, doc Document) (Document, error) {
	now := time.Now().UTC()
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO documents (id, owner_id, title, content, doc_type, last_saved)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			doc_type = EXCLUDED.doc_type,
			last_saved = EXCLUDED.last_saved,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`, doc.ID, doc.OwnerID, doc.Title, doc.Content, doc.Type, now).Scan(&doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return Document{}, fmt.Errorf("save document: %w", err)
	}
	doc.LastSaved = &now
	return doc, nil
}

func (s *PostgresStore) GetDocument(ctx context.Context, id string) (Document, error) {
	var doc Document
	err := s.db.QueryRowContext(ctx, `
		SELECT id, owner_id, title, content, doc_type, last_saved, created_at, updated_at
		FROM documents WHERE id = $1
	`, id).Scan(&doc.ID, &doc.OwnerID, &doc.Title, &doc.Content, &doc.Type, &doc.LastSaved, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return Document{}, err
	}
	return doc, nil
}

func (s *PostgresStore) ListDocumentsByOwner(ctx context.Context, ownerID string) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner_id, title, content, doc_type, last_saved, created_at, updated_at
		FROM documents WHERE owner_id = $1
		ORDER BY updated_at DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.ID, &doc.OwnerID, &doc.Title, &doc.Content, &doc.Type, &doc.LastSaved, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (s *PostgresStore) CreateShareGrant(ctx context.Context, grant ShareGrant) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO share_grants (id, document_id, recipient_email, share_link, created_by)
		VALUES ($1, $2, $3, $4, $5)
	`, grant.ID, grant.DocumentID, grant.RecipientEmail, grant.ShareLink, grant.CreatedBy)
	if err != nil {
		return fmt.Errorf("insert share grant: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListShareGrants(ctx context.Context, documentID string) ([]ShareGrant, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_id, recipient_email, share_link, created_by, created_at
		FROM share_grants WHERE document_id = $1
		ORDER BY created_at DESC
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("list share grants: %w", err)
	}
	defer rows.Close()

	var grants []ShareGrant
	for rows.Next() {
		var grant ShareGrant
		if err := rows.Scan(&grant.ID, &grant.DocumentID, &grant.RecipientEmail, &grant.ShareLink, &grant.CreatedBy, &grant.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan share grant: %w", err)
		}
		grants = append(grants, grant)
	}
	return grants, rows.Err()
}

// IsNotFound reports whether err is the store's row-missing error.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
