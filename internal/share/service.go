// Package share builds shareable links for documents and notifies
// recipients.
package share

import (
	"context"
	"fmt"
	"log"
	"strings"

	"legalitex/api/internal/email"
	"legalitex/api/internal/store"
	"legalitex/api/internal/util"
)

// Response is the wire shape of a share call.
type Response struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ShareLink string `json:"shareLink"`
}

// GrantStore records who a document was shared with.
type GrantStore interface {
	CreateShareGrant(ctx context.Context, grant store.ShareGrant) error
}

// Service derives share links from document ids. The grant store and
// mailer are optional; the link itself needs neither.
type Service struct {
	baseURL string
	grants  GrantStore
	mailer  *email.Service
}

func NewService(baseURL string, grants GrantStore, mailer *email.Service) *Service {
	return &Service{
		baseURL: strings.TrimRight(baseURL, "/"),
		grants:  grants,
		mailer:  mailer,
	}
}

// Link derives the shareable URL for a document.
func (s *Service) Link(documentID string) string {
	return s.baseURL + "/shared/" + documentID
}

// Share produces the link, records the grant when a store is wired,
// and sends the recipient a notification when mail is configured.
// Grant and mail failures are logged, not surfaced: the link is
// deterministic and already valid.
func (s *Service) Share(ctx context.Context, documentID, recipientEmail, documentTitle, sharedBy string) Response {
	link := s.Link(documentID)

	if s.grants != nil {
		grant := store.ShareGrant{
			ID:             util.NewID("shr"),
			DocumentID:     documentID,
			RecipientEmail: recipientEmail,
			ShareLink:      link,
			CreatedBy:      sharedBy,
		}
		if err := s.grants.CreateShareGrant(ctx, grant); err != nil {
			log.Printf("share: record grant for %s: %v", documentID, err)
		}
	}

	if s.mailer != nil && s.mailer.IsConfigured() {
		title := documentTitle
		if title == "" {
			title = "Untitled Document"
		}
		go func() {
			if err := s.mailer.SendShareNotification(recipientEmail, title, sharedBy, link); err != nil {
				log.Printf("share: notify %s: %v", recipientEmail, err)
			}
		}()
	}

	return Response{
		Success:   true,
		Message:   fmt.Sprintf("Document shared with %s", recipientEmail),
		ShareLink: link,
	}
}
