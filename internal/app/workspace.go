package app

import (
	"context"
	"net/http"
	"sync"

	"legalitex/api/internal/document"
	"legalitex/api/internal/editor"
)

// workspace is one user's active editing session: the document state,
// the in-memory editing host, and the command dispatcher bound to it.
// One workspace per user; opening a document replaces the previous
// workspace. mu serializes command and update requests against the
// host, which has no locking of its own.
type workspace struct {
	mu         sync.Mutex
	doc        *document.Session
	host       *editor.FragmentHost
	dispatcher *editor.Dispatcher
}

// WorkspaceState is the wire shape of a workspace read.
type WorkspaceState struct {
	Document   document.Document `json:"document"`
	Font       string            `json:"font"`
	FontSize   string            `json:"fontSize"`
	LineHeight string            `json:"lineHeight"`
}

// workspaceSaver persists workspace saves through the document store,
// so autosaves and manual saves share one code path.
type workspaceSaver struct {
	svc     *Service
	session Session
}

func (ws workspaceSaver) Save(ctx context.Context, doc document.Document) (document.SaveReceipt, error) {
	result, err := ws.svc.SaveDocument(ctx, ws.session, SaveDocumentInput{
		ID:      doc.ID,
		Title:   doc.Title,
		Content: doc.Content,
		Type:    doc.Type,
	})
	if err != nil {
		return document.SaveReceipt{}, err
	}
	ts, err := parseTimestamp(result.Timestamp)
	if err != nil {
		return document.SaveReceipt{}, err
	}
	return document.SaveReceipt{DocumentID: result.DocumentID, Timestamp: ts}, nil
}

// OpenWorkspace starts an editing session. With a document id the
// stored document is loaded; without one a fresh default document is
// opened. Any previous workspace for the user is closed first.
func (s *Service) OpenWorkspace(ctx context.Context, session Session, documentID string) (WorkspaceState, error) {
	var seed document.Document
	if documentID != "" {
		stored, err := s.GetDocument(ctx, session, documentID)
		if err != nil {
			return WorkspaceState{}, err
		}
		seed = document.Document{
			ID:        stored.ID,
			Title:     stored.Title,
			Content:   stored.Content,
			Type:      stored.Type,
			LastSaved: stored.LastSaved,
		}
	}

	docSession := document.NewSession(
		workspaceSaver{svc: s, session: session},
		document.WithDocument(seed),
		document.WithAutosaveDelay(s.cfg.AutosaveDelay),
	)

	host := editor.NewFragmentHost(seed.Content)
	dispatcher := editor.NewDispatcher(host, editor.NoPrompt)
	dispatcher.OnContent = func(html string) {
		docSession.Update(document.Patch{Content: &html})
	}

	w := &workspace{doc: docSession, host: host, dispatcher: dispatcher}

	s.mu.Lock()
	if prev, ok := s.workspaces[session.UserID]; ok {
		prev.doc.Close()
	}
	s.workspaces[session.UserID] = w
	s.mu.Unlock()

	w.mu.Lock()
	defer w.mu.Unlock()
	return workspaceState(w), nil
}

func (s *Service) getWorkspace(session Session) (*workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.workspaces[session.UserID]
	if !ok {
		return nil, domainError(http.StatusConflict, "NO_WORKSPACE", "No open workspace", nil)
	}
	return w, nil
}

// Workspace returns the current editing state.
func (s *Service) Workspace(session Session) (WorkspaceState, error) {
	w, err := s.getWorkspace(session)
	if err != nil {
		return WorkspaceState{}, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return workspaceState(w), nil
}

// UpdateWorkspace shallow-merges the patch into the open document.
// A content change reseeds the editing host.
func (s *Service) UpdateWorkspace(session Session, patch document.Patch) (WorkspaceState, error) {
	w, err := s.getWorkspace(session)
	if err != nil {
		return WorkspaceState{}, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.doc.Update(patch)
	if patch.Content != nil {
		w.host.ResetContent(*patch.Content)
	}
	return workspaceState(w), nil
}

// CommandInput describes one formatting command against the open
// workspace. Selection offsets are byte positions into the current
// content; nil means no selection.
type CommandInput struct {
	Kind           editor.Kind `json:"kind"`
	Value          string      `json:"value"`
	SelectionStart *int        `json:"selectionStart"`
	SelectionEnd   *int        `json:"selectionEnd"`
}

// ApplyCommand runs a formatting command. Command failures are logged
// by the dispatcher and leave the content untouched; the caller always
// gets the current state back.
func (s *Service) ApplyCommand(session Session, input CommandInput) (WorkspaceState, error) {
	w, err := s.getWorkspace(session)
	if err != nil {
		return WorkspaceState{}, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if input.SelectionStart != nil && input.SelectionEnd != nil {
		if err := w.host.SetSelection(*input.SelectionStart, *input.SelectionEnd); err != nil {
			return WorkspaceState{}, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error(), nil)
		}
	} else {
		w.host.ClearSelection()
	}

	w.dispatcher.Apply(editor.Command{Kind: input.Kind, Value: input.Value})
	return workspaceState(w), nil
}

// SaveWorkspace saves the open document immediately.
func (s *Service) SaveWorkspace(ctx context.Context, session Session) (SaveDocumentResult, error) {
	w, err := s.getWorkspace(session)
	if err != nil {
		return SaveDocumentResult{}, err
	}
	receipt, err := w.doc.Save(ctx)
	if err != nil {
		return SaveDocumentResult{}, err
	}
	return SaveDocumentResult{
		Success:    true,
		DocumentID: receipt.DocumentID,
		Message:    "Document saved successfully",
		Timestamp:  receipt.Timestamp.UTC().Format(timestampLayout),
	}, nil
}

// CloseWorkspace ends the editing session and stops its autosave.
func (s *Service) CloseWorkspace(session Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w, ok := s.workspaces[session.UserID]; ok {
		w.doc.Close()
		delete(s.workspaces, session.UserID)
	}
}

func workspaceState(w *workspace) WorkspaceState {
	return WorkspaceState{
		Document:   w.doc.Get(),
		Font:       w.dispatcher.Font(),
		FontSize:   w.dispatcher.FontSizePoints(),
		LineHeight: w.dispatcher.LineHeight(),
	}
}
