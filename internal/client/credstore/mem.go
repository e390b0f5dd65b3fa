package credstore

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/estatekeeper/internal/client/models"
	"github.com/dmitrijs2005/estatekeeper/internal/common"
)

// MemStore is an in-memory Store used by tests and by the session manager's
// unit tests in particular. It is safe for concurrent use.
type MemStore struct {
	mu     sync.Mutex
	token  string
	user   *models.User
	userID string

	// ReadErr/WriteErr, when set, are returned by every read/write call.
	// Tests use them to simulate an unreadable platform store.
	ReadErr  error
	WriteErr error
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) SetToken(_ context.Context, token string) error {
	if s.WriteErr != nil {
		return s.WriteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemStore) Token(_ context.Context) (string, error) {
	if s.ReadErr != nil {
		return "", s.ReadErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return "", common.ErrorNotFound
	}
	return s.token, nil
}

func (s *MemStore) DeleteToken(_ context.Context) error {
	if s.WriteErr != nil {
		return s.WriteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

func (s *MemStore) SetUser(_ context.Context, u *models.User) error {
	if s.WriteErr != nil {
		return s.WriteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
	return nil
}

func (s *MemStore) User(_ context.Context) (*models.User, error) {
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil, common.ErrorNotFound
	}
	return s.user, nil
}

func (s *MemStore) DeleteUser(_ context.Context) error {
	if s.WriteErr != nil {
		return s.WriteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	return nil
}

func (s *MemStore) SetUserID(_ context.Context, id string) error {
	if s.WriteErr != nil {
		return s.WriteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = id
	return nil
}

func (s *MemStore) UserID(_ context.Context) (string, error) {
	if s.ReadErr != nil {
		return "", s.ReadErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID == "" {
		return "", common.ErrorNotFound
	}
	return s.userID, nil
}

func (s *MemStore) Clear(_ context.Context) error {
	if s.WriteErr != nil {
		return s.WriteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.user, s.userID = "", nil, ""
	return nil
}
