package mocks

import (
	"github.com/ganeshpawar09/CarZy-Admin/domain"
)

// MockSessionStore implements domain.SessionStore in memory for testing
type MockSessionStore struct {
	LoadFunc  func() *domain.Session
	SaveFunc  func(session *domain.Session) error
	ClearFunc func() error

	// Stored is the in-memory record backing the default behaviors.
	Stored     *domain.Session
	SaveCalls  int
	ClearCalls int
}

// NewMockSessionStore creates a new MockSessionStore with default behaviors
func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{}
}

// Load returns the stored session, or nil when there is none
func (m *MockSessionStore) Load() *domain.Session {
	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	if m.Stored == nil {
		return nil
	}
	copied := *m.Stored
	return &copied
}

// Save persists the full session record
func (m *MockSessionStore) Save(session *domain.Session) error {
	m.SaveCalls++
	if m.SaveFunc != nil {
		return m.SaveFunc(session)
	}
	copied := *session
	m.Stored = &copied
	return nil
}

// Clear removes the persisted session
func (m *MockSessionStore) Clear() error {
	m.ClearCalls++
	if m.ClearFunc != nil {
		return m.ClearFunc()
	}
	m.Stored = nil
	return nil
}

// Compile-time interface compliance verification
var _ domain.SessionStore = (*MockSessionStore)(nil)
