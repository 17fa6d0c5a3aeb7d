package service

import (
	"errors"
	"sync"

	"go-approval-flow/internal/scope"
	"go-approval-flow/internal/ws"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("authorization session not found")

// PanelSession is one open authorization panel. Each session owns its own
// partition set built from the loaded authorization document; sessions are
// never shared.
type PanelSession struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	RoleName     string `json:"role_name,omitempty"`

	set *scope.Set
}

// SaveResult is the flattened outcome of a panel session handed to the
// external persistence collaborator.
type SaveResult struct {
	EmployeeID   string        `json:"employee_id"`
	EmployeeName string        `json:"employee_name"`
	RoleName     string        `json:"role_name,omitempty"`
	Departments  []scope.Scope `json:"departments"`
	Count        int           `json:"count"`
}

// AuthorizationService manages per-employee authorization panel sessions over
// the partition model.
type AuthorizationService interface {
	Open(employeeID, employeeName, roleName string) (*PanelSession, scope.View, error)
	View(sessionID string, f scope.Filter) (scope.View, error)
	Toggle(sessionID string, key scope.Key) (bool, error)
	ToggleDepartment(sessionID, department string) (scope.Key, bool, error)
	MoveGroup(sessionID, company string, authorize bool) (int, error)
	MoveFiltered(sessionID string, f scope.Filter, authorize bool) (int, error)
	ClearAllAuthorized(sessionID string) (int, error)
	Save(sessionID string) (*SaveResult, error)
	Close(sessionID string) bool
}

type authorizationService struct {
	mu       sync.Mutex
	template scope.Document
	sessions map[string]*PanelSession
	wsHub    *ws.Hub
}

func NewAuthorizationService(template scope.Document, hub *ws.Hub) AuthorizationService {
	return &authorizationService{
		template: template,
		sessions: make(map[string]*PanelSession),
		wsHub:    hub,
	}
}

// Open starts a panel session for an employee. The session gets a fresh
// partition set normalized from the loaded document, so concurrently open
// panels never observe each other's edits.
func (s *authorizationService) Open(employeeID, employeeName, roleName string) (*PanelSession, scope.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session := &PanelSession{
		ID:           uuid.NewString(),
		EmployeeID:   employeeID,
		EmployeeName: employeeName,
		RoleName:     roleName,
		set:          scope.NewSet(s.template),
	}
	s.sessions[session.ID] = session
	return session, session.set.View(scope.Filter{}), nil
}

func (s *authorizationService) View(sessionID string, f scope.Filter) (scope.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return scope.View{}, ErrSessionNotFound
	}
	return session.set.View(f), nil
}

func (s *authorizationService) Toggle(sessionID string, key scope.Key) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return false, ErrSessionNotFound
	}
	return session.set.Toggle(key)
}

func (s *authorizationService) ToggleDepartment(sessionID, department string) (scope.Key, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return scope.Key{}, false, ErrSessionNotFound
	}
	return session.set.ToggleDepartment(department)
}

func (s *authorizationService) MoveGroup(sessionID, company string, authorize bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return 0, ErrSessionNotFound
	}
	if authorize {
		return session.set.MoveGroupToAuthorized(company), nil
	}
	return session.set.MoveGroupToUnauthorized(company), nil
}

func (s *authorizationService) MoveFiltered(sessionID string, f scope.Filter, authorize bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return 0, ErrSessionNotFound
	}
	if authorize {
		return session.set.MoveFilteredToAuthorized(f), nil
	}
	return session.set.MoveFilteredToUnauthorized(f), nil
}

func (s *authorizationService) ClearAllAuthorized(sessionID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return 0, ErrSessionNotFound
	}
	return session.set.ClearAllAuthorized(), nil
}

// Save flattens the authorized partition and emits it for the external
// persistence collaborator. The session stays open; closing is a separate
// call.
func (s *authorizationService) Save(sessionID string) (*SaveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	result := &SaveResult{
		EmployeeID:   session.EmployeeID,
		EmployeeName: session.EmployeeName,
		RoleName:     session.RoleName,
		Departments:  session.set.FlattenAuthorized(),
	}
	result.Count = len(result.Departments)

	s.wsHub.Publish("authorization_saved", result)
	return result, nil
}

func (s *authorizationService) Close(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return false
	}
	delete(s.sessions, sessionID)
	return true
}
