package service

import (
	"errors"
	"sync"

	"go-approval-flow/internal/model"
	"go-approval-flow/internal/repository"
	"go-approval-flow/internal/ws"

	"github.com/google/uuid"
)

var (
	ErrProcessNotFound   = errors.New("process not found")
	ErrNoProcessSelected = errors.New("no process selected")
	ErrNodeNotFound      = errors.New("node not found")
	ErrIndexOutOfRange   = errors.New("insert index out of range")
)

// WorkflowService owns the node sequence of the currently selected process
// and is its single mutator. Structural operations invalidate any previously
// rendered view; the caller re-reads via Nodes.
type WorkflowService interface {
	Processes() []*model.Process
	SelectProcess(processID string) (*model.Process, []ResolutionReport, error)
	SelectedProcess() *model.Process
	Nodes() []*model.WorkflowNode
	Diagnostics() []ResolutionReport
	AppendNode(roleName string) (*model.WorkflowNode, error)
	InsertNodeBefore(roleName string, index int) (*model.WorkflowNode, error)
	DeleteNode(nodeID string) bool
	AddEmployee(nodeID string, emp model.Employee) (*model.WorkflowNode, error)
	NodeEmployees(nodeID string) ([]model.Employee, error)
	Save() ([]*model.WorkflowNode, error)
}

type workflowService struct {
	mu          sync.Mutex
	directory   repository.RoleDirectory
	processRepo repository.ProcessRepository
	resolver    *Resolver
	wsHub       *ws.Hub

	selected    *model.Process
	diagnostics []ResolutionReport
}

func NewWorkflowService(directory repository.RoleDirectory, processRepo repository.ProcessRepository, hub *ws.Hub) WorkflowService {
	return &workflowService{
		directory:   directory,
		processRepo: processRepo,
		resolver:    NewResolver(directory),
		wsHub:       hub,
	}
}

func (s *workflowService) Processes() []*model.Process {
	return s.processRepo.FindAll()
}

// SelectProcess swaps the active node sequence and runs the resolver over it.
// This is the sole resolution trigger, so re-selecting a process re-validates
// its role bindings against the current directory without touching manual
// rosters.
func (s *workflowService) SelectProcess(processID string) (*model.Process, []ResolutionReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	process, ok := s.processRepo.FindByID(processID)
	if !ok {
		return nil, nil, ErrProcessNotFound
	}
	s.selected = process
	s.diagnostics = s.resolver.ResolveNodes(process.Nodes)

	s.wsHub.Publish("process_selected", map[string]interface{}{
		"process_id":   process.ID,
		"process_name": process.Name,
		"node_count":   len(process.Nodes),
	})
	return process, s.diagnostics, nil
}

func (s *workflowService) SelectedProcess() *model.Process {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

func (s *workflowService) Nodes() []*model.WorkflowNode {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return []*model.WorkflowNode{}
	}
	return s.selected.Nodes
}

// Diagnostics returns the unresolved-node reports from the last resolution.
func (s *workflowService) Diagnostics() []ResolutionReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.diagnostics == nil {
		return []ResolutionReport{}
	}
	return s.diagnostics
}

func (s *workflowService) AppendNode(roleName string) (*model.WorkflowNode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return nil, ErrNoProcessSelected
	}
	node := s.buildNode(roleName)
	s.selected.Nodes = append(s.selected.Nodes, node)
	return node, nil
}

func (s *workflowService) InsertNodeBefore(roleName string, index int) (*model.WorkflowNode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return nil, ErrNoProcessSelected
	}
	if index < 0 || index > len(s.selected.Nodes) {
		return nil, ErrIndexOutOfRange
	}
	node := s.buildNode(roleName)
	nodes := s.selected.Nodes
	nodes = append(nodes[:index:index], append([]*model.WorkflowNode{node}, nodes[index:]...)...)
	s.selected.Nodes = nodes
	return node, nil
}

// DeleteNode removes the node with the given id. Deleting an unknown id is a
// no-op; the confirmation dialog belongs to the UI layer.
func (s *workflowService) DeleteNode(nodeID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return false
	}
	for i, node := range s.selected.Nodes {
		if node.ID == nodeID {
			s.selected.Nodes = append(s.selected.Nodes[:i], s.selected.Nodes[i+1:]...)
			return true
		}
	}
	return false
}

// AddEmployee attaches an already-validated employee record to a node.
func (s *workflowService) AddEmployee(nodeID string, emp model.Employee) (*model.WorkflowNode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	node, err := s.findNode(nodeID)
	if err != nil {
		return nil, err
	}
	if emp.ID == "" {
		emp.ID = "emp-" + uuid.NewString()
	}
	if emp.Title == "" {
		emp.Title = node.Label()
	}
	node.Employees = append(node.Employees, emp)
	return node, nil
}

func (s *workflowService) NodeEmployees(nodeID string) ([]model.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	node, err := s.findNode(nodeID)
	if err != nil {
		return nil, err
	}
	return node.Employees, nil
}

// Save flattens the current node sequence and emits it as an event. Actual
// persistence is delegated to whoever consumes the event.
func (s *workflowService) Save() ([]*model.WorkflowNode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return nil, ErrNoProcessSelected
	}
	s.wsHub.Publish("workflow_saved", map[string]interface{}{
		"process_id":   s.selected.ID,
		"process_name": s.selected.Name,
		"nodes":        s.selected.Nodes,
	})
	return s.selected.Nodes, nil
}

// buildNode constructs a fresh node for the role, copying the role's roster
// when the directory knows it. An unknown role still yields a node; its
// roster stays empty.
func (s *workflowService) buildNode(roleName string) *model.WorkflowNode {
	node := &model.WorkflowNode{
		ID:        "node-" + uuid.NewString(),
		RoleName:  roleName,
		Employees: []model.Employee{},
	}
	if role, ok := s.directory.FindByName(roleName); ok {
		node.RoleID = role.ID
		node.Employees = role.Roster(roleName)
	}
	return node
}

func (s *workflowService) findNode(nodeID string) (*model.WorkflowNode, error) {
	if s.selected == nil {
		return nil, ErrNoProcessSelected
	}
	for _, node := range s.selected.Nodes {
		if node.ID == nodeID {
			return node, nil
		}
	}
	return nil, ErrNodeNotFound
}
