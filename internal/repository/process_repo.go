package repository

import (
	"go-approval-flow/internal/model"
)

// ProcessRepository serves the loaded approval process templates.
type ProcessRepository interface {
	FindAll() []*model.Process
	FindByID(id string) (*model.Process, bool)
}

type processRepo struct {
	processes []*model.Process
	byID      map[string]*model.Process
}

func NewProcessRepo(processes []*model.Process) ProcessRepository {
	r := &processRepo{
		processes: processes,
		byID:      make(map[string]*model.Process, len(processes)),
	}
	for _, p := range processes {
		if p.Nodes == nil {
			p.Nodes = []*model.WorkflowNode{}
		}
		r.byID[p.ID] = p
	}
	return r
}

func (r *processRepo) FindAll() []*model.Process {
	return r.processes
}

func (r *processRepo) FindByID(id string) (*model.Process, bool) {
	p, ok := r.byID[id]
	return p, ok
}
