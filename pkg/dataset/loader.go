package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go-approval-flow/internal/model"
	"go-approval-flow/internal/scope"
)

// File names the loader expects inside the data directory.
const (
	RolesFile       = "roles.json"
	ProcessesFile   = "processes.json"
	DepartmentsFile = "departments.json"
)

// Dataset is everything the core consumes at startup. Load failures degrade
// to empty collections and are collected in Warnings; the service keeps
// running against whatever loaded.
type Dataset struct {
	Roles         []model.Role
	Processes     []*model.Process
	Authorization scope.Document
	Warnings      []string
}

type rolesDocument struct {
	Data []roleRecord `json:"data"`
}

type roleRecord struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Employees []employeeRecord `json:"employees"`
}

type employeeRecord struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	// Department description; doubles as the employee's title when present.
	Department string `json:"department,omitempty"`
}

type processesDocument struct {
	Data []processRecord `json:"data"`
}

type processRecord struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	AmountLimit *float64     `json:"amount_limit"`
	CreatedBy   string       `json:"created_by"`
	UpdatedAt   string       `json:"updated_at"`
	Nodes       []nodeRecord `json:"nodes"`
}

// nodeRecord accepts the historical node shape: "role" is the primary label,
// "role_name" the legacy alias field kept for older exports.
type nodeRecord struct {
	ID        string           `json:"id"`
	RoleID    string           `json:"role_id"`
	Role      string           `json:"role"`
	RoleName  string           `json:"role_name"`
	Employees []model.Employee `json:"employees"`
}

// Load reads the three configuration files from dir. Every file is optional:
// a missing or malformed file yields a warning and an empty (or default)
// collection, never an error.
func Load(dir string) *Dataset {
	ds := &Dataset{
		Roles:     []model.Role{},
		Processes: []*model.Process{},
	}

	var rolesDoc rolesDocument
	if err := readJSON(filepath.Join(dir, RolesFile), &rolesDoc); err != nil {
		ds.warnf("roles: %v", err)
	} else {
		for _, rec := range rolesDoc.Data {
			role := model.Role{ID: rec.ID, Name: rec.Name, Employees: []model.Employee{}}
			for _, emp := range rec.Employees {
				role.Employees = append(role.Employees, model.Employee{
					ID:     emp.ID,
					UserID: emp.UserID,
					Name:   emp.Name,
					Title:  emp.Department,
				})
			}
			ds.Roles = append(ds.Roles, role)
		}
	}

	var processDoc processesDocument
	if err := readJSON(filepath.Join(dir, ProcessesFile), &processDoc); err != nil {
		ds.warnf("processes: %v (using default process list)", err)
		ds.Processes = DefaultProcesses()
	} else {
		for _, rec := range processDoc.Data {
			process := &model.Process{
				ID:          rec.ID,
				Name:        rec.Name,
				AmountLimit: rec.AmountLimit,
				CreatedBy:   rec.CreatedBy,
				UpdatedAt:   rec.UpdatedAt,
				Nodes:       []*model.WorkflowNode{},
			}
			for _, n := range rec.Nodes {
				process.Nodes = append(process.Nodes, &model.WorkflowNode{
					ID:        n.ID,
					RoleID:    n.RoleID,
					RoleName:  n.Role,
					RoleAlias: n.RoleName,
					Employees: n.Employees,
				})
			}
			ds.Processes = append(ds.Processes, process)
		}
	}

	var doc scope.Document
	if err := readJSON(filepath.Join(dir, DepartmentsFile), &doc); err != nil {
		ds.warnf("departments: %v", err)
	} else {
		ds.Authorization = doc
	}

	return ds
}

func (ds *Dataset) warnf(format string, args ...interface{}) {
	ds.Warnings = append(ds.Warnings, fmt.Sprintf(format, args...))
}

func readJSON(path string, v interface{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}
