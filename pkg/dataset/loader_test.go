package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoad(t *testing.T) {
	t.Run("full data directory", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, RolesFile, `{"data":[
			{"id":"r1","name":"Manager","employees":[
				{"id":"e1","user_id":"u1","name":"Alice","department":"Operations"}
			]},
			{"id":"r2","name":"Chairman"}
		]}`)
		writeFile(t, dir, ProcessesFile, `{"data":[
			{"id":"p1","name":"Approval","amount_limit":10000,"created_by":"ADMIN","nodes":[
				{"id":"n1","role":"Manager"},
				{"id":"n2","role_id":"r2","role_name":"Old Chairman Label"}
			]}
		]}`)
		writeFile(t, dir, DepartmentsFile, `{"data":[
			{"department":"Recruiting","company":"HR","group_id":"g1","flag":"Y"}
		]}`)

		ds := Load(dir)
		require.Empty(t, ds.Warnings)

		require.Len(t, ds.Roles, 2)
		require.Equal(t, "Alice", ds.Roles[0].Employees[0].Name)
		// Department description doubles as the employee title.
		require.Equal(t, "Operations", ds.Roles[0].Employees[0].Title)

		require.Len(t, ds.Processes, 1)
		require.NotNil(t, ds.Processes[0].AmountLimit)
		require.Equal(t, float64(10000), *ds.Processes[0].AmountLimit)
		nodes := ds.Processes[0].Nodes
		require.Len(t, nodes, 2)
		// "role" is the primary label, "role_name" the legacy alias.
		require.Equal(t, "Manager", nodes[0].RoleName)
		require.Equal(t, "r2", nodes[1].RoleID)
		require.Equal(t, "Old Chairman Label", nodes[1].RoleAlias)

		require.Len(t, ds.Authorization.Data, 1)
	})

	t.Run("empty directory degrades with warnings", func(t *testing.T) {
		ds := Load(t.TempDir())
		require.Len(t, ds.Warnings, 3)
		require.Empty(t, ds.Roles)
		require.Empty(t, ds.Authorization.Data)
		// Missing process file falls back to the default fixture.
		require.Equal(t, DefaultProcesses(), ds.Processes)
	})

	t.Run("malformed file degrades that file only", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, RolesFile, `{"data": not json`)
		writeFile(t, dir, ProcessesFile, `{"data":[{"id":"p1","name":"Approval","nodes":[]}]}`)
		writeFile(t, dir, DepartmentsFile, `{"data":[]}`)

		ds := Load(dir)
		require.Len(t, ds.Warnings, 1)
		require.Contains(t, ds.Warnings[0], "roles")
		require.Empty(t, ds.Roles)
		require.Len(t, ds.Processes, 1)
	})

	t.Run("nonexistent directory", func(t *testing.T) {
		ds := Load("/does/not/exist")
		require.Len(t, ds.Warnings, 3)
		require.NotNil(t, ds.Roles)
		require.NotEmpty(t, ds.Processes) // defaults
	})
}

func TestDefaultProcesses(t *testing.T) {
	processes := DefaultProcesses()
	require.Len(t, processes, 3)
	for _, p := range processes {
		require.NotEmpty(t, p.Nodes)
		for _, n := range p.Nodes {
			require.NotEmpty(t, n.RoleName)
			require.NotNil(t, n.Employees)
		}
	}
	// Leave Request has no amount limit.
	require.Nil(t, processes[1].AmountLimit)
}
