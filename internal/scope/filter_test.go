package scope

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// mixedDoc builds the canonical fixture: HR has two authorized and one
// unauthorized scope (partial), Finance has three unauthorized.
func mixedDoc() Document {
	return flatDoc()
}

func groupCompanies(groups []Group) []string {
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.Company
	}
	return out
}

func TestViewStatusFilter(t *testing.T) {
	s := NewSet(mixedDoc())

	t.Run("partial returns only mixed groups", func(t *testing.T) {
		view := s.View(Filter{Status: StatusPartial})
		require.Equal(t, []string{"HR"}, groupCompanies(view.Authorized))
		require.Equal(t, []string{"HR"}, groupCompanies(view.Unauthorized))
	})

	t.Run("unauthorized returns every group with an unauthorized member", func(t *testing.T) {
		view := s.View(Filter{Status: StatusUnauthorized})
		require.Equal(t, []string{"Finance", "HR"}, groupCompanies(view.Unauthorized))
	})

	t.Run("authorized selects groups, both partitions show them", func(t *testing.T) {
		view := s.View(Filter{Status: StatusAuthorized})
		require.Equal(t, []string{"HR"}, groupCompanies(view.Authorized))
		// HR qualifies as a group, so its unauthorized scopes stay visible.
		require.Equal(t, []string{"HR"}, groupCompanies(view.Unauthorized))
	})
}

func TestViewSearchAndGroup(t *testing.T) {
	s := NewSet(mixedDoc())

	t.Run("search is case-insensitive substring on department", func(t *testing.T) {
		view := s.View(Filter{Search: "PAY"})
		require.Len(t, view.Authorized, 1)
		require.Len(t, view.Authorized[0].Scopes, 1)
		require.Equal(t, "Payroll", view.Authorized[0].Scopes[0].Department)
		require.Empty(t, view.Unauthorized)
	})

	t.Run("search matches company label too", func(t *testing.T) {
		view := s.View(Filter{Search: "finance"})
		require.Equal(t, []string{"Finance"}, groupCompanies(view.Unauthorized))
		require.Len(t, view.Unauthorized[0].Scopes, 3)
	})

	t.Run("group id is exact equality", func(t *testing.T) {
		view := s.View(Filter{GroupID: "g2"})
		require.Empty(t, view.Authorized)
		require.Equal(t, []string{"Finance"}, groupCompanies(view.Unauthorized))
		require.Empty(t, s.View(Filter{GroupID: "g"}).Unauthorized)
	})
}

func TestViewCountsIgnoreFilter(t *testing.T) {
	s := NewSet(mixedDoc())

	narrowed := s.View(Filter{Search: "payroll", GroupID: "g1", Status: StatusPartial})
	require.Equal(t, 2, narrowed.Counts.Authorized)
	require.Equal(t, 4, narrowed.Counts.Unauthorized)
	require.Equal(t, 6, narrowed.Counts.Total)
	require.Equal(t, 1, narrowed.Counts.Companies) // only HR has authorized scopes
	require.Equal(t, 2, narrowed.Counts.Groups)
}

func TestViewShape(t *testing.T) {
	s := NewSet(mixedDoc())
	view := s.View(Filter{})

	t.Run("groups sorted alphabetically", func(t *testing.T) {
		require.Equal(t, []string{"Finance", "HR"}, groupCompanies(view.Unauthorized))
	})

	t.Run("scopes sorted within a group", func(t *testing.T) {
		require.Equal(t, "Accounting", view.Unauthorized[0].Scopes[0].Department)
		require.Equal(t, "Audit", view.Unauthorized[0].Scopes[1].Department)
		require.Equal(t, "Treasury", view.Unauthorized[0].Scopes[2].Department)
	})

	t.Run("company options cover both partitions", func(t *testing.T) {
		require.Equal(t, []string{"Finance", "HR"}, view.CompanyOptions)
	})

	t.Run("company metadata carried onto group", func(t *testing.T) {
		require.Equal(t, "HR Holdings", view.Authorized[0].CompanyName)
		require.Equal(t, "g1", view.Authorized[0].GroupID)
	})

	t.Run("projection does not mutate the set", func(t *testing.T) {
		before := s.Counts()
		_ = s.View(Filter{Status: StatusPartial, Search: "x"})
		require.Equal(t, before, s.Counts())
	})
}
