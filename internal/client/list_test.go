package client

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/umalmyha/contacts/internal/model"
)

func testContacts() []model.Contact {
	return []model.Contact{
		{ID: "1", FirstName: "Ann", LastName: "Lee", Email: "ann@x.com", Phone: "555-1", Company: "Globex"},
		{ID: "2", FirstName: "Bob", LastName: "Annis", Email: "bob@x.com", Phone: "555-2"},
		{ID: "3", FirstName: "Carl", LastName: "Ray", Email: "carl@annex.io", Phone: "555-3", JobTitle: "Ann"},
	}
}

func TestContactListFilter(t *testing.T) {
	l := NewContactList(testContacts())

	t.Log("search matches first name, last name and email ignoring case")
	{
		found := l.Filter("ANN")
		require.Len(t, found, 3)
	}

	t.Log("search doesn't look into company, job title or phone")
	{
		require.Empty(t, l.Filter("globex"))
		require.Empty(t, l.Filter("555"))
	}

	t.Log("search by email")
	{
		found := l.Filter("@X.COM")
		require.Equal(t, []string{"1", "2"}, ids(found))
	}

	t.Log("empty query matches everything")
	{
		require.Equal(t, testContacts(), l.Filter(""))
	}
}

func TestContactListPatching(t *testing.T) {
	l := NewContactList(testContacts())

	l.Append(model.Contact{ID: "4", FirstName: "Dana", LastName: "Fox", Email: "dana@x.com", Phone: "555-4"})
	require.Equal(t, []string{"1", "2", "3", "4"}, ids(l.All()), "created contact must be appended")

	bob := l.All()[1]
	bob.Phone = "555-9"
	require.True(t, l.Replace(bob))
	require.Equal(t, "555-9", l.All()[1].Phone, "updated contact must be replaced in place")
	require.False(t, l.Replace(model.Contact{ID: "unknown"}))

	require.True(t, l.Remove("1"))
	require.False(t, l.Remove("1"))
	require.Equal(t, []string{"2", "3", "4"}, ids(l.All()))
	require.Equal(t, 3, l.Len())
}

func ids(cs []model.Contact) []string {
	res := make([]string, 0, len(cs))
	for _, c := range cs {
		res = append(res, c.ID)
	}
	return res
}
