package main

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/VictoriaMetrics/metrics"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"github.com/umalmyha/contacts/internal/cache"
	"github.com/umalmyha/contacts/internal/config"
	"github.com/umalmyha/contacts/internal/infra"
	"github.com/umalmyha/contacts/internal/model"
	"github.com/umalmyha/contacts/internal/repository"
	"github.com/umalmyha/contacts/internal/service"
)

func testServer(t *testing.T, contacts ...*model.Contact) *httptest.Server {
	logger, _ := test.NewNullLogger()
	app, err := infra.Router(config.HTTPCfg{AllowOrigins: []string{"*"}}, logger, infra.RouterDeps{
		ContactSvc: service.NewContactService(repository.NewMemoryContactRepository(contacts...), cache.NewNopContactCache(), logger),
		HealthSvc:  service.NewHealthService(),
		Metrics:    metrics.NewSet(),
	})
	require.NoError(t, err, "failed to build router")

	server := httptest.NewServer(app)
	t.Cleanup(server.Close)
	return server
}

func run(t *testing.T, apiURL string, args ...string) (string, error) {
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(append([]string{"--api", apiURL}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestListCmd(t *testing.T) {
	server := testServer(t,
		&model.Contact{ID: "1", FirstName: "Ann", LastName: "Lee", Email: "ann@x.com", Phone: "555-1"},
		&model.Contact{ID: "2", FirstName: "Bob", LastName: "Ray", Email: "bob@x.com", Phone: "555-2", Company: "Annex"},
	)

	t.Log("list all contacts")
	{
		out, err := run(t, server.URL, "list")
		require.NoError(t, err)
		require.Contains(t, out, "ann@x.com")
		require.Contains(t, out, "bob@x.com")
	}

	t.Log("search ignores company")
	{
		out, err := run(t, server.URL, "list", "--search", "ANN")
		require.NoError(t, err)
		require.Contains(t, out, "ann@x.com")
		require.NotContains(t, out, "bob@x.com")
	}

	t.Log("nothing found")
	{
		out, err := run(t, server.URL, "list", "-s", "zzz")
		require.NoError(t, err)
		require.Contains(t, out, "No contacts found")
	}
}

func TestMutatingCmds(t *testing.T) {
	server := testServer(t, &model.Contact{ID: "1", FirstName: "Ann", LastName: "Lee", Email: "ann@x.com", Phone: "555-1", Company: "Acme"})

	t.Log("create contact")
	{
		out, err := run(t, server.URL, "create", "--first-name", "Bob", "--last-name", "Ray", "--email", "bob@x.com", "--phone", "555-2")
		require.NoError(t, err)
		require.Contains(t, out, "created")
		require.Contains(t, out, "ann@x.com", "existing contacts must be kept in list")
		require.Contains(t, out, "bob@x.com", "created contact must be appended to list")
	}

	t.Log("create contact with taken email")
	{
		out, err := run(t, server.URL, "create", "--first-name", "Anna", "--last-name", "Lin", "--email", "ann@x.com", "--phone", "555-3")
		require.Error(t, err)
		require.Contains(t, out, "This email already exists.")
	}

	t.Log("update only provided fields")
	{
		out, err := run(t, server.URL, "update", "1", "--company", "")
		require.NoError(t, err)
		require.Contains(t, out, "Contact 1 updated")

		out, err = run(t, server.URL, "get", "1")
		require.NoError(t, err)
		require.Contains(t, out, "ann@x.com")
		require.NotContains(t, out, "Acme", "company must be cleared")
	}

	t.Log("delete contact")
	{
		out, err := run(t, server.URL, "delete", "1")
		require.NoError(t, err)
		require.Contains(t, out, "Contact 1 deleted")
		require.False(t, strings.Contains(out, "ann@x.com"), "deleted contact must be removed from list")

		_, err = run(t, server.URL, "delete", "1")
		require.Error(t, err)
	}
}
