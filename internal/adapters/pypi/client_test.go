package pypi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mrmachine/reqs/internal/adapters/pypi"
	"github.com/mrmachine/reqs/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const djangoProject = `{
	"info": {
		"name": "Django",
		"version": "1.3.1",
		"requires_dist": [
			"pytz",
			"docutils (>=0.7) ; extra == 'docs'"
		]
	},
	"releases": {
		"1.2.7": [{"filename": "Django-1.2.7.tar.gz"}],
		"1.3": [{"filename": "Django-1.3.tar.gz"}],
		"1.3.1": [{"filename": "Django-1.3.1.tar.gz"}]
	}
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/pypi/django/json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(djangoProject))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Project(t *testing.T) {
	srv := newTestServer(t)
	client := pypi.NewClient(srv.URL, time.Second)

	record, err := client.Project(context.Background(), domain.NewName("Django"))
	require.NoError(t, err)

	assert.Equal(t, "Django", record.Name)
	assert.Equal(t, "1.3.1", record.Latest)
	assert.ElementsMatch(t, []string{"1.2.7", "1.3", "1.3.1"}, record.Versions)

	// Extras-gated dependencies are not hard dependencies.
	assert.Equal(t, []string{"pytz"}, record.Requires)
}

func TestClient_Project_NotFound(t *testing.T) {
	srv := newTestServer(t)
	client := pypi.NewClient(srv.URL, time.Second)

	_, err := client.Project(context.Background(), domain.NewName("no-such-package"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPackageNotFound)
}

func TestClient_Project_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	client := pypi.NewClient(srv.URL, time.Second)
	_, err := client.Project(context.Background(), domain.NewName("django"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrPackageNotFound)
}

func TestClient_Project_CanceledContext(t *testing.T) {
	srv := newTestServer(t)
	client := pypi.NewClient(srv.URL, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Project(ctx, domain.NewName("django"))
	require.Error(t, err)
}
