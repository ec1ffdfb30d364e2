package sanity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3-lines-studio/jamb/internal/core"
)

type recorded struct {
	path   string
	query  map[string]string
	bearer string
}

func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.path = r.URL.Path
		rec.query = map[string]string{}
		for k, v := range r.URL.Query() {
			rec.query[k] = v[0]
		}
		rec.bearer = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func newTestClient(t *testing.T, baseURL, token string) *Client {
	t.Helper()
	c, err := NewClient(Config{ProjectID: "p1", Dataset: "production", Token: token, BaseURL: baseURL})
	require.NoError(t, err)
	return c
}

func TestNewClientValidates(t *testing.T) {
	_, err := NewClient(Config{Dataset: "production"})
	assert.ErrorIs(t, err, ErrMissingProject)

	_, err = NewClient(Config{ProjectID: "p1"})
	assert.ErrorIs(t, err, ErrMissingDataset)

	c, err := NewClient(Config{ProjectID: "p1", Dataset: "production", APIVersion: "v2024-01-01"})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", c.cfg.APIVersion)
}

func TestHost(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		perspective core.Perspective
		expected    string
	}{
		{"live api", Config{}, core.PerspectivePublished, "https://p1.api.sanity.io"},
		{"cdn for published", Config{UseCDN: true}, core.PerspectivePublished, "https://p1.apicdn.sanity.io"},
		{"no cdn for drafts", Config{UseCDN: true}, core.PerspectiveDrafts, "https://p1.api.sanity.io"},
		{"no cdn with token", Config{UseCDN: true, Token: "t"}, core.PerspectivePublished, "https://p1.api.sanity.io"},
		{"base url override", Config{BaseURL: "http://localhost:9999/"}, core.PerspectivePublished, "http://localhost:9999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.ProjectID = "p1"
			tt.cfg.Dataset = "production"
			c, err := NewClient(tt.cfg)
			require.NoError(t, err)
			if got := c.host(tt.perspective); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestFetchPage(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `{"ms":3,"result":{"_id":"about","_type":"page","slug":{"current":"about"},"pageBuilder":[{"_type":"hero","_key":"a"}]}}`)
	c := newTestClient(t, srv.URL, "secret")

	raw, err := c.Fetch(context.Background(), core.Query{Type: core.DocPage, Slug: "/about/", Perspective: core.PerspectiveDrafts})
	require.NoError(t, err)

	var doc core.PageDocument
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "about", doc.ID)
	assert.Equal(t, []string{"hero"}, doc.PageBuilder.Tags())

	assert.Equal(t, "/v"+DefaultAPIVersion+"/data/query/production", rec.path)
	assert.Equal(t, `"about"`, rec.query["$slug"])
	assert.Equal(t, "previewDrafts", rec.query["perspective"])
	assert.Equal(t, "Bearer secret", rec.bearer)
	assert.True(t, strings.HasPrefix(rec.query["query"], `*[_type == "page" && slug.current == $slug][0]`))
}

func TestFetchNullIsNotFound(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{"result":null}`)
	c := newTestClient(t, srv.URL, "")

	_, err := c.Fetch(context.Background(), core.Query{Type: core.DocFooter})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestQueryError(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusBadRequest, `{"error":{"description":"expected '}' following object body","type":"queryParseError"}}`)
	c := newTestClient(t, srv.URL, "")

	_, err := c.Fetch(context.Background(), core.Query{Type: core.DocSettings})
	var qerr *QueryError
	require.True(t, errors.As(err, &qerr))
	assert.Equal(t, http.StatusBadRequest, qerr.Status)
	assert.Contains(t, qerr.Error(), "following object body")
}

func TestSlugs(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `{"result":["about","","contact"]}`)
	c := newTestClient(t, srv.URL, "")

	slugs, err := c.Slugs(context.Background(), core.DocPage, core.PerspectivePublished)
	require.NoError(t, err)
	assert.Equal(t, []string{"about", "contact"}, slugs)
	assert.Equal(t, `"page"`, rec.query["$type"])
	assert.Empty(t, rec.bearer)
}

func TestDocumentQuery(t *testing.T) {
	q, params, err := documentQuery(core.Query{ID: "drafts.home"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(q, "*[_id == $id][0]"))
	assert.Equal(t, "drafts.home", params["id"])

	for _, docType := range []string{core.DocHomePage, core.DocSettings, core.DocNavbar, core.DocDrawerNavigation, core.DocFooter} {
		_, params, err := documentQuery(core.Query{Type: docType})
		require.NoError(t, err, docType)
		assert.Equal(t, docType, params["type"])
	}

	_, _, err = documentQuery(core.Query{Type: core.DocPage})
	assert.Error(t, err)
	_, _, err = documentQuery(core.Query{Type: "author"})
	assert.Error(t, err)
}
