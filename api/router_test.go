package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beka-birhanu/vinom-portfolio/api/blog"
	"github.com/beka-birhanu/vinom-portfolio/api/contact"
	api_i "github.com/beka-birhanu/vinom-portfolio/api/i"
	"github.com/beka-birhanu/vinom-portfolio/api/identity"
	"github.com/beka-birhanu/vinom-portfolio/api/mazeapi"
	"github.com/beka-birhanu/vinom-portfolio/content"
	dmn "github.com/beka-birhanu/vinom-portfolio/domain"
	"github.com/beka-birhanu/vinom-portfolio/infrastruture/logger"
	"github.com/beka-birhanu/vinom-portfolio/infrastruture/token"
	"github.com/beka-birhanu/vinom-portfolio/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const adminPassword = "orbit-Lantern-71-kettle"

type forwarder struct {
	err  error
	sent int
}

func (f *forwarder) Forward(context.Context, *dmn.ContactMessage) error {
	if f.err != nil {
		return f.err
	}
	f.sent++
	return nil
}

type memRepo struct{ msgs []*dmn.ContactMessage }

func (r *memRepo) Save(_ context.Context, m *dmn.ContactMessage) error {
	r.msgs = append(r.msgs, m)
	return nil
}

func (r *memRepo) List(context.Context, int, int) ([]*dmn.ContactMessage, error) {
	return r.msgs, nil
}

type limiter struct{ allow bool }

func (l *limiter) Allow(context.Context, string) (bool, error) { return l.allow, nil }

type fixture struct {
	handler   http.Handler
	forwarder *forwarder
	limiter   *limiter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log, err := logger.New("TEST", "", io.Discard)
	require.NoError(t, err)

	dir := t.TempDir()
	write := func(slug, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, slug+".md"), []byte(body), 0o644))
	}
	write("maze-notes", "---\ntitle: Maze Notes\ndate: 2024-06-01\ncategory: Projects\nexcerpt: Walls.\n---\n## A\n\n## B\n\n## C\n")
	write("hello", "---\ntitle: Hello\ndate: 2023-02-01\ncategory: Life\n---\nHi.\n")
	store := content.NewStore(dir, log)
	require.NoError(t, store.Load())

	fwd, lim := &forwarder{}, &limiter{allow: true}
	contactSvc, err := service.NewContactService(service.ContactOptions{
		Forwarder: fwd,
		Repo:      &memRepo{},
		Limiter:   lim,
		Logger:    log,
	})
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)
	admin, err := dmn.NewAdmin("site_admin", string(hash))
	require.NoError(t, err)
	tokenizer := token.NewJwtService("test-secret", "portfolio")
	authSvc, err := service.NewAuthService(admin, tokenizer)
	require.NoError(t, err)

	router := NewRouter(Config{
		BaseURL: "/api",
		Mode:    gin.TestMode,
		Controllers: []api_i.Controller{
			identity.NewIdentityServer(authSvc),
			blog.NewController(store, "https://example.com/"),
			contact.NewController(contactSvc),
			mazeapi.NewController(service.NewMazePreview(30), 6),
		},
		AuthorizationMiddleware: identity.Authoriz(tokenizer),
	})

	return &fixture{handler: router.Handler(), forwarder: fwd, limiter: lim}
}

func (f *fixture) do(t *testing.T, method, path, body, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestBlogRoutes(t *testing.T) {
	f := newFixture(t)

	t.Run("list newest first", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/posts", "", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var out struct{ Posts []blog.PostSummary }
		decode(t, rec, &out)
		require.Len(t, out.Posts, 2)
		assert.Equal(t, "maze-notes", out.Posts[0].Slug)
		assert.Equal(t, "hello", out.Posts[1].Slug)
	})

	t.Run("filter by category", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/posts?category=life", "", "")
		var out struct{ Posts []blog.PostSummary }
		decode(t, rec, &out)
		require.Len(t, out.Posts, 1)
		assert.Equal(t, "hello", out.Posts[0].Slug)
	})

	t.Run("post with toc", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/posts/maze-notes", "", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var out blog.PostResponse
		decode(t, rec, &out)
		assert.Equal(t, "Maze Notes", out.Title)
		assert.Len(t, out.TOC, 3)
		assert.Contains(t, out.HTML, `<h2 id="a">A</h2>`)
	})

	t.Run("post without toc", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/posts/hello", "", "")
		var out blog.PostResponse
		decode(t, rec, &out)
		assert.Empty(t, out.TOC)
	})

	t.Run("unknown post", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/posts/nope", "", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("categories", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/categories", "", "")
		var out struct{ Categories []string }
		decode(t, rec, &out)
		assert.Equal(t, []string{"Life", "Projects"}, out.Categories)
	})

	t.Run("sitemap", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/sitemap.xml", "", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "application/xml")
		body := rec.Body.String()
		assert.True(t, strings.HasPrefix(body, "<?xml"))
		assert.Contains(t, body, "<loc>https://example.com/</loc>")
		assert.Contains(t, body, "<loc>https://example.com/MazeGame</loc>")
		assert.Contains(t, body, "<loc>https://example.com/Articles/maze-notes</loc>")
		assert.Contains(t, body, "<lastmod>2023-02-01</lastmod>")
		assert.Equal(t, 5, strings.Count(body, "<url>"))
	})
}

func TestContactRoutes(t *testing.T) {
	valid := `{"name":"Ada","email":"ada@example.com","message":"Hello"}`

	t.Run("sent", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(t, http.MethodPost, "/api/v1/contact", valid, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, f.forwarder.sent)
	})

	t.Run("field error", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(t, http.MethodPost, "/api/v1/contact", `{"name":"Ada","email":"bad","message":"x"}`, "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		var out map[string]string
		decode(t, rec, &out)
		assert.Equal(t, "email", out["field"])
		assert.Equal(t, "Please enter a valid email address", out["error"])
		assert.Zero(t, f.forwarder.sent)
	})

	t.Run("malformed body", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(t, http.MethodPost, "/api/v1/contact", `{"name":`, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("honeypot", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(t, http.MethodPost, "/api/v1/contact", `{"botcheck":true}`, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Zero(t, f.forwarder.sent)
	})

	t.Run("rate limited", func(t *testing.T) {
		f := newFixture(t)
		f.limiter.allow = false
		rec := f.do(t, http.MethodPost, "/api/v1/contact", valid, "")
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	})

	t.Run("upstream failure", func(t *testing.T) {
		f := newFixture(t)
		f.forwarder.err = errors.New("down")
		rec := f.do(t, http.MethodPost, "/api/v1/contact", valid, "")
		require.Equal(t, http.StatusBadGateway, rec.Code)
		var out map[string]string
		decode(t, rec, &out)
		assert.Equal(t, "Something went wrong. Please try again later.", out["error"])
	})
}

func TestAdminRoutes(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/auth/login", `{"username":"site_admin","password":"nope"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/v1/auth/login", `{"username":"site_admin"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/messages", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/messages", "", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/v1/auth/login", `{"username":"site_admin","password":"`+adminPassword+`"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var auth identity.AuthResponse
	decode(t, rec, &auth)
	require.NotEmpty(t, auth.Token)

	rec = f.do(t, http.MethodGet, "/api/v1/auth/me", "", auth.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"admin"`)

	f.do(t, http.MethodPost, "/api/v1/contact", `{"name":"Ada","email":"ada@example.com","message":"Hello"}`, "")
	rec = f.do(t, http.MethodGet, "/api/v1/messages?limit=10", "", auth.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	var out struct{ Messages []dmn.ContactMessage }
	decode(t, rec, &out)
	require.Len(t, out.Messages, 1)
	assert.Equal(t, "Ada", out.Messages[0].Name)
	assert.True(t, out.Messages[0].Forwarded)
}

func TestMazeRoute(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/maze?size=5&seed=3", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var out mazeapi.MazeResponse
	decode(t, rec, &out)
	assert.Equal(t, 5, out.Size)
	assert.Equal(t, int64(3), out.Seed)
	assert.Equal(t, 24, out.Passages)
	require.Len(t, out.Cells, 5)
	assert.Len(t, out.Cells[0], 5)
	assert.True(t, out.Cells[0][0].North)
	assert.True(t, out.Cells[0][0].West)
	assert.NotEmpty(t, out.ASCII)

	again := f.do(t, http.MethodGet, "/api/v1/maze?size=5&seed=3", "", "")
	assert.Equal(t, rec.Body.String(), again.Body.String())

	rec = f.do(t, http.MethodGet, "/api/v1/maze", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &out)
	assert.Equal(t, 6, out.Size)
	assert.NotZero(t, out.Seed)

	for _, q := range []string{"size=0", "size=31", "size=abc"} {
		rec = f.do(t, http.MethodGet, "/api/v1/maze?"+q, "", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}
