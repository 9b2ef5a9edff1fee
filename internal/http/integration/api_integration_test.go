package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/geocoder89/toolhub/internal/auth"
	"github.com/geocoder89/toolhub/internal/cache"
	"github.com/geocoder89/toolhub/internal/config"
	"github.com/geocoder89/toolhub/internal/domain/submission"
	"github.com/geocoder89/toolhub/internal/domain/tool"
	"github.com/geocoder89/toolhub/internal/domain/user"
	apphttp "github.com/geocoder89/toolhub/internal/http"
	"github.com/geocoder89/toolhub/internal/observability"
	"github.com/geocoder89/toolhub/internal/repo/memory"
	"github.com/geocoder89/toolhub/internal/security"
	"github.com/geocoder89/toolhub/internal/services"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "admin-pass"
)

func testConfig() config.Config {
	return config.Config{
		Env:                "test",
		Store:              "memory",
		JWTSecret:          "test-secret-key",
		JWTTTL:             time.Hour,
		CORSAllowedOrigins: []string{"http://localhost:3000"},
		MaxBodyBytes:       1 << 20,
	}
}

type testApp struct {
	router *gin.Engine
	users  *memory.UsersRepo
	tools  *memory.ToolsRepo
}

func setupApp(t *testing.T) testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
	prom := observability.NewProm(prometheus.NewRegistry())

	users := memory.NewUsersRepo()
	tools := memory.NewToolsRepo()
	subs := memory.NewSubmissionsRepo(tools)
	favs := memory.NewFavoritesRepo(tools)

	hash, err := security.HashPassword(adminPassword)
	if err != nil {
		t.Fatalf("hash admin password: %v", err)
	}
	if _, err := users.Create(context.Background(), user.New("Admin", adminEmail, hash, true)); err != nil {
		t.Fatalf("create admin: %v", err)
	}

	catalog := services.NewCatalogService(tools, cache.New(time.Minute), prom, logger)

	router := apphttp.NewRouter(logger, cfg, apphttp.Deps{
		Users:       users,
		JWT:         auth.NewManager(cfg.JWTSecret, cfg.JWTTTL),
		Catalog:     catalog,
		Submissions: services.NewSubmissionService(subs, catalog, logger),
		Favorites:   services.NewFavoritesManager(favs, tools, logger),
		Prom:        prom,
	})

	return testApp{router: router, users: users, tools: tools}
}

// helpers

func doRequest(router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func mustReadJSON[T any](t *testing.T, w *httptest.ResponseRecorder, out *T) {
	t.Helper()
	err := json.Unmarshal(w.Body.Bytes(), out)
	if err != nil {
		t.Fatalf("failed to unmarshal json: %v, body=%s", err, w.Body.String())
	}
}

func mustStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("got status %d, want %d, body=%s", w.Code, want, w.Body.String())
	}
}

type authResponse struct {
	User  user.Public `json:"user"`
	Token string      `json:"token"`
}

type errorResponse struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"requestId"`
	} `json:"error"`
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var e errorResponse
	mustReadJSON(t, w, &e)
	if e.Error.RequestID == "" {
		t.Fatalf("error envelope without requestId: %s", w.Body.String())
	}
	return e.Error.Code
}

func register(t *testing.T, router http.Handler, name, email, password string) authResponse {
	t.Helper()
	body := `{"name":"` + name + `","email":"` + email + `","password":"` + password + `"}`
	w := doRequest(router, http.MethodPost, "/api/auth/register", "", body)
	mustStatus(t, w, http.StatusCreated)

	var resp authResponse
	mustReadJSON(t, w, &resp)
	return resp
}

func login(t *testing.T, router http.Handler, email, password string) string {
	t.Helper()
	w := doRequest(router, http.MethodPost, "/api/auth/login", "", `{"email":"`+email+`","password":"`+password+`"}`)
	mustStatus(t, w, http.StatusOK)

	var resp authResponse
	mustReadJSON(t, w, &resp)
	return resp.Token
}

func createTool(t *testing.T, router http.Handler, token, name, category string) tool.Tool {
	t.Helper()
	body := `{"name":"` + name + `","description":"desc","longDescription":"long","category":"` + category +
		`","pricing":"Free","tags":["#AI"],"image":"https://img","url":"https://site"}`
	w := doRequest(router, http.MethodPost, "/api/tools", token, body)
	mustStatus(t, w, http.StatusCreated)

	var resp struct {
		Tool tool.Tool `json:"tool"`
	}
	mustReadJSON(t, w, &resp)
	return resp.Tool
}

func listTools(t *testing.T, router http.Handler, query string) []tool.Tool {
	t.Helper()
	w := doRequest(router, http.MethodGet, "/api/tools"+query, "", "")
	mustStatus(t, w, http.StatusOK)

	var resp struct {
		Tools []tool.Tool `json:"tools"`
	}
	mustReadJSON(t, w, &resp)
	return resp.Tools
}

// scenarios

func TestAuthIntegration_Register_Login_Me(t *testing.T) {
	app := setupApp(t)

	reg := register(t, app.router, "Sam Doe", "sam@example.com", "password123")
	if reg.Token == "" || reg.User.IsAdmin {
		t.Fatalf("unexpected register response: %+v", reg)
	}

	token := login(t, app.router, "sam@example.com", "password123")

	w := doRequest(app.router, http.MethodPost, "/api/auth/login", "", `{"email":"sam@example.com","password":"wrong"}`)
	mustStatus(t, w, http.StatusUnauthorized)
	if code := errorCode(t, w); code != "invalid_credentials" {
		t.Fatalf("expected invalid_credentials, got %q", code)
	}

	w = doRequest(app.router, http.MethodGet, "/api/auth/me", token, "")
	mustStatus(t, w, http.StatusOK)

	var me struct {
		User user.Public `json:"user"`
	}
	mustReadJSON(t, w, &me)
	if me.User.Email != "sam@example.com" || me.User.Name != "Sam Doe" {
		t.Fatalf("unexpected /me user: %+v", me.User)
	}

	w = doRequest(app.router, http.MethodGet, "/api/auth/me", "", "")
	mustStatus(t, w, http.StatusUnauthorized)

	w = doRequest(app.router, http.MethodPost, "/api/auth/register", "", `{"name":"Sam","email":"sam@example.com","password":"other"}`)
	mustStatus(t, w, http.StatusBadRequest)
	if code := errorCode(t, w); code != "email_taken" {
		t.Fatalf("expected email_taken, got %q", code)
	}
}

func TestCatalogIntegration_AdminCRUDAndFilters(t *testing.T) {
	app := setupApp(t)
	admin := login(t, app.router, adminEmail, adminPassword)
	userToken := register(t, app.router, "U", "u@example.com", "pw").Token

	w := doRequest(app.router, http.MethodPost, "/api/tools", userToken, `{"name":"x"}`)
	mustStatus(t, w, http.StatusForbidden)
	if code := errorCode(t, w); code != "forbidden" {
		t.Fatalf("expected forbidden, got %q", code)
	}

	w = doRequest(app.router, http.MethodPost, "/api/tools", "", `{"name":"x"}`)
	mustStatus(t, w, http.StatusUnauthorized)

	edu := createTool(t, app.router, admin, "Khanmigo", "Education")
	createTool(t, app.router, admin, "Descript", "Audio")
	createTool(t, app.router, admin, "Brainly", "Education")

	all := listTools(t, app.router, "?category=All")
	if len(all) != 3 {
		t.Fatalf("expected 3 tools, got %d", len(all))
	}
	if all[0].Name != "Brainly" || all[1].Name != "Descript" || all[2].Name != "Khanmigo" {
		t.Fatalf("tools not ordered by name: %v", []string{all[0].Name, all[1].Name, all[2].Name})
	}

	education := listTools(t, app.router, "?category=Education")
	if len(education) != 2 {
		t.Fatalf("expected 2 education tools, got %d", len(education))
	}
	for _, tl := range education {
		if tl.Category != "Education" {
			t.Fatalf("category filter leaked %q", tl.Category)
		}
	}

	if got := listTools(t, app.router, "?search=KHAN"); len(got) != 1 || got[0].ID != edu.ID {
		t.Fatalf("search did not find Khanmigo: %+v", got)
	}

	// partial update, then the cached list must reflect it
	w = doRequest(app.router, http.MethodPut, "/api/tools/"+edu.ID, admin, `{"featured":true}`)
	mustStatus(t, w, http.StatusOK)

	var updated struct {
		Tool tool.Tool `json:"tool"`
	}
	mustReadJSON(t, w, &updated)
	if !updated.Tool.Featured || updated.Tool.Name != "Khanmigo" || updated.Tool.Category != "Education" {
		t.Fatalf("partial update touched absent fields: %+v", updated.Tool)
	}

	for _, tl := range listTools(t, app.router, "?category=Education") {
		if tl.ID == edu.ID && !tl.Featured {
			t.Fatalf("list served a stale cached copy after update")
		}
	}

	// empty patch is a no-op
	w = doRequest(app.router, http.MethodPut, "/api/tools/"+edu.ID, admin, `{}`)
	mustStatus(t, w, http.StatusOK)
	var unchanged struct {
		Tool tool.Tool `json:"tool"`
	}
	mustReadJSON(t, w, &unchanged)
	if !unchanged.Tool.UpdatedAt.Equal(updated.Tool.UpdatedAt) {
		t.Fatalf("empty patch changed updatedAt")
	}

	w = doRequest(app.router, http.MethodDelete, "/api/tools/"+edu.ID, admin, "")
	mustStatus(t, w, http.StatusOK)

	w = doRequest(app.router, http.MethodGet, "/api/tools/"+edu.ID, "", "")
	mustStatus(t, w, http.StatusNotFound)

	w = doRequest(app.router, http.MethodDelete, "/api/tools/"+edu.ID, admin, "")
	mustStatus(t, w, http.StatusNotFound)

	if got := listTools(t, app.router, ""); len(got) != 2 {
		t.Fatalf("expected 2 tools after delete, got %d", len(got))
	}
}

func TestSubmissionIntegration_SubmitApprove(t *testing.T) {
	app := setupApp(t)
	admin := login(t, app.router, adminEmail, adminPassword)

	body := `{"name":"Gamma","description":"Decks","longDescription":"AI decks","category":"Productivity",
		"pricing":"Freemium","tags":"x, y ,z","imageUrl":"https://img/gamma.png","url":"https://gamma.app",
		"submitterEmail":"fan@example.com"}`

	w := doRequest(app.router, http.MethodPost, "/api/submissions", "", body)
	mustStatus(t, w, http.StatusCreated)

	var created struct {
		Submission submission.Submission `json:"submission"`
	}
	mustReadJSON(t, w, &created)

	tags := created.Submission.Tags
	if len(tags) != 3 || tags[0] != "x" || tags[1] != "y" || tags[2] != "z" {
		t.Fatalf("tags not split and trimmed: %q", tags)
	}

	w = doRequest(app.router, http.MethodGet, "/api/submissions", "", "")
	mustStatus(t, w, http.StatusUnauthorized)

	w = doRequest(app.router, http.MethodGet, "/api/submissions", admin, "")
	mustStatus(t, w, http.StatusOK)
	var listed struct {
		Submissions []submission.Submission `json:"submissions"`
	}
	mustReadJSON(t, w, &listed)
	if len(listed.Submissions) != 1 || listed.Submissions[0].Status != submission.StatusPending {
		t.Fatalf("unexpected submissions: %+v", listed.Submissions)
	}

	approvePath := "/api/submissions/" + created.Submission.ID + "/approve"

	w = doRequest(app.router, http.MethodPut, approvePath, admin, "")
	mustStatus(t, w, http.StatusOK)
	var approved struct {
		Tool tool.Tool `json:"tool"`
	}
	mustReadJSON(t, w, &approved)

	w = doRequest(app.router, http.MethodGet, "/api/tools/"+approved.Tool.ID, "", "")
	mustStatus(t, w, http.StatusOK)
	var fetched struct {
		Tool tool.Tool `json:"tool"`
	}
	mustReadJSON(t, w, &fetched)

	if fetched.Tool.Image != "https://img/gamma.png" {
		t.Fatalf("image = %q, want imageUrl", fetched.Tool.Image)
	}
	if fetched.Tool.Featured {
		t.Fatalf("promoted tools must not be featured")
	}

	w = doRequest(app.router, http.MethodPut, approvePath, admin, "")
	mustStatus(t, w, http.StatusConflict)
	if code := errorCode(t, w); code != "already_approved" {
		t.Fatalf("expected already_approved, got %q", code)
	}

	if got := listTools(t, app.router, "?search=gamma"); len(got) != 1 {
		t.Fatalf("re-approval must not create a second tool, got %d", len(got))
	}

	w = doRequest(app.router, http.MethodPut, "/api/submissions/nope/approve", admin, "")
	mustStatus(t, w, http.StatusNotFound)
}

func TestFavoritesIntegration_IdempotentAndDangling(t *testing.T) {
	app := setupApp(t)
	admin := login(t, app.router, adminEmail, adminPassword)
	token := register(t, app.router, "Fan", "fan@example.com", "pw").Token

	a := createTool(t, app.router, admin, "Alpha", "Audio")
	b := createTool(t, app.router, admin, "Beta", "Audio")

	w := doRequest(app.router, http.MethodPost, "/api/favorites/"+a.ID, token, "")
	mustStatus(t, w, http.StatusOK)
	if w.Body.String() != `{"message":"Added to favorites"}` {
		t.Fatalf("unexpected body %s", w.Body.String())
	}

	w = doRequest(app.router, http.MethodPost, "/api/favorites/"+a.ID, token, "")
	mustStatus(t, w, http.StatusOK)
	if w.Body.String() != `{"message":"Already in favorites"}` {
		t.Fatalf("second add should report already favorited: %s", w.Body.String())
	}

	doRequest(app.router, http.MethodPost, "/api/favorites/"+b.ID, token, "")

	favorites := func() []tool.Tool {
		w := doRequest(app.router, http.MethodGet, "/api/favorites", token, "")
		mustStatus(t, w, http.StatusOK)
		var resp struct {
			Favorites []tool.Tool `json:"favorites"`
		}
		mustReadJSON(t, w, &resp)
		return resp.Favorites
	}

	if got := favorites(); len(got) != 2 || got[0].ID != a.ID {
		t.Fatalf("expected [Alpha Beta], got %+v", got)
	}

	// deleting a tool leaves a dangling favorite that reads filter out
	mustStatus(t, doRequest(app.router, http.MethodDelete, "/api/tools/"+a.ID, admin, ""), http.StatusOK)
	if got := favorites(); len(got) != 1 || got[0].ID != b.ID {
		t.Fatalf("dangling favorite not filtered: %+v", got)
	}

	mustStatus(t, doRequest(app.router, http.MethodDelete, "/api/favorites/"+b.ID, token, ""), http.StatusOK)
	mustStatus(t, doRequest(app.router, http.MethodDelete, "/api/favorites/"+b.ID, token, ""), http.StatusNotFound)

	w = doRequest(app.router, http.MethodPost, "/api/favorites/not-a-uuid", token, "")
	mustStatus(t, w, http.StatusBadRequest)
	if code := errorCode(t, w); code != "invalid_id" {
		t.Fatalf("expected invalid_id, got %q", code)
	}
	mustStatus(t, doRequest(app.router, http.MethodDelete, "/api/favorites/not-a-uuid", token, ""), http.StatusNotFound)

	mustStatus(t, doRequest(app.router, http.MethodGet, "/api/favorites", "", ""), http.StatusUnauthorized)
}

func TestAccessGuardIntegration_DemotedAdminLosesAccess(t *testing.T) {
	app := setupApp(t)
	admin := login(t, app.router, adminEmail, adminPassword)

	mustStatus(t, doRequest(app.router, http.MethodGet, "/api/submissions", admin, ""), http.StatusOK)

	if err := app.users.SetAdmin(context.Background(), adminEmail, false); err != nil {
		t.Fatalf("demote: %v", err)
	}

	// the token still claims admin; the live record wins
	mustStatus(t, doRequest(app.router, http.MethodGet, "/api/submissions", admin, ""), http.StatusForbidden)
}

func TestPublicRoutes(t *testing.T) {
	app := setupApp(t)

	w := doRequest(app.router, http.MethodGet, "/api/categories", "", "")
	mustStatus(t, w, http.StatusOK)
	var cats struct {
		Categories []string `json:"categories"`
	}
	mustReadJSON(t, w, &cats)
	if len(cats.Categories) == 0 || cats.Categories[0] != "All" {
		t.Fatalf("unexpected categories: %v", cats.Categories)
	}

	mustStatus(t, doRequest(app.router, http.MethodGet, "/healthz", "", ""), http.StatusOK)
	mustStatus(t, doRequest(app.router, http.MethodGet, "/readyz", "", ""), http.StatusOK)

	w = doRequest(app.router, http.MethodGet, "/metrics", "", "")
	mustStatus(t, w, http.StatusOK)
	if !bytes.Contains(w.Body.Bytes(), []byte("toolhub_http_requests_total")) {
		t.Fatalf("metrics missing request counter")
	}

	req := httptest.NewRequest(http.MethodPost, "/api/submissions", bytes.NewBufferString("name=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	mustStatus(t, rec, http.StatusUnsupportedMediaType)
}
