package handlers_test

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apihttp "github.com/pharmalink/cv/api/http"
	"github.com/pharmalink/cv/api/http/handlers"
	"github.com/pharmalink/cv/pkg/auth"
	"github.com/pharmalink/cv/pkg/cv"
	"github.com/pharmalink/cv/pkg/cv/export"
	"github.com/pharmalink/cv/pkg/health"
	"github.com/pharmalink/cv/pkg/profile"
	"github.com/pharmalink/cv/pkg/security/jwt"
)

const (
	testSecret = "test-secret"
	testIssuer = "pharmalink-cv"
)

type memUsers struct {
	byEmail map[string]auth.User
}

func (r *memUsers) Create(_ context.Context, u auth.User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return auth.ErrUserAlreadyExists
	}
	r.byEmail[u.Email] = u
	return nil
}

func (r *memUsers) GetByEmail(_ context.Context, email string) (auth.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	return u, nil
}

type memProfiles struct {
	byUser map[uuid.UUID]profile.Profile
}

func (r *memProfiles) Get(_ context.Context, userID uuid.UUID) (profile.Profile, error) {
	p, ok := r.byUser[userID]
	if !ok {
		return profile.Profile{}, profile.ErrNotFound
	}
	return p, nil
}

func (r *memProfiles) Upsert(_ context.Context, p profile.Profile) error {
	r.byUser[p.UserID] = p
	return nil
}

type memCVs struct {
	records map[uuid.UUID]cv.Record
}

func (r *memCVs) Create(_ context.Context, rec cv.Record) error {
	r.records[rec.ID] = rec
	return nil
}

func (r *memCVs) GetForOwner(_ context.Context, ownerID, id uuid.UUID) (cv.Record, error) {
	rec, ok := r.records[id]
	if !ok || rec.OwnerID != ownerID {
		return cv.Record{}, cv.ErrNotFound
	}
	return rec, nil
}

func (r *memCVs) ListByOwner(_ context.Context, ownerID uuid.UUID, limit, offset int) ([]cv.Record, error) {
	var out []cv.Record
	for _, rec := range r.records {
		if rec.OwnerID == ownerID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *memCVs) Update(_ context.Context, rec cv.Record) error {
	if _, ok := r.records[rec.ID]; !ok {
		return cv.ErrNotFound
	}
	r.records[rec.ID] = rec
	return nil
}

func (r *memCVs) DeleteForOwner(_ context.Context, ownerID, id uuid.UUID) error {
	rec, ok := r.records[id]
	if !ok || rec.OwnerID != ownerID {
		return cv.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

type okChecker struct{}

func (okChecker) Name() string { return "ok" }

func (okChecker) Check(_ context.Context) error { return nil }

func newTestApp(t *testing.T) (*fiber.App, *memProfiles) {
	t.Helper()
	users := &memUsers{byEmail: map[string]auth.User{}}
	profiles := &memProfiles{byUser: map[uuid.UUID]profile.Profile{}}
	cvs := &memCVs{records: map[uuid.UUID]cv.Record{}}

	jwtGen := jwt.NewGenerator(testSecret, testIssuer, time.Hour)
	authUC := auth.NewAuthService(users, jwtGen)
	cvUC := cv.NewService(cvs, profiles, nil, nil, nil)

	app := fiber.New()
	apihttp.Register(
		app,
		jwt.NewAuthMiddleware(testSecret, testIssuer),
		handlers.NewAuthHandler(authUC),
		handlers.NewHealthHandler(health.NewService(okChecker{})),
		handlers.NewProfileHandler(profiles),
		handlers.NewCVHandler(cvUC),
		handlers.NewPreviewHandler(cvUC),
		handlers.NewExportHandler(cvUC, export.PassthroughPrinter{}, nil),
	)
	return app, profiles
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, raw
}

func registerUser(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	resp, raw := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func cvPayload() fiber.Map {
	return fiber.Map{
		"variant": "general",
		"title":   "Mon CV",
		"content": cv.StructuredCV{
			Summary:         "Adjoint à la Pharmacie Bernard.",
			ProfessionTitle: "Pharmacien adjoint",
			CurrentRegion:   "Hauts-de-France",
			Experiences: []cv.Experience{
				{
					JobTitle:    "Pharmacien adjoint",
					CompanyName: "Pharmacie Bernard",
					CompanyType: "officine",
					StartDate:   "2020-03",
					IsCurrent:   true,
				},
			},
			Skills: []string{"Délivrance", "Conseil", "Gestion de stock"},
		},
	}
}

func createCV(t *testing.T, app *fiber.App, token string) uuid.UUID {
	t.Helper()
	resp, raw := doJSON(t, app, http.MethodPost, "/api/v1/cvs", token, cvPayload())
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var rec cv.Record
	require.NoError(t, json.Unmarshal(raw, &rec))
	require.NotEqual(t, uuid.Nil, rec.ID)
	return rec.ID
}

func TestHealthEndpoints(t *testing.T) {
	app, _ := newTestApp(t)
	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/ready", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegisterAndLogin(t *testing.T) {
	app, _ := newTestApp(t)
	registerUser(t, app, "paul@exemple.fr")

	resp, raw := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"email": "paul@exemple.fr", "password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode, string(raw))

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email": "paul@exemple.fr", "password": "secret123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email": "paul@exemple.fr", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app, _ := newTestApp(t)
	for _, path := range []string{"/api/v1/cvs", "/api/v1/profile"} {
		resp, _ := doJSON(t, app, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/cvs", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCVLifecycle(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerUser(t, app, "paul@exemple.fr")

	id := createCV(t, app, token)

	resp, raw := doJSON(t, app, http.MethodGet, "/api/v1/cvs", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []cv.Record
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Len(t, list, 1)

	update := cvPayload()
	update["title"] = "Version finale"
	resp, raw = doJSON(t, app, http.MethodPut, "/api/v1/cvs/"+id.String(), token, update)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var rec cv.Record
	require.NoError(t, json.Unmarshal(raw, &rec))
	assert.Equal(t, "Version finale", rec.Title)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/v1/cvs/"+id.String(), token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/cvs/"+id.String(), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCVCreateValidationError(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerUser(t, app, "paul@exemple.fr")

	payload := cvPayload()
	payload["content"] = cv.StructuredCV{
		Experiences: []cv.Experience{{StartDate: "mars 2020"}},
	}
	resp, raw := doJSON(t, app, http.MethodPost, "/api/v1/cvs", token, payload)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, string(raw))
}

func TestCVOwnerIsolation(t *testing.T) {
	app, _ := newTestApp(t)
	owner := registerUser(t, app, "paul@exemple.fr")
	other := registerUser(t, app, "marie@exemple.fr")

	id := createCV(t, app, owner)
	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/cvs/"+id.String(), other, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProfileRoundTrip(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerUser(t, app, "paul@exemple.fr")

	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/profile", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, raw := doJSON(t, app, http.MethodPut, "/api/v1/profile", token, fiber.Map{
		"firstName": "Paul", "lastName": "Bernard", "nickname": "PB",
		"currentRegion": "Hauts-de-France",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	resp, raw = doJSON(t, app, http.MethodGet, "/api/v1/profile", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var p profile.Profile
	require.NoError(t, json.Unmarshal(raw, &p))
	assert.Equal(t, "Paul", p.FirstName)
	assert.Equal(t, "PB", p.Nickname)
}

func TestPreviewModes(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerUser(t, app, "paul@exemple.fr")
	_, raw := doJSON(t, app, http.MethodPut, "/api/v1/profile", token, fiber.Map{
		"firstName": "Paul", "lastName": "Bernard", "nickname": "PB",
	})
	require.NotEmpty(t, raw)
	id := createCV(t, app, token)

	resp, raw := doJSON(t, app, http.MethodGet, "/api/v1/cvs/"+id.String()+"/preview", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var view cv.CVView
	require.NoError(t, json.Unmarshal(raw, &view))
	assert.Equal(t, cv.ModeAnonymous, view.Mode)
	assert.Equal(t, "PB", view.DisplayName)
	assert.NotContains(t, string(raw), "Pharmacie Bernard")

	resp, raw = doJSON(t, app, http.MethodGet, "/api/v1/cvs/"+id.String()+"/preview?mode=full", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &view))
	assert.Equal(t, cv.ModeFull, view.Mode)
	assert.Equal(t, "Paul Bernard", view.DisplayName)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/cvs/"+id.String()+"/preview?mode=secret", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCompletenessEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerUser(t, app, "paul@exemple.fr")
	id := createCV(t, app, token)

	resp, raw := doJSON(t, app, http.MethodGet, "/api/v1/cvs/"+id.String()+"/completeness", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var score cv.Completeness
	require.NoError(t, json.Unmarshal(raw, &score))
	assert.Greater(t, score.Percent, 0)
	assert.Contains(t, score.Missing, "Formations")
}

func TestExportEndpoints(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerUser(t, app, "paul@exemple.fr")
	id := createCV(t, app, token)

	resp, raw := doJSON(t, app, http.MethodGet, "/api/v1/cvs/"+id.String()+"/export", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	doc := string(raw)
	assert.Contains(t, doc, "CV généré par PharmaLink")
	assert.NotContains(t, doc, "Pharmacie Bernard")

	resp, raw = doJSON(t, app, http.MethodPost, "/api/v1/cvs/"+id.String()+"/export/pdf", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.NotEmpty(t, raw)
}

func TestPrefillEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerUser(t, app, "paul@exemple.fr")

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "cv.docx")
	require.NoError(t, err)
	part.Write(buildDocxFixture(t))
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, "/api/v1/cvs/prefill", &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var draft cv.StructuredCV
	require.NoError(t, json.Unmarshal(raw, &draft))
	assert.Contains(t, draft.Summary, "Pharmacie [confidentiel]")
	assert.NotContains(t, draft.Summary, "Dupont")
}

func buildDocxFixture(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(`<w:p><w:t>Adjoint à la Pharmacie Dupont depuis 2019</w:t></w:p>`))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestPrefillRejectsUnsupportedExtension(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerUser(t, app, "paul@exemple.fr")

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "cv.txt")
	require.NoError(t, err)
	fmt.Fprint(part, "du texte")
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, "/api/v1/cvs/prefill", &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
