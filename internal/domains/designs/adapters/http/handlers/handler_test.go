package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	designmapper "github.com/Apurer/garment-studio/internal/domains/designs/adapters/http/mapper"
	"github.com/Apurer/garment-studio/internal/domains/designs/adapters/identity"
	"github.com/Apurer/garment-studio/internal/domains/designs/adapters/memory"
	designsapp "github.com/Apurer/garment-studio/internal/domains/designs/application"
	"github.com/Apurer/garment-studio/internal/domains/designs/domain"
	"github.com/Apurer/garment-studio/internal/domains/designs/ports"
	apierrors "github.com/Apurer/garment-studio/internal/shared/errors"
)

const testSecret = "studio-secret"

type stubGenerator struct {
	result *ports.GenerationResult
	err    error
}

func (s *stubGenerator) Generate(context.Context, domain.GenerationRequest) (*ports.GenerationResult, error) {
	return s.result, s.err
}

func newTestRouter(gen ports.ImageGenerator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := designsapp.NewService(nil, gen, memory.NewRepository(), identity.ContextProvider{},
		designsapp.WithUploadStore(memory.NewUploadStore()))
	router := gin.New()
	NewHandler(svc, identity.NewVerifier(testSecret)).Register(router)
	return router
}

func signToken(t *testing.T, sub string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": sub}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func startSession(t *testing.T, router http.Handler) designmapper.Session {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/v1/sessions", nil, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	return decode[designmapper.Session](t, rec)
}

func TestSessionLifecycle(t *testing.T) {
	router := newTestRouter(&stubGenerator{result: &ports.GenerationResult{ImageURL: "https://img.example.com/a.png"}})

	session := startSession(t, router)
	assert.Equal(t, "t-shirt", session.Configuration.GarmentType)
	assert.Equal(t, int64(899), session.Quote.Total)
	assert.Equal(t, "idle", session.Generation.State)

	rec := doJSON(t, router, http.MethodPatch, "/v1/sessions/"+session.ID, map[string]string{
		"garmentType": "hoodie", "fabric": "silk-blend", "size": "XL", "prompt": "neon koi",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[designmapper.Session](t, rec)
	assert.Equal(t, int64(2968), updated.Quote.Total)
	assert.Equal(t, "1.8", updated.Quote.FabricMultiplier)

	rec = doJSON(t, router, http.MethodPost, "/v1/sessions/"+session.ID+"/generate", map[string]string{"mode": "design"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	generated := decode[designmapper.Session](t, rec)
	assert.Equal(t, "https://img.example.com/a.png", generated.Configuration.GeneratedArtifactRef)
	assert.Equal(t, "succeeded", generated.Generation.LastOutcome)

	rec = doJSON(t, router, http.MethodDelete, "/v1/sessions/"+session.ID, nil, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = doJSON(t, router, http.MethodGet, "/v1/sessions/"+session.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStartSession_SeededAndInvalidSeed(t *testing.T) {
	router := newTestRouter(&stubGenerator{})

	rec := doJSON(t, router, http.MethodPost, "/v1/sessions", map[string]any{
		"product": map[string]string{"type": "dress", "color": "#a855f7", "fabric": "Silk Blend"},
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	session := decode[designmapper.Session](t, rec)
	assert.Equal(t, "silk-blend", session.Configuration.Fabric)
	assert.Equal(t, "#A855F7", session.Configuration.Color)

	rec = doJSON(t, router, http.MethodPost, "/v1/sessions", map[string]any{
		"product": map[string]string{"type": "kimono"},
	}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apierrors.ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
}

func TestUpdateConfiguration_InvalidSelectionLeavesSessionUnchanged(t *testing.T) {
	router := newTestRouter(&stubGenerator{})
	session := startSession(t, router)

	rec := doJSON(t, router, http.MethodPatch, "/v1/sessions/"+session.ID, map[string]string{"garmentType": "dress", "size": "XXXL"}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	problem := decode[apierrors.ProblemDetail](t, rec)
	assert.Equal(t, apierrors.TypeInvalidSelection, problem.Type)

	rec = doJSON(t, router, http.MethodGet, "/v1/sessions/"+session.ID, nil, "")
	current := decode[designmapper.Session](t, rec)
	assert.Equal(t, "t-shirt", current.Configuration.GarmentType)
}

func TestGenerate_ErrorTaxonomy(t *testing.T) {
	cases := []struct {
		name   string
		gen    *stubGenerator
		prompt string
		status int
		detail string
	}{
		{"empty prompt", &stubGenerator{}, "", http.StatusUnprocessableEntity, "Describe the design you want first."},
		{"rate limited", &stubGenerator{err: &ports.GenerationFailure{Reason: ports.FailureRateLimited}}, "x", http.StatusTooManyRequests, "Rate limit reached. Please try again later."},
		{"credits", &stubGenerator{err: &ports.GenerationFailure{StatusCode: http.StatusPaymentRequired}}, "x", http.StatusPaymentRequired, "AI credits are used up. Add credits to keep generating."},
		{"upstream", &stubGenerator{err: &ports.GenerationFailure{StatusCode: http.StatusInternalServerError}}, "x", http.StatusBadGateway, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(tc.gen)
			session := startSession(t, router)
			if tc.prompt != "" {
				require.Equal(t, http.StatusOK, doJSON(t, router, http.MethodPatch, "/v1/sessions/"+session.ID, map[string]string{"prompt": tc.prompt}, "").Code)
			}

			rec := doJSON(t, router, http.MethodPost, "/v1/sessions/"+session.ID+"/generate", map[string]string{"mode": "design"}, "")
			require.Equal(t, tc.status, rec.Code)
			if tc.detail != "" {
				assert.Equal(t, tc.detail, decode[apierrors.ProblemDetail](t, rec).Detail)
			}
		})
	}
}

func TestSaveAndListDesigns_RequireIdentity(t *testing.T) {
	router := newTestRouter(&stubGenerator{})
	session := startSession(t, router)

	rec := doJSON(t, router, http.MethodPost, "/v1/sessions/"+session.ID+"/save", nil, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Sign in to save your design.", decode[apierrors.ProblemDetail](t, rec).Detail)

	rec = doJSON(t, router, http.MethodPost, "/v1/sessions/"+session.ID+"/save", nil, "Bearer not-a-jwt")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	owner := signToken(t, "user-1")
	rec = doJSON(t, router, http.MethodPost, "/v1/sessions/"+session.ID+"/save", nil, owner)
	require.Equal(t, http.StatusCreated, rec.Code)
	saved := decode[designmapper.SavedDesign](t, rec)
	assert.Equal(t, int64(899), saved.Price)
	assert.ElementsMatch(t, []string{"men", "women", "kids"}, saved.Audiences)

	rec = doJSON(t, router, http.MethodGet, "/v1/designs?audience=kids", nil, owner)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]designmapper.SavedDesign](t, rec), 1)

	rec = doJSON(t, router, http.MethodGet, "/v1/designs/"+saved.ID, nil, signToken(t, "user-2"))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/v1/designs?audience=pets", nil, owner)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadPhoto_Multipart(t *testing.T) {
	router := newTestRouter(&stubGenerator{result: &ports.GenerationResult{ImageURL: "https://img.example.com/tryon.png"}})
	session := startSession(t, router)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	partHeader := textproto.MIMEHeader{}
	partHeader.Set("Content-Disposition", `form-data; name="photo"; filename="me.png"`)
	partHeader.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(partHeader)
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG\r\n\x1a\nfake"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/sessions/"+session.ID+"/photo", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	uploaded := decode[designmapper.Session](t, rec)
	assert.Contains(t, uploaded.Configuration.UploadedImageRef, "data:image/png;base64,")

	rec = doJSON(t, router, http.MethodPost, "/v1/sessions/"+session.ID+"/generate", map[string]string{"mode": "tryon"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGetCatalog(t *testing.T) {
	router := newTestRouter(&stubGenerator{})

	rec := doJSON(t, router, http.MethodGet, "/v1/catalog?audience=men", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	catalog := decode[designmapper.Catalog](t, rec)
	ids := make([]string, 0, len(catalog.GarmentTypes))
	for _, g := range catalog.GarmentTypes {
		ids = append(ids, g.ID)
	}
	assert.Equal(t, []string{"t-shirt", "hoodie", "shirt"}, ids)
	assert.Equal(t, "t-shirt", catalog.Defaults.GarmentType)
}

func TestNotFoundProblems_NameTheResource(t *testing.T) {
	router := newTestRouter(&stubGenerator{})

	rec := doJSON(t, router, http.MethodGet, "/v1/sessions/missing", nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	problem := decode[apierrors.ProblemDetail](t, rec)
	assert.Equal(t, "design session with identifier 'missing' not found", problem.Detail)
	assert.Equal(t, "design session", problem.Extensions["resourceType"])
	assert.Equal(t, "missing", problem.Extensions["identifier"])

	rec = doJSON(t, router, http.MethodGet, "/v1/designs/abc", nil, signToken(t, "user-1"))
	require.Equal(t, http.StatusNotFound, rec.Code)
	problem = decode[apierrors.ProblemDetail](t, rec)
	assert.Equal(t, "saved design", problem.Extensions["resourceType"])
	assert.Equal(t, "abc", problem.Extensions["identifier"])
}

func TestUpdateConfiguration_EmptyPatchIsUnprocessable(t *testing.T) {
	router := newTestRouter(&stubGenerator{})
	session := startSession(t, router)

	rec := doJSON(t, router, http.MethodPatch, "/v1/sessions/"+session.ID, map[string]string{}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
