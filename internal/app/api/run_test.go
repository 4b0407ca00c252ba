package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/garment-studio/internal/domains/designs/adapters/identity"
	designsmemory "github.com/Apurer/garment-studio/internal/domains/designs/adapters/memory"
	designsapp "github.com/Apurer/garment-studio/internal/domains/designs/application"
	platformobservability "github.com/Apurer/garment-studio/internal/platform/observability"
)

func TestNewRouter_ServesHealthAndCatalog(t *testing.T) {
	svc := designsapp.NewService(nil, nil, designsmemory.NewRepository(), identity.ContextProvider{})
	router := NewRouter(svc, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/catalog?audience=kids", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBuildDesignRepository_FallsBackToMemory(t *testing.T) {
	logger := platformobservability.NewLogger(nil, "error")
	repo, cleanup := buildDesignRepository(context.Background(), Config{}, logger)
	defer cleanup()
	_, ok := repo.(*designsmemory.Repository)
	assert.True(t, ok)

	_, ok = buildUploadStore(Config{}, logger).(*designsmemory.UploadStore)
	assert.True(t, ok)
}

func TestBuildGenerator_DisabledWithoutTemporalOrBaseURL(t *testing.T) {
	instruments := &platformobservability.Instruments{Logger: platformobservability.NewLogger(nil, "error")}
	generator, cleanup := buildGenerator(Config{TemporalDisabled: true}, instruments)
	defer cleanup()
	assert.Nil(t, generator)

	generator, cleanup = buildGenerator(Config{TemporalDisabled: true, ImageGenBaseURL: "https://gen.example.com"}, instruments)
	defer cleanup()
	require.NotNil(t, generator)
}
