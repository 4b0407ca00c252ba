package handlers

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	designmapper "github.com/Apurer/garment-studio/internal/domains/designs/adapters/http/mapper"
	"github.com/Apurer/garment-studio/internal/domains/designs/application/types"
	"github.com/Apurer/garment-studio/internal/domains/designs/domain"
	"github.com/Apurer/garment-studio/internal/domains/designs/ports"
	apierrors "github.com/Apurer/garment-studio/internal/shared/errors"
)

// Handler exposes the design service over HTTP.
type Handler struct {
	service   ports.Service
	verifier  TokenVerifier
	responder *apierrors.Responder
}

// NewHandler creates a Handler. A nil verifier treats every caller as anonymous.
func NewHandler(service ports.Service, verifier TokenVerifier) *Handler {
	return &Handler{
		service:   service,
		verifier:  verifier,
		responder: apierrors.NewResponder("", ProblemFor),
	}
}

// Register mounts the design routes under /v1.
func (h *Handler) Register(router gin.IRouter) {
	v1 := router.Group("/v1", Authenticate(h.verifier, h.responder))

	v1.GET("/catalog", h.GetCatalog)

	sessions := v1.Group("/sessions")
	sessions.POST("", h.StartSession)
	sessions.GET("/:sessionId", h.GetSession)
	sessions.PATCH("/:sessionId", h.UpdateConfiguration)
	sessions.DELETE("/:sessionId", h.EndSession)
	sessions.POST("/:sessionId/photo", h.UploadPhoto)
	sessions.POST("/:sessionId/generate", h.Generate)
	sessions.POST("/:sessionId/save", h.SaveDesign)

	v1.GET("/designs", h.ListSavedDesigns)
	v1.GET("/designs/:designId", h.GetSavedDesign)
}

// Get /v1/catalog
func (h *Handler) GetCatalog(c *gin.Context) {
	audience, ok := h.audienceQuery(c)
	if !ok {
		return
	}
	view, err := h.service.Catalog(c.Request.Context(), audience)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, designmapper.FromCatalog(view))
}

// Post /v1/sessions
// The body is optional; an empty body starts on the catalog defaults.
func (h *Handler) StartSession(c *gin.Context) {
	var payload designmapper.StartSessionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
			h.responder.BadRequest(c, err.Error())
			return
		}
	}
	projection, err := h.service.StartSession(c.Request.Context(), designmapper.ToProductSnapshot(payload))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, designmapper.FromSession(projection))
}

// Get /v1/sessions/:sessionId
func (h *Handler) GetSession(c *gin.Context) {
	projection, err := h.service.GetSession(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, designmapper.FromSession(projection))
}

// Patch /v1/sessions/:sessionId
func (h *Handler) UpdateConfiguration(c *gin.Context) {
	var payload designmapper.ConfigurationPatch
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	projection, err := h.service.UpdateConfiguration(c.Request.Context(), c.Param("sessionId"), designmapper.ToConfigurationPatch(payload))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, designmapper.FromSession(projection))
}

// Delete /v1/sessions/:sessionId
func (h *Handler) EndSession(c *gin.Context) {
	if err := h.service.EndSession(c.Request.Context(), c.Param("sessionId")); err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Post /v1/sessions/:sessionId/photo
// Multipart upload with the image in the "photo" field.
func (h *Handler) UploadPhoto(c *gin.Context) {
	header, err := c.FormFile("photo")
	if err != nil {
		h.responder.BadRequest(c, "photo file is required")
		return
	}
	file, err := header.Open()
	if err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, domain.MaxUploadBytes+1))
	if err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	projection, err := h.service.UploadPhoto(c.Request.Context(), types.UploadPhotoInput{
		SessionID:   c.Param("sessionId"),
		Filename:    filepath.Base(header.Filename),
		ContentType: contentType,
		Data:        data,
	})
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, designmapper.FromSession(projection))
}

// Post /v1/sessions/:sessionId/generate
func (h *Handler) Generate(c *gin.Context) {
	var payload designmapper.GenerateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	mode := domain.GenerationMode(strings.ToLower(strings.TrimSpace(payload.Mode)))
	projection, err := h.service.Generate(c.Request.Context(), c.Param("sessionId"), mode)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, designmapper.FromSession(projection))
}

// Post /v1/sessions/:sessionId/save
func (h *Handler) SaveDesign(c *gin.Context) {
	saved, err := h.service.SaveDesign(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, designmapper.FromSavedDesign(saved))
}

// Get /v1/designs
func (h *Handler) ListSavedDesigns(c *gin.Context) {
	audience, ok := h.audienceQuery(c)
	if !ok {
		return
	}
	designs, err := h.service.ListSavedDesigns(c.Request.Context(), audience)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, designmapper.FromSavedDesignList(designs))
}

// Get /v1/designs/:designId
func (h *Handler) GetSavedDesign(c *gin.Context) {
	design, err := h.service.GetSavedDesign(c.Request.Context(), c.Param("designId"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, designmapper.FromSavedDesign(design))
}

func (h *Handler) audienceQuery(c *gin.Context) (domain.Audience, bool) {
	raw := strings.TrimSpace(c.Query("audience"))
	if raw == "" {
		return "", true
	}
	audience, ok := domain.ParseAudience(raw)
	if !ok {
		h.responder.BadRequest(c, "audience must be one of men, women, kids")
		return "", false
	}
	return audience, true
}
