package handler

import (
	"io"

	resolverapp "github.com/craftshop/backend/internal/application/resolver"
	"github.com/craftshop/backend/internal/infrastructure/barcode"
	"github.com/gin-gonic/gin"
)

// ResolverHandler handles component search, label scanning and manual entry
type ResolverHandler struct {
	BaseHandler
	resolverService *resolverapp.Service
}

// NewResolverHandler creates a new ResolverHandler
func NewResolverHandler(resolverService *resolverapp.Service) *ResolverHandler {
	return &ResolverHandler{
		resolverService: resolverService,
	}
}

// RegisterRoutes registers resolver routes on the given group
func (h *ResolverHandler) RegisterRoutes(rg *gin.RouterGroup) {
	components := rg.Group("/components")
	{
		components.GET("/search", h.Search)
		components.POST("/manual", h.CreateManualEntry)
	}
	scan := rg.Group("/scan")
	{
		scan.POST("", h.Scan)
		scan.POST("/resolve", h.Resolve)
	}
}

// Search godoc
// @Summary      Search components and products
// @Description  Search both catalogs by name or SKU and return ranked candidates. Results carry a sequence number; stale responses are flagged so clients can discard them.
// @Tags         resolver
// @Produce      json
// @Param        q query string true "Search query (minimum 2 characters for a non-empty result)"
// @Success      200 {object} dto.Response{data=resolverapp.SearchResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /components/search [get]
func (h *ResolverHandler) Search(c *gin.Context) {
	query := c.Query("q")

	result, err := h.resolverService.Search(c.Request.Context(), query)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Scan godoc
// @Summary      Scan a label image
// @Description  Decode a captured label image and resolve it against the component catalog. An unreadable or unknown label returns needs_manual_entry rather than an error. The decode is cancelled when the client disconnects.
// @Tags         resolver
// @Accept       octet-stream
// @Produce      json
// @Success      200 {object} dto.Response{data=resolverapp.ScanResolution}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /scan [post]
func (h *ResolverHandler) Scan(c *gin.Context) {
	image, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.BadRequest(c, "Failed to read image data")
		return
	}
	if len(image) == 0 {
		h.BadRequest(c, "Image data is required")
		return
	}

	result, err := h.resolverService.Scan(c.Request.Context(), image)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// ResolveRequest carries already-decoded label text for resolution
// @Description Decoded label text to resolve against the catalog
type ResolveRequest struct {
	Text string `json:"text" binding:"required,max=500"`
}

// Resolve godoc
// @Summary      Resolve decoded label text
// @Description  Parse already-decoded label text (GS1 or in-house format) and resolve it against the component catalog
// @Tags         resolver
// @Accept       json
// @Produce      json
// @Param        request body ResolveRequest true "Decoded label text"
// @Success      200 {object} dto.Response{data=resolverapp.ScanResolution}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /scan/resolve [post]
func (h *ResolverHandler) Resolve(c *gin.Context) {
	var req ResolveRequest
	if !h.BindJSON(c, &req) {
		return
	}

	scan := barcode.ToScanResult(req.Text)

	result, err := h.resolverService.Resolve(c.Request.Context(), *scan)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// CreateManualEntry godoc
// @Summary      Create a manual component entry
// @Description  Mint a manual component from operator input when neither search nor scan matched. The original scanned text is preserved in the audit notes.
// @Tags         resolver
// @Accept       json
// @Produce      json
// @Param        request body resolverapp.ManualEntryRequest true "Manual entry request"
// @Success      201 {object} dto.Response{data=resolverapp.ManualEntryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /components/manual [post]
func (h *ResolverHandler) CreateManualEntry(c *gin.Context) {
	var req resolverapp.ManualEntryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.resolverService.CreateManualEntry(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}
