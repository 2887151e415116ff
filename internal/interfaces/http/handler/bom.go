package handler

import (
	bomapp "github.com/craftshop/backend/internal/application/bom"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BOMHandler handles BOM-related API endpoints
type BOMHandler struct {
	BaseHandler
	bomService *bomapp.Service
}

// NewBOMHandler creates a new BOMHandler
func NewBOMHandler(bomService *bomapp.Service) *BOMHandler {
	return &BOMHandler{
		bomService: bomService,
	}
}

// RegisterRoutes registers BOM routes on the given group
func (h *BOMHandler) RegisterRoutes(rg *gin.RouterGroup) {
	boms := rg.Group("/boms")
	{
		boms.POST("", h.Create)
		boms.GET("", h.List)
		boms.GET("/:id", h.GetByID)
		boms.DELETE("/:id", h.Delete)
		boms.POST("/:id/approve", h.Approve)
		boms.POST("/:id/retire", h.Retire)
		boms.POST("/:id/discard", h.Discard)
		boms.POST("/:id/lines", h.AddLine)
		boms.DELETE("/lines/:lineId", h.RemoveLine)
	}
}

// Create godoc
// @Summary      Create a new BOM draft
// @Description  Create a new bill of materials in draft status for a product
// @Tags         boms
// @Accept       json
// @Produce      json
// @Param        request body bomapp.CreateBOMRequest true "BOM creation request"
// @Success      201 {object} dto.Response{data=bomapp.BOMResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /boms [post]
func (h *BOMHandler) Create(c *gin.Context) {
	var req bomapp.CreateBOMRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.bomService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// List godoc
// @Summary      List BOMs
// @Description  Retrieve a paginated list of BOM summaries, optionally filtered by status
// @Tags         boms
// @Produce      json
// @Param        status query string false "Status filter" Enums(draft, active, obsolete)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Success      200 {object} dto.Response{data=[]bomapp.SummaryResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /boms [get]
func (h *BOMHandler) List(c *gin.Context) {
	var filter bomapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = 20
	}

	result, err := h.bomService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @Summary      Get BOM by ID
// @Description  Retrieve a full BOM with its lines
// @Tags         boms
// @Produce      json
// @Param        id path string true "BOM ID" format(uuid)
// @Success      200 {object} dto.Response{data=bomapp.BOMResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /boms/{id} [get]
func (h *BOMHandler) GetByID(c *gin.Context) {
	bomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid BOM ID format")
		return
	}

	result, err := h.bomService.GetByID(c.Request.Context(), bomID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete godoc
// @Summary      Delete a BOM
// @Description  Delete a draft or obsolete BOM and its lines. An active BOM cannot be deleted; retire or supersede it first.
// @Tags         boms
// @Produce      json
// @Param        id path string true "BOM ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /boms/{id} [delete]
func (h *BOMHandler) Delete(c *gin.Context) {
	bomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid BOM ID format")
		return
	}

	if err := h.bomService.Delete(c.Request.Context(), bomID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Approve godoc
// @Summary      Approve a BOM
// @Description  Approve a draft BOM, making it the active BOM for its product. Any previously active BOM for the same product is retired in the same transaction.
// @Tags         boms
// @Produce      json
// @Param        id path string true "BOM ID" format(uuid)
// @Success      200 {object} dto.Response{data=bomapp.BOMResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /boms/{id}/approve [post]
func (h *BOMHandler) Approve(c *gin.Context) {
	bomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid BOM ID format")
		return
	}

	result, err := h.bomService.Approve(c.Request.Context(), bomID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Retire godoc
// @Summary      Retire a BOM
// @Description  Retire an active BOM, marking it obsolete
// @Tags         boms
// @Produce      json
// @Param        id path string true "BOM ID" format(uuid)
// @Success      200 {object} dto.Response{data=bomapp.BOMResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /boms/{id}/retire [post]
func (h *BOMHandler) Retire(c *gin.Context) {
	bomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid BOM ID format")
		return
	}

	result, err := h.bomService.Retire(c.Request.Context(), bomID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Discard godoc
// @Summary      Discard a BOM draft
// @Description  Mark a draft BOM obsolete without it ever activating. The record stays in the product's revision history.
// @Tags         boms
// @Produce      json
// @Param        id path string true "BOM ID" format(uuid)
// @Success      200 {object} dto.Response{data=bomapp.BOMResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /boms/{id}/discard [post]
func (h *BOMHandler) Discard(c *gin.Context) {
	bomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid BOM ID format")
		return
	}

	result, err := h.bomService.Discard(c.Request.Context(), bomID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// AddLine godoc
// @Summary      Add a line to a BOM
// @Description  Add a component or sub-product line to a draft BOM. Costs are recomputed server-side.
// @Tags         boms
// @Accept       json
// @Produce      json
// @Param        id path string true "BOM ID" format(uuid)
// @Param        request body bomapp.AddLineRequest true "Line to add"
// @Success      201 {object} dto.Response{data=bomapp.LineResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /boms/{id}/lines [post]
func (h *BOMHandler) AddLine(c *gin.Context) {
	bomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid BOM ID format")
		return
	}

	var req bomapp.AddLineRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.bomService.AddLine(c.Request.Context(), bomID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// RemoveLine godoc
// @Summary      Remove a line from a BOM
// @Description  Remove a line from a draft BOM by line ID. Remaining lines keep their numbers; costs are recomputed.
// @Tags         boms
// @Produce      json
// @Param        lineId path string true "Line ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /boms/lines/{lineId} [delete]
func (h *BOMHandler) RemoveLine(c *gin.Context) {
	lineID, err := uuid.Parse(c.Param("lineId"))
	if err != nil {
		h.BadRequest(c, "Invalid line ID format")
		return
	}

	if err := h.bomService.RemoveLine(c.Request.Context(), lineID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
