package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"library-backend/internal/domains/catalog/model"
	"library-backend/internal/domains/catalog/service"
	"library-backend/internal/shared/response"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// Populate seeds the catalog from the external subject feed
// POST /api/v1/populate
func (h *CatalogHandler) Populate(c *gin.Context) {
	var req model.PopulateRequest
	// An empty body means "populate with defaults"
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.catalogService.Populate(c.Request.Context(), req)
	if err != nil {
		response.InternalServerError(c, "Failed to populate catalog")
		return
	}

	response.Success(c, http.StatusOK, result)
}
