package api

import (
	"net/http"

	"foodgram-api/service"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the tag and ingredient dictionaries.
type CatalogHandler struct {
	svc *service.Service
}

func NewCatalogHandler(svc *service.Service) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

type tagRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *CatalogHandler) CreateTag(c *gin.Context) {
	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)

		return
	}

	tag, err := h.svc.CreateTag(c.Request.Context(), req.Name)
	if err != nil {
		respondServiceError(c, err)

		return
	}

	RespondCreated(c, tag)
}

func (h *CatalogHandler) UpdateTag(c *gin.Context) {
	tagID, err := idParam(c, "id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)

		return
	}

	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)

		return
	}

	tag, err := h.svc.UpdateTag(c.Request.Context(), tagID, req.Name)
	if err != nil {
		respondServiceError(c, err)

		return
	}

	RespondOK(c, tag)
}

func (h *CatalogHandler) DeleteTag(c *gin.Context) {
	tagID, err := idParam(c, "id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)

		return
	}

	if err := h.svc.DeleteTag(c.Request.Context(), tagID); err != nil {
		respondServiceError(c, err)

		return
	}

	RespondNoContent(c)
}

func (h *CatalogHandler) GetTag(c *gin.Context) {
	tagID, err := idParam(c, "id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)

		return
	}

	tag, err := h.svc.GetTag(c.Request.Context(), tagID)
	if err != nil {
		respondServiceError(c, err)

		return
	}

	RespondOK(c, tag)
}

func (h *CatalogHandler) ListTags(c *gin.Context) {
	limit, offset := pageParams(c)

	tags, err := h.svc.ListTags(c.Request.Context(), c.Query("q"), limit, offset)
	if err != nil {
		respondServiceError(c, err)

		return
	}

	respondList(c, tags)
}

type ingredientRequest struct {
	Name            string `json:"name" binding:"required"`
	MeasurementUnit string `json:"measurement_unit" binding:"required"`
}

func (h *CatalogHandler) CreateIngredient(c *gin.Context) {
	var req ingredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)

		return
	}

	ingredient, err := h.svc.CreateIngredient(c.Request.Context(), req.Name, req.MeasurementUnit)
	if err != nil {
		respondServiceError(c, err)

		return
	}

	RespondCreated(c, ingredient)
}

func (h *CatalogHandler) GetIngredient(c *gin.Context) {
	ingredientID, err := idParam(c, "id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)

		return
	}

	ingredient, err := h.svc.GetIngredient(c.Request.Context(), ingredientID)
	if err != nil {
		respondServiceError(c, err)

		return
	}

	RespondOK(c, ingredient)
}

func (h *CatalogHandler) ListIngredients(c *gin.Context) {
	limit, offset := pageParams(c)

	ingredients, err := h.svc.ListIngredients(
		c.Request.Context(),
		c.Query("q"),
		c.Query("sort"),
		limit,
		offset,
	)
	if err != nil {
		respondServiceError(c, err)

		return
	}

	respondList(c, ingredients)
}
