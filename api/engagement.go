package api

import (
	"net/http"

	"foodgram-api/orm"
	"foodgram-api/service"

	"github.com/gin-gonic/gin"
)

// EngagementHandler covers favorites, ratings, comments and the shopping
// list, all keyed by recipe.
type EngagementHandler struct {
	svc *service.Service
}

func NewEngagementHandler(svc *service.Service) *EngagementHandler {
	return &EngagementHandler{svc: svc}
}

func (h *EngagementHandler) AddFavorite(c *gin.Context) {
	recipeID, err := idParam(c, "id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)

		return
	}

	favorite, err := h.svc.AddFavorite(c.Request.Context(), currentUserID(c), recipeID)
	if err != nil {
		respondServiceError(c, err)

		return
	}

	RespondCreated(c, favorite)
}

func (h *EngagementHandler) RemoveFavorite(c *gin.Context) {
	recipeID, err := idParam(c, "id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)

		return
	}

	if err := h.svc.RemoveFavorite(c.Request.Context(), currentUserID(c), recipeID); err != nil {
		respondServiceError(c, err)

		return
	}

	RespondNoContent(c)
}

func (h *EngagementHandler) ListFavorites(c *gin.Context) {
	limit, offset := pageParams(c)

	recipes, err := h.svc.ListFavorites(
		c.Request.Context(),
		currentUserID(c),
		c.Query("q"),
		limit,
		offset,
	)
	if err != nil {
		respondServiceError(c, err)

		return
	}

	respondList(c, recipes)
}

func (h *EngagementHandler) AddToShoppingList(c *gin.Context) {
	recipeID, err := idParam(c, "id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)

		return
	}

	item, err := h.svc.AddToShoppingList(c.Request.Context(), currentUserID(c), recipeID)
	if err != nil {
		respondServiceError(c, err)

		return
	}

	RespondCreated(c, item)
}

func (h *EngagementHandler) RemoveFromShoppingList(c *gin.Context) {
	recipeID, err := idParam(c, "id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)

		return
	}

	err = h.svc.RemoveFromShoppingList(c.Request.Context(), currentUserID(c), recipeID)
	if err != nil {
		respondServiceError(c, err)

		return
	}

	RespondNoContent(c)
}

func (h *EngagementHandler) ListShoppingList(c *gin.Context) {
	limit, offset := pageParams(c)

	recipes, err := h.svc.ListShoppingList(
		c.Request.Context(),
		currentUserID(c),
		c.Query("q"),
		limit,
		offset,
	)
	if err != nil {
		respondServiceError(c, err)

		return
	}

	respondList(c, recipes)
}

func (h *EngagementHandler) AggregateShoppingList(c *gin.Context) {
	entries, err := h.svc.AggregateShoppingList(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondServiceError(c, err)

		return
	}

	respondList(c, entries)
}

type rateRequest struct {
	Rate int `json:"rate" binding:"required"`
}

func (h *EngagementHandler) Rate(c *gin.Context) {
	recipeID, err := idParam(c, "id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)

		return
	}

	var req rateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)

		return
	}

	rating, err := h.svc.RateRecipe(c.Request.Context(), currentUserID(c), recipeID, req.Rate)
	if err != nil {
		respondServiceError(c, err)

		return
	}

	RespondCreated(c, rating)
}

// ratingListEnvelope is the rating page plus the recipe's average rate.
type ratingListEnvelope struct {
	Count   int     `json:"count"`
	AvgRate float64 `json:"avg_rate"`
	Results any     `json:"results"`
}

func (h *EngagementHandler) ListRatings(c *gin.Context) {
	recipeID, err := idParam(c, "id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)

		return
	}

	limit, offset := pageParams(c)

	ratings, err := h.svc.ListRatings(c.Request.Context(), recipeID, limit, offset)
	if err != nil {
		respondServiceError(c, err)

		return
	}

	avg, err := h.svc.AvgRate(c.Request.Context(), recipeID)
	if err != nil {
		respondServiceError(c, err)

		return
	}

	if ratings == nil {
		ratings = []orm.Rating{}
	}

	RespondOK(c, ratingListEnvelope{Count: len(ratings), AvgRate: avg, Results: ratings})
}

type commentRequest struct {
	Text  *string `json:"text"`
	Image *string `json:"image"`
}

func (h *EngagementHandler) CreateComment(c *gin.Context) {
	recipeID, err := idParam(c, "id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)

		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)

		return
	}

	comment, err := h.svc.CreateComment(
		c.Request.Context(),
		currentUserID(c),
		recipeID,
		service.CommentInput{Text: req.Text, Image: req.Image},
	)
	if err != nil {
		respondServiceError(c, err)

		return
	}

	RespondCreated(c, comment)
}

func (h *EngagementHandler) UpdateComment(c *gin.Context) {
	commentID, err := idParam(c, "id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)

		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)

		return
	}

	comment, err := h.svc.UpdateComment(
		c.Request.Context(),
		currentUserID(c),
		commentID,
		service.CommentInput{Text: req.Text, Image: req.Image},
	)
	if err != nil {
		respondServiceError(c, err)

		return
	}

	RespondOK(c, comment)
}

func (h *EngagementHandler) DeleteComment(c *gin.Context) {
	commentID, err := idParam(c, "id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)

		return
	}

	if err := h.svc.DeleteComment(c.Request.Context(), currentUserID(c), commentID); err != nil {
		respondServiceError(c, err)

		return
	}

	RespondNoContent(c)
}

func (h *EngagementHandler) ListComments(c *gin.Context) {
	recipeID, err := idParam(c, "id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)

		return
	}

	limit, offset := pageParams(c)

	comments, err := h.svc.ListComments(
		c.Request.Context(),
		recipeID,
		c.Query("q"),
		limit,
		offset,
	)
	if err != nil {
		respondServiceError(c, err)

		return
	}

	respondList(c, comments)
}
