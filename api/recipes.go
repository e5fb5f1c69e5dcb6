package api

import (
	"net/http"

	"foodgram-api/orm"
	"foodgram-api/service"

	"github.com/gin-gonic/gin"
)

type RecipeHandler struct {
	svc *service.Service
}

func NewRecipeHandler(svc *service.Service) *RecipeHandler {
	return &RecipeHandler{svc: svc}
}

type ingredientAmountRequest struct {
	IngredientID int64 `json:"ingredient_id"`
	Amount       int   `json:"amount"`
}

type createRecipeRequest struct {
	Name        string                    `json:"name" binding:"required"`
	Image       string                    `json:"image"`
	Text        string                    `json:"text" binding:"required"`
	CookingTime int                       `json:"cooking_time" binding:"required"`
	Tags        []string                  `json:"tags"`
	Ingredients []ingredientAmountRequest `json:"ingredients"`
}

type updateRecipeRequest struct {
	Name        *string                    `json:"name"`
	Image       *string                    `json:"image"`
	Text        *string                    `json:"text"`
	CookingTime *int                       `json:"cooking_time"`
	Tags        *[]string                  `json:"tags"`
	Ingredients *[]ingredientAmountRequest `json:"ingredients"`
}

func toIngredientAmounts(items []ingredientAmountRequest) []orm.IngredientAmount {
	amounts := make([]orm.IngredientAmount, 0, len(items))
	for _, item := range items {
		amounts = append(amounts, orm.IngredientAmount{
			IngredientID: item.IngredientID,
			Amount:       item.Amount,
		})
	}

	return amounts
}

func (h *RecipeHandler) Create(c *gin.Context) {
	var req createRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)

		return
	}

	recipe, err := h.svc.CreateRecipe(c.Request.Context(), currentUserID(c), service.RecipeInput{
		Name:        req.Name,
		Image:       req.Image,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		Tags:        req.Tags,
		Ingredients: toIngredientAmounts(req.Ingredients),
	})
	if err != nil {
		respondServiceError(c, err)

		return
	}

	RespondCreated(c, recipe)
}

func (h *RecipeHandler) Update(c *gin.Context) {
	recipeID, err := idParam(c, "id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)

		return
	}

	var req updateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)

		return
	}

	update := service.RecipeUpdate{
		Name:        req.Name,
		Image:       req.Image,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		Tags:        req.Tags,
	}
	if req.Ingredients != nil {
		amounts := toIngredientAmounts(*req.Ingredients)
		update.Ingredients = &amounts
	}

	recipe, err := h.svc.UpdateRecipe(c.Request.Context(), currentUserID(c), recipeID, update)
	if err != nil {
		respondServiceError(c, err)

		return
	}

	RespondOK(c, recipe)
}

func (h *RecipeHandler) Delete(c *gin.Context) {
	recipeID, err := idParam(c, "id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)

		return
	}

	if err := h.svc.DeleteRecipe(c.Request.Context(), currentUserID(c), recipeID); err != nil {
		respondServiceError(c, err)

		return
	}

	RespondNoContent(c)
}

func (h *RecipeHandler) Get(c *gin.Context) {
	recipeID, err := idParam(c, "id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)

		return
	}

	recipe, err := h.svc.GetRecipe(c.Request.Context(), recipeID)
	if err != nil {
		respondServiceError(c, err)

		return
	}

	RespondOK(c, recipe)
}

func (h *RecipeHandler) List(c *gin.Context) {
	limit, offset := pageParams(c)

	recipes, err := h.svc.ListRecipes(
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

	respondList(c, recipes)
}

func (h *RecipeHandler) ListByAuthor(c *gin.Context) {
	authorID, err := idParam(c, "id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)

		return
	}

	limit, offset := pageParams(c)

	recipes, err := h.svc.ListRecipesByAuthor(
		c.Request.Context(),
		authorID,
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

func (h *RecipeHandler) Stats(c *gin.Context) {
	recipeID, err := idParam(c, "id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)

		return
	}

	stats, err := h.svc.RecipeStats(c.Request.Context(), recipeID)
	if err != nil {
		respondServiceError(c, err)

		return
	}

	RespondOK(c, stats)
}
