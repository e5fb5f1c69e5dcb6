package api

import (
	"net/http"

	"foodgram-api/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc *service.Service
}

func NewUserHandler(svc *service.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) GetMe(c *gin.Context) {
	user, err := h.svc.GetUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondServiceError(c, err)

		return
	}

	RespondOK(c, user)
}

type updateUserRequest struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Avatar    *string `json:"avatar"`
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)

		return
	}

	user, err := h.svc.UpdateUser(c.Request.Context(), currentUserID(c), service.UserUpdate{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Avatar:    req.Avatar,
	})
	if err != nil {
		respondServiceError(c, err)

		return
	}

	RespondOK(c, user)
}

func (h *UserHandler) Get(c *gin.Context) {
	userID, err := idParam(c, "id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)

		return
	}

	user, err := h.svc.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)

		return
	}

	RespondOK(c, user)
}

func (h *UserHandler) List(c *gin.Context) {
	limit, offset := pageParams(c)

	users, err := h.svc.ListUsers(c.Request.Context(), c.Query("q"), limit, offset)
	if err != nil {
		respondServiceError(c, err)

		return
	}

	respondList(c, users)
}

func (h *UserHandler) Stats(c *gin.Context) {
	userID, err := idParam(c, "id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)

		return
	}

	stats, err := h.svc.UserStats(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)

		return
	}

	RespondOK(c, stats)
}

func (h *UserHandler) Subscribe(c *gin.Context) {
	followingID, err := idParam(c, "id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)

		return
	}

	subscription, err := h.svc.Subscribe(c.Request.Context(), currentUserID(c), followingID)
	if err != nil {
		respondServiceError(c, err)

		return
	}

	RespondCreated(c, subscription)
}

func (h *UserHandler) Unsubscribe(c *gin.Context) {
	followingID, err := idParam(c, "id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)

		return
	}

	if err := h.svc.Unsubscribe(c.Request.Context(), currentUserID(c), followingID); err != nil {
		respondServiceError(c, err)

		return
	}

	RespondNoContent(c)
}

func (h *UserHandler) ListSubscriptions(c *gin.Context) {
	limit, offset := pageParams(c)

	users, err := h.svc.ListSubscriptions(
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

	respondList(c, users)
}

func (h *UserHandler) ListFollowers(c *gin.Context) {
	userID, err := idParam(c, "id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)

		return
	}

	limit, offset := pageParams(c)

	users, err := h.svc.ListFollowers(c.Request.Context(), userID, c.Query("q"), limit, offset)
	if err != nil {
		respondServiceError(c, err)

		return
	}

	respondList(c, users)
}
