package api

import (
	"net/http"

	"foodgram-api/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc *service.Service
}

func NewAuthHandler(svc *service.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type registerRequest struct {
	Email     string `json:"email" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Password  string `json:"password" binding:"required"`
	Avatar    string `json:"avatar"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)

		return
	}

	user, err := h.svc.Register(c.Request.Context(), service.RegisterInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
		Avatar:    req.Avatar,
	})
	if err != nil {
		respondServiceError(c, err)

		return
	}

	RespondCreated(c, user)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)

		return
	}

	tokens, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)

		return
	}

	RespondOK(c, tokens)
}

type refreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)

		return
	}

	tokens, err := h.svc.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		respondServiceError(c, err)

		return
	}

	RespondOK(c, tokens)
}
