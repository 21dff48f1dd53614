package handlers

import (
	"investment-service/internal/middleware"
	"investment-service/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req services.SignupDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	user, err := h.Auth.Signup(req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, user, "Account created for "+user.Username+"! You can now log in.")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	token, user, err := h.Auth.Login(req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"token": token, "user": user}, "Welcome back, "+user.FirstName+"!")
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req services.ChangePasswordDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := h.Auth.ChangePassword(middleware.UserId(c), req); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil, "Password updated")
}

func (h *AuthHandler) Profile(c *gin.Context) {
	profile, err := h.Auth.GetOrCreateProfile(middleware.UserId(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, profile, "Profile fetched")
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req services.UpdateProfileDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	profile, err := h.Auth.UpdateProfile(middleware.UserId(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, profile, "Profile updated")
}
