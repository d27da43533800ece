package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/InfoRubix/stationery/internal/stationery/service"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	result, err := h.svc.Login(input.Email, input.Password)
	if err != nil {
		Unauthorized(c, "邮箱或密码错误")
		return
	}

	Success(c, result)
}
