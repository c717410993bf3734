package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/taskhive/backend/internal/model"
	"github.com/taskhive/backend/internal/service"
)

type AuthHandler struct {
	svc *service.AccountService
	log *logrus.Logger
}

func NewAuthHandler(svc *service.AccountService, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

// Signup godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.SignupRequest true "Email, password and optional display name"
// @Success 201 {object} model.TokenResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 409 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	user, token, err := h.svc.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	h.log.WithField("user_id", user.ID).Info("account created")
	c.JSON(http.StatusCreated, model.TokenResponse{
		User:  model.NewUserResponse(user),
		Token: token,
	})
}

// Signin godoc
// @Summary Authenticate and obtain a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.SigninRequest true "Email and password"
// @Success 200 {object} model.TokenResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/auth/signin [post]
func (h *AuthHandler) Signin(c *gin.Context) {
	var req model.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	user, token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, model.TokenResponse{
		User:  model.NewUserResponse(user),
		Token: token,
	})
}

// Me godoc
// @Summary Get the authenticated account
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.UserResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	subject, ok := GetAuthSubject(c)
	if !ok {
		writeError(c, h.log, service.ErrTokenInvalid)
		return
	}

	user, err := h.svc.WhoAmI(c.Request.Context(), subject)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, model.NewUserResponse(user))
}
