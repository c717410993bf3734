package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/taskhive/backend/internal/model"
	"github.com/taskhive/backend/internal/service"
)

// Error kinds exposed to clients.
const (
	KindValidation         = "Validation"
	KindWeakPassword       = "WeakPassword"
	KindEmailTaken         = "EmailTaken"
	KindInvalidCredentials = "InvalidCredentials"
	KindTokenExpired       = "TokenExpired"
	KindTokenInvalid       = "TokenInvalid"
	KindForbidden          = "Forbidden"
	KindNotFound           = "NotFound"
	KindRateLimited        = "RateLimited"
	KindInternal           = "Internal"
)

// writeError maps service errors to the outward error surface. Anything
// unanticipated becomes an opaque 500; the detail is logged server-side only.
func writeError(c *gin.Context, log *logrus.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrWeakPassword):
		writeErrorKind(c, http.StatusBadRequest, KindWeakPassword, err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		writeErrorKind(c, http.StatusBadRequest, KindValidation, err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		writeErrorKind(c, http.StatusConflict, KindEmailTaken, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeErrorKind(c, http.StatusUnauthorized, KindInvalidCredentials, err.Error())
	case errors.Is(err, service.ErrTokenExpired):
		writeErrorKind(c, http.StatusUnauthorized, KindTokenExpired, "token has expired")
	case errors.Is(err, service.ErrTokenInvalid), errors.Is(err, service.ErrTokenMalformed):
		writeErrorKind(c, http.StatusUnauthorized, KindTokenInvalid, "invalid token")
	case errors.Is(err, service.ErrForbidden):
		writeErrorKind(c, http.StatusForbidden, KindForbidden, "you can only access your own resources")
	case errors.Is(err, service.ErrNotFound):
		writeErrorKind(c, http.StatusNotFound, KindNotFound, "not found")
	default:
		log.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).WithError(err).Error("request failed")
		writeErrorKind(c, http.StatusInternalServerError, KindInternal, "internal server error")
	}
}

func writeErrorKind(c *gin.Context, status int, kind, message string) {
	c.JSON(status, model.ErrorResponse{
		Error: model.ErrorBody{Kind: kind, Message: message},
	})
}

func abortWithError(c *gin.Context, log *logrus.Logger, err error) {
	writeError(c, log, err)
	c.Abort()
}
