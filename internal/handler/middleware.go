package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/taskhive/backend/internal/service"
)

const authSubjectKey = "auth_subject"

// AuthMiddleware verifies the bearer token and stores the subject identity
// in the request context. Expired, invalid and malformed tokens all abort
// with 401; the precise failure is logged, never returned.
func AuthMiddleware(tokens *service.TokenService, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortWithError(c, log, service.ErrTokenInvalid)
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if tokenStr == "" {
			abortWithError(c, log, service.ErrTokenInvalid)
			return
		}

		subject, _, err := tokens.Verify(tokenStr)
		if err != nil {
			log.WithFields(logrus.Fields{
				"path":   c.Request.URL.Path,
				"reason": err.Error(),
			}).Debug("token rejected")
			abortWithError(c, log, err)
			return
		}

		c.Set(authSubjectKey, subject)
		c.Next()
	}
}

// GetAuthSubject returns the verified subject stored by AuthMiddleware.
func GetAuthSubject(c *gin.Context) (uuid.UUID, bool) {
	if value, ok := c.Get(authSubjectKey); ok {
		if subject, ok := value.(uuid.UUID); ok {
			return subject, true
		}
	}
	return uuid.Nil, false
}

// RequireOwner rejects requests whose path owner differs from the token
// subject. Runs after AuthMiddleware and before any handler touches the
// store, so foreign resources are never looked up at all.
func RequireOwner(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, ok := GetAuthSubject(c)
		if !ok {
			abortWithError(c, log, service.ErrTokenInvalid)
			return
		}

		if err := service.Authorize(c.Param("user_id"), subject.String()); err != nil {
			abortWithError(c, log, err)
			return
		}
		c.Next()
	}
}

func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	originMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		originMap[trimmed] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if _, ok := originMap[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				c.Header("Access-Control-Allow-Credentials", "true")
				c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RequestLogger emits one structured line per request.
func RequestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"duration":  time.Since(start).String(),
			"client_ip": c.ClientIP(),
		}).Info("request")
	}
}

// Recovery converts panics into the opaque internal error response.
func Recovery(log *logrus.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"panic":  recovered,
		}).Error("panic recovered")
		writeErrorKind(c, http.StatusInternalServerError, KindInternal, "internal server error")
		c.Abort()
	})
}
