package api

import (
	"alcyxob/gym-system/internal/apperr"
	"alcyxob/gym-system/internal/domain"
	"alcyxob/gym-system/internal/i18n"
	"alcyxob/gym-system/internal/service"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

// Constants for context keys
const (
	ContextPrincipalKey = "principal"
	ContextLanguageKey  = "language"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}

// LocaleMiddleware picks the response language from Accept-Language.
func LocaleMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextLanguageKey, i18n.Match(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

func languageOf(c *gin.Context) language.Tag {
	if v, ok := c.Get(ContextLanguageKey); ok {
		if tag, ok := v.(language.Tag); ok {
			return tag
		}
	}
	return i18n.Supported[0]
}

// ErrorHandler renders the last error attached to the context. It must be
// registered before every middleware that can abort.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		appErr, ok := apperr.From(err)
		if !ok {
			appErr = apperr.ErrInternal.Wrap(err)
		}
		status := appErr.Kind.Status()
		if status >= http.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		}

		c.JSON(status, ErrorResponse{
			Timestamp: time.Now().UTC(),
			Status:    status,
			Error:     http.StatusText(status),
			Message:   i18n.T(languageOf(c), appErr.Key, appErr.Args...),
			Path:      c.Request.URL.Path,
		})
	}
}

// abortWithError records err for ErrorHandler and stops the chain.
func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// Recovery turns panics into a 500 rendered by ErrorHandler.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("recovered from panic")
		abortWithError(c, apperr.ErrInternal)
	})
}

// RequestLogger logs one line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.ClientIP()).
			Msg("request")
	}
}

// AuthMiddleware creates a Gin middleware for JWT authentication.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, apperr.ErrMissingToken)
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortWithError(c, apperr.ErrInvalidToken)
			return
		}

		principal, err := authService.ParseToken(strings.TrimSpace(parts[1]))
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(ContextPrincipalKey, principal)
		c.Next()
	}
}

// RoleMiddleware creates middleware to check if user has the required role(s).
// Must run AFTER AuthMiddleware.
func RoleMiddleware(allowedRoles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := principalOf(c)
		if !ok {
			abortWithError(c, apperr.ErrMissingToken)
			return
		}

		for _, allowedRole := range allowedRoles {
			if principal.Role == allowedRole {
				c.Next()
				return
			}
		}
		abortWithError(c, apperr.ErrAccessDenied)
	}
}

func principalOf(c *gin.Context) (service.Principal, bool) {
	v, exists := c.Get(ContextPrincipalKey)
	if !exists {
		return service.Principal{}, false
	}
	p, ok := v.(service.Principal)
	return p, ok
}
