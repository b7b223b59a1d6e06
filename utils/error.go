package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorKind classifies failures for the HTTP layer.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindUnauthorized
	KindRateLimited
	KindUnavailable
)

// AppError is a failure that knows how it should be reported to a client.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the error kind to a response status.
func (e *AppError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is the message safe to show a client.
func (e *AppError) PublicMessage() string {
	if e.Kind == KindInternal {
		return "Internal Server Error"
	}
	return e.Message
}

func ValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func NotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

// ConflictError reports contradictory input, such as a body id that disagrees with the path.
func ConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

func UnauthorizedError(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: message}
}

func RateLimitedError(message string) *AppError {
	return &AppError{Kind: KindRateLimited, Message: message}
}

// UnavailableError is a 500 whose message is safe to show, used for missing server-side setup.
func UnavailableError(message string) *AppError {
	return &AppError{Kind: KindUnavailable, Message: message}
}

func InternalError(err error) *AppError {
	return &AppError{Kind: KindInternal, Message: "unexpected failure", Err: err}
}

// AsAppError returns err as an *AppError, classifying unknown errors as internal.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return InternalError(err)
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// Envelope is the uniform response body.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Total   *int64 `json:"total,omitempty"`
	Page    *int64 `json:"page,omitempty"`
	Limit   *int64 `json:"limit,omitempty"`
}

// ErrorHandler recovers panics and renders errors attached to the context with c.Error.
// It is the only place error bodies are written.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", rec), zap.String("path", c.Request.URL.Path))
				c.AbortWithStatusJSON(http.StatusInternalServerError, Envelope{
					Success: false,
					Message: "Internal Server Error",
				})
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		appErr := AsAppError(c.Errors.Last().Err)
		status := appErr.HTTPStatus()
		if status >= http.StatusInternalServerError {
			GetLogger().Error("Request failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Error(appErr))
		}
		c.JSON(status, Envelope{Success: false, Message: appErr.PublicMessage()})
	}
}

// NotFoundRoute answers requests that match no route.
func NotFoundRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, Envelope{Success: false, Message: "Route not found"})
}
