package utils

import (
	"errors"
	"net/http"

	"ghtour/apperrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string            `json:"message"`
	Code    string            `json:"code,omitempty"`
	Details string            `json:"details,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err), zap.String("path", c.Request.URL.Path))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Code:    apperrors.CodeInternal,
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// RespondError maps a service error onto its status and a body the app can act on:
// field errors for validation, a sign-in prompt for auth, a retry notice otherwise.
func RespondError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	resp := ErrorResponse{Code: apperrors.Code(err)}

	switch resp.Code {
	case apperrors.CodeValidation:
		resp.Message = "Please correct the highlighted fields"
		if verr, ok := asValidation(err); ok {
			resp.Fields = verr.Fields
		}
	case apperrors.CodeUnauthenticated:
		resp.Message = "Please sign in to continue"
	case apperrors.CodeAuth:
		resp.Message = "Sign-in failed"
		resp.Details = err.Error()
	case apperrors.CodeNotFound:
		resp.Message = "Not found"
		resp.Details = err.Error()
	case apperrors.CodeRemoteUnavailable, apperrors.CodeMalformedRecord:
		resp.Message = "Something went wrong. Please try again."
	default:
		resp.Message = "Internal Server Error"
	}

	logger := GetLogger()
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Int("status", status), zap.Error(err))
	} else {
		logger.Debug("Request rejected", zap.String("path", c.FullPath()), zap.Int("status", status), zap.Error(err))
	}

	c.AbortWithStatusJSON(status, resp)
}

func asValidation(err error) (*apperrors.ValidationError, bool) {
	var verr *apperrors.ValidationError
	ok := errors.As(err, &verr)
	return verr, ok
}
