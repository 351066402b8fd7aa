package response

import (
	"errors"
	"net/http"
	"time"

	"shadowpay/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// requestIDKey is where middleware.RequestID stores the request id.
const requestIDKey = "request_id"

// SuccessResponse is the envelope of every successful JSON response.
type SuccessResponse struct {
	Data      interface{} `json:"data"`
	RequestID string      `json:"request_id"`
	Timestamp string      `json:"timestamp"`
}

// ErrorResponse carries an apperror code and its user-facing message.
type ErrorResponse struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
}

// OK sends a 200 response with data.
func OK(c *gin.Context, data interface{}) {
	success(c, http.StatusOK, data)
}

// Created sends a 201 response with data.
func Created(c *gin.Context, data interface{}) {
	success(c, http.StatusCreated, data)
}

// Private sends a 200 response that must never be cached, such as a
// revealed private key.
func Private(c *gin.Context, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	success(c, http.StatusOK, data)
}

// Accepted acknowledges asynchronous input, such as a camera frame, with
// an empty 202.
func Accepted(c *gin.Context) {
	c.Status(http.StatusAccepted)
}

// NoContent sends a 204 with no body.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error renders err. Errors that are not *apperror.AppError are reported as
// SYS_001 without exposing their text.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		appErr = apperror.InternalError(err)
	}
	id, ts := meta(c)
	c.JSON(appErr.HTTPStatus, ErrorResponse{
		ErrorCode: appErr.Code,
		Message:   appErr.Message,
		RequestID: id,
		Timestamp: ts,
	})
}

func success(c *gin.Context, status int, data interface{}) {
	id, ts := meta(c)
	c.JSON(status, SuccessResponse{Data: data, RequestID: id, Timestamp: ts})
}

// meta returns the request id, generating one when the middleware did not
// run, and the response timestamp.
func meta(c *gin.Context) (string, string) {
	id := uuid.New().String()
	if v, ok := c.Get(requestIDKey); ok {
		if s, ok := v.(string); ok && s != "" {
			id = s
		}
	}
	return id, time.Now().UTC().Format(time.RFC3339)
}
