package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/airadmin/internal/domain"
	"github.com/gin-gonic/gin"
)

const (
	statusOK      = "OK"
	statusError   = "Error"
	statusPartial = "Partial"
)

func respondOK(c *gin.Context, code int, body gin.H) {
	if body == nil {
		body = gin.H{}
	}
	body["status"] = statusOK
	c.JSON(code, body)
}

// respondError records err on the context for the logging middleware and
// writes the error envelope with the matching status code.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	code := statusCode(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = "internal error"
	}
	c.JSON(code, gin.H{"status": statusError, "error": msg})
}

func statusCode(err error) int {
	var (
		verr *domain.ValidationError
		cerr *domain.ConflictError
	)
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &cerr), errors.Is(err, domain.ErrEmailExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondBatch reports a multi-id delete. The request itself succeeded, so
// the code is always 200 and the envelope status carries the outcome.
func respondBatch(c *gin.Context, res domain.BatchResult) {
	status := statusOK
	switch res.Status() {
	case domain.BatchStatusPartial:
		status = statusPartial
	case domain.BatchStatusError:
		status = statusError
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   status,
		"deleted":  res.Deleted,
		"failures": res.Failures,
	})
}

func respondBadRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, gin.H{"status": statusError, "error": "invalid request body"})
}
