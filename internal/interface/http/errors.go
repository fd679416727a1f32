package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/creatorlink/internal/application"
	"github.com/oksasatya/creatorlink/internal/session"
	"github.com/oksasatya/creatorlink/pkg/response"
	"github.com/oksasatya/creatorlink/pkg/validation"
)

var errStatus = []struct {
	err    error
	status int
}{
	{app.ErrInvalidCredentials, http.StatusUnauthorized},
	{app.ErrSessionExpired, http.StatusUnauthorized},
	{app.ErrNoSession, http.StatusUnauthorized},
	{app.ErrAlreadyRegistered, http.StatusConflict},
	{app.ErrInvalidRole, http.StatusBadRequest},
	{app.ErrInvalidOTP, http.StatusBadRequest},
	{app.ErrStepIncomplete, http.StatusUnprocessableEntity},
	{app.ErrNotOnLastStep, http.StatusConflict},
	{app.ErrInvalidAvatar, http.StatusUnsupportedMediaType},
	{app.ErrUploadsDisabled, http.StatusServiceUnavailable},
	{app.ErrUnavailable, http.StatusServiceUnavailable},
}

// writeError maps service errors onto the response envelope.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	for _, e := range errStatus {
		if errors.Is(err, e.err) {
			response.JSON(c, response.Error[any](c, e.status, e.err.Error(), nil))
			return
		}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		response.JSON(c, response.Error[any](c, http.StatusServiceUnavailable, "request cancelled", nil))
		return
	}
	if logger != nil {
		logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("unhandled error")
	}
	response.JSON(c, response.Error[any](c, http.StatusInternalServerError, "internal error", nil))
}

func badRequest(c *gin.Context, err error) {
	response.JSON(c, response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err)))
}

// storeOf returns the request's session store, writing 500 when the session
// middleware did not run.
func storeOf(c *gin.Context) (*session.Store, bool) {
	st, ok := session.From(c)
	if !ok {
		response.JSON(c, response.Error[any](c, http.StatusInternalServerError, "session unavailable", nil))
	}
	return st, ok
}
