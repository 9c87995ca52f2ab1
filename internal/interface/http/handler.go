package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/aspiantech/ogle-api/pkg/apperr"
	"github.com/aspiantech/ogle-api/pkg/response"
)

// respondError translates a service error into the response envelope.
// Unclassified errors are logged and reported as a generic 500 so internal
// details never reach the client.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		if logger != nil {
			logger.WithError(err).WithField("path", c.FullPath()).Error("unhandled error")
		}
		response.Error(c, status, "internal server error", nil)
		return
	}
	response.Error(c, status, apperr.Message(err), nil)
}
