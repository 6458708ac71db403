package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/arkadata/userhub/internal/domain/derr"
	"github.com/arkadata/userhub/pkg/response"
)

// writeDomainError maps domain error kinds to stable HTTP responses.
// Anything unrecognized collapses to a generic 500 with no leaked internals.
func writeDomainError(c *gin.Context, logger *logrus.Logger, err error) {
	var ve *derr.ValidationError
	if errors.As(err, &ve) {
		details := map[string]string{}
		if ve.Field != "" {
			details[ve.Field] = ve.Message
		}
		response.Error[any](c, http.StatusBadRequest, ve.Message, details)
		return
	}

	var de *derr.DuplicateError
	if errors.As(err, &de) {
		response.Error[any](c, http.StatusConflict, de.Message, nil)
		return
	}

	var nf *derr.NotFoundError
	if errors.As(err, &nf) {
		response.Error[any](c, http.StatusNotFound, nf.Error(), map[string]string{
			"entityType": nf.EntityType,
			"identifier": nf.Identifier,
		})
		return
	}

	var bre *derr.BusinessRuleError
	if errors.As(err, &bre) {
		response.Error[any](c, http.StatusUnprocessableEntity, bre.Message, nil)
		return
	}

	// The no-fields signal is consumed inside the service; seeing it here
	// means a wiring bug, but it is still caller input shaped.
	if errors.Is(err, derr.ErrNoFieldsToUpdate) {
		response.Error[any](c, http.StatusBadRequest, "no fields to update", nil)
		return
	}

	if logger != nil {
		logger.WithError(err).WithField("path", c.FullPath()).Error("unhandled error in request")
	}
	response.Error[any](c, http.StatusInternalServerError, "an internal error occurred", nil)
}
