package handlers

import (
	"errors"
	"net/http"

	"github.com/dimitrije/teamsync-api/internal/apperrors"
	"github.com/dimitrije/teamsync-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/sirupsen/logrus"
)

// respondError writes err as an ErrorResponse. Errors that are not
// *apperrors.Error are logged and reported as a generic 500 with fallback as
// the message.
func respondError(c *drift.Context, err error, fallback string) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Kind == apperrors.KindInternal {
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Error(fallback)
		_ = c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: fallback,
			Code:  apperrors.CodeInternalServerError,
		})
		return
	}

	_ = c.JSON(statusFor(appErr.Kind), dto.ErrorResponse{
		Error: appErr.Message,
		Code:  appErr.Code,
	})
}

func statusFor(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindUnauthorized, apperrors.KindForbidden:
		return http.StatusForbidden
	case apperrors.KindBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
