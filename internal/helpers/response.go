package helpers

import (
	"encoding/json"
	"net/http"

	apierrors "overlayapi/internal/errors"
	"overlayapi/internal/models"

	"go.uber.org/zap"
)

// RespondWithJSON wraps data in the success envelope.
func RespondWithJSON(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, models.Response{Status: models.StatusSuccess, Data: data})
}

// RespondWithError writes the error envelope for code.
func RespondWithError(w http.ResponseWriter, status int, code string) {
	apiErr := apierrors.NewAPIError(status, code)
	writeJSON(w, status, models.Error{
		Status:  models.StatusError,
		Message: apiErr.Message,
		Code:    apiErr.Code,
	})
}

// RespondWithAPIError renders err. Validation failures are logged at debug level only;
// errors that are not APIErrors are logged and reported as INTERNAL_ERROR.
func RespondWithAPIError(w http.ResponseWriter, logger *zap.Logger, err error) {
	apiErr := apierrors.AsAPIError(err)
	switch {
	case apierrors.IsValidation(err):
		logger.Debug("Request rejected", zap.String("code", apiErr.Code))
	case apiErr.Code == apierrors.ErrInternal:
		logger.Error("Unhandled error", zap.Error(err))
	}
	writeJSON(w, apiErr.Status, models.Error{
		Status:  models.StatusError,
		Message: apiErr.Message,
		Code:    apiErr.Code,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Error("Failed to encode response", zap.Error(err))
	}
}
