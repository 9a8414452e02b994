package errors_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	apierrors "github.com/feral-file/ff-opportunities/internal/api/shared/errors"
	"github.com/feral-file/ff-opportunities/internal/domain"
)

func TestAPIError_Status(t *testing.T) {
	tests := []struct {
		err    *apierrors.APIError
		status int
	}{
		{apierrors.NewBadRequestError("bad"), http.StatusBadRequest},
		{apierrors.NewValidationError("wallet"), http.StatusUnprocessableEntity},
		{apierrors.NewNotFoundError("missing"), http.StatusNotFound},
		{apierrors.NewUnauthorizedError("no key"), http.StatusUnauthorized},
		{apierrors.NewDatabaseError("down"), http.StatusInternalServerError},
		{apierrors.NewServiceError("down"), http.StatusInternalServerError},
		{apierrors.NewInternalError("panic"), http.StatusInternalServerError},
		{&apierrors.APIError{Code: "teapot"}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Code), func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status())
		})
	}
}

func TestAPIError_Cause(t *testing.T) {
	err := apierrors.NewServiceError("Failed to sync source", "galxe").WithCause(domain.ErrProviderTransient)

	assert.True(t, errors.Is(err, domain.ErrProviderTransient))
	assert.Equal(t, "service_error: Failed to sync source (galxe): "+domain.ErrProviderTransient.Error(), err.Error())

	var apiErr *apierrors.APIError
	assert.True(t, errors.As(error(err), &apiErr))
	assert.Equal(t, apierrors.ErrCodeServiceError, apiErr.Code)
}
