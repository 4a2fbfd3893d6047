package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Sentinel error identity ---

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound, ErrInvalidInput, ErrInvalidRange,
		ErrAmountOutOfLimits, ErrInternal, ErrNotLoaded,
	}

	for i := 0; i < len(sentinels); i++ {
		for j := i + 1; j < len(sentinels); j++ {
			assert.NotEqual(t, sentinels[i], sentinels[j],
				"sentinels %d and %d should be distinct", i, j)
		}
	}
}

// --- AppError behavior ---

func TestAppError_ErrorString_WithWrappedError(t *testing.T) {
	inner := fmt.Errorf("dataset truncated")
	appErr := &AppError{Code: "INTERNAL_ERROR", Message: "something broke", Err: inner}
	assert.Contains(t, appErr.Error(), "INTERNAL_ERROR")
	assert.Contains(t, appErr.Error(), "something broke")
	assert.Contains(t, appErr.Error(), "dataset truncated")
}

func TestAppError_ErrorString_WithoutWrappedError(t *testing.T) {
	appErr := &AppError{Code: "NOT_FOUND", Message: "product not found"}
	assert.Equal(t, "NOT_FOUND: product not found", appErr.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	appErr := &AppError{Code: "NOT_FOUND", Message: "nope", Err: ErrNotFound}
	assert.True(t, errors.Is(appErr, ErrNotFound))
}

// --- Constructor functions ---

func TestNotFound(t *testing.T) {
	err := NotFound("product", "MLB-123")
	require.NotNil(t, err)
	assert.Equal(t, "NOT_FOUND", err.Code)
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.Contains(t, err.Message, "MLB-123")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestInvalidRange(t *testing.T) {
	err := InvalidRange("minPrice must not exceed maxPrice")
	assert.Equal(t, "INVALID_RANGE", err.Code)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.True(t, errors.Is(err, ErrInvalidRange))
}

func TestAmountOutOfLimits(t *testing.T) {
	err := AmountOutOfLimits(5, 10, 50000)
	assert.Equal(t, "AMOUNT_OUT_OF_LIMITS", err.Code)
	assert.Equal(t, http.StatusUnprocessableEntity, err.Status)
	assert.Contains(t, err.Message, "5.00")
	assert.Contains(t, err.Message, "50000.00")
	assert.True(t, errors.Is(err, ErrAmountOutOfLimits))
}

func TestInternal(t *testing.T) {
	inner := fmt.Errorf("boom")
	err := Internal(inner)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.True(t, errors.Is(err, inner))
}

// --- HTTPStatus mapping ---

func TestHTTPStatus_AppError(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("product", "x")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(InvalidRange("bad")))
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatus(AmountOutOfLimits(1, 2, 3)))
}

func TestHTTPStatus_WrappedSentinels(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(Wrap(ErrNotFound, "lookup")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Wrap(ErrInvalidRange, "query")))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(Wrap(ErrNotLoaded, "startup")))
}

func TestHTTPStatus_UnknownError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(fmt.Errorf("mystery")))
}

func TestWrap_PreservesIdentity(t *testing.T) {
	wrapped := Wrap(ErrNotFound, "get product")
	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.Contains(t, wrapped.Error(), "get product")
}
