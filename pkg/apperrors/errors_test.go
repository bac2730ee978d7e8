package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorIsAfterWrap(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", ErrProjectNotFound.WithError(errors.New("record not found")))

	assert.True(t, Is(wrapped, ErrProjectNotFound))
	assert.False(t, Is(wrapped, ErrProposalNotFound))

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)
}

func TestWithDetailsDoesNotMutatePredefined(t *testing.T) {
	withDetails := ErrInvalidProjectStatus.WithDetails(map[string]string{"from": "DRAFT"})

	assert.NotNil(t, withDetails.Details)
	assert.Nil(t, ErrInvalidProjectStatus.Details)
}

func TestMarshalJSONHidesInternalError(t *testing.T) {
	err := InternalError(errors.New("pq: connection refused"))

	raw, mErr := json.Marshal(err)
	require.NoError(t, mErr)
	assert.NotContains(t, string(raw), "connection refused")
	assert.Contains(t, string(raw), `"code":"INTERNAL_ERROR"`)
}

func TestHandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   ErrorCode
	}{
		{"app error", ErrFavoriteExists, http.StatusConflict, CodeAlreadyExists},
		{"plain error", errors.New("db exploded"), http.StatusInternalServerError, CodeInternalError},
		{"validation", ValidationError(map[string]string{"title": "This field is required"}), http.StatusBadRequest, CodeValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/x", nil)

			HandleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body struct {
				Error struct {
					Code    ErrorCode `json:"code"`
					Message string    `json:"message"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.NotContains(t, w.Body.String(), "db exploded")
		})
	}
}
