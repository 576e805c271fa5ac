package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopfeed/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{shared.CodeValidation, http.StatusUnprocessableEntity},
		{shared.CodeNotAuthenticated, http.StatusUnauthorized},
		{shared.CodeForbidden, http.StatusForbidden},
		{shared.CodeNotFound, http.StatusNotFound},
		{shared.CodeDuplicateEntity, http.StatusConflict},
		{shared.CodeConflict, http.StatusConflict},
		{shared.CodeInvalidState, http.StatusUnprocessableEntity},
		{shared.CodeInvalidURL, http.StatusBadRequest},
		{shared.CodeInvalidBooleanLiteral, http.StatusBadRequest},
		{shared.CodeInvalidStatus, http.StatusBadRequest},
		{shared.CodeUpstreamFetch, http.StatusBadGateway},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestResponseShape(t *testing.T) {
	data, err := json.Marshal(NewSuccessResponse([]int{1}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":true,"data":[1]}`, string(data))

	data, err = json.Marshal(NewErrorResponseWithDetails(shared.CodeValidation, "Validation failed", map[string]string{"email": "This field is required"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":false,"errors":{"code":"VALIDATION_ERROR","message":"Validation failed","details":{"email":"This field is required"}}}`, string(data))
}
