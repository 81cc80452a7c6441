package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIError(t *testing.T) {
	err := NewWithDetails(http.StatusBadRequest, CodeInvalidParameter, "bad group_by", map[string]string{"group_by": "Trade_Type"})

	assert.Equal(t, "bad group_by", err.Error())
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.NotNil(t, err.Details)
}

func TestInvalidParameter(t *testing.T) {
	err := InvalidParameter("simplify", stderrors.New("must be a number"))

	assert.Equal(t, CodeInvalidParameter, err.ErrorCode)
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, ValidationError{Field: "simplify", Message: "must be a number"}, err.Details)
}

func TestNewValidationErrors(t *testing.T) {
	err := NewValidationErrors([]ValidationError{{Field: "country", Message: "too long"}})

	assert.Equal(t, CodeValidationFailed, err.ErrorCode)
	details, ok := err.Details.(ValidationErrors)
	assert.True(t, ok)
	assert.Len(t, details.Errors, 1)
}

func TestProblemDetails_MarshalJSON(t *testing.T) {
	pd := NewProblemDetails(http.StatusNotFound, TypeNotFound, "Not Found", "", "/api/x").
		WithExtension("trace_id", "abc")

	data, err := pd.MarshalJSON()
	assert.NoError(t, err)
	assert.JSONEq(t, `{"type":"/errors/not-found","title":"Not Found","status":404,"instance":"/api/x","trace_id":"abc"}`, string(data))
}

func TestProblemDetails_ExtensionsCannotOverrideCoreFields(t *testing.T) {
	pd := NewProblemDetails(http.StatusBadRequest, TypeValidation, "Bad Request", "detail", "").
		WithExtension("status", 999)

	data, err := pd.MarshalJSON()
	assert.NoError(t, err)
	assert.Contains(t, string(data), `"status":400`)
}
