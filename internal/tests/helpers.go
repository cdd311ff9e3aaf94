package tests

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertJSONResponse checks the status code and that the body decodes to expected.
func AssertJSONResponse[T any](t *testing.T, recorder *httptest.ResponseRecorder, status int, expected T) {
	t.Helper()

	assert.Equal(t, status, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	var actual T
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &actual))
	assert.Equal(t, expected, actual)
}

// DecodeJSON decodes the recorded body into T.
func DecodeJSON[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &out))
	return out
}
