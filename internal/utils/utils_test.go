package utils

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusCode(NewNotFoundError("missing")))
	assert.Equal(t, http.StatusConflict, StatusCode(fmt.Errorf("wrapped: %w", NewConflictError("dup"))))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("boom")))
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("missing header field: order_id")
	err := NewUnprocessableError("Could not parse receipt", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Could not parse receipt: missing header field: order_id", err.Error())
}

func TestGenerateID(t *testing.T) {
	id := GenerateID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.NotEqual(t, id, GenerateID())
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, "warn", "json")

	logger.Info("hidden")
	logger.Warn("shown", "id", "r1")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"id":"r1"`)
}

func TestLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	NewLoggerWithWriter(&buf, "debug", "text").With("component", "test").Debug("hello")

	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "component=test")
}
