package handlers

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"studyaid/internal/logger"
)

func TestRespondWithErrorWritesStatusAndBody(t *testing.T) {
	recorder := httptest.NewRecorder()

	respondWithError(recorder, logger.NewNop(), 418, "Teapot", "", nil)

	assert.Equal(t, 418, recorder.Code)
	assert.Equal(t, "Teapot", strings.TrimSpace(recorder.Body.String()))
}

func TestRespondWithErrorLogsMessage(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := &logger.Logger{SugaredLogger: zap.New(core).Sugar()}
	recorder := httptest.NewRecorder()

	respondWithError(recorder, log, 500, ErrInternalServerError, "", errors.New("boom"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, ErrInternalServerError, entry.Message)
	assert.Contains(t, entry.ContextMap()["error"], "boom")
}

func TestRespondWithJSONError(t *testing.T) {
	recorder := httptest.NewRecorder()

	respondWithJSONError(recorder, nil, 404, ErrPageNotFound, "", nil)

	assert.Equal(t, 404, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Page not found"}`, recorder.Body.String())
}

func TestWantsJSON(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	assert.False(t, wantsJSON(r))

	r.Header.Set("Accept", "application/json, text/plain")
	assert.True(t, wantsJSON(r))
}
