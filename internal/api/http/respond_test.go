package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"reelstudio-backend/internal/repository"
	"reelstudio-backend/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestWriteErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantStep   string
	}{
		{"Validation", &service.ValidationError{Msg: "bad input"}, http.StatusBadRequest, ""},
		{"NotFound", repository.ErrNotFound, http.StatusNotFound, ""},
		{"Conflict", &service.ConflictError{Msg: "not pending"}, http.StatusConflict, ""},
		{"PartialSideEffect", &service.PartialSideEffectError{Step: "create_project", Err: errors.New("db down")}, http.StatusInternalServerError, "create_project"},
		{"Unknown", errors.New("boom"), http.StatusInternalServerError, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)
			var body errorResponse
			assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tc.wantStep, body.Step)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestWriteErrorWrappedNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, errors.New("boom: "+repository.ErrNotFound.Error()))
	// only wrapped sentinels map to 404, string lookalikes stay 500
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
