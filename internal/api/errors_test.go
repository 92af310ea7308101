package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, KindBadRequest.HTTPStatus())
	assert.Equal(t, http.StatusNotFound, KindNotFound.HTTPStatus())
	assert.Equal(t, http.StatusForbidden, KindForbidden.HTTPStatus())
	assert.Equal(t, http.StatusConflict, KindConflict.HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, KindInternal.HTTPStatus())
}

func TestKindOf(t *testing.T) {
	err := Conflictf("slot %d is not free", 7)
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, "slot 7 is not free", err.Error())

	wrapped := fmt.Errorf("booking failed: %w", NotFoundf("no such appointment"))
	assert.Equal(t, KindNotFound, KindOf(wrapped))

	assert.Equal(t, KindInternal, KindOf(errors.New("driver: bad connection")))
}

func TestValidateStruct(t *testing.T) {
	type req struct {
		Name string `validate:"required"`
		Page int    `validate:"min=1"`
	}

	errs := ValidateStruct(req{Page: 0})
	assert.Len(t, errs, 2)

	errs = ValidateStruct(req{Name: "Yoga", Page: 1})
	assert.Empty(t, errs)
}

func TestFailBinding(t *testing.T) {
	gin.SetMode(gin.TestMode)

	type req struct {
		TrainerID int64 `json:"trainer_id" binding:"required"`
	}

	router := gin.New()
	router.POST("/bindtest", func(c *gin.Context) {
		var body req
		if err := c.ShouldBindJSON(&body); err != nil {
			FailBinding(c, err, "trainer_id is required")
			return
		}
		OK(c, nil)
	})

	// missing required field: per-field message from the binding tags
	w := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/bindtest", strings.NewReader(`{}`))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, request)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var result Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "TrainerID is required", result.Msg)

	// malformed JSON: falls back to the caller's message
	w = httptest.NewRecorder()
	request = httptest.NewRequest(http.MethodPost, "/bindtest", strings.NewReader(`{`))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, request)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "trainer_id is required", result.Msg)
}
