package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Result is the uniform response envelope: code mirrors the HTTP status,
// msg carries a human-readable summary, data the payload (omitted on errors).
type Result struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Result{Code: http.StatusOK, Msg: "success", Data: data})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Result{Code: http.StatusCreated, Msg: "success", Data: data})
}

// Fail translates a core error into the envelope. This is the single place
// where error kinds become HTTP statuses.
func Fail(c *gin.Context, err error) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Kind.HTTPStatus(), Result{Code: apiErr.Kind.HTTPStatus(), Msg: apiErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, Result{
		Code: http.StatusInternalServerError,
		Msg:  "internal server error",
	})
}

func FailBadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Result{Code: http.StatusBadRequest, Msg: msg})
}
