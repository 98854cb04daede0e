// file: utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Msg: msg, Data: data})
}

func Error(c *gin.Context, code int, msg string) {
	c.JSON(http.StatusOK, Response{Code: code, Msg: msg})
}

// FieldError surfaces validation failures without discarding which fields
// were at fault; the form keeps the user's input and shows inline messages.
func FieldError(c *gin.Context, code int, msg string, fields map[string]string) {
	c.JSON(http.StatusOK, Response{Code: code, Msg: msg, Data: gin.H{"fields": fields}})
}
