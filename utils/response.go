package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSONResponse is the {code,message,data} envelope every endpoint answers with.
// Code 0 means success; anything else is a business code.
type JSONResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// RejectedData is the payload of a gate rejection.
type RejectedData struct {
	Verdict Verdict `json:"verdict"`
}

// Respond writes the envelope with the given HTTP status.
func Respond(ctx *gin.Context, status int, code int, message string, data any) {
	ctx.JSON(status, JSONResponse{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

func Success(ctx *gin.Context, data any) {
	Respond(ctx, http.StatusOK, 0, "success", data)
}

func Error(ctx *gin.Context, status int, code int, message string) {
	Respond(ctx, status, code, message, nil)
}

// Rejected answers 422 with the verdict's reason as the message, so the form
// can show it as-is.
func Rejected(ctx *gin.Context, code int, v Verdict) {
	Respond(ctx, http.StatusUnprocessableEntity, code, string(v.Reason), RejectedData{Verdict: v})
}
