package middleware

import (
	"github.com/emicklei/go-restful/v3"
)

const MessageInternal = "An internal server error occurred."

type ErrorResponse struct {
	Error string `json:"error"`
}

// HandleError writes a JSON error body. Callers pass the caller-facing message
// only; causes are logged, never returned.
func HandleError(resp *restful.Response, status int, message string) {
	resp.WriteHeaderAndEntity(status, ErrorResponse{Error: message})
}
