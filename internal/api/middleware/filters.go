package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/emicklei/go-restful/v3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	HeaderRequestID    = "X-Request-ID"
	attributeRequestID = "requestID"
)

// RequestID keeps the caller's X-Request-ID or assigns a new one.
func RequestID(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	id := req.HeaderParameter(HeaderRequestID)
	if id == "" {
		id = uuid.NewString()
	}

	req.SetAttribute(attributeRequestID, id)
	resp.AddHeader(HeaderRequestID, id)
	chain.ProcessFilter(req, resp)
}

func GetRequestID(req *restful.Request) string {
	id, _ := req.Attribute(attributeRequestID).(string)
	return id
}

func Logger(logger *zerolog.Logger) restful.FilterFunction {
	return func(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
		now := time.Now()
		chain.ProcessFilter(req, resp)

		logger.Info().
			Str("requestID", GetRequestID(req)).
			Str("method", req.Request.Method).
			Str("path", req.Request.URL.Path).
			Int("status", resp.StatusCode()).
			Dur("duration", time.Since(now)).
			Msg("request handled")
	}
}

// RecoverPanic turns a panic in a handler into the generic 500 body.
func RecoverPanic(logger *zerolog.Logger) restful.FilterFunction {
	return func(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error().
					Str("requestID", GetRequestID(req)).
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Msg("handler panicked")
				HandleError(resp, http.StatusInternalServerError, MessageInternal)
			}
		}()

		chain.ProcessFilter(req, resp)
	}
}
