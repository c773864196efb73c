package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskdeck/taskdeck/api/transport"
	"github.com/taskdeck/taskdeck/domain"
	"github.com/taskdeck/taskdeck/pkg/httpcontext"
)

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error) {
	var dErr *domain.Error
	if errors.As(err, &dErr) {
		h.respondJSON(ctx, statusFor(dErr.Code), transport.ErrorResponse{Message: dErr.Message})
		return
	}

	h.logger.Error("request failed", zap.Error(err))
	h.respondJSON(ctx, http.StatusInternalServerError, transport.ErrorResponse{
		Message: "Server Error",
		Error:   err.Error(),
	})
}

func (h baseHandler) respondInvalid(ctx *fasthttp.RequestCtx, message string) {
	h.respondJSON(ctx, http.StatusBadRequest, transport.ErrorResponse{Message: message})
}

// statusFor maps domain error codes to HTTP statuses. Conflicts report 400,
// not 409: the signup form only distinguishes success from failure and the
// original wire contract used 400 for "User already exists".
func statusFor(code domain.ErrorCode) int {
	switch code {
	case domain.ErrCodeInvalid, domain.ErrCodeConflict:
		return http.StatusBadRequest
	case domain.ErrCodeNotFound:
		return http.StatusNotFound
	case domain.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func (h baseHandler) userID(ctx *fasthttp.RequestCtx) string {
	userID := string(ctx.Request.Header.Peek("X-User-ID"))
	if userID == "" {
		h.respondJSON(ctx, http.StatusUnauthorized, transport.ErrorResponse{Message: "unauthorized"})
	}
	return userID
}
