// File: internal/services/ai/errors.go
package ai

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/iyunix/go-mindster/internal/domain"
)

// maxErrorBody caps how much of a failed response is kept for diagnostics.
const maxErrorBody = 64 << 10

type errorBodyKey struct{}

// errorBody receives the raw body of a non-2xx response for one call.
type errorBody struct {
	data []byte
}

func withErrorBody(ctx context.Context) (context.Context, *errorBody) {
	holder := &errorBody{}
	return context.WithValue(ctx, errorBodyKey{}, holder), holder
}

// bodyCapture copies failed response bodies into the call's errorBody and hands
// go-openai an identical reader, so its own error decoding is unchanged.
type bodyCapture struct {
	base http.RoundTripper
}

func (t bodyCapture) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil || resp.StatusCode < http.StatusBadRequest {
		return resp, err
	}
	holder, ok := req.Context().Value(errorBodyKey{}).(*errorBody)
	if !ok {
		return resp, nil
	}
	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	_ = resp.Body.Close()
	if readErr == nil {
		holder.data = raw
	}
	resp.Body = io.NopCloser(bytes.NewReader(raw))
	return resp, nil
}

// toUpstreamError folds go-openai failures into a domain upstream error that
// keeps the provider's HTTP status and response body.
func toUpstreamError(operation string, err error, raw []byte) *domain.Error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		body := apiErr.Message
		if len(raw) > 0 {
			body = string(raw)
		}
		return domain.NewUpstreamError(operation, apiErr.HTTPStatusCode, body, err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		body := string(reqErr.Body)
		if body == "" {
			body = string(raw)
		}
		if body == "" && reqErr.Err != nil {
			body = reqErr.Err.Error()
		}
		return domain.NewUpstreamError(operation, reqErr.HTTPStatusCode, body, err)
	}

	return domain.NewUpstreamError(operation, 0, "", err)
}
