package httpstream

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/streamkit/status"
	"github.com/kbukum/streamkit/stream"
)

// Opener builds the stream for one request. Returning an error aborts
// the request with a JSON status body instead of an event stream.
type Opener[T any] func(c *gin.Context) (*stream.Stream[T], error)

// Handler adapts an Opener into a gin handler that serves the opened
// stream as Server-Sent Events.
func Handler[T any](open Opener[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := open(c)
		if err != nil {
			st := status.FromError(err)
			c.AbortWithStatusJSON(HTTPStatus(st.Code), st)
			return
		}
		Serve(c.Writer, c.Request, s)
	}
}

// HTTPStatus maps a status code onto the HTTP status for a non-stream
// response body.
func HTTPStatus(code status.Code) int {
	switch code {
	case status.CodeOK:
		return http.StatusOK
	case status.CodeInvalidArgument, status.CodeOutOfRange:
		return http.StatusBadRequest
	case status.CodeNotFound:
		return http.StatusNotFound
	case status.CodeAlreadyExists, status.CodeAborted, status.CodeFailedPrecondition:
		return http.StatusConflict
	case status.CodeUnauthenticated:
		return http.StatusUnauthorized
	case status.CodePermissionDenied:
		return http.StatusForbidden
	case status.CodeResourceExhausted:
		return http.StatusTooManyRequests
	case status.CodeCancelled:
		return http.StatusRequestTimeout
	case status.CodeDeadlineExceeded:
		return http.StatusGatewayTimeout
	case status.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
