// Package httpstream exposes a stream over HTTP as Server-Sent Events.
//
// Each successful element is written as a message event with a JSON
// body. A terminal stream error becomes a single error event carrying
// the status, then the connection closes; normal exhaustion is
// signalled with an end event. Client disconnects are observed through
// the request context between events.
//
//	r.GET("/rows", httpstream.Handler(func(c *gin.Context) (*stream.Stream[Row], error) {
//	    return pager.Stream(c.Request.Context(), rowFetcher), nil
//	}))
package httpstream
