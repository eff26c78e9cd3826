package log

import (
	"context"
)

type requestId struct{}

func RequestIDFromContext(c context.Context) string {
	v, ok := c.Value(requestId{}).(string)
	if !ok {
		return ""
	}
	return v
}

func AttachRequestIDToContext(c context.Context, id string) context.Context {
	return context.WithValue(c, requestId{}, id)
}
