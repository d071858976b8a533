package ctxutil

import "context"

type requestDataKey struct{}

// RequestData carries per-request identity resolved by the auth middleware.
// OwnerID is the subject of the bearer token; identity itself is issued
// externally, this backend only verifies it.
type RequestData struct {
	OwnerID     string
	TokenString string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if rd, ok := ctx.Value(requestDataKey{}).(*RequestData); ok {
		return rd
	}
	return nil
}
