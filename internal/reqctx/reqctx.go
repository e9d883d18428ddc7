// internal/reqctx/reqctx.go
package reqctx

import "context"

type key int

const (
	keyRequestID key = iota
	keyClient
)

// Client: откуда пришёл публичный запрос (для журнала посещений).
type Client struct {
	IP        string
	UserAgent string
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keyRequestID, id)
}

func GetRequestID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(keyRequestID).(string)
	return v, ok
}

func WithClient(ctx context.Context, c Client) context.Context {
	return context.WithValue(ctx, keyClient, c)
}

func GetClient(ctx context.Context) (Client, bool) {
	v, ok := ctx.Value(keyClient).(Client)
	return v, ok
}
