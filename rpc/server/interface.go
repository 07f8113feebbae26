package server

import (
	"context"

	"github.com/skaiser/dgate/rpc/cache"
	"github.com/skaiser/dgate/rpc/common"
)

// IDispatcher is the interface for the request dispatch layer.
// It is responsible for resolving a request against the configured providers
// and the connection-local record cache.
type IDispatcher interface {
	// Dispatch resolves a single request and returns a response.
	// It takes the request and the record cache of the issuing connection
	// as parameters. Dispatch never returns nil and never panics; every
	// failure is reported through the response.
	Dispatch(ctx context.Context, req *common.Request, rc *cache.RecordCache) (resp *common.Response)
}
