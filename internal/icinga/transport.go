package icinga

import (
	"context"
	"net/url"

	"github.com/alexisbeaulieu97/directorctl/internal/director"
)

// Transport is the API surface the engine needs from the HTTP layer. The
// concrete client in internal/director satisfies it; tests substitute
// recording fakes.
type Transport interface {
	Get(ctx context.Context, path string, query url.Values) (*director.Response, error)
	Post(ctx context.Context, path string, query url.Values, body any) (*director.Response, error)
	Delete(ctx context.Context, path string, query url.Values) (*director.Response, error)
}
