package icinga

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alexisbeaulieu97/directorctl/internal/logger"
	dcerrors "github.com/alexisbeaulieu97/directorctl/pkg/errors"
)

// ServicePath is the Director endpoint for single service objects.
const ServicePath = "/service"

// Locator resolves the existence and remote state of a Director object
// identified by an ObjectKey. It issues read-only calls and never retries;
// transport failures propagate as errors, not as "not found".
type Locator struct {
	transport Transport
	path      string
	log       *logger.Logger
}

// NewLocator creates a Locator for the service endpoint.
func NewLocator(transport Transport, log *logger.Logger) *Locator {
	return &Locator{transport: transport, path: ServicePath, log: log}
}

// Exists reports whether an object matching the key exists remotely.
// 200 means yes, 404 means no; any other status is an error.
func (l *Locator) Exists(ctx context.Context, key ObjectKey) (bool, error) {
	resp, err := l.transport.Get(ctx, l.path, key.Query())
	if err != nil {
		return false, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, dcerrors.NewUnexpectedStatusError("lookup", resp.StatusCode, string(resp.Body))
	}
}

// Fetch retrieves the remote attribute mapping for the key. A 404 yields a
// NotFoundError so callers can distinguish absence from failure.
func (l *Locator) Fetch(ctx context.Context, key ObjectKey) (RemoteState, error) {
	resp, err := l.transport.Get(ctx, l.path, key.Query())
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, dcerrors.NewNotFoundError(key.Name, key.Host)
	default:
		return nil, dcerrors.NewUnexpectedStatusError("fetch", resp.StatusCode, string(resp.Body))
	}

	var remote RemoteState
	if err := json.Unmarshal(resp.Body, &remote); err != nil {
		return nil, dcerrors.NewTransportError("fetch", l.path, err)
	}

	l.log.WithFields(map[string]any{
		"object_name": key.Name,
		"host":        key.Host,
		"attributes":  len(remote),
	}).Debug("fetched remote object state")

	return remote, nil
}

// IsNotFound reports whether err is a locator not-found result.
func IsNotFound(err error) bool {
	var notFound *dcerrors.NotFoundError
	return errors.As(err, &notFound)
}
