package icinga

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/directorctl/internal/director"
	"github.com/alexisbeaulieu97/directorctl/internal/logger"
	dcerrors "github.com/alexisbeaulieu97/directorctl/pkg/errors"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(logger.Options{Level: "debug", Writer: io.Discard})
	require.NoError(t, err)
	return log
}

func TestLocatorExists(t *testing.T) {
	t.Parallel()

	key := ObjectKey{Name: "foo service", Host: "foohost"}

	cases := []struct {
		name       string
		status     int
		wantExists bool
		wantErr    bool
	}{
		{"200 means present", http.StatusOK, true, false},
		{"404 means absent", http.StatusNotFound, false, false},
		{"500 is an error, not absence", http.StatusInternalServerError, false, true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			transport := &scriptedTransport{
				onGet: func(query url.Values) (*director.Response, error) {
					return &director.Response{StatusCode: tc.status, Body: []byte(`{}`)}, nil
				},
			}

			locator := NewLocator(transport, testLogger(t))
			exists, err := locator.Exists(context.Background(), key)
			if tc.wantErr {
				var statusErr *dcerrors.UnexpectedStatusError
				require.ErrorAs(t, err, &statusErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.wantExists, exists)
		})
	}
}

func TestLocatorSendsCompositeKeyQuery(t *testing.T) {
	t.Parallel()

	transport := &scriptedTransport{}
	locator := NewLocator(transport, testLogger(t))

	key := ObjectKey{Name: "foo service", Host: "hôst"}
	_, err := locator.Exists(context.Background(), key)
	require.NoError(t, err)

	require.Len(t, transport.calls, 1)
	call := transport.calls[0]
	require.Equal(t, ServicePath, call.Path)
	require.Equal(t, "foo service", call.Query.Get("name"))
	require.Equal(t, "hôst", call.Query.Get("host"))
}

func TestLocatorFetchDecodesRemoteState(t *testing.T) {
	t.Parallel()

	transport := &scriptedTransport{
		onGet: func(query url.Values) (*director.Response, error) {
			return &director.Response{
				StatusCode: http.StatusOK,
				Body:       []byte(`{"object_name":"foo","check_command":"hostalive","id":7}`),
			}, nil
		},
	}

	locator := NewLocator(transport, testLogger(t))
	remote, err := locator.Fetch(context.Background(), ObjectKey{Name: "foo", Host: "bar"})
	require.NoError(t, err)
	require.Equal(t, "foo", remote["object_name"])
	require.Equal(t, "hostalive", remote["check_command"])
	require.Equal(t, float64(7), remote["id"])
}

func TestLocatorFetchNotFound(t *testing.T) {
	t.Parallel()

	transport := &scriptedTransport{}
	locator := NewLocator(transport, testLogger(t))

	_, err := locator.Fetch(context.Background(), ObjectKey{Name: "foo", Host: "bar"})
	require.True(t, IsNotFound(err))

	var notFoundErr *dcerrors.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	require.Equal(t, "foo", notFoundErr.Name)
}

func TestLocatorFetchRejectsMalformedBody(t *testing.T) {
	t.Parallel()

	transport := &scriptedTransport{
		onGet: func(query url.Values) (*director.Response, error) {
			return &director.Response{StatusCode: http.StatusOK, Body: []byte(`not json`)}, nil
		},
	}

	locator := NewLocator(transport, testLogger(t))
	_, err := locator.Fetch(context.Background(), ObjectKey{Name: "foo", Host: "bar"})
	var transportErr *dcerrors.TransportError
	require.ErrorAs(t, err, &transportErr)
}

func TestLocatorPropagatesTransportFailure(t *testing.T) {
	t.Parallel()

	wantErr := dcerrors.NewTransportError("GET", "/service", io.ErrUnexpectedEOF)
	transport := &scriptedTransport{
		onGet: func(query url.Values) (*director.Response, error) {
			return nil, wantErr
		},
	}

	locator := NewLocator(transport, testLogger(t))

	_, err := locator.Exists(context.Background(), ObjectKey{Name: "foo", Host: "bar"})
	require.ErrorIs(t, err, wantErr)
	require.False(t, IsNotFound(err))
}
