package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeDirectorServer is a minimal in-memory Director service endpoint.
type fakeDirectorServer struct {
	mu      sync.Mutex
	objects map[string]map[string]any
	posts   int
	deletes int
}

func newFakeDirectorServer() *fakeDirectorServer {
	return &fakeDirectorServer{objects: map[string]map[string]any{}}
}

func (f *fakeDirectorServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r.URL.Path != "/service" {
		http.NotFound(w, r)
		return
	}

	key := r.URL.Query().Get("name") + "|" + r.URL.Query().Get("host")

	switch r.Method {
	case http.MethodGet:
		obj, ok := f.objects[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"error":"not found"}`)
			return
		}
		json.NewEncoder(w).Encode(obj) //nolint:errcheck
	case http.MethodPost:
		var obj map[string]any
		if err := json.NewDecoder(r.Body).Decode(&obj); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.posts++
		f.objects[key] = obj
		fmt.Fprint(w, `{}`)
	case http.MethodDelete:
		f.deletes++
		delete(f.objects, key)
		fmt.Fprint(w, `{}`)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func writeApplyConfig(t *testing.T, baseURL, state string) string {
	t.Helper()

	contents := fmt.Sprintf(`director:
  url: %s
  username: admin
  password: secret
  timeout: 5s
service:
  state: %s
  object_name: "foo service"
  host: foohost
  check_command: hostalive
  imports:
    - base
    - override
`, baseURL, state)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestReconcileFromConfigEndToEnd(t *testing.T) {
	t.Parallel()

	fake := newFakeDirectorServer()
	srv := httptest.NewServer(fake)
	defer srv.Close()

	opts := applyOptions{ConfigPath: writeApplyConfig(t, srv.URL, "present")}

	first, err := reconcileFromConfig(opts)
	require.NoError(t, err)
	require.True(t, first.Changed)
	require.Equal(t, "foo service", first.ObjectName)
	require.Equal(t, 1, fake.posts)

	stored := fake.objects["foo service|foohost"]
	require.Equal(t, "hostalive", stored["check_command"])
	require.Equal(t, []any{"base", "override"}, stored["imports"])

	second, err := reconcileFromConfig(opts)
	require.NoError(t, err)
	require.False(t, second.Changed)
	require.True(t, second.Diff.Empty())
	require.Equal(t, 1, fake.posts)
}

func TestReconcileFromConfigAbsent(t *testing.T) {
	t.Parallel()

	fake := newFakeDirectorServer()
	fake.objects["foo service|foohost"] = map[string]any{"object_name": "foo service"}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	opts := applyOptions{ConfigPath: writeApplyConfig(t, srv.URL, "absent")}

	result, err := reconcileFromConfig(opts)
	require.NoError(t, err)
	require.True(t, result.Changed)
	require.Equal(t, 1, fake.deletes)
	require.Empty(t, fake.objects)
}

func TestReconcileFromConfigDryRun(t *testing.T) {
	t.Parallel()

	fake := newFakeDirectorServer()
	srv := httptest.NewServer(fake)
	defer srv.Close()

	opts := applyOptions{ConfigPath: writeApplyConfig(t, srv.URL, "present"), DryRun: true}

	result, err := reconcileFromConfig(opts)
	require.NoError(t, err)
	require.True(t, result.Changed)
	require.Zero(t, fake.posts)
	require.Empty(t, fake.objects)
}

func TestReconcileFromConfigBadConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("service:\n  object_name: foo\n"), 0o644))

	_, err := reconcileFromConfig(applyOptions{ConfigPath: path})
	require.Error(t, err)
}
