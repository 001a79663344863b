package icinga

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/alexisbeaulieu97/directorctl/internal/director"
)

type recordedCall struct {
	Method string
	Path   string
	Query  url.Values
	Body   []byte
}

// scriptedTransport returns canned responses and records every call.
type scriptedTransport struct {
	calls    []recordedCall
	onGet    func(query url.Values) (*director.Response, error)
	onPost   func(query url.Values, body any) (*director.Response, error)
	onDelete func(query url.Values) (*director.Response, error)
}

func (s *scriptedTransport) record(method, path string, query url.Values, body any) {
	var raw []byte
	if body != nil {
		raw, _ = json.Marshal(body)
	}
	s.calls = append(s.calls, recordedCall{Method: method, Path: path, Query: query, Body: raw})
}

func (s *scriptedTransport) Get(ctx context.Context, path string, query url.Values) (*director.Response, error) {
	s.record(http.MethodGet, path, query, nil)
	if s.onGet != nil {
		return s.onGet(query)
	}
	return &director.Response{StatusCode: http.StatusNotFound, Body: []byte(`{"error":"not found"}`)}, nil
}

func (s *scriptedTransport) Post(ctx context.Context, path string, query url.Values, body any) (*director.Response, error) {
	s.record(http.MethodPost, path, query, body)
	if s.onPost != nil {
		return s.onPost(query, body)
	}
	return &director.Response{StatusCode: http.StatusOK, Body: []byte(`{}`)}, nil
}

func (s *scriptedTransport) Delete(ctx context.Context, path string, query url.Values) (*director.Response, error) {
	s.record(http.MethodDelete, path, query, nil)
	if s.onDelete != nil {
		return s.onDelete(query)
	}
	return &director.Response{StatusCode: http.StatusOK, Body: []byte(`{}`)}, nil
}

func (s *scriptedTransport) countCalls(method string) int {
	count := 0
	for _, call := range s.calls {
		if call.Method == method {
			count++
		}
	}
	return count
}

// fakeDirector is an in-memory single-endpoint Director. Posted payloads are
// round-tripped through JSON so stored state matches what a real server
// would hand back.
type fakeDirector struct {
	scriptedTransport
	objects map[string]map[string]any
}

func newFakeDirector() *fakeDirector {
	f := &fakeDirector{objects: map[string]map[string]any{}}
	f.onGet = func(query url.Values) (*director.Response, error) {
		obj, ok := f.objects[objectKeyOf(query)]
		if !ok {
			return &director.Response{StatusCode: http.StatusNotFound, Body: []byte(`{"error":"not found"}`)}, nil
		}
		body, _ := json.Marshal(obj)
		return &director.Response{StatusCode: http.StatusOK, Body: body}, nil
	}
	f.onPost = func(query url.Values, body any) (*director.Response, error) {
		raw, _ := json.Marshal(body)
		var stored map[string]any
		_ = json.Unmarshal(raw, &stored)
		f.objects[objectKeyOf(query)] = stored
		return &director.Response{StatusCode: http.StatusOK, Body: []byte(`{}`)}, nil
	}
	f.onDelete = func(query url.Values) (*director.Response, error) {
		key := objectKeyOf(query)
		if _, ok := f.objects[key]; !ok {
			return &director.Response{StatusCode: http.StatusNotFound, Body: []byte(`{"error":"not found"}`)}, nil
		}
		delete(f.objects, key)
		return &director.Response{StatusCode: http.StatusOK, Body: []byte(`{}`)}, nil
	}
	return f
}

func (f *fakeDirector) seed(key ObjectKey, attrs map[string]any) {
	f.objects[key.Name+"|"+key.Host] = attrs
}

func objectKeyOf(query url.Values) string {
	return query.Get("name") + "|" + query.Get("host")
}
