package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestProxyBaseURL(t *testing.T) {
	for _, tt := range []struct {
		host string
		want string
	}{
		{"0.0.0.0", "http://127.0.0.1:4000"},
		{"::", "http://127.0.0.1:4000"},
		{"127.0.0.1", "http://127.0.0.1:4000"},
		{"10.1.2.3", "http://10.1.2.3:4000"},
	} {
		t.Run(tt.host, func(t *testing.T) {
			require.Equal(t, tt.want, proxyBaseURL(Settings{Host: tt.host, Port: "4000"}))
		})
	}
}

func TestCheckHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health/readiness" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	require.NoError(t, checkHealth(context.Background(), srv.URL))
	require.Error(t, checkHealth(context.Background(), srv.URL+"/nope"))
}

func TestListModels(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"object":"list","data":[`+
			`{"id":"qwen-max","object":"model","created":1700000000,"owned_by":"litellm"},`+
			`{"id":"gpt-4o","object":"model","created":1700000000,"owned_by":"litellm"}]}`)
	}))
	t.Cleanup(srv.Close)

	models, err := listModels(context.Background(), srv.URL, "sk-test")
	require.NoError(t, err)
	require.Equal(t, []string{"gpt-4o", "qwen-max"}, models)
	require.Equal(t, "/v1/models", gotPath)
	require.Equal(t, "Bearer sk-test", gotAuth)
}

func TestWaitForReady(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	require.NoError(t, waitForReady(context.Background(), srv.URL, 10*time.Second))
	require.GreaterOrEqual(t, calls.Load(), int32(2))
}

func TestWaitForReadyTimesOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	err := waitForReady(context.Background(), srv.URL, 10*time.Millisecond)
	require.ErrorContains(t, err, "did not come up")
}
