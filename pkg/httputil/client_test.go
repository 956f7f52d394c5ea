package httputil

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/wonny/macrosig/pkg/logger"
)

func TestGetBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "hello")
	}))
	defer server.Close()

	client := New(logger.NewNop(), 5*time.Second)

	body, err := client.GetBody(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("GetBody() failed: %v", err)
	}
	if string(body) != "hello" {
		t.Errorf("GetBody() = %q, want %q", body, "hello")
	}
}

func TestGetBodyNonOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := New(logger.NewNop(), 5*time.Second)

	_, err := client.GetBody(context.Background(), server.URL)
	if err == nil {
		t.Error("Expected error for 403 response, got nil")
	}
}

func TestGetSendsConfiguredHeaders(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer server.Close()

	client := New(logger.NewNop(), 5*time.Second).
		WithHeaders(map[string]string{"User-Agent": "Mozilla/5.0 test"})

	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	resp.Body.Close()

	if gotUA != "Mozilla/5.0 test" {
		t.Errorf("User-Agent = %q, want %q", gotUA, "Mozilla/5.0 test")
	}
}

func TestRetryOnServerError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, "ok")
	}))
	defer server.Close()

	client := New(logger.NewNop(), 5*time.Second).WithRetry(3, time.Millisecond)

	body, err := client.GetBody(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("GetBody() failed: %v", err)
	}
	if string(body) != "ok" {
		t.Errorf("GetBody() = %q, want ok", body)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("server called %d times, want 3", got)
	}
}

func TestTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := New(logger.NewNop(), 20*time.Millisecond)

	_, err := client.Get(context.Background(), server.URL)
	if err == nil {
		t.Error("Expected timeout error, got nil")
	}
}

func TestIsRetryableStatus(t *testing.T) {
	tests := []struct {
		code int
		want bool
	}{
		{200, false},
		{403, false},
		{404, false},
		{429, true},
		{500, true},
		{503, true},
	}

	for _, tt := range tests {
		if got := IsRetryableStatus(tt.code); got != tt.want {
			t.Errorf("IsRetryableStatus(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestTryInOrderFirstSuccess(t *testing.T) {
	var primary, secondary int

	name, err := TryInOrder(context.Background(), logger.NewNop(), 0, []Attempt{
		{Name: "primary", Fn: func(ctx context.Context) error {
			primary++
			return nil
		}},
		{Name: "secondary", Fn: func(ctx context.Context) error {
			secondary++
			return nil
		}},
	})

	if err != nil {
		t.Fatalf("TryInOrder() failed: %v", err)
	}
	if name != "primary" {
		t.Errorf("succeeded source = %q, want primary", name)
	}
	if primary != 1 || secondary != 0 {
		t.Errorf("calls = (%d, %d), want (1, 0)", primary, secondary)
	}
}

func TestTryInOrderFallsThrough(t *testing.T) {
	name, err := TryInOrder(context.Background(), logger.NewNop(), 0, []Attempt{
		{Name: "primary", Fn: func(ctx context.Context) error {
			return errors.New("403")
		}},
		{Name: "secondary", Fn: func(ctx context.Context) error {
			return nil
		}},
	})

	if err != nil {
		t.Fatalf("TryInOrder() failed: %v", err)
	}
	if name != "secondary" {
		t.Errorf("succeeded source = %q, want secondary", name)
	}
}

func TestTryInOrderAllFail(t *testing.T) {
	_, err := TryInOrder(context.Background(), logger.NewNop(), 0, []Attempt{
		{Name: "a", Fn: func(ctx context.Context) error { return errors.New("down") }},
		{Name: "b", Fn: func(ctx context.Context) error { return errors.New("also down") }},
	})

	if err == nil {
		t.Error("Expected error when all sources fail, got nil")
	}
}

func TestTryInOrderEmpty(t *testing.T) {
	_, err := TryInOrder(context.Background(), logger.NewNop(), 0, nil)
	if err == nil {
		t.Error("Expected error for empty attempt list, got nil")
	}
}
