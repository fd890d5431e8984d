package sse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/starford/scholarmap/internal/models"
)

func TestSubscribeUnsubscribe(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients")
	}
	ch := b.Subscribe()
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client")
	}
	b.Unsubscribe(ch)
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients after unsub")
	}
}

var idLine = regexp.MustCompile(`(?m)^id: [0-9a-f-]{36}$`)

func TestPublishDelivery(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.Publish(Event{Type: "custom", Data: map[string]string{"file": "researchers.json"}})

	select {
	case msg := <-ch:
		s := string(msg)
		if !strings.Contains(s, "event: custom\n") {
			t.Errorf("missing event type in %q", s)
		}
		if !strings.Contains(s, `"file":"researchers.json"`) {
			t.Errorf("missing data in %q", s)
		}
		if !idLine.MatchString(s) {
			t.Errorf("missing uuid id line in %q", s)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
	}
}

func drain(ch chan []byte) []string {
	var out []string
	for {
		select {
		case msg := <-ch:
			out = append(out, string(msg))
		default:
			return out
		}
	}
}

func countType(msgs []string, typ string) int {
	n := 0
	for _, m := range msgs {
		if strings.Contains(m, "event: "+typ+"\n") {
			n++
		}
	}
	return n
}

func TestPublishReload_StatsThrottle(t *testing.T) {
	b := NewBroker(500 * time.Millisecond)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	stats := models.LocationStats{Total: 5, Mapped: 3, Countries: []string{"Egypt", "USA"}}
	b.PublishReload(Reload{Files: []string{"locations.json"}, Researchers: 5, LocationsChanged: true, Stats: stats})
	b.PublishReload(Reload{Files: []string{"researchers.json"}, Researchers: 5, Stats: stats})

	time.Sleep(50 * time.Millisecond)
	msgs := drain(ch)

	if n := countType(msgs, TypeCatalogReloaded); n != 2 {
		t.Errorf("catalog events = %d, want 2", n)
	}
	if n := countType(msgs, TypeLocationsReloaded); n != 1 {
		t.Errorf("locations events = %d, want 1", n)
	}
	if n := countType(msgs, TypeStatsUpdated); n != 1 {
		t.Errorf("stats events = %d, want 1 (throttled)", n)
	}
}

// syncRecorder guards the body against concurrent reads while the handler writes.
type syncRecorder struct {
	*httptest.ResponseRecorder
	mu sync.Mutex
}

func (r *syncRecorder) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ResponseRecorder.Write(p)
}

func (r *syncRecorder) body() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Body.String()
}

func TestSSEHandler(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil).WithContext(ctx)
	w := &syncRecorder{ResponseRecorder: httptest.NewRecorder()}

	done := make(chan struct{})
	go func() {
		b.ServeHTTP(w, req)
		close(done)
	}()

	// Give handler time to subscribe.
	time.Sleep(50 * time.Millisecond)
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client from handler")
	}

	b.PublishReload(Reload{Files: []string{"researchers.json"}, Researchers: 7})
	time.Sleep(50 * time.Millisecond)

	cancel()
	<-done

	body := w.body()
	if !strings.Contains(body, "event: catalog.reloaded") || !strings.Contains(body, `"researchers":7`) {
		t.Errorf("handler output missing event: %q", body)
	}
	if !strings.HasPrefix(body, "retry: 3000\n\n") {
		t.Errorf("handler did not advertise retry: %q", body)
	}

	time.Sleep(50 * time.Millisecond)
	if b.ClientCount() != 0 {
		t.Errorf("client not cleaned up after disconnect")
	}
}

func TestSSEHandlerHeartbeat(t *testing.T) {
	b := NewBroker(time.Second, WithHeartbeat(10*time.Millisecond))
	defer b.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil).WithContext(ctx)
	w := &syncRecorder{ResponseRecorder: httptest.NewRecorder()}
	b.ServeHTTP(w, req)

	if !strings.Contains(w.body(), ": keep-alive\n\n") {
		t.Errorf("no heartbeat in %q", w.body())
	}
}

func TestPublishDropsOnFullBuffer(t *testing.T) {
	b := NewBroker(time.Second)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	// Buffer holds 64; the rest must be dropped without blocking.
	for range 70 {
		b.Publish(Event{Type: "test", Data: map[string]string{"i": "x"}})
	}
}

func TestCloseClosesSubscribersAndStopsOperations(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	ch := b.Subscribe()
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client")
	}

	b.Close()

	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("expected subscriber channel to be closed")
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for channel close")
	}

	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients after close")
	}

	b.Publish(Event{Type: "custom", Data: map[string]string{}})
	b.PublishReload(Reload{})
}
