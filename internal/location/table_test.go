package location

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/starford/scholarmap/internal/storage"
)

func TestFileSource(t *testing.T) {
	store, err := storage.NewFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	_ = store.Write("locations.json", []byte(`{"Cairo University": {"lat": 30.02, "lng": 31.21, "city": "Giza", "country": "Egypt"}}`))

	table, err := FileSource{Store: store, Path: "locations.json"}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if table["Cairo University"] != cairo {
		t.Errorf("table = %+v", table)
	}

	if _, err := (FileSource{Store: store, Path: "missing.json"}).Load(context.Background()); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/locations.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"MIT": {"lat": 42.36, "lng": -71.09, "city": "Cambridge", "country": "USA"}}`))
	}))
	defer srv.Close()

	table, err := HTTPSource{URL: srv.URL + "/locations.json"}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if table["MIT"] != mitShort {
		t.Errorf("table = %+v", table)
	}

	if _, err := (HTTPSource{URL: srv.URL + "/missing"}).Load(context.Background()); err == nil {
		t.Error("expected error for 404")
	}
}
