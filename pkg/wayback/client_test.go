package wayback

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Nearest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wayback/available" {
			t.Errorf("Expected path /wayback/available, got %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("url"); got != "http://qip2015.example.org/committee/" {
			t.Errorf("Unexpected url parameter: %q", got)
		}
		w.Write([]byte(`{
			"url": "http://qip2015.example.org/committee/",
			"archived_snapshots": {
				"closest": {
					"status": "200",
					"available": true,
					"url": "http://web.archive.org/web/20150112000000/http://qip2015.example.org/committee/",
					"timestamp": "20150112000000"
				}
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	snap, err := client.Nearest("http://qip2015.example.org/committee/")
	if err != nil {
		t.Fatalf("Nearest error: %v", err)
	}
	if snap == nil {
		t.Fatal("Expected snapshot, got nil")
	}
	if !snap.Available {
		t.Error("Expected available snapshot")
	}
	if snap.Timestamp != "20150112000000" {
		t.Errorf("Unexpected timestamp: %q", snap.Timestamp)
	}
}

func TestClient_NearestAt_PassesTimestamp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("timestamp"); got != "2015" {
			t.Errorf("Expected timestamp 2015, got %q", got)
		}
		w.Write([]byte(`{"url": "x", "archived_snapshots": {}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	snap, err := client.NearestAt("http://example.org/", "2015")
	if err != nil {
		t.Fatalf("NearestAt error: %v", err)
	}
	if snap != nil {
		t.Errorf("Expected nil snapshot for empty archive, got %+v", snap)
	}
}

func TestClient_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if _, err := client.Nearest("http://example.org/"); err == nil {
		t.Error("Expected error for server error")
	}
}
