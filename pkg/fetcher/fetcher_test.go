package fetcher

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "conf-roster/1.0" {
			t.Errorf("Unexpected User-Agent: %q", ua)
		}
		w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer server.Close()

	f := New()
	body, err := f.Fetch(server.URL)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if string(body) != "<html><body>ok</body></html>" {
		t.Errorf("Unexpected body: %q", body)
	}
}

func TestFetch_Non200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := New()
	if _, err := f.Fetch(server.URL); err == nil {
		t.Error("Expected error for 404 response")
	}
}

func TestFetch_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	f := New(WithTimeout(20 * time.Millisecond))
	if _, err := f.Fetch(server.URL); err == nil {
		t.Error("Expected timeout error")
	}
}

func TestLocalPath(t *testing.T) {
	tests := []struct {
		root string
		url  string
		want string
	}{
		// Directory URL gets a domain dir and index.html
		{
			root: "/web",
			url:  "http://qip2015.example.org/committee/",
			want: filepath.Join("/web", "qip2015.example.org", "committee", "index.html"),
		},
		// Root already ends in the domain: do not double it
		{
			root: "/web/qip2015.example.org",
			url:  "http://qip2015.example.org/committee/",
			want: filepath.Join("/web", "qip2015.example.org", "committee", "index.html"),
		},
		// Path with a file extension is used as-is
		{
			root: "/web",
			url:  "https://qip2015.example.org/pc.html",
			want: filepath.Join("/web", "qip2015.example.org", "pc.html"),
		},
		// Bare domain maps to its index.html
		{
			root: "/web",
			url:  "http://qip2015.example.org",
			want: filepath.Join("/web", "qip2015.example.org", "index.html"),
		},
		// Extension-less path gets index.html
		{
			root: "/web",
			url:  "http://qip2015.example.org/committee",
			want: filepath.Join("/web", "qip2015.example.org", "committee", "index.html"),
		},
	}
	for _, tt := range tests {
		if got := LocalPath(tt.root, tt.url); got != tt.want {
			t.Errorf("LocalPath(%q, %q) = %q, want %q", tt.root, tt.url, got, tt.want)
		}
	}
}

func TestFetchLocal(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "qip2015.example.org", "committee")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	content := "<html><body><h2>Program Committee</h2></body></html>"
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	f := New()
	data, err := f.FetchLocal(root, "http://qip2015.example.org/committee/")
	if err != nil {
		t.Fatalf("FetchLocal error: %v", err)
	}
	if string(data) != content {
		t.Errorf("Unexpected content: %q", data)
	}

	if _, err := f.FetchLocal(root, "http://qip2015.example.org/missing/"); err == nil {
		t.Error("Expected error for missing local file")
	}
}
