package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const csvBody = "Tarikh,Hijri,Hari,Imsak\n01/01/2025,h,Rabu,5:52 AM\n"

func TestClient_Fetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/jadual/SGR01.csv" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(csvBody))
	}))
	defer server.Close()

	c := NewClient(server.URL + "/jadual/")
	got, err := c.Fetch(context.Background(), FileName("SGR01", KindCSV))
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if string(got) != csvBody {
		t.Errorf("body = %q", got)
	}
	if c.Source() != server.URL+"/jadual" {
		t.Errorf("Source = %q, trailing slash not trimmed", c.Source())
	}
}

func TestClient_Fetch_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such zone", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Fetch(context.Background(), "XXX99.csv")
	if err == nil {
		t.Fatal("expected error for 404, got nil")
	}

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %T", err)
	}
	if se.Code != http.StatusNotFound || !strings.Contains(se.Body, "no such zone") {
		t.Errorf("StatusError = %+v", se)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Error("404 should match ErrNotFound")
	}
}

func TestClient_Fetch_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Fetch(context.Background(), "SGR01.csv")
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected a non-404 error, got %v", err)
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("error should mention status: %v", err)
	}
}

func TestClient_Fetch_ConnectionRefused(t *testing.T) {
	c := NewClient("http://127.0.0.1:1")
	if _, err := c.Fetch(context.Background(), "SGR01.csv"); err == nil {
		t.Fatal("expected connection error, got nil")
	}
}

func TestClient_Fetch_RejectsBadNames(t *testing.T) {
	c := NewClient("http://example.invalid")
	for _, name := range []string{"../etc/passwd", "SGR01.txt", "a/b.csv", ""} {
		if _, err := c.Fetch(context.Background(), name); err == nil {
			t.Errorf("Fetch(%q) should be rejected", name)
		}
	}
}

func TestDir_Fetch(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "SGR01.csv"), []byte(csvBody), 0o644); err != nil {
		t.Fatal(err)
	}

	d := Dir{Root: dir}
	got, err := d.Fetch(context.Background(), "SGR01.csv")
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if string(got) != csvBody {
		t.Errorf("body = %q", got)
	}

	_, err = d.Fetch(context.Background(), "JHR01.csv")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("missing file error = %v, want ErrNotFound", err)
	}
}

func TestDir_Fetch_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (Dir{Root: t.TempDir()}).Fetch(ctx, "SGR01.csv"); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestOpen(t *testing.T) {
	tests := []struct {
		source  string
		want    string
		wantErr bool
	}{
		{"https://example.com/jadual", "*feed.Client", false},
		{"http://localhost:8080", "*feed.Client", false},
		{"file:///srv/jadual", "feed.Dir", false},
		{"./jadual_solat_malaysia_2025", "feed.Dir", false},
		{"   ", "", true},
	}
	for _, tt := range tests {
		f, err := Open(tt.source)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Open(%q) expected error", tt.source)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Open(%q): %v", tt.source, err)
		}
		got := typeName(f)
		if got != tt.want {
			t.Errorf("Open(%q) = %s, want %s", tt.source, got, tt.want)
		}
	}

	f, _ := Open("file:///srv/jadual")
	if f.Source() != "/srv/jadual" {
		t.Errorf("file source = %q", f.Source())
	}
}

func typeName(f Fetcher) string {
	switch f.(type) {
	case *Client:
		return "*feed.Client"
	case Dir:
		return "feed.Dir"
	}
	return "?"
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind("pdf"); err != nil || k != KindPDF {
		t.Errorf("ParseKind(pdf) = %v, %v", k, err)
	}
	if _, err := ParseKind("xlsx"); err == nil {
		t.Error("ParseKind(xlsx) should fail")
	}
	if got := FileName("SGR01", KindPDF); got != "SGR01.pdf" {
		t.Errorf("FileName = %q", got)
	}
}
