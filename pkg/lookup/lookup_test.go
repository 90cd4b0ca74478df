package lookup

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchReturnsUppercasedWords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("sp") != "C?T" {
			t.Fatalf("expected sp=C?T, got %q", r.URL.Query().Get("sp"))
		}
		json.NewEncoder(w).Encode([]Result{{Word: "cat"}, {Word: "cot"}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	got, err := c.Fetch("C_T", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"CAT", "COT"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestFetchNon2xxReturnsNilWithoutError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	got, err := c.Fetch("C_T", 10)
	if err != nil {
		t.Fatalf("expected nil error for non-2xx response, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil slice for non-2xx response, got %v", got)
	}
}

func TestNewClientDefaultsEndpoint(t *testing.T) {
	c := NewClient("")
	if c.Endpoint != DefaultEndpoint {
		t.Fatalf("expected default endpoint, got %s", c.Endpoint)
	}
}
