package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"StorefrontAPI/internal/model"
)

func TestDoSendsBearerToken(t *testing.T) {
	var gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode([]model.CartEntry{{ID: 1, ProductID: 7, Quantity: 2}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api/", time.Second)
	entries, err := c.GetCart(context.Background(), "abc")
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if gotAuth != "Bearer abc" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if gotPath != "/api/cart" {
		t.Fatalf("expected /api/cart, got %q", gotPath)
	}
	if len(entries) != 1 || entries[0].ProductID != 7 {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestDoOmitsAuthorizationWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h := r.Header.Get("Authorization"); h != "" {
			t.Errorf("unexpected Authorization header %q", h)
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL, time.Second).ListProducts(context.Background()); err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
}

func TestAPIErrorCarriesServerMessage(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"message field", `{"message":"Out of stock"}`, "Out of stock"},
		{"error field", `{"error":"Token is invalid"}`, "Token is invalid"},
		{"not json", `<html>oops</html>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusConflict)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, time.Second).AddToCart(context.Background(), "t", 1, 1)
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %v", err)
			}
			if apiErr.Status != http.StatusConflict || apiErr.Message != tt.wantMsg {
				t.Fatalf("got %+v", apiErr)
			}
			if !IsStatus(err, http.StatusConflict) {
				t.Fatal("IsStatus should match 409")
			}
		})
	}
}

func TestMessageOr(t *testing.T) {
	if got := MessageOr(&APIError{Status: 400, Message: "bad"}, "fallback"); got != "bad" {
		t.Fatalf("got %q", got)
	}
	if got := MessageOr(&APIError{Status: 500}, "fallback"); got != "fallback" {
		t.Fatalf("got %q", got)
	}
	if got := MessageOr(errors.New("dial tcp: refused"), "fallback"); got != "fallback" {
		t.Fatalf("got %q", got)
	}
}

func TestCreateProductReturnsID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("unexpected request %s %q", r.Method, r.Header.Get("Content-Type"))
		}
		var p model.Product
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.Name != "AC 1.5T" {
			t.Errorf("bad body %+v %v", p, err)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"ok","product_id":42}`))
	}))
	defer srv.Close()

	id, err := NewClient(srv.URL, time.Second).CreateProduct(context.Background(), "t", model.Product{Name: "AC 1.5T", Price: 30000})
	if err != nil || id != 42 {
		t.Fatalf("got id=%d err=%v", id, err)
	}
}

func TestProductMetadataDecodesMixedValues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":3,"name":"TV","price":45999.5,"metadata":{"Brand":"Sony","Screen Size":55,"Smart":true,"Ports":["HDMI"],"Note":null}}`))
	}))
	defer srv.Close()

	p, err := NewClient(srv.URL, time.Second).GetProduct(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	want := map[string]string{
		"Brand":       "Sony",
		"Screen Size": "55",
		"Smart":       "true",
		"Ports":       `["HDMI"]`,
		"Note":        "",
	}
	for k, v := range want {
		if p.Metadata[k] != v {
			t.Errorf("metadata[%q] = %q, want %q", k, p.Metadata[k], v)
		}
	}
}
