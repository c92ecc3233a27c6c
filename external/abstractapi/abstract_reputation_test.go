package abstractapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestReputationValidator(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{name: "good address", status: http.StatusOK, body: `{"email_reputation":"HIGH"}`},
		{name: "disposable", status: http.StatusOK, body: `{"email_reputation":"HIGH","is_disposable_email":true}`, want: ErrDisposable},
		{name: "role based", status: http.StatusOK, body: `{"email_reputation":"MEDIUM","is_role_email":true}`, want: ErrRoleEmail},
		{name: "low reputation", status: http.StatusOK, body: `{"email_reputation":"LOW"}`, want: ErrLowReputation},
		{name: "lookup failure lets it through", status: http.StatusInternalServerError, body: `oops`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotEmail, gotKey string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotEmail = r.URL.Query().Get("email")
				gotKey = r.URL.Query().Get("api_key")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			v := NewReputationValidator("key-123")
			v.baseURL = srv.URL + "/v1/"

			err := v.Validate(context.Background(), "bob@example.com")
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if gotEmail != "bob@example.com" || gotKey != "key-123" {
				t.Fatalf("unexpected query email=%q key=%q", gotEmail, gotKey)
			}
		})
	}
}
