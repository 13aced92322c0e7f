package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBasicAuth(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := BasicAuth("admin", "s3cret")(next)

	tests := []struct {
		name       string
		setAuth    func(r *http.Request)
		wantStatus int
	}{
		{
			name:       "no header",
			setAuth:    func(r *http.Request) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong password",
			setAuth:    func(r *http.Request) { r.SetBasicAuth("admin", "nope") },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			setAuth:    func(r *http.Request) { r.Header.Set("Authorization", "Bearer token") },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid credentials",
			setAuth:    func(r *http.Request) { r.SetBasicAuth("admin", "s3cret") },
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/activities", nil)
			tt.setAuth(req)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Contains(t, rr.Header().Get("WWW-Authenticate"), "Basic")
			}
		})
	}
}
