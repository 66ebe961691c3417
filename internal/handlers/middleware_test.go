package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"people_api/internal/service"

	"github.com/gin-gonic/gin"
)

// minimal router wiring only the middleware + a protected endpoint
func newMiddlewareOnlyRouter(s *service.Service, opts Options) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(s, nil, opts)
	r.GET("/secure", h.authMiddleware, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "username": owner(c)})
	})
	return r
}

func TestAuthMiddleware_Errors(t *testing.T) {
	cases := []struct {
		name     string
		cookie   string
		parseErr error
		legacy   bool
		wantCode int
	}{
		{name: "missing cookie", wantCode: http.StatusUnauthorized},
		{name: "empty cookie", cookie: "", wantCode: http.StatusUnauthorized},
		{name: "bad signature", cookie: "tampered", parseErr: service.ErrInvalidSignature, wantCode: http.StatusUnauthorized},
		{name: "malformed token", cookie: "garbage", parseErr: errors.New("token is malformed"), wantCode: http.StatusUnauthorized},
		{name: "legacy status", cookie: "tampered", parseErr: service.ErrInvalidSignature, legacy: true, wantCode: http.StatusBadRequest},
		{name: "legacy status without cookie", legacy: true, wantCode: http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &mockAuth{parseName: "alice", parseErr: tc.parseErr}
			r := newMiddlewareOnlyRouter(&service.Service{Authorization: auth}, Options{LegacyStatus: tc.legacy})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/secure", nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: sessionCookie, Value: tc.cookie})
			}
			r.ServeHTTP(w, req)

			if w.Code != tc.wantCode {
				t.Fatalf("status: got %d, want %d (body=%s)", w.Code, tc.wantCode, w.Body.String())
			}

			var out struct {
				Error string `json:"error"`
			}
			_ = json.Unmarshal(w.Body.Bytes(), &out)
			if out.Error != "You are not authorized" {
				t.Fatalf("error message: got %q", out.Error)
			}
		})
	}
}

func TestAuthMiddleware_SuccessSetsUsernameAndProceeds(t *testing.T) {
	auth := &mockAuth{parseName: "alice"}
	r := newMiddlewareOnlyRouter(&service.Service{Authorization: auth}, Options{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "good-token"})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body=%s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp struct {
		OK       bool   `json:"ok"`
		Username string `json:"username"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.OK || resp.Username != "alice" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if auth.lastParseToken != "good-token" {
		t.Fatalf("ParseToken got %q, want %q", auth.lastParseToken, "good-token")
	}
}
