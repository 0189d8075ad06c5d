package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pet-translator/internal/platform/logger"
	"pet-translator/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

type fakeVerifier struct {
	claims auth.Claims
	err    error
	token  string
}

func (f *fakeVerifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	f.token = token
	return f.claims, f.err
}

func captureClaims(got *auth.Claims, gotErr *error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got, _ = GetClaims(r.Context())
		*gotErr = AuthError(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthContext_DevMode(t *testing.T) {
	var claims auth.Claims
	var authErr error
	h := AuthContext(nil)(captureClaims(&claims, &authErr))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Debug-User-ID", "user-1")
	req.Header.Set("X-Debug-User-Email", "a@b.test")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if claims.UserID != "user-1" || claims.Email != "a@b.test" || claims.Role != "authenticated" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if authErr != nil {
		t.Fatalf("expected no auth error, got %v", authErr)
	}

	claims = auth.Claims{}
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	if claims.UserID != "" {
		t.Fatalf("expected no claims without debug header, got %+v", claims)
	}
}

func TestAuthContext_WithVerifier(t *testing.T) {
	var claims auth.Claims
	var authErr error

	v := &fakeVerifier{claims: auth.Claims{UserID: "user-9"}}
	h := AuthContext(v)(captureClaims(&claims, &authErr))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer tok-123")
	// el header de debug se ignora con verifier
	req.Header.Set("X-Debug-User-ID", "intruder")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if claims.UserID != "user-9" || v.token != "tok-123" {
		t.Fatalf("unexpected claims %+v token=%q", claims, v.token)
	}

	claims = auth.Claims{}
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	if claims.UserID != "" || authErr == nil || !strings.Contains(authErr.Error(), "missing") {
		t.Fatalf("expected missing token error, got claims=%+v err=%v", claims, authErr)
	}

	v.err = errors.New("token expired")
	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer old")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if claims.UserID != "" || authErr == nil || authErr.Error() != "token expired" {
		t.Fatalf("expected verifier error, got claims=%+v err=%v", claims, authErr)
	}

	// claims vacías cuentan como rechazo
	v.err = nil
	v.claims = auth.Claims{}
	h.ServeHTTP(httptest.NewRecorder(), req)
	if !errors.Is(authErr, auth.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for empty claims, got %v", authErr)
	}
}

func TestBearerToken(t *testing.T) {
	cases := map[string]string{
		"Bearer abc":   "abc",
		"bearer  abc ": "abc",
		"Basic abc":    "",
		"Bearer":       "",
		"":             "",
	}
	for in, want := range cases {
		if got := BearerToken(in); got != want {
			t.Fatalf("BearerToken(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRequireServiceKey(t *testing.T) {
	h := RequireServiceKey("svc-key")(okHandler)

	cases := []struct {
		name   string
		header string
		value  string
		want   int
	}{
		{"apikey header", "apikey", "svc-key", http.StatusOK},
		{"bearer", "Authorization", "Bearer svc-key", http.StatusOK},
		{"wrong key", "apikey", "nope", http.StatusUnauthorized},
		{"missing", "", "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", nil)
			if tc.header != "" {
				req.Header.Set(tc.header, tc.value)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
			if tc.want == http.StatusUnauthorized && !strings.Contains(rec.Body.String(), `"error":"Unauthorized"`) {
				t.Fatalf("unexpected body %s", rec.Body.String())
			}
		})
	}

	// preflight pasa sin key
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("OPTIONS", "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected preflight to pass, got %d", rec.Code)
	}

	// key vacía cierra todo
	closed := RequireServiceKey("")(okHandler)
	req := httptest.NewRequest("POST", "/", nil)
	req.Header.Set("apikey", "")
	rec = httptest.NewRecorder()
	closed.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with empty key, got %d", rec.Code)
	}
}

func TestBasicAuth(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	h := BasicAuth("Metrics", "admin", string(hash))(okHandler)

	check := func(user, pass string, set bool, want int) {
		t.Helper()
		req := httptest.NewRequest("GET", "/metrics", nil)
		if set {
			req.SetBasicAuth(user, pass)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Fatalf("user=%q: expected %d, got %d", user, want, rec.Code)
		}
		if want == http.StatusUnauthorized && rec.Header().Get("WWW-Authenticate") == "" {
			t.Fatalf("expected WWW-Authenticate header")
		}
	}

	check("admin", "secret", true, http.StatusOK)
	check("admin", "wrong", true, http.StatusUnauthorized)
	check("root", "secret", true, http.StatusUnauthorized)
	check("", "", false, http.StatusUnauthorized)

	disabled := BasicAuth("Metrics", "admin", "")(okHandler)
	req := httptest.NewRequest("GET", "/metrics", nil)
	req.SetBasicAuth("admin", "")
	rec := httptest.NewRecorder()
	disabled.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 when no hash is configured, got %d", rec.Code)
	}
}

func TestRateLimiter_PerIP(t *testing.T) {
	defer goleak.VerifyNone(t)

	rl := NewRateLimiter(0.001, 2)
	defer rl.Close()
	h := rl.Middleware(okHandler)

	send := func(ip, method string) int {
		req := httptest.NewRequest(method, "/", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	if send("10.0.0.1", "POST") != http.StatusOK || send("10.0.0.1", "POST") != http.StatusOK {
		t.Fatalf("expected burst of 2 to pass")
	}
	if got := send("10.0.0.1", "POST"); got != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", got)
	}
	if got := send("10.0.0.1", "OPTIONS"); got != http.StatusOK {
		t.Fatalf("preflight must not be limited, got %d", got)
	}
	if got := send("10.0.0.2", "POST"); got != http.StatusOK {
		t.Fatalf("other IP must have its own bucket, got %d", got)
	}
}

func TestRateLimiter_CloseIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	rl := NewRateLimiter(0, 0)
	rl.Close()
	rl.Close()
}

func TestRecover_LogsAndReturns500(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	log := logger.FromZap(zap.New(core))

	h := Recover(log)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/x", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	entries := logs.FilterMessage("panic recovered").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 panic log, got %d", len(entries))
	}
	if entries[0].ContextMap()["path"] != "/x" {
		t.Fatalf("unexpected log fields %v", entries[0].ContextMap())
	}
}

func TestRequestLogger_LevelByStatus(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := logger.FromZap(zap.New(core))

	for _, status := range []int{http.StatusOK, http.StatusNotFound, http.StatusBadGateway} {
		h := RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/pets", nil))
	}

	all := logs.FilterMessage("request").All()
	if len(all) != 3 {
		t.Fatalf("expected 3 request logs, got %d", len(all))
	}
	want := []string{"info", "warn", "error"}
	for i, e := range all {
		if e.Level.String() != want[i] {
			t.Fatalf("entry %d: expected %s, got %s", i, want[i], e.Level)
		}
	}
}

func TestHTTPMetrics_LabelsByRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/pets/{petID}", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/private", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusUnauthorized) })

	for _, path := range []string{"/pets/a", "/pets/b", "/private"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", path, nil))
	}

	if got := testutil.ToFloat64(m.requests.WithLabelValues("/pets/{petID}", "GET", "200")); got != 2 {
		t.Fatalf("expected 2 requests for pattern, got %v", got)
	}
	if got := testutil.ToFloat64(m.authRejections.WithLabelValues("401_unauthorized")); got != 1 {
		t.Fatalf("expected 1 auth rejection, got %v", got)
	}
}
