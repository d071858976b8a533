package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/lovishduggal/brainwave-backend/internal/pkg/logger"
	"github.com/lovishduggal/brainwave-backend/internal/platform/ctxutil"
)

const testSecret = "test-secret"

func mintToken(t *testing.T, secret, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func authTestRouter(t *testing.T) (*gin.Engine, *string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	am := NewAuthMiddleware(log, testSecret)

	var gotOwner string
	router := gin.New()
	router.GET("/protected", am.RequireAuth(), func(c *gin.Context) {
		if rd := ctxutil.GetRequestData(c.Request.Context()); rd != nil {
			gotOwner = rd.OwnerID
		}
		c.Status(http.StatusOK)
	})
	return router, &gotOwner
}

func TestRequireAuthBearerToken(t *testing.T) {
	router, gotOwner := authTestRouter(t)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, testSecret, "user-42"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", w.Code)
	}
	if *gotOwner != "user-42" {
		t.Fatalf("got owner %q, want user-42", *gotOwner)
	}
}

func TestRequireAuthQueryToken(t *testing.T) {
	router, gotOwner := authTestRouter(t)

	req := httptest.NewRequest("GET", "/protected?token="+mintToken(t, testSecret, "user-7"), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", w.Code)
	}
	if *gotOwner != "user-7" {
		t.Fatalf("got owner %q, want user-7", *gotOwner)
	}
}

func TestRequireAuthRejects(t *testing.T) {
	router, _ := authTestRouter(t)

	cases := map[string]func(r *http.Request){
		"missing token": func(r *http.Request) {},
		"wrong secret": func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+mintToken(t, "other-secret", "user-42"))
		},
		"empty subject": func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+mintToken(t, testSecret, ""))
		},
		"garbage token": func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer not.a.jwt")
		},
	}
	for name, setup := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			setup(req)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("got status %d, want 401", w.Code)
			}
		})
	}
}

func TestRateLimitWithoutRedisPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	rl := NewRateLimitMiddleware(log, nil, 1, time.Minute)

	router := gin.New()
	router.GET("/quiz", rl.Limit("quiz"), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/quiz", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: got status %d, want 200", i, w.Code)
		}
	}
}
