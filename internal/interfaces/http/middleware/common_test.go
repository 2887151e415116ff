package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const webClientOrigin = "https://app.craftshop.example"

func corsRouter(cfg CORSConfig) *gin.Engine {
	router := gin.New()
	router.Use(CORSWithConfig(cfg))
	router.GET("/api/v1/boms", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func corsRequest(router *gin.Engine, method, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/api/v1/boms", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCORSWithConfig(t *testing.T) {
	t.Run("allowlisted origin gets full headers", func(t *testing.T) {
		router := corsRouter(CORSConfig{
			AllowOrigins:     []string{webClientOrigin},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
			AllowHeaders:     []string{"Content-Type", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		})

		w := corsRequest(router, "GET", webClientOrigin)
		assert.Equal(t, webClientOrigin, w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		assert.Equal(t, "GET, POST, PUT, DELETE", w.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "Content-Type, Authorization", w.Header().Get("Access-Control-Allow-Headers"))
		assert.Equal(t, "X-Request-ID", w.Header().Get("Access-Control-Expose-Headers"))
		assert.Equal(t, "43200", w.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("unlisted origin gets no headers", func(t *testing.T) {
		router := corsRouter(CORSConfig{AllowOrigins: []string{webClientOrigin}})

		w := corsRequest(router, "GET", "https://elsewhere.example")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("empty allowlist acknowledges nobody", func(t *testing.T) {
		router := corsRouter(CORSConfig{AllowMethods: []string{"GET"}})

		w := corsRequest(router, "GET", "https://elsewhere.example")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("wildcard serves any origin without credentials", func(t *testing.T) {
		router := corsRouter(CORSConfig{
			AllowOrigins:     []string{"*"},
			AllowMethods:     []string{"GET"},
			AllowCredentials: true, // must be dropped with a wildcard origin
		})

		w := corsRequest(router, "GET", "https://elsewhere.example")
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("preflight from allowed origin", func(t *testing.T) {
		router := corsRouter(CORSConfig{
			AllowOrigins: []string{webClientOrigin},
			AllowMethods: []string{"GET", "POST"},
			AllowHeaders: []string{"Content-Type"},
		})

		w := corsRequest(router, "OPTIONS", webClientOrigin)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, webClientOrigin, w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "GET, POST", w.Header().Get("Access-Control-Allow-Methods"))
	})

	t.Run("preflight from unlisted origin still answers 204", func(t *testing.T) {
		router := corsRouter(CORSConfig{AllowOrigins: []string{webClientOrigin}})

		w := corsRequest(router, "OPTIONS", "https://elsewhere.example")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("max-age is written in seconds", func(t *testing.T) {
		for duration, want := range map[time.Duration]string{
			time.Hour:        "3600",
			time.Minute:      "60",
			24 * time.Hour:   "86400",
			30 * time.Second: "30",
		} {
			router := corsRouter(CORSConfig{
				AllowOrigins: []string{webClientOrigin},
				MaxAge:       duration,
			})
			w := corsRequest(router, "GET", webClientOrigin)
			assert.Equal(t, want, w.Header().Get("Access-Control-Max-Age"))
		}
	})
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/api/v1/boms", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	t.Run("mints a UUID when the client sends none", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/boms", nil))

		id := w.Header().Get("X-Request-ID")
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("echoes a client-supplied ID", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/boms", nil)
		req.Header.Set("X-Request-ID", "scanner-7f3a")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "scanner-7f3a", w.Header().Get("X-Request-ID"))
		assert.Equal(t, "scanner-7f3a", w.Body.String())
	})
}

func TestSecure(t *testing.T) {
	secureRouter := func(cfg SecurityConfig) *gin.Engine {
		router := gin.New()
		router.Use(SecureWithConfig(cfg))
		router.GET("/api/v1/boms", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})
		return router
	}
	serve := func(router *gin.Engine) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/boms", nil))
		return w
	}

	t.Run("defaults harden every response", func(t *testing.T) {
		router := gin.New()
		router.Use(Secure())
		router.GET("/api/v1/boms", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})
		w := serve(router)

		assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
		assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
		assert.Contains(t, w.Header().Get("Content-Security-Policy"), "default-src 'self'")
		assert.Contains(t, w.Header().Get("Permissions-Policy"), "camera=()")
		// HSTS waits for a TLS-terminated deployment.
		assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
	})

	t.Run("HSTS value reflects the flags", func(t *testing.T) {
		w := serve(secureRouter(SecurityConfig{
			HSTSEnabled:           true,
			HSTSMaxAge:            63072000,
			HSTSIncludeSubdomains: true,
			HSTSPreload:           true,
		}))
		assert.Equal(t, "max-age=63072000; includeSubDomains; preload",
			w.Header().Get("Strict-Transport-Security"))

		w = serve(secureRouter(SecurityConfig{HSTSEnabled: true, HSTSMaxAge: 31536000}))
		assert.Equal(t, "max-age=31536000", w.Header().Get("Strict-Transport-Security"))
	})

	t.Run("optional headers can be switched off", func(t *testing.T) {
		w := serve(secureRouter(SecurityConfig{}))

		assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
		assert.Empty(t, w.Header().Get("Content-Security-Policy"))
		assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
		assert.Empty(t, w.Header().Get("Permissions-Policy"))
	})

	t.Run("custom directives pass through verbatim", func(t *testing.T) {
		w := serve(secureRouter(SecurityConfig{
			CSPEnabled:                 true,
			CSPDirective:               "default-src 'none'; script-src 'self'",
			PermissionsPolicyEnabled:   true,
			PermissionsPolicyDirective: "geolocation=(self)",
		}))

		assert.Equal(t, "default-src 'none'; script-src 'self'", w.Header().Get("Content-Security-Policy"))
		assert.Equal(t, "geolocation=(self)", w.Header().Get("Permissions-Policy"))
	})
}
