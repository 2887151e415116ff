package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func swaggerRequest(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/swagger/index.html", nil)
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	router.ServeHTTP(w, req)
	return w
}

func swaggerRouter(cfg SwaggerConfig, jwtMiddleware gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.GET("/swagger/*any", SwaggerProtection(cfg, jwtMiddleware), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "docs"})
	})
	return router
}

func TestSwaggerProtection(t *testing.T) {
	t.Run("disabled docs answer 404", func(t *testing.T) {
		router := swaggerRouter(SwaggerConfig{Enabled: false}, nil)

		w := swaggerRequest(router, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "not_found")
	})

	t.Run("open config serves everyone", func(t *testing.T) {
		router := swaggerRouter(SwaggerConfig{Enabled: true}, nil)

		assert.Equal(t, http.StatusOK, swaggerRequest(router, "").Code)
	})

	t.Run("allowlisted IP is served", func(t *testing.T) {
		router := swaggerRouter(SwaggerConfig{
			Enabled:    true,
			AllowedIPs: []string{"127.0.0.1"},
		}, nil)

		assert.Equal(t, http.StatusOK, swaggerRequest(router, "127.0.0.1:51000").Code)
	})

	t.Run("address outside the allowlist gets 403", func(t *testing.T) {
		router := swaggerRouter(SwaggerConfig{
			Enabled:    true,
			AllowedIPs: []string{"10.0.0.1"},
		}, nil)

		w := swaggerRequest(router, "192.168.1.1:51000")
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "forbidden")
	})

	t.Run("CIDR range membership decides", func(t *testing.T) {
		router := swaggerRouter(SwaggerConfig{
			Enabled:    true,
			AllowedIPs: []string{"10.0.0.0/8"},
		}, nil)

		assert.Equal(t, http.StatusOK, swaggerRequest(router, "10.50.100.200:51000").Code)
		assert.Equal(t, http.StatusForbidden, swaggerRequest(router, "192.168.1.1:51000").Code)
	})

	t.Run("auth middleware runs when required", func(t *testing.T) {
		deny := func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		}
		router := swaggerRouter(SwaggerConfig{Enabled: true, RequireAuth: true}, deny)

		assert.Equal(t, http.StatusUnauthorized, swaggerRequest(router, "").Code)
	})

	t.Run("authenticated caller is served", func(t *testing.T) {
		allow := func(c *gin.Context) {
			c.Set("user_id", "planner-1")
			c.Next()
		}
		router := swaggerRouter(SwaggerConfig{Enabled: true, RequireAuth: true}, allow)

		assert.Equal(t, http.StatusOK, swaggerRequest(router, "").Code)
	})

	t.Run("IP check runs before auth", func(t *testing.T) {
		allow := func(c *gin.Context) { c.Next() }
		router := swaggerRouter(SwaggerConfig{
			Enabled:     true,
			RequireAuth: true,
			AllowedIPs:  []string{"127.0.0.1"},
		}, allow)

		assert.Equal(t, http.StatusOK, swaggerRequest(router, "127.0.0.1:51000").Code)
		assert.Equal(t, http.StatusForbidden, swaggerRequest(router, "192.168.1.1:51000").Code)
	})
}

func TestIPAllowlist(t *testing.T) {
	tests := []struct {
		name    string
		entries []string
		ip      string
		want    bool
	}{
		{name: "empty list is open", entries: nil, ip: "203.0.113.9", want: true},
		{name: "exact IPv4 match", entries: []string{"192.168.1.1"}, ip: "192.168.1.1", want: true},
		{name: "IPv4 mismatch", entries: []string{"192.168.1.1"}, ip: "192.168.1.2", want: false},
		{name: "inside CIDR", entries: []string{"10.0.0.0/8"}, ip: "10.0.0.5", want: true},
		{name: "outside CIDR", entries: []string{"10.0.0.0/8"}, ip: "11.0.0.5", want: false},
		{name: "IPv6 loopback", entries: []string{"::1"}, ip: "::1", want: true},
		{name: "garbage entries are skipped", entries: []string{"not-an-ip", "1.2.3.0/oops"}, ip: "1.2.3.4", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := parseAllowlist(tt.entries)
			assert.Equal(t, tt.want, list.permits(net.ParseIP(tt.ip)))
		})
	}

	t.Run("nil IP is rejected when restricted", func(t *testing.T) {
		assert.False(t, parseAllowlist([]string{"10.0.0.1"}).permits(nil))
	})
}
