package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// requestEntry finds the access-log entry among whatever else was logged.
func requestEntry(t *testing.T, recorded *observer.ObservedLogs) observer.LoggedEntry {
	t.Helper()
	for _, entry := range recorded.All() {
		if entry.Message == "HTTP Request" {
			return entry
		}
	}
	t.Fatal("no HTTP Request entry logged")
	return observer.LoggedEntry{}
}

func TestGinMiddleware_LevelTracksStatus(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel zapcore.Level
	}{
		{name: "success logs at info", status: http.StatusOK, wantLevel: zapcore.InfoLevel},
		{name: "client error logs at warn", status: http.StatusConflict, wantLevel: zapcore.WarnLevel},
		{name: "server error logs at error", status: http.StatusInternalServerError, wantLevel: zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, recorded := observer.New(zapcore.DebugLevel)

			router := gin.New()
			router.Use(GinMiddleware(zap.New(core)))
			router.GET("/api/v1/boms", func(c *gin.Context) {
				c.JSON(tt.status, gin.H{})
			})

			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/api/v1/boms", nil)
			router.ServeHTTP(w, req)

			entry := requestEntry(t, recorded)
			assert.Equal(t, tt.wantLevel, entry.Level)
		})
	}
}

func TestGinMiddleware_Fields(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("request_id", "req-42")
		c.Next()
	})
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/api/v1/components/search", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": []string{}})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/components/search?q=oak+board", nil)
	req.Header.Set("User-Agent", "craftshop-cli/1.0")
	router.ServeHTTP(w, req)

	entry := requestEntry(t, recorded)
	fields := make(map[string]zapcore.Field)
	for _, f := range entry.Context {
		fields[f.Key] = f
	}

	assert.Equal(t, "req-42", fields["request_id"].String)
	assert.Equal(t, "GET", fields["method"].String)
	assert.Equal(t, "/api/v1/components/search", fields["path"].String)
	assert.Contains(t, fields["query"].String, "q=oak")
	assert.Equal(t, "craftshop-cli/1.0", fields["user_agent"].String)
	for _, key := range []string{"status", "latency", "client_ip", "body_size"} {
		assert.Contains(t, fields, key)
	}
}

func TestGinMiddleware_NoQueryFieldWithoutQuery(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	router := gin.New()
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/healthz", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/healthz", nil)
	router.ServeHTTP(w, req)

	entry := requestEntry(t, recorded)
	for _, f := range entry.Context {
		assert.NotEqual(t, "query", f.Key)
	}
}

func TestRecovery(t *testing.T) {
	core, recorded := observer.New(zapcore.ErrorLevel)

	router := gin.New()
	router.Use(Recovery(zap.New(core)))
	router.POST("/api/v1/scan", func(c *gin.Context) {
		panic("decoder blew up")
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/scan", nil)
	assert.NotPanics(t, func() {
		router.ServeHTTP(w, req)
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	entries := recorded.All()
	require.NotEmpty(t, entries)
	assert.Equal(t, "Panic recovered", entries[0].Message)
}

func TestGetGinLogger(t *testing.T) {
	t.Run("returns the request-scoped logger", func(t *testing.T) {
		core, _ := observer.New(zapcore.InfoLevel)

		var got *zap.Logger
		router := gin.New()
		router.Use(GinMiddleware(zap.New(core)))
		router.GET("/api/v1/boms", func(c *gin.Context) {
			got = GetGinLogger(c)
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/boms", nil)
		router.ServeHTTP(w, req)

		assert.NotNil(t, got)
	})

	t.Run("falls back to a no-op logger", func(t *testing.T) {
		var got *zap.Logger
		router := gin.New()
		router.GET("/api/v1/boms", func(c *gin.Context) {
			got = GetGinLogger(c)
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/boms", nil)
		router.ServeHTTP(w, req)

		require.NotNil(t, got)
		assert.NotPanics(t, func() { got.Info("noop") })
	})
}
