package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter(t *testing.T) {
	t.Run("allows a full window of requests", func(t *testing.T) {
		limiter := NewRateLimiter(5, time.Minute)

		for i := 0; i < 5; i++ {
			assert.True(t, limiter.Allow("ip:10.0.0.1"), "request %d should pass", i+1)
		}
		assert.False(t, limiter.Allow("ip:10.0.0.1"))
	})

	t.Run("keys get independent buckets", func(t *testing.T) {
		limiter := NewRateLimiter(2, time.Minute)

		assert.True(t, limiter.Allow("user:asha"))
		assert.True(t, limiter.Allow("user:asha"))
		assert.False(t, limiter.Allow("user:asha"))

		assert.True(t, limiter.Allow("user:ravi"))
		assert.True(t, limiter.Allow("user:ravi"))
	})

	t.Run("bucket refills when the window elapses", func(t *testing.T) {
		limiter := NewRateLimiter(2, 50*time.Millisecond)

		assert.True(t, limiter.Allow("ip:10.0.0.2"))
		assert.True(t, limiter.Allow("ip:10.0.0.2"))
		assert.False(t, limiter.Allow("ip:10.0.0.2"))

		time.Sleep(60 * time.Millisecond)
		assert.True(t, limiter.Allow("ip:10.0.0.2"))
	})

	t.Run("remaining tracks consumed tokens", func(t *testing.T) {
		limiter := NewRateLimiter(5, time.Minute)

		assert.Equal(t, 5, limiter.Remaining("ip:10.0.0.3"))
		limiter.Allow("ip:10.0.0.3")
		limiter.Allow("ip:10.0.0.3")
		assert.Equal(t, 3, limiter.Remaining("ip:10.0.0.3"))
	})

	t.Run("concurrent callers never exceed the limit", func(t *testing.T) {
		limiter := NewRateLimiter(100, time.Minute)
		var wg sync.WaitGroup
		var mu sync.Mutex
		allowed := 0

		for i := 0; i < 150; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if limiter.Allow("ip:10.0.0.4") {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}()
		}

		wg.Wait()
		assert.Equal(t, 100, allowed)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(limiter *RateLimiter) *gin.Engine {
		router := gin.New()
		router.Use(RateLimit(limiter))
		router.GET("/bills", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})
		return router
	}

	t.Run("passes requests within the limit and reports headers", func(t *testing.T) {
		router := newRouter(NewRateLimiter(3, time.Minute))

		for i := 0; i < 3; i++ {
			req := httptest.NewRequest("GET", "/bills", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
		}
	})

	t.Run("returns 429 once the window is spent", func(t *testing.T) {
		router := newRouter(NewRateLimiter(2, time.Minute))

		for i := 0; i < 2; i++ {
			req := httptest.NewRequest("GET", "/bills", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}

		req := httptest.NewRequest("GET", "/bills", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "RATE_LIMIT_EXCEEDED")
	})

	t.Run("keys unauthenticated callers by client IP", func(t *testing.T) {
		router := newRouter(NewRateLimiter(1, time.Minute))

		req1 := httptest.NewRequest("GET", "/bills", nil)
		req1.RemoteAddr = "10.0.0.10:41000"
		w1 := httptest.NewRecorder()
		router.ServeHTTP(w1, req1)
		assert.Equal(t, http.StatusOK, w1.Code)

		req2 := httptest.NewRequest("GET", "/bills", nil)
		req2.RemoteAddr = "10.0.0.10:41001"
		w2 := httptest.NewRecorder()
		router.ServeHTTP(w2, req2)
		assert.Equal(t, http.StatusTooManyRequests, w2.Code)

		// A different address still has budget
		req3 := httptest.NewRequest("GET", "/bills", nil)
		req3.RemoteAddr = "10.0.0.11:41000"
		w3 := httptest.NewRecorder()
		router.ServeHTTP(w3, req3)
		assert.Equal(t, http.StatusOK, w3.Code)
	})

	t.Run("keys authenticated callers by user, not address", func(t *testing.T) {
		limiter := NewRateLimiter(1, time.Minute)
		router := gin.New()
		router.Use(func(c *gin.Context) {
			c.Set(JWTUserIDKey, c.GetHeader("X-Test-User"))
		})
		router.Use(RateLimit(limiter))
		router.GET("/bills", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		// Two users behind the same address get separate buckets
		req1 := httptest.NewRequest("GET", "/bills", nil)
		req1.RemoteAddr = "10.0.0.20:41000"
		req1.Header.Set("X-Test-User", "user-1")
		w1 := httptest.NewRecorder()
		router.ServeHTTP(w1, req1)
		assert.Equal(t, http.StatusOK, w1.Code)

		req2 := httptest.NewRequest("GET", "/bills", nil)
		req2.RemoteAddr = "10.0.0.20:41000"
		req2.Header.Set("X-Test-User", "user-2")
		w2 := httptest.NewRecorder()
		router.ServeHTTP(w2, req2)
		assert.Equal(t, http.StatusOK, w2.Code)

		// Same user again is over budget
		req3 := httptest.NewRequest("GET", "/bills", nil)
		req3.RemoteAddr = "10.0.0.20:41000"
		req3.Header.Set("X-Test-User", "user-1")
		w3 := httptest.NewRecorder()
		router.ServeHTTP(w3, req3)
		assert.Equal(t, http.StatusTooManyRequests, w3.Code)
	})
}

func TestRateLimitByKey(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := NewRateLimiter(1, time.Minute)
	router := gin.New()
	router.Use(RateLimitByKey(limiter, func(c *gin.Context) string {
		return "site:" + c.Query("site")
	}))
	router.GET("/items", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w1 := httptest.NewRecorder()
	router.ServeHTTP(w1, httptest.NewRequest("GET", "/items?site=crystal-plaza", nil))
	assert.Equal(t, http.StatusOK, w1.Code)

	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, httptest.NewRequest("GET", "/items?site=crystal-plaza", nil))
	assert.Equal(t, http.StatusTooManyRequests, w2.Code)

	w3 := httptest.NewRecorder()
	router.ServeHTTP(w3, httptest.NewRequest("GET", "/items?site=galaxy-arcade", nil))
	assert.Equal(t, http.StatusOK, w3.Code)
}

func TestAuthRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(limiter *RateLimiter) *gin.Engine {
		router := gin.New()
		router.Use(AuthRateLimit(limiter))
		router.POST("/login", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"success": true})
		})
		return router
	}

	t.Run("allows attempts within the limit with headers", func(t *testing.T) {
		router := newRouter(NewRateLimiter(5, time.Minute))

		req := httptest.NewRequest("POST", "/login", nil)
		req.RemoteAddr = "10.0.0.30:41000"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("blocks with auth-specific error and Retry-After", func(t *testing.T) {
		router := newRouter(NewRateLimiter(2, time.Minute))

		for i := 0; i < 2; i++ {
			req := httptest.NewRequest("POST", "/login", nil)
			req.RemoteAddr = "10.0.0.31:41000"
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}

		req := httptest.NewRequest("POST", "/login", nil)
		req.RemoteAddr = "10.0.0.31:41000"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "AUTH_RATE_LIMIT_EXCEEDED")
		assert.Contains(t, w.Body.String(), "Too many authentication attempts")
		assert.Equal(t, "60", w.Header().Get("Retry-After"))
	})

	t.Run("addresses are limited independently", func(t *testing.T) {
		router := newRouter(NewRateLimiter(1, time.Minute))

		req1 := httptest.NewRequest("POST", "/login", nil)
		req1.RemoteAddr = "10.0.0.32:41000"
		w1 := httptest.NewRecorder()
		router.ServeHTTP(w1, req1)
		assert.Equal(t, http.StatusOK, w1.Code)

		req2 := httptest.NewRequest("POST", "/login", nil)
		req2.RemoteAddr = "10.0.0.32:41000"
		w2 := httptest.NewRecorder()
		router.ServeHTTP(w2, req2)
		assert.Equal(t, http.StatusTooManyRequests, w2.Code)

		req3 := httptest.NewRequest("POST", "/login", nil)
		req3.RemoteAddr = "10.0.0.33:41000"
		w3 := httptest.NewRecorder()
		router.ServeHTTP(w3, req3)
		assert.Equal(t, http.StatusOK, w3.Code)
	})

	t.Run("auth-scoped keys stay apart from the general limiter", func(t *testing.T) {
		authLimiter := NewRateLimiter(1, time.Minute)
		apiLimiter := NewRateLimiter(100, time.Minute)

		router := gin.New()
		auth := router.Group("/auth")
		auth.Use(AuthRateLimit(authLimiter))
		auth.POST("/login", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"success": true})
		})
		api := router.Group("/api")
		api.Use(RateLimit(apiLimiter))
		api.GET("/bills", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		req1 := httptest.NewRequest("POST", "/auth/login", nil)
		req1.RemoteAddr = "10.0.0.34:41000"
		w1 := httptest.NewRecorder()
		router.ServeHTTP(w1, req1)
		assert.Equal(t, http.StatusOK, w1.Code)

		req2 := httptest.NewRequest("POST", "/auth/login", nil)
		req2.RemoteAddr = "10.0.0.34:41000"
		w2 := httptest.NewRecorder()
		router.ServeHTTP(w2, req2)
		assert.Equal(t, http.StatusTooManyRequests, w2.Code)

		// Exhausted login budget leaves the API budget untouched
		req3 := httptest.NewRequest("GET", "/api/bills", nil)
		req3.RemoteAddr = "10.0.0.34:41000"
		w3 := httptest.NewRecorder()
		router.ServeHTTP(w3, req3)
		assert.Equal(t, http.StatusOK, w3.Code)
	})
}
