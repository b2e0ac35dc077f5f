package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"salon/config"
	"salon/infras/otel/mocks"
	cacheMocks "salon/shared/cache/mocks"
	"salon/shared/constant"
	"salon/transport/http/middleware"
)

func newLimited(t *testing.T, cache *cacheMocks.MockRedisCache, maxReqs, windowSecs int) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = maxReqs
	cfg.App.RateLimiter.WindowSeconds = windowSecs

	app := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, cache)

	return app.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func request() *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/v1/appointments", nil)
	r.Header.Set(constant.RequestHeaderForwardedFor, "203.0.113.7")
	r.Header.Set(constant.RequestHeaderUserAgent, "curl")

	return r
}

func TestRateLimit(t *testing.T) {
	t.Run("rejected requests keep the window started by the first hit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := cacheMocks.NewMockRedisCache(ctrl)
		handler := newLimited(t, cache, 1, 60)

		var keys []string

		hit := func(count int64) func(context.Context, string, int) (int64, error) {
			return func(_ context.Context, key string, _ int) (int64, error) {
				keys = append(keys, key)

				return count, nil
			}
		}

		// The counter is only ever incremented. Nothing rewrites its expiry, so
		// the key lapses 60 seconds after the first request and the next one
		// starts a fresh window.
		gomock.InOrder(
			cache.EXPECT().Increment(gomock.Any(), gomock.Any(), 60).DoAndReturn(hit(1)),
			cache.EXPECT().Increment(gomock.Any(), gomock.Any(), 60).DoAndReturn(hit(2)),
			cache.EXPECT().Increment(gomock.Any(), gomock.Any(), 60).DoAndReturn(hit(3)),
			cache.EXPECT().Increment(gomock.Any(), gomock.Any(), 60).DoAndReturn(hit(1)),
		)

		want := []int{http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests, http.StatusOK}

		for i, code := range want {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, request())

			assert.Equal(t, code, rec.Code, "request %d", i+1)
		}

		assert.Len(t, keys, 4)

		for _, key := range keys {
			assert.Equal(t, keys[0], key)
		}
	})

	t.Run("reports the remaining quota", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := cacheMocks.NewMockRedisCache(ctrl)
		handler := newLimited(t, cache, 5, 30)

		cache.EXPECT().Increment(gomock.Any(), gomock.Any(), 30).Return(int64(2), nil)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, request())

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "5", rec.Header().Get(constant.RequestHeaderRateLimit))
		assert.Equal(t, "3", rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
		assert.Equal(t, "30", rec.Header().Get(constant.RequestHeaderRateLimitWindow))
	})

	t.Run("cache outage lets traffic through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := cacheMocks.NewMockRedisCache(ctrl)
		handler := newLimited(t, cache, 1, 60)

		cache.EXPECT().Increment(gomock.Any(), gomock.Any(), 60).Return(int64(0), errors.New("redis down"))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, request())

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("disabled limiter never touches the cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := cacheMocks.NewMockRedisCache(ctrl)

		cfg := &config.Config{}
		handler := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, cache).RateLimit()(
			http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) }))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, request())

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
