package middleware

import (
	"bytes"
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
)

// Timeout bounds a request to timeout. The handler writes into a buffer
// that is copied out only when it completes in time; otherwise the client
// gets 503 and the handler's context is cancelled.
//
// Routing below Timeout runs on a private chi route context that is copied
// back only when the handler finishes in time, so middleware above it never
// reads routing state a late handler is still writing.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			done := make(chan struct{})
			panicked := make(chan any, 1)
			tw := &timeoutWriter{header: make(http.Header)}

			rctx := chi.RouteContext(r.Context())
			var routed *chi.Context
			if rctx != nil {
				routed = cloneRouteContext(rctx)
				ctx = context.WithValue(ctx, chi.RouteCtxKey, routed)
			}
			finish := func() {
				if routed != nil {
					*rctx = *routed
				}
				tw.flush(w)
			}

			go func() {
				defer func() {
					if p := recover(); p != nil {
						panicked <- p
					}
				}()
				next.ServeHTTP(tw, r.WithContext(ctx))
				close(done)
			}()

			select {
			case p := <-panicked:
				panic(p)
			case <-done:
				finish()
			case <-ctx.Done():
				// Both may be ready at once; a finished handler wins.
				if closed(done) {
					finish()
					return
				}
				tw.mu.Lock()
				defer tw.mu.Unlock()
				tw.timedOut = true
				w.Header().Set("Content-Type", "text/plain; charset=utf-8")
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("Request timeout"))
			}
		})
	}
}

// closed reports whether ch is closed without blocking.
func closed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

// cloneRouteContext copies the exported routing state of x into a fresh
// context that shares no slices with it.
func cloneRouteContext(x *chi.Context) *chi.Context {
	c := chi.NewRouteContext()
	c.Routes = x.Routes
	c.RoutePath = x.RoutePath
	c.RouteMethod = x.RouteMethod
	c.URLParams.Keys = append(c.URLParams.Keys, x.URLParams.Keys...)
	c.URLParams.Values = append(c.URLParams.Values, x.URLParams.Values...)
	c.RoutePatterns = append(c.RoutePatterns, x.RoutePatterns...)
	return c
}

// timeoutWriter buffers a response until the handler finishes.
type timeoutWriter struct {
	mu       sync.Mutex
	header   http.Header
	buf      bytes.Buffer
	code     int
	timedOut bool
}

// flush copies the buffered response to w.
func (tw *timeoutWriter) flush(w http.ResponseWriter) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	dst := w.Header()
	for k, v := range tw.header {
		dst[k] = v
	}
	if tw.code == 0 {
		tw.code = http.StatusOK
	}
	w.WriteHeader(tw.code)
	_, _ = w.Write(tw.buf.Bytes())
}

func (tw *timeoutWriter) Header() http.Header {
	return tw.header
}

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut || tw.code != 0 {
		return
	}
	tw.code = code
}

func (tw *timeoutWriter) Write(b []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	if tw.code == 0 {
		tw.code = http.StatusOK
	}
	return tw.buf.Write(b)
}
