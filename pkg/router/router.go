package router

import (
	"log"
	"net/http"
	"strings"
	"time"
)

// --- ANSI color codes ---
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
)

type HandlerFunc func(http.ResponseWriter, *http.Request)

// Router is a small exact-path HTTP router with a colored access log.
// Every API route is a fixed path, so there is no pattern matching: a
// request either hits a registered METHOD:PATH pair, a mounted prefix
// handler, or a 404.
type Router struct {
	mux      *http.ServeMux
	routes   map[string]HandlerFunc // key = METHOD:PATH
	paths    map[string]bool        // track registered paths
	prefixes map[string]http.Handler
}

func New() *Router {
	r := &Router{
		mux:      http.NewServeMux(),
		routes:   make(map[string]HandlerFunc),
		paths:    make(map[string]bool),
		prefixes: make(map[string]http.Handler),
	}

	// Catch-all handler for unknown paths
	r.mux.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		key := req.Method + ":" + req.URL.Path
		if h, ok := r.routes[key]; ok {
			h(lrw, req)
		} else if h, ok := r.matchPrefix(req.URL.Path); ok {
			h.ServeHTTP(lrw, req)
		} else if r.paths[req.URL.Path] {
			// Path exists but method not allowed
			http.Error(lrw, "Method Not Allowed", http.StatusMethodNotAllowed)
		} else {
			http.Error(lrw, "Not Found", http.StatusNotFound)
		}

		duration := time.Since(start)
		color := statusColor(lrw.statusCode)
		methodColor := methodColor(req.Method)

		log.Printf("%s[%s]%s %s%s%s %s %s%d%s %s(%v)%s",
			colorCyan, start.Format("2006-01-02 15:04:05"), colorReset,
			methodColor, req.Method, colorReset,
			req.URL.Path,
			color, lrw.statusCode, colorReset,
			colorBlue, duration, colorReset,
		)
	})

	return r
}

func (r *Router) matchPrefix(path string) (http.Handler, bool) {
	for prefix, h := range r.prefixes {
		if strings.HasPrefix(path, prefix) {
			return h, true
		}
	}
	return nil, false
}

// --- Register paths ---
func (r *Router) register(method, path string, handler HandlerFunc) {
	key := method + ":" + path
	r.routes[key] = handler
	r.paths[path] = true
}

func (r *Router) GET(path string, handler HandlerFunc)  { r.register(http.MethodGet, path, handler) }
func (r *Router) POST(path string, handler HandlerFunc) { r.register(http.MethodPost, path, handler) }

// Mount attaches an http.Handler under a path prefix. Used for handlers
// that do their own sub-routing, like the swagger UI.
func (r *Router) Mount(prefix string, handler http.Handler) {
	r.prefixes[prefix] = handler
}

// Getter methods for testing
func (r *Router) Routes() map[string]HandlerFunc {
	return r.routes
}

func (r *Router) Paths() map[string]bool {
	return r.paths
}

// Handler exposes the underlying mux so tests can drive the router with
// httptest without opening a socket.
func (r *Router) Handler() http.Handler {
	return r.mux
}

// --- Start server ---
func (r *Router) Start(addr string) error {
	log.Printf("🚀 Server started on %shttp://localhost%s%s", colorGreen, addr, colorReset)
	return http.ListenAndServe(addr, r.mux)
}

// --- Logging response writer to capture status codes ---
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

// --- Color helpers ---
func statusColor(code int) string {
	switch {
	case code >= 200 && code < 300:
		return colorGreen
	case code >= 300 && code < 400:
		return colorCyan
	case code >= 400 && code < 500:
		return colorYellow
	default:
		return colorRed
	}
}

func methodColor(method string) string {
	switch method {
	case http.MethodGet:
		return colorGreen
	case http.MethodPost:
		return colorBlue
	default:
		return colorCyan
	}
}
