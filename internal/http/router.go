package httpserver

import "net/http"

// Routes groups HTTP handlers. Ops endpoints are expected to arrive already
// wrapped with the auth middleware.
type Routes struct {
	Scan       http.HandlerFunc
	ReadersWS  http.HandlerFunc
	BillingRun http.Handler
	Travelling http.Handler
	Login      http.HandlerFunc
	Health     http.HandlerFunc
}

// NewRouter registers service endpoints.
func NewRouter(routes Routes) http.Handler {
	mux := http.NewServeMux()
	if routes.Scan != nil {
		mux.Handle("/internal/scan", method(http.MethodPost, routes.Scan))
	}
	if routes.ReadersWS != nil {
		mux.Handle("/readers/ws", method(http.MethodGet, routes.ReadersWS))
	}
	if routes.BillingRun != nil {
		mux.Handle("/ops/billing/run", method(http.MethodPost, routes.BillingRun.ServeHTTP))
	}
	if routes.Travelling != nil {
		mux.Handle("/ops/travelling", method(http.MethodGet, routes.Travelling.ServeHTTP))
	}
	if routes.Login != nil {
		mux.Handle("/auth/login", method(http.MethodPost, routes.Login))
	}
	if routes.Health != nil {
		mux.Handle("/health", method(http.MethodGet, routes.Health))
	}
	return mux
}

func method(expected string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != expected {
			w.Header().Set("Allow", expected)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handler(w, r)
	}
}
