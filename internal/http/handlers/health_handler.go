package handlers

import "net/http"

// ReaderCounter reports how many gate readers are attached to the gateway.
type ReaderCounter interface {
	Connected() int
}

// NewHealthHandler returns GET /health handler. The response includes the
// connected reader count when a gateway is wired in.
func NewHealthHandler(readers ReaderCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{"status": "ok"}
		if readers != nil {
			resp["readers_connected"] = readers.Connected()
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
