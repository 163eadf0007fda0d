package realtime

import (
	"net/http"

	ws "github.com/coder/websocket"
)

// Handler returns an HTTP handler that upgrades connections to websocket and
// runs them as Hub clients. originPatterns follows ws.AcceptOptions; a "*"
// entry disables the origin check. The optional list_id query parameter
// limits the client to one list.
func Handler(hub *Hub, originPatterns []string) http.HandlerFunc {
	opts := &ws.AcceptOptions{OriginPatterns: originPatterns}
	for _, p := range originPatterns {
		if p == "*" {
			opts = &ws.AcceptOptions{InsecureSkipVerify: true}
			break
		}
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := ws.Accept(w, r, opts)
		if err != nil {
			hub.log.WarnContext(r.Context(), "realtime: accept", "error", err)
			return
		}
		defer conn.CloseNow() //nolint:errcheck

		NewClient(hub, conn, r.URL.Query().Get("list_id")).Run(r.Context())
	}
}
