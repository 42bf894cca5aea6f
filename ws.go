package calchub

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
)

// handleSession runs a calculator session over a WebSocket. Each text
// message is one input line and each reply is the output line; the
// banner arrives first and "exit" in any casing closes the session.
// Session evaluations are recorded like any other source.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer func() { _ = conn.Close() }()

	s.logger.Debug().Str("remote", r.RemoteAddr).Msg("calculator session opened")

	if err := conn.WriteMessage(websocket.TextMessage, []byte(Banner)); err != nil {
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug().Err(err).Msg("websocket read error")
			}
			return
		}

		line := strings.TrimSpace(string(data))
		if strings.EqualFold(line, "exit") {
			s.logger.Debug().Str("remote", r.RemoteAddr).Msg("calculator session closed")
			return
		}

		ev := s.evaluate(r.Context(), line, "ws")
		output := ev.Result
		if ev.Error != "" {
			output = ev.Error
		}
		if err := conn.WriteMessage(websocket.TextMessage, []byte(output)); err != nil {
			return
		}
	}
}
