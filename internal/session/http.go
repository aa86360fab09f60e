package session

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/graphwalker/graphwalker-go/internal/domain"
)

// Server exposes a Session over HTTP: the two mandatory GET endpoints
// (/hasNext, /getNext), plus a supplemental /stream WebSocket that pushes
// Steps produced by GetNext calls — observability only, no second mutation
// path. Steps are queued in a 64-slot buffer and dropped when it is full.
//
// Uses an http.ServeMux + injected-logger pattern, and a JWTAuth-style
// bearer-token check (Bearer header / query parameter fallback order) for
// the optional auth guard.
type Server struct {
	sess       *Session
	mux        *http.ServeMux
	log        zerolog.Logger
	tokenKey   []byte
	authOn     bool
	upgrader   websocket.Upgrader
	subscriber chan domain.Step
}

// NewServer constructs the HTTP surface for sess. tokenSecret, if non-empty,
// requires every request to carry a valid HS256 bearer token; an empty
// secret serves unauthenticated.
func NewServer(sess *Session, log zerolog.Logger, tokenSecret string) *Server {
	s := &Server{
		sess:       sess,
		mux:        http.NewServeMux(),
		log:        log,
		tokenKey:   []byte(tokenSecret),
		authOn:     tokenSecret != "",
		upgrader:   websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024},
		subscriber: make(chan domain.Step, 64),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /hasNext", s.withAuth(s.handleHasNext))
	s.mux.HandleFunc("GET /getNext", s.withAuth(s.handleGetNext))
	s.mux.HandleFunc("GET /stream", s.withAuth(s.handleStream))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.log.Info().Str("method", r.Method).Str("path", r.URL.Path).Msg("request received")
	s.mux.ServeHTTP(w, r)
}

func (s *Server) withAuth(next http.HandlerFunc) http.HandlerFunc {
	if !s.authOn {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := s.authenticate(r); err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

// authenticate tries, in order, the Authorization header's Bearer token and
// the "token" query parameter.
func (s *Server) authenticate(r *http.Request) (*jwt.Token, error) {
	raw := ""
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		raw = strings.TrimPrefix(header, "Bearer ")
	} else if q := r.URL.Query().Get("token"); q != "" {
		raw = q
	}
	if raw == "" {
		return nil, domain.NewEngineError(domain.ErrTransport, "missing authentication token", nil)
	}
	return jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) { return s.tokenKey, nil })
}

func (s *Server) handleHasNext(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.sess.HasNext())
}

func (s *Server) handleGetNext(w http.ResponseWriter, r *http.Request) {
	step, err := s.sess.GetNext()
	if err != nil {
		s.log.Warn().Err(err).Msg("getNext failed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	select {
	case s.subscriber <- *step:
	default:
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(step.Position)
}

// handleStream upgrades to a WebSocket connection and pushes queued Steps
// from GetNext calls as JSON messages, returning when a write fails. All
// /stream clients read from the one shared queue, so each Step goes to only
// one of them.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	for step := range s.subscriber {
		if err := conn.WriteJSON(step); err != nil {
			return
		}
	}
}
