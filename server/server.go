package server

import (
	"net/http"
	"time"

	"github.com/lguibr/pongai/bollywood"
	"golang.org/x/net/websocket"
)

// stateQueryTimeout bounds how long GET / waits for the match actor.
const stateQueryTimeout = time.Second

// Server bridges HTTP and WebSocket clients to a MatchActor.
type Server struct {
	engine       *bollywood.Engine
	matchPID     *bollywood.PID
	stateTimeout time.Duration
}

// New creates a server bound to the match actor at matchPID.
func New(engine *bollywood.Engine, matchPID *bollywood.PID) *Server {
	return &Server{
		engine:       engine,
		matchPID:     matchPID,
		stateTimeout: stateQueryTimeout,
	}
}

func (s *Server) GetEngine() *bollywood.Engine { return s.engine }
func (s *Server) GetMatchPID() *bollywood.PID  { return s.matchPID }

// Routes registers GET / and the /subscribe websocket on a new mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.HandleGetState())
	mux.Handle("/subscribe", websocket.Handler(s.HandleSubscribe()))
	return mux
}
