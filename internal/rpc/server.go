package rpc

import (
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
)

// defaultMaxBodyBytes caps JSON-RPC request bodies when no explicit limit
// is configured.
const defaultMaxBodyBytes = 10 << 20

// Server exposes the parser over HTTP: JSON-RPC 2.0 on POST / and a plain
// GET /languages discovery route.
type Server struct {
	log     logrus.FieldLogger
	maxBody int64
	addr    string
	http    *http.Server
}

// NewServer creates a parser RPC server. A nil logger discards request
// logs.
func NewServer(log logrus.FieldLogger) *Server {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Server{
		log:     log,
		maxBody: defaultMaxBodyBytes,
	}
}

// SetMaxBodyBytes caps the accepted request body size. Values <= 0 keep the
// default.
func (s *Server) SetMaxBodyBytes(n int64) {
	if n > 0 {
		s.maxBody = n
	}
}
