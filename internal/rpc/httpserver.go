package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/dusk-indust/astgen/internal/syntax"
	"github.com/sirupsen/logrus"
)

// Start binds addr, registers routes, and begins serving in a background
// goroutine. Bind failures are returned synchronously.
func (s *Server) Start(ctx context.Context, addr string) error {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /languages", s.handleLanguages)
	mux.HandleFunc("POST /", s.handleJSONRPC)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("rpc: listen %s: %w", addr, err)
	}
	s.addr = listener.Addr().String()

	s.http = &http.Server{
		Addr:    s.addr,
		Handler: mux,
	}

	go s.http.Serve(listener)

	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Addr returns the bound address, usable after Start. Useful when Start was
// given a ":0" port.
func (s *Server) Addr() string {
	return s.addr
}

// handleLanguages serves the supported-language array for service
// discovery. It is the same bytes ast/languages returns.
func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	io.WriteString(w, syntax.GetSupportedLanguages())
	io.WriteString(w, "\n")
}

// handleJSONRPC processes incoming JSON-RPC 2.0 requests and dispatches
// them to the appropriate method. A panic below is recovered and answered
// with an internal error frame.
func (s *Server) handleJSONRPC(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req JSONRPCRequest

	defer func() {
		if rec := recover(); rec != nil {
			s.log.WithFields(logrus.Fields{
				"method": req.Method,
				"panic":  rec,
			}).Error("recovered request handler panic")
			writeJSONRPCError(w, req.ID, ErrCodeInternal, fmt.Sprintf("Internal error: %v", rec))
		}
	}()

	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONRPCError(w, nil, ErrCodeParse, "Parse error: "+err.Error())
		return
	}

	if req.JSONRPC != JSONRPCVersion {
		writeJSONRPCError(w, req.ID, ErrCodeInvalidRequest, fmt.Sprintf("Invalid request: jsonrpc must be %q", JSONRPCVersion))
		return
	}

	switch req.Method {
	case MethodGenerate:
		s.dispatchGenerate(w, &req)
	case MethodLanguages:
		s.dispatchLanguages(w, &req)
	default:
		writeJSONRPCError(w, req.ID, ErrCodeMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method))
	}
}

// dispatchGenerate unmarshals params and returns the serialized parse
// envelope as the raw result.
func (s *Server) dispatchGenerate(w http.ResponseWriter, req *JSONRPCRequest) {
	var params GenerateParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		writeJSONRPCError(w, req.ID, ErrCodeInvalidParams, "Invalid params: "+err.Error())
		return
	}
	if params.Language == "" {
		writeJSONRPCError(w, req.ID, ErrCodeInvalidParams, "Invalid params: language is required")
		return
	}

	start := time.Now()
	envelope := syntax.GenerateAST(params.Code, params.Language)

	s.log.WithFields(logrus.Fields{
		"method":   MethodGenerate,
		"language": params.Language,
		"bytes":    len(params.Code),
		"duration": time.Since(start),
	}).Debug("handled request")

	writeRawResult(w, req.ID, json.RawMessage(envelope))
}

// dispatchLanguages returns the supported-language array as the raw result.
func (s *Server) dispatchLanguages(w http.ResponseWriter, req *JSONRPCRequest) {
	start := time.Now()
	languages := syntax.GetSupportedLanguages()

	s.log.WithFields(logrus.Fields{
		"method":   MethodLanguages,
		"duration": time.Since(start),
	}).Debug("handled request")

	writeRawResult(w, req.ID, json.RawMessage(languages))
}

// writeRawResult writes a successful JSON-RPC response whose result bytes
// are already serialized.
func writeRawResult(w http.ResponseWriter, id any, result json.RawMessage) {
	resp := JSONRPCResponse{
		JSONRPC: JSONRPCVersion,
		ID:      id,
		Result:  result,
	}

	json.NewEncoder(w).Encode(resp)
}

// writeJSONRPCError writes a JSON-RPC error response.
func writeJSONRPCError(w http.ResponseWriter, id any, code int, message string) {
	resp := JSONRPCResponse{
		JSONRPC: JSONRPCVersion,
		ID:      id,
		Error: &JSONRPCError{
			Code:    code,
			Message: message,
		},
	}

	json.NewEncoder(w).Encode(resp)
}
