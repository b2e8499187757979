//go:build cgo

package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dusk-indust/astgen/internal/syntax"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

func startTestServer(t *testing.T) (string, *Server) {
	t.Helper()

	srv := NewServer(nil)
	require.NoError(t, srv.Start(context.Background(), "127.0.0.1:0"))

	t.Cleanup(func() { srv.Stop(context.Background()) })
	return "http://" + srv.Addr(), srv
}

// postRPC sends a JSON-RPC request and decodes the response.
func postRPC(t *testing.T, baseURL string, method string, id any, params any) JSONRPCResponse {
	t.Helper()

	var rawParams json.RawMessage
	if params != nil {
		b, err := json.Marshal(params)
		require.NoError(t, err)
		rawParams = b
	}

	reqBody := JSONRPCRequest{
		JSONRPC: JSONRPCVersion,
		ID:      id,
		Method:  method,
		Params:  rawParams,
	}

	body, err := json.Marshal(reqBody)
	require.NoError(t, err)

	resp, err := http.Post(baseURL+"/", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var rpcResp JSONRPCResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rpcResp))
	return rpcResp
}

// postRaw sends a raw request body and decodes the JSON-RPC response.
func postRaw(t *testing.T, baseURL string, body string) JSONRPCResponse {
	t.Helper()

	resp, err := http.Post(baseURL+"/", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var rpcResp JSONRPCResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rpcResp))
	return rpcResp
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestServerGenerate(t *testing.T) {
	baseURL, _ := startTestServer(t)

	source := `{"key": "value"}`
	rpcResp := postRPC(t, baseURL, MethodGenerate, 1, GenerateParams{Code: source, Language: "json"})

	assert.Equal(t, JSONRPCVersion, rpcResp.JSONRPC)
	assert.Nil(t, rpcResp.Error)
	require.NotNil(t, rpcResp.Result)

	envelope := string(rpcResp.Result)
	assert.True(t, gjson.Get(envelope, "success").Bool())
	assert.Equal(t, "json", gjson.Get(envelope, "language").String())
	assert.Equal(t, "document", gjson.Get(envelope, "ast.kind").String())

	// The result must be the entry point's bytes embedded as-is.
	assert.Equal(t, syntax.GenerateAST(source, "json"), envelope)
}

func TestServerGenerateUnsupportedLanguage(t *testing.T) {
	baseURL, _ := startTestServer(t)

	rpcResp := postRPC(t, baseURL, MethodGenerate, 2, GenerateParams{Code: "puts 'hello'", Language: "ruby"})

	// Parse failures ride inside the envelope, not as JSON-RPC errors.
	assert.Nil(t, rpcResp.Error)
	require.NotNil(t, rpcResp.Result)

	envelope := string(rpcResp.Result)
	assert.False(t, gjson.Get(envelope, "success").Bool())
	assert.Equal(t, "Unsupported language: ruby", gjson.Get(envelope, "error").String())
	assert.Equal(t, "ruby", gjson.Get(envelope, "language").String())
}

func TestServerGenerateMissingLanguage(t *testing.T) {
	baseURL, _ := startTestServer(t)

	rpcResp := postRPC(t, baseURL, MethodGenerate, 3, GenerateParams{Code: "{}"})

	require.NotNil(t, rpcResp.Error)
	assert.Equal(t, ErrCodeInvalidParams, rpcResp.Error.Code)
	assert.Contains(t, rpcResp.Error.Message, "language is required")
}

func TestServerInvalidParams(t *testing.T) {
	baseURL, _ := startTestServer(t)

	rpcResp := postRaw(t, baseURL, `{"jsonrpc":"2.0","id":4,"method":"ast/generate","params":"not-an-object"}`)

	require.NotNil(t, rpcResp.Error)
	assert.Equal(t, ErrCodeInvalidParams, rpcResp.Error.Code)
	assert.Contains(t, rpcResp.Error.Message, "Invalid params")
}

func TestServerParseError(t *testing.T) {
	baseURL, _ := startTestServer(t)

	rpcResp := postRaw(t, baseURL, "{invalid json")

	assert.Equal(t, JSONRPCVersion, rpcResp.JSONRPC)
	require.NotNil(t, rpcResp.Error)
	assert.Equal(t, ErrCodeParse, rpcResp.Error.Code)
	assert.Contains(t, rpcResp.Error.Message, "Parse error")
}

func TestServerMethodNotFound(t *testing.T) {
	baseURL, _ := startTestServer(t)

	rpcResp := postRPC(t, baseURL, "nonexistent/method", 5, nil)

	require.NotNil(t, rpcResp.Error)
	assert.Equal(t, ErrCodeMethodNotFound, rpcResp.Error.Code)
	assert.Contains(t, rpcResp.Error.Message, "Method not found")
}

func TestServerInvalidVersion(t *testing.T) {
	baseURL, _ := startTestServer(t)

	rpcResp := postRaw(t, baseURL, `{"jsonrpc":"1.0","id":6,"method":"ast/languages"}`)

	require.NotNil(t, rpcResp.Error)
	assert.Equal(t, ErrCodeInvalidRequest, rpcResp.Error.Code)
	assert.Contains(t, rpcResp.Error.Message, "jsonrpc")
}

func TestServerLanguagesMethod(t *testing.T) {
	baseURL, _ := startTestServer(t)

	rpcResp := postRPC(t, baseURL, MethodLanguages, 7, nil)

	assert.Nil(t, rpcResp.Error)
	require.NotNil(t, rpcResp.Result)
	assert.Equal(t, syntax.GetSupportedLanguages(), string(rpcResp.Result))
}

func TestServerLanguagesEndpoint(t *testing.T) {
	baseURL, _ := startTestServer(t)

	resp, err := http.Get(baseURL + "/languages")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, syntax.GetSupportedLanguages(), strings.TrimSpace(string(body)))
}

func TestServerBodyLimit(t *testing.T) {
	srv := NewServer(nil)
	srv.SetMaxBodyBytes(256)
	require.NoError(t, srv.Start(context.Background(), "127.0.0.1:0"))
	t.Cleanup(func() { srv.Stop(context.Background()) })

	baseURL := "http://" + srv.Addr()

	big := strings.Repeat("x", 1024)
	rpcResp := postRPC(t, baseURL, MethodGenerate, 8, GenerateParams{Code: big, Language: "json"})

	require.NotNil(t, rpcResp.Error)
	assert.Equal(t, ErrCodeParse, rpcResp.Error.Code)

	// A body inside the cap still parses.
	rpcResp = postRPC(t, baseURL, MethodGenerate, 9, GenerateParams{Code: "{}", Language: "json"})
	assert.Nil(t, rpcResp.Error)
}

func TestServerRequestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetLevel(logrus.DebugLevel)

	srv := NewServer(logger)
	require.NoError(t, srv.Start(context.Background(), "127.0.0.1:0"))
	t.Cleanup(func() { srv.Stop(context.Background()) })

	postRPC(t, "http://"+srv.Addr(), MethodGenerate, 10, GenerateParams{Code: "{}", Language: "json"})

	logged := buf.String()
	assert.Contains(t, logged, "handled request")
	assert.Contains(t, logged, MethodGenerate)
	assert.Contains(t, logged, "language=json")
}

func TestServerBindFailure(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	srv := NewServer(nil)
	err = srv.Start(context.Background(), listener.Addr().String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen")
}

func TestServerGracefulShutdown(t *testing.T) {
	srv := NewServer(nil)
	require.NoError(t, srv.Start(context.Background(), "127.0.0.1:0"))
	addr := srv.Addr()

	resp, err := http.Get("http://" + addr + "/languages")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Stop(ctx))

	// Give a small grace period for the OS to release the port.
	time.Sleep(50 * time.Millisecond)

	_, err = http.Get("http://" + addr + "/languages")
	assert.Error(t, err, "expected connection error after shutdown")
}
