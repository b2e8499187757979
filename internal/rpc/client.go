package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"
)

// Client calls a parser RPC server over HTTP/JSON-RPC.
type Client struct {
	http      *http.Client
	requestID atomic.Int64
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithHTTPClient replaces the underlying *http.Client entirely.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.http = hc
	}
}

// NewClient creates a parser RPC client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate parses code remotely via the ast/generate method and returns the
// serialized parse envelope. Parse failures ride inside the envelope; the
// returned error covers transport and protocol failures only.
func (c *Client) Generate(ctx context.Context, endpoint, code, language string) (string, error) {
	result, err := c.call(ctx, endpoint, MethodGenerate, GenerateParams{Code: code, Language: language})
	if err != nil {
		return "", err
	}
	return string(result), nil
}

// Languages returns the remote server's supported-language array via the
// ast/languages method.
func (c *Client) Languages(ctx context.Context, endpoint string) (string, error) {
	result, err := c.call(ctx, endpoint, MethodLanguages, nil)
	if err != nil {
		return "", err
	}
	return string(result), nil
}

// nextID returns a monotonically increasing request ID for JSON-RPC calls.
func (c *Client) nextID() int64 {
	return c.requestID.Add(1)
}

// call performs a JSON-RPC 2.0 call over HTTP POST and returns the raw
// result bytes.
func (c *Client) call(ctx context.Context, endpoint, method string, params any) (json.RawMessage, error) {
	var paramsJSON json.RawMessage
	if params != nil {
		b, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("rpc: marshal params: %w", err)
		}
		paramsJSON = b
	}

	rpcReq := JSONRPCRequest{
		JSONRPC: JSONRPCVersion,
		ID:      c.nextID(),
		Method:  method,
		Params:  paramsJSON,
	}

	body, err := json.Marshal(rpcReq)
	if err != nil {
		return nil, fmt.Errorf("rpc: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("rpc: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("rpc: %s: %w", method, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("rpc: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rpc: %s: HTTP %d: %s", method, resp.StatusCode, string(respBody))
	}

	var rpcResp JSONRPCResponse
	if err := json.Unmarshal(respBody, &rpcResp); err != nil {
		return nil, fmt.Errorf("rpc: decode response: %w", err)
	}

	if rpcResp.Error != nil {
		return nil, &RPCError{
			Method:  method,
			Code:    rpcResp.Error.Code,
			Message: rpcResp.Error.Message,
			Data:    rpcResp.Error.Data,
		}
	}

	return rpcResp.Result, nil
}

// RPCError represents a JSON-RPC error returned by a remote server.
type RPCError struct {
	Method  string
	Code    int
	Message string
	Data    json.RawMessage
}

// Error implements the error interface.
func (e *RPCError) Error() string {
	if len(e.Data) > 0 {
		return fmt.Sprintf("rpc: %s: rpc error %d: %s (data: %s)", e.Method, e.Code, e.Message, string(e.Data))
	}
	return fmt.Sprintf("rpc: %s: rpc error %d: %s", e.Method, e.Code, e.Message)
}
