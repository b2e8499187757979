//go:build cgo

package rpc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dusk-indust/astgen/internal/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestClientGenerate(t *testing.T) {
	baseURL, _ := startTestServer(t)
	client := NewClient(WithTimeout(5 * time.Second))

	source := `fn main() {}`
	envelope, err := client.Generate(context.Background(), baseURL+"/", source, "rust")
	require.NoError(t, err)

	assert.True(t, gjson.Get(envelope, "success").Bool())
	assert.Equal(t, "rust", gjson.Get(envelope, "language").String())
	assert.Equal(t, syntax.GenerateAST(source, "rust"), envelope)
}

func TestClientGenerateUnsupportedLanguage(t *testing.T) {
	baseURL, _ := startTestServer(t)
	client := NewClient()

	// An unsupported language is a successful call carrying a failure
	// envelope, not a client error.
	envelope, err := client.Generate(context.Background(), baseURL+"/", "x", "cobol")
	require.NoError(t, err)

	assert.False(t, gjson.Get(envelope, "success").Bool())
	assert.Equal(t, "Unsupported language: cobol", gjson.Get(envelope, "error").String())
}

func TestClientLanguages(t *testing.T) {
	baseURL, _ := startTestServer(t)
	client := NewClient()

	languages, err := client.Languages(context.Background(), baseURL+"/")
	require.NoError(t, err)
	assert.Equal(t, syntax.GetSupportedLanguages(), languages)
}

func TestClientRPCError(t *testing.T) {
	baseURL, _ := startTestServer(t)
	client := NewClient()

	_, err := client.Generate(context.Background(), baseURL+"/", "{}", "")
	require.Error(t, err)

	var rpcErr *RPCError
	require.True(t, errors.As(err, &rpcErr))
	assert.Equal(t, ErrCodeInvalidParams, rpcErr.Code)
	assert.Equal(t, MethodGenerate, rpcErr.Method)
	assert.Contains(t, rpcErr.Message, "language is required")
}

func TestClientTransportError(t *testing.T) {
	client := NewClient(WithTimeout(500 * time.Millisecond))

	_, err := client.Generate(context.Background(), "http://127.0.0.1:1/", "{}", "json")
	require.Error(t, err)

	var rpcErr *RPCError
	assert.False(t, errors.As(err, &rpcErr), "transport failures are not RPC errors")
}
