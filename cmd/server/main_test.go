package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurlHostForListenAddr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		listenAddr string
		want       string
	}{
		{name: "port only", listenAddr: ":8080", want: "localhost:8080"},
		{name: "ipv4 host and port", listenAddr: "127.0.0.1:8080", want: "127.0.0.1:8080"},
		{name: "wildcard ipv4", listenAddr: "0.0.0.0:8080", want: "localhost:8080"},
		{name: "wildcard ipv6", listenAddr: "[::]:8080", want: "localhost:8080"},
		{name: "ipv6 loopback", listenAddr: "[::1]:8080", want: "[::1]:8080"},
		{name: "trim host and port", listenAddr: " localhost:9090 ", want: "localhost:9090"},
		{name: "trim port only", listenAddr: "  :7070  ", want: "localhost:7070"},
		{name: "empty falls back", listenAddr: "", want: "localhost:8080"},
		{name: "whitespace falls back", listenAddr: "   ", want: "localhost:8080"},
		{name: "malformed passes through", listenAddr: "localhost", want: "localhost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, curlHostForListenAddr(tt.listenAddr))
		})
	}
}

func TestTokenCmd(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("AUTH_ISSUER_URL", "")
	t.Setenv("AUTH_JWKS_URL", "")
	t.Setenv("JWT_SECRET", "cli-secret")

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--env-file", t.TempDir() + "/.env", "token", "7", "--email", "ada@example.com"})
	require.NoError(t, root.Execute())
	assert.Regexp(t, `^[\w-]+\.[\w-]+\.[\w-]+\n$`, out.String())

	root = newRootCmd()
	root.SetArgs([]string{"--env-file", t.TempDir() + "/.env", "token", "zero"})
	require.Error(t, root.Execute())
}

func TestAddTokenFlags(t *testing.T) {
	cmd := newTokenCmd()
	require.NoError(t, cmd.Flags().Parse([]string{"--ttl", "90m", "--email", "x@example.com"}))
	ttl, err := cmd.Flags().GetDuration("ttl")
	require.NoError(t, err)
	assert.Equal(t, "1h30m0s", ttl.String())
	email, err := cmd.Flags().GetString("email")
	require.NoError(t, err)
	assert.Equal(t, "x@example.com", email)
}
