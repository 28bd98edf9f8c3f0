package htcore

import (
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestServerStartClose(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", func(w http.ResponseWriter, _ *http.Request) {
		WriteText(w, "pong")
	})

	server, err := NewServer(mux, ServerParams{Host: "127.0.0.1"})
	require.Nil(t, err)
	require.NotZero(t, server.Port())

	server.Start()

	resp, err := http.Get(server.URL() + "/ping")
	require.Nil(t, err)

	body, err := io.ReadAll(resp.Body)
	require.Nil(t, err)
	require.Nil(t, resp.Body.Close())
	require.Equal(t, "pong", string(body))

	require.Nil(t, server.Close())
}
