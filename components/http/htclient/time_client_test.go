package htclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testTimeServer struct {
	mu        sync.Mutex
	timestamp int64
	reply     string
	code      int
}

func (s *testTimeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.code != 0 {
		w.WriteHeader(s.code)
		_, _ = w.Write([]byte("failure"))

		return
	}

	if value := r.URL.Query().Get("value"); value != "" {
		timestamp, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		s.timestamp = timestamp
		_, _ = w.Write([]byte("OK"))

		return
	}

	if s.reply != "" {
		_, _ = w.Write([]byte(s.reply))
		return
	}

	_, _ = fmt.Fprintf(w, "%d\n", s.timestamp)
}

func newTestTimeClient(t *testing.T, handler http.Handler) *TimeClient {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewTimeClient(context.Background(), NewDefaultClient(),
		server.URL+"/api/v1/time", time.Second*10)
}

func TestTimeClientSetGetTimestamp(t *testing.T) {
	server := &testTimeServer{}
	client := newTestTimeClient(t, server)

	require.Nil(t, client.SetTimestamp(1704067200))

	timestamp, err := client.GetTimestamp()
	require.Nil(t, err)
	require.Equal(t, int64(1704067200), timestamp)
}

func TestTimeClientInvalidTimestamp(t *testing.T) {
	client := newTestTimeClient(t, &testTimeServer{reply: "foo"})

	timestamp, err := client.GetTimestamp()
	require.NotNil(t, err)
	require.Equal(t, int64(-1), timestamp)
}

func TestTimeClientUnexpectedResponse(t *testing.T) {
	client := newTestTimeClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("FAIL"))
	}))

	require.NotNil(t, client.SetTimestamp(1704067200))
}

func TestTimeClientErrorCode(t *testing.T) {
	client := newTestTimeClient(t, &testTimeServer{code: http.StatusServiceUnavailable})

	_, err := client.GetTimestamp()
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "code=503")

	require.NotNil(t, client.SetTimestamp(1704067200))
}
