package provider

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serve starts a server answering every request with the given status and body, recording the last path
// and query it saw.
func serve(t *testing.T, status int, body string) (*httptest.Server, *string) {
	t.Helper()

	var last string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		last = r.URL.RequestURI()
		w.WriteHeader(status)
		_, err := w.Write([]byte(body))
		assert.NoError(t, err)
	}))
	t.Cleanup(srv.Close)

	return srv, &last
}

func testClient() *Client {
	return NewClient(time.Second, "siggibot-test")
}

func TestClientGet(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr bool
	}{
		{name: "success", status: http.StatusOK, body: `{"ok":true}`},
		{name: "not found", status: http.StatusNotFound, body: "nope", wantErr: true},
		{name: "server error", status: http.StatusInternalServerError, body: "boom", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := serve(t, tc.status, tc.body)

			got, err := testClient().Get(t.Context(), srv.URL)
			if tc.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.body, string(got))
		})
	}
}

func TestClientSendsUserAgent(t *testing.T) {
	var agent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent = r.UserAgent()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	_, err := testClient().Get(t.Context(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "siggibot-test", agent)
}

func TestClientTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	_, err := NewClient(20*time.Millisecond, "").Get(t.Context(), srv.URL)
	require.Error(t, err)
}

func TestGetJSONMalformed(t *testing.T) {
	srv, _ := serve(t, http.StatusOK, "{not json")

	var v map[string]any
	require.Error(t, testClient().GetJSON(t.Context(), srv.URL, &v))
}
