package provider

import (
	"net/http"
	"testing"

	"siggibot/internal/core/service"

	"github.com/stretchr/testify/assert"
)

const pollingPage = `<!doctype html>
<html><head><title>Approval</title><script>var approve = 99;</script></head>
<body>
  <div class="average"><span>Approve</span> <b>44.6</b></div>
  <div class="average"><span>Disapprove</span> <b>52.3</b></div>
</body></html>`

func TestApprovalScrape(t *testing.T) {
	srv, _ := serve(t, http.StatusOK, pollingPage)

	got := NewApprovalScraper(testClient(), srv.URL).Approval(t.Context())

	assert.InDelta(t, 44.6, got.Approve, 1e-9)
	assert.InDelta(t, 52.3, got.Disapprove, 1e-9)
	assert.InDelta(t, -7.7, got.Net, 1e-9)
	assert.Equal(t, srv.URL, got.SourceURL)
}

func TestApprovalFallbacks(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "outage", status: http.StatusBadGateway, body: ""},
		{name: "no figures", status: http.StatusOK, body: "<html><body>Nothing to see</body></html>"},
		{name: "implausible figures", status: http.StatusOK,
			body: "<p>Approve 80</p><p>Disapprove 70</p>"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := serve(t, tc.status, tc.body)

			got := NewApprovalScraper(testClient(), srv.URL).Approval(t.Context())

			assert.Equal(t, service.FallbackApproval(), got)
		})
	}
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "Hello world & friends", StripHTML("<p>Hello <b>world</b> &amp; friends</p>"))
	assert.Equal(t, "plain", StripHTML("plain"))
	assert.Equal(t, "", StripHTML(""))
}
