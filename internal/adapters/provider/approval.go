package provider

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"siggibot/internal/core/domain"
	"siggibot/internal/core/service"

	"github.com/samber/mo"
	"golang.org/x/net/html"
)

const DefaultApprovalEndpoint = "https://www.realclearpolling.com/polls/approval/donald-trump/approval-rating"

var (
	approvePattern    = regexp.MustCompile(`(?i)\bapprove\b\D{0,20}?(\d{1,3}(?:\.\d+)?)\s*%?`)
	disapprovePattern = regexp.MustCompile(`(?i)\bdisapprove\b\D{0,20}?(\d{1,3}(?:\.\d+)?)\s*%?`)
)

// ApprovalScraper reads a polling average from a public HTML page.
type ApprovalScraper struct {
	client   *Client
	endpoint string
	subject  string
}

func NewApprovalScraper(client *Client, endpoint string) *ApprovalScraper {
	if endpoint == "" {
		endpoint = DefaultApprovalEndpoint
	}

	return &ApprovalScraper{client: client, endpoint: endpoint, subject: "Presidential approval"}
}

func (a *ApprovalScraper) Approval(ctx context.Context) domain.Approval {
	approval, _ := service.Resolve(ctx, "approval", []service.Strategy[domain.Approval]{
		{Name: "scrape", Fetch: a.scrape},
	}, service.FallbackApproval)

	return approval
}

func (a *ApprovalScraper) scrape(ctx context.Context) (mo.Option[domain.Approval], error) {
	body, err := a.client.Get(ctx, a.endpoint)
	if err != nil {
		return mo.None[domain.Approval](), &domain.ProviderError{Provider: "approval", Err: err}
	}

	text, err := pageText(body)
	if err != nil {
		return mo.None[domain.Approval](), &domain.ProviderError{Provider: "approval", Err: err}
	}

	approve, ok := firstNumber(approvePattern, text)
	if !ok {
		return mo.None[domain.Approval](), nil
	}

	disapprove, ok := firstNumber(disapprovePattern, text)
	if !ok {
		return mo.None[domain.Approval](), nil
	}

	if !plausibleApproval(approve, disapprove) {
		return mo.None[domain.Approval](), nil
	}

	return mo.Some(service.NewApproval(a.subject, "Polling average", a.endpoint, approve, disapprove)), nil
}

func plausibleApproval(approve, disapprove float64) bool {
	return approve > 0 && approve <= 100 && disapprove > 0 && disapprove <= 100 && approve+disapprove <= 100
}

func firstNumber(pattern *regexp.Regexp, text string) (float64, bool) {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}

	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}

	return v, true
}

// pageText flattens the visible text of an HTML document, one text node per line.
func pageText(body []byte) (string, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "head":
				return
			}
		}

		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				sb.WriteString(t)
				sb.WriteByte('\n')
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if sb.Len() == 0 {
		return "", errors.New("page has no text")
	}

	return sb.String(), nil
}

// StripHTML returns the text content of an HTML fragment.
func StripHTML(fragment string) string {
	var sb strings.Builder

	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(sb.String()), " ")
		case html.TextToken:
			sb.Write(z.Text())
			sb.WriteByte(' ')
		}
	}
}
