package extractor

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// skipped elements never contribute text.
var skipped = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Nav:      true,
	atom.Footer:   true,
	atom.Header:   true,
	atom.Template: true,
}

// Web downloads a page and keeps the readable text of its main content.
type Web struct {
	client    *http.Client
	userAgent string
	maxBytes  int64
}

var _ URLExtractor = &Web{}

func NewWeb(timeout time.Duration, maxBytes int) *Web {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Web{
		client:    &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
		maxBytes:  int64(maxBytes),
	}
}

func (w *Web) ExtractURL(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: invalid url %q", ErrExtraction, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	req.Header.Set("User-Agent", w.userAgent)

	resp, err := w.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: fetch %s: %v", ErrExtraction, u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: fetch %s: status %d", ErrExtraction, u, resp.StatusCode)
	}

	body := io.LimitReader(resp.Body, w.maxBytes)
	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	switch mediaType {
	case "text/plain":
		raw, err := io.ReadAll(body)
		if err != nil {
			return "", fmt.Errorf("%w: read %s: %v", ErrExtraction, u, err)
		}
		return collapseSpaces(string(raw)), nil
	case "text/html", "application/xhtml+xml", "":
		doc, err := html.Parse(body)
		if err != nil {
			return "", fmt.Errorf("%w: parse %s: %v", ErrExtraction, u, err)
		}
		return MainText(doc), nil
	default:
		return "", fmt.Errorf("%w: %s serves %s", ErrUnsupportedType, u, mediaType)
	}
}

// MainText prefers <main>, then <article>, then <body>.
func MainText(doc *html.Node) string {
	root := findFirst(doc, atom.Main)
	if root == nil {
		root = findFirst(doc, atom.Article)
	}
	if root == nil {
		root = findFirst(doc, atom.Body)
	}
	if root == nil {
		root = doc
	}

	var parts []string
	collectText(root, &parts)
	return collapseSpaces(strings.Join(parts, " "))
}

func findFirst(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if skipped[c.DataAtom] {
			continue
		}
		if found := findFirst(c, a); found != nil {
			return found
		}
	}
	return nil
}

func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.ElementNode && skipped[n.DataAtom] {
		return
	}
	if n.Type == html.TextNode {
		if s := strings.TrimSpace(n.Data); s != "" {
			*parts = append(*parts, s)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
