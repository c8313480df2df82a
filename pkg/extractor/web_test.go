package extractor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const page = `<!doctype html><html><head><title>t</title><style>p{}</style></head>
<body>
<header>Site header</header>
<nav>Home | About</nav>
<main><h1>Title</h1>
<p>First   paragraph
 of text.</p><script>var x = 1;</script>
<p>Second.</p></main>
<footer>Copyright</footer>
</body></html>`

func TestMainText_PrefersMain(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, "Title First paragraph of text. Second.", MainText(doc))
}

func TestMainText_FallsBack(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(`<html><body><nav>x</nav><article><p>Story</p></article><p>aside</p></body></html>`))
	require.NoError(t, err)
	assert.Equal(t, "Story", MainText(doc))

	doc, err = html.Parse(strings.NewReader(`<html><body><header>h</header><p>Just body</p><script>1</script></body></html>`))
	require.NoError(t, err)
	assert.Equal(t, "Just body", MainText(doc))
}

func TestWeb_ExtractURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla")
		switch r.URL.Path {
		case "/article":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write([]byte(page))
		case "/plain":
			w.Header().Set("Content-Type", "text/plain")
			w.Write([]byte("  a\n\n b  "))
		case "/image":
			w.Header().Set("Content-Type", "image/png")
			w.Write([]byte("\x89PNG"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	web := NewWeb(2*time.Second, 0)
	ctx := context.Background()

	text, err := web.ExtractURL(ctx, srv.URL+"/article")
	require.NoError(t, err)
	assert.Equal(t, "Title First paragraph of text. Second.", text)

	text, err = web.ExtractURL(ctx, srv.URL+"/plain")
	require.NoError(t, err)
	assert.Equal(t, "a b", text)

	_, err = web.ExtractURL(ctx, srv.URL+"/image")
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = web.ExtractURL(ctx, srv.URL+"/missing")
	assert.ErrorIs(t, err, ErrExtraction)

	_, err = web.ExtractURL(ctx, "ftp://example.com/file")
	assert.ErrorIs(t, err, ErrExtraction)
}
