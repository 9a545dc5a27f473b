package handlers_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/Groodev/komik-api/internal/cache"
	"github.com/Groodev/komik-api/internal/config"
	"github.com/Groodev/komik-api/internal/fetcher"
	apihttp "github.com/Groodev/komik-api/internal/http"
	"github.com/Groodev/komik-api/internal/http/handlers"
	"github.com/Groodev/komik-api/internal/komiku"
)

func homeGrid(titles ...string) string {
	var b strings.Builder
	b.WriteString("<html><head><title>Komiku</title></head><body>")
	b.WriteString("<p>12.345 judul dan 678.901 chapter</p>")
	for _, title := range titles {
		slug := strings.ToLower(strings.ReplaceAll(title, " ", "-"))
		fmt.Fprintf(&b, `
			<article class="ls4">
				<div class="ls4v"><a href="/manga/%s/"><img src="/img/%s.jpg"></a></div>
				<div class="ls4j"><h3><a href="/manga/%s/">%s</a></h3>
					<a class="ls24" href="/%s-chapter-10/">Chapter 10</a></div>
			</article>`, slug, slug, slug, title, slug)
	}
	b.WriteString("</body></html>")
	return b.String()
}

func detailPage(title string) string {
	return fmt.Sprintf(`<html><head>
		<title>Baca Manhwa %s Bahasa Indonesia - Komiku</title>
		<meta property="og:image" content="https://cdn.example/cover.jpg">
	</head><body>
		<p class="desc">A hunter grows stronger alone.</p>
		<ul class="genre"><li><a>Action</a></li><li><a>Fantasy</a></li></ul>
		<table id="Daftar_Chapter"><tbody>
			<tr><td><a href="/solo-max-chapter-2/">Chapter 2</a></td><td>2026-01-02</td></tr>
			<tr><td><a href="/solo-max-chapter-1/">Chapter 1</a></td><td>2026-01-01</td></tr>
		</tbody></table>
	</body></html>`, title)
}

const chapterPage = `<html><head><title>Solo Max Chapter 5 - Komiku</title></head><body>
	<div class="navig">
		<a rel="prev" href="/solo-max-chapter-4/">Previous</a>
		<a rel="next" href="/solo-max-chapter-6/">Next</a>
	</div>
	<div id="Baca_Komik">
		<img src="https://cdn.example/p1.jpg">
		<img src="https://cdn.example/p2.jpg">
	</div>
</body></html>`

// newUpstream serves fixture pages for every path the aggregation
// profiles may request. Unknown paths get an empty but valid document
// so top-up tiers degrade to zero records instead of errors.
func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/":
			fmt.Fprint(w, homeGrid("Solo Max", "Tower Duel", "Mage Again"))
		case strings.HasPrefix(r.URL.Path, "/manga/solo-max"):
			fmt.Fprint(w, detailPage("Solo Max"))
		case strings.HasPrefix(r.URL.Path, "/solo-max-chapter-5"):
			fmt.Fprint(w, chapterPage)
		default:
			fmt.Fprint(w, "<html><body></body></html>")
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	upstream := newUpstream(t)
	h := handlers.New(handlers.Options{
		Client:  fetcher.New(fetcher.Options{}),
		Catalog: komiku.Catalog{Base: upstream.URL},
	})

	cfg := config.Config{AppName: "test-app", CacheEnabled: false}
	app := apihttp.NewServer(cfg, h, cache.NewMemory(), nil)
	t.Cleanup(func() { _ = app.Shutdown() })
	return app
}
