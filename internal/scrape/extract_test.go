package scrape

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := ParseDocument([]byte(html))
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	return doc
}

const latestGridHTML = `
<html><body>
  <article class="ls4">
    <div class="ls4v"><a href="/manga/alpha/"><img data-src="/img/alpha.jpg" alt="Alpha"></a></div>
    <div class="ls4j"><h3><a href="/manga/alpha/">Alpha</a></h3><a class="ls24" href="/alpha-chapter-10/">Chapter 10</a></div>
  </article>
  <article class="ls4">
    <div class="ls4v"><a href="/manga/beta/"><img src="/img/beta.jpg" alt="Beta"></a></div>
    <div class="ls4j"><h3><a href="/manga/beta/">Beta</a></h3><a class="ls24" href="/beta-chapter-2/">Chapter 2</a></div>
  </article>
  <article class="ls4">
    <div class="ls4v"><a href="/manga/gamma/"><img src="/img/gamma.jpg" alt="Gamma"></a></div>
    <div class="ls4j"><h3><a href="/manga/gamma/">Gamma</a></h3><a class="ls24" href="/gamma-chapter-7/">Chapter 7</a></div>
  </article>
</body></html>`

func TestRecordsKeepsDocumentOrder(t *testing.T) {
	doc := parseDoc(t, latestGridHTML)

	records := Records(doc, HomeLatest())
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	wantTitles := []string{"Alpha", "Beta", "Gamma"}
	for i, want := range wantTitles {
		if records[i].Title != want {
			t.Fatalf("record %d title = %q, want %q", i, records[i].Title, want)
		}
	}
	if records[0].Link != "/v1/comics/alpha" {
		t.Fatalf("link not converted to internal route: %q", records[0].Link)
	}
	if records[0].Image != "https://komiku.org/img/alpha.jpg" {
		t.Fatalf("image not absolutized: %q", records[0].Image)
	}
	if records[0].Chapter != "Chapter 10" {
		t.Fatalf("chapter = %q", records[0].Chapter)
	}
}

func TestRecordsFallsBackToNextContainerGroup(t *testing.T) {
	doc := parseDoc(t, `
<html><body>
  <div class="bge">
    <h4><a href="/manga/delta/">Delta</a></h4>
    <img src="/img/delta.jpg">
    <span class="chapter">Chapter 3</span>
  </div>
</body></html>`)

	records := Records(doc, Library())
	if len(records) != 1 {
		t.Fatalf("expected 1 record from fallback group, got %d", len(records))
	}
	if records[0].Title != "Delta" {
		t.Fatalf("title = %q", records[0].Title)
	}
}

func TestExtractRecordTitleFallbacks(t *testing.T) {
	doc := parseDoc(t, `
<html><body>
  <article class="ls4">
    <a href="/manga/epsilon/" title="Epsilon From Attr"><img src="/img/e.jpg"></a>
  </article>
</body></html>`)

	records := Records(doc, HomeLatest())
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Title != "Epsilon From Attr" {
		t.Fatalf("title = %q, want anchor title attribute", records[0].Title)
	}
}

func TestExtractRecordImageChain(t *testing.T) {
	cases := []struct {
		name string
		img  string
		want string
	}{
		{"src wins", `<img src="/a.jpg" data-src="/b.jpg">`, "https://komiku.org/a.jpg"},
		{"data-src fallback", `<img data-src="/b.jpg">`, "https://komiku.org/b.jpg"},
		{"data-lazy-src fallback", `<img data-lazy-src="/c.jpg">`, "https://komiku.org/c.jpg"},
		{"srcset first url only", `<img srcset="/a.jpg 1x, /b.jpg 2x">`, "https://komiku.org/a.jpg"},
		{"no image uses placeholder", `<span></span>`, "https://komiku.org/asset/img/no-image.png"},
	}

	for _, tc := range cases {
		doc := parseDoc(t, `<html><body><article class="ls4"><h3><a href="/manga/x/">X Title</a></h3>`+tc.img+`</article></body></html>`)
		records := Records(doc, HomeLatest())
		if len(records) != 1 {
			t.Fatalf("%s: expected 1 record, got %d", tc.name, len(records))
		}
		if records[0].Image != tc.want {
			t.Fatalf("%s: image = %q, want %q", tc.name, records[0].Image, tc.want)
		}
	}
}

func TestExtractRecordCapsTitle(t *testing.T) {
	longTitle := strings.Repeat("a", 150)
	doc := parseDoc(t, `<html><body><article class="ls4"><h3><a href="/manga/long/">`+longTitle+`</a></h3></article></body></html>`)

	records := Records(doc, HomeLatest())
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if got := len(records[0].Title); got != 100 {
		t.Fatalf("title length = %d, want 100", got)
	}
}

func TestExtractRecordLinkFilter(t *testing.T) {
	html := `
<html><body>
  <article class="ls4"><h3><a href="/genre/action/">Genre Action Page</a></h3></article>
  <article class="ls4"><h3><a href="/manga/zeta/">Zeta Comic</a></h3></article>
</body></html>`
	doc := parseDoc(t, html)

	records := Records(doc, Broad())
	if len(records) != 1 {
		t.Fatalf("expected only the comic link, got %d records", len(records))
	}
	if records[0].Title != "Zeta Comic" {
		t.Fatalf("title = %q", records[0].Title)
	}

	unfiltered := Records(doc, Broad().WithoutLinkFilter())
	if len(unfiltered) != 2 {
		t.Fatalf("expected 2 records without filter, got %d", len(unfiltered))
	}
}

func TestRecordsAllDeduplicatesAcrossGroups(t *testing.T) {
	html := `
<html><body>
  <article class="ls4"><h3><a href="/manga/alpha/">Alpha Comic</a></h3></article>
  <div class="bge"><h3><a href="/manga/alpha/">Alpha Comic</a></h3></div>
  <div class="bge"><h3><a href="/manga/beta/">Beta Comic</a></h3></div>
</body></html>`
	doc := parseDoc(t, html)

	records := RecordsAll(doc, Broad().WithoutLinkFilter(), 0)
	if len(records) != 2 {
		t.Fatalf("expected 2 unique records, got %d", len(records))
	}

	capped := RecordsAll(doc, Broad().WithoutLinkFilter(), 1)
	if len(capped) != 1 {
		t.Fatalf("expected cap of 1 record, got %d", len(capped))
	}
}

func TestRecordsEmptyDocument(t *testing.T) {
	doc := parseDoc(t, `<html><body><p>nothing here</p></body></html>`)
	if records := Records(doc, HomeLatest()); len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}
