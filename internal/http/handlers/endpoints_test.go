package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Groodev/komik-api/internal/models"
)

func doRequest(t *testing.T, app interface {
	Test(*http.Request, ...int) (*http.Response, error)
}, method, target string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	_ = resp.Body.Close()
	return resp, body
}

func TestLatestReturnsPaginatedComics(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doRequest(t, app, http.MethodGet, "/v1/latest?page=1&limit=2")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var list models.ComicList
	if err := json.Unmarshal(body, &list); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(list.Comics) != 2 {
		t.Fatalf("comics = %d, want 2", len(list.Comics))
	}
	if list.Pagination.CurrentPage != 1 || list.Pagination.PerPage != 2 {
		t.Fatalf("pagination = %+v", list.Pagination)
	}
	if !list.Pagination.HasMore {
		t.Fatalf("expected has_more with 3 fixture records and limit 2")
	}
	first := list.Comics[0]
	if first.Title != "Solo Max" {
		t.Fatalf("first title = %q, want Solo Max", first.Title)
	}
	if first.Link != "/v1/comics/solo-max" {
		t.Fatalf("first link = %q, want internal route", first.Link)
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	app := setupTestApp(t)

	resp, _ := doRequest(t, app, http.MethodGet, "/v1/search")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestByTypeRejectsUnknownType(t *testing.T) {
	app := setupTestApp(t)

	resp, _ := doRequest(t, app, http.MethodGet, "/v1/type/webnovel")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	resp, _ = doRequest(t, app, http.MethodGet, "/v1/type/manhwa")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 for manhwa", resp.StatusCode)
	}
}

func TestComicDetail(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doRequest(t, app, http.MethodGet, "/v1/comics/solo-max")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var detail models.ComicDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if detail.Title != "Solo Max" {
		t.Fatalf("title = %q, want Solo Max", detail.Title)
	}
	if detail.Synopsis == "" {
		t.Fatalf("expected synopsis from p.desc")
	}
	if len(detail.Chapters) != 2 {
		t.Fatalf("chapters = %d, want 2", len(detail.Chapters))
	}
	if len(detail.Genres) != 2 {
		t.Fatalf("genres = %v, want 2 entries", detail.Genres)
	}
}

func TestChapterImages(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doRequest(t, app, http.MethodGet, "/v1/chapters/solo-max-chapter-5")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var pages models.ChapterPages
	if err := json.Unmarshal(body, &pages); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(pages.Images) != 2 {
		t.Fatalf("images = %d, want 2", len(pages.Images))
	}
	if pages.Title != "Solo Max Chapter 5" {
		t.Fatalf("title = %q", pages.Title)
	}
}

func TestChapterNavigation(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doRequest(t, app, http.MethodGet, "/v1/chapters/solo-max-chapter-5/navigation")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var nav models.NavigationResult
	if err := json.Unmarshal(body, &nav); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if nav.PrevChapter == nil || nav.PrevChapter.Link != "/solo-max-chapter-4/" {
		t.Fatalf("prev = %v, want /solo-max-chapter-4/", nav.PrevChapter)
	}
	if nav.PrevChapter.Label != "Previous Chapter" {
		t.Fatalf("prev label = %q, want Previous Chapter", nav.PrevChapter.Label)
	}
	if nav.NextChapter == nil || nav.NextChapter.Link != "/solo-max-chapter-6/" {
		t.Fatalf("next = %v, want /solo-max-chapter-6/", nav.NextChapter)
	}
	if nav.NextChapter.Label != "Next Chapter" {
		t.Fatalf("next label = %q, want Next Chapter", nav.NextChapter.Label)
	}

	// The neighbors serialize as {label, link} objects on the wire.
	var raw struct {
		PrevChapter map[string]string `json:"prev_chapter"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	if raw.PrevChapter["label"] == "" || raw.PrevChapter["link"] == "" {
		t.Fatalf("prev_chapter = %v, want label and link keys", raw.PrevChapter)
	}
}

func TestGenresCatalog(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doRequest(t, app, http.MethodGet, "/v1/genres")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var genres []struct {
		Value string `json:"value"`
		Name  string `json:"name"`
	}
	if err := json.Unmarshal(body, &genres); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(genres) != 24 {
		t.Fatalf("genres = %d, want 24", len(genres))
	}
	if genres[0].Value != "action" || genres[0].Name != "Action" {
		t.Fatalf("first genre = %+v", genres[0])
	}
}

func TestStatsParsesUpstreamCounters(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doRequest(t, app, http.MethodGet, "/v1/stats")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var stats struct {
		TotalComics        int `json:"total_comics"`
		TotalChapters      int `json:"total_chapters"`
		CurrentlyDisplayed int `json:"currently_displayed"`
	}
	if err := json.Unmarshal(body, &stats); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if stats.TotalComics != 12345 {
		t.Fatalf("total_comics = %d, want 12345", stats.TotalComics)
	}
	if stats.CurrentlyDisplayed != 3 {
		t.Fatalf("currently_displayed = %d, want 3", stats.CurrentlyDisplayed)
	}
}

func TestHealth(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doRequest(t, app, http.MethodGet, "/health")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var health struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &health); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if health.Status != "ok" {
		t.Fatalf("status = %q, want ok", health.Status)
	}
}

func TestHomepageSections(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doRequest(t, app, http.MethodGet, "/v1/homepage")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var sections struct {
		Latest  []models.ComicRecord `json:"latest"`
		Ranking []models.ComicRecord `json:"ranking"`
	}
	if err := json.Unmarshal(body, &sections); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(sections.Latest) != 3 {
		t.Fatalf("latest = %d, want 3", len(sections.Latest))
	}
}

func TestRandomCapsCount(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doRequest(t, app, http.MethodGet, "/v1/random?count=2")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var comics []models.ComicRecord
	if err := json.Unmarshal(body, &comics); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(comics) != 2 {
		t.Fatalf("comics = %d, want 2", len(comics))
	}
}

func TestScrollIsDeterministicForSeed(t *testing.T) {
	app := setupTestApp(t)

	_, first := doRequest(t, app, http.MethodGet, "/v1/scroll?offset=0&batch_size=3&seed=42")
	_, second := doRequest(t, app, http.MethodGet, "/v1/scroll?offset=0&batch_size=3&seed=42")
	if string(first) != string(second) {
		t.Fatalf("same seed produced different batches")
	}
}
