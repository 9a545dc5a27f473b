package aggregate

import (
	"reflect"
	"testing"

	"github.com/Groodev/komik-api/internal/models"
)

func titles(records []models.ComicRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Title
	}
	return out
}

func TestPaginate(t *testing.T) {
	records := make([]models.ComicRecord, 0, 45)
	for i := 0; i < 45; i++ {
		records = append(records, models.ComicRecord{Title: "Comic", Link: "/v1/comics/x"})
	}

	first := Paginate(records, 1, 20)
	if len(first.Comics) != 20 || !first.Pagination.HasMore {
		t.Fatalf("page 1: len=%d hasMore=%v", len(first.Comics), first.Pagination.HasMore)
	}
	if first.Pagination.Total != 45 || first.Pagination.CurrentPage != 1 || first.Pagination.PerPage != 20 {
		t.Fatalf("page 1 pagination = %+v", first.Pagination)
	}

	last := Paginate(records, 3, 20)
	if len(last.Comics) != 5 || last.Pagination.HasMore {
		t.Fatalf("page 3: len=%d hasMore=%v", len(last.Comics), last.Pagination.HasMore)
	}

	beyond := Paginate(records, 4, 20)
	if len(beyond.Comics) != 0 || beyond.Pagination.HasMore {
		t.Fatalf("page beyond range: len=%d hasMore=%v", len(beyond.Comics), beyond.Pagination.HasMore)
	}
	if beyond.Pagination.Total != 45 {
		t.Fatalf("total changed for out-of-range page: %d", beyond.Pagination.Total)
	}
}

func TestPaginateExactBoundary(t *testing.T) {
	records := make([]models.ComicRecord, 40)
	page := Paginate(records, 2, 20)
	if page.Pagination.HasMore {
		t.Fatal("hasMore should be false when the window ends exactly at the total")
	}
	if len(page.Comics) != 20 {
		t.Fatalf("len = %d, want 20", len(page.Comics))
	}
}

func TestRelevanceTiers(t *testing.T) {
	exact := Relevance("Solo Leveling", "solo leveling")
	prefix := Relevance("Solo Leveling Season 2", "solo leveling")
	substring := Relevance("The Solo Leveling Story", "solo leveling")
	partial := Relevance("Leveling Guide", "solo leveling")
	none := Relevance("Unrelated", "solo leveling")

	if exact != 100 || prefix != 90 || substring != 70 {
		t.Fatalf("tier scores = %d/%d/%d, want 100/90/70", exact, prefix, substring)
	}
	if partial != 25 {
		t.Fatalf("one of two words matching = %d, want 25", partial)
	}
	if none != 0 {
		t.Fatalf("no match = %d, want 0", none)
	}
	if !(exact > prefix && prefix > substring && substring > partial && partial > none) {
		t.Fatal("relevance tiers are not strictly ordered")
	}
}

func TestSeededOrderDeterministic(t *testing.T) {
	build := func() []models.ComicRecord {
		return []models.ComicRecord{
			{Title: "Delta"}, {Title: "Alpha"}, {Title: "Charlie"}, {Title: "Bravo"},
		}
	}

	a := build()
	b := build()
	SeededOrder(a, 42, 10)
	SeededOrder(b, 42, 10)
	if !reflect.DeepEqual(titles(a), titles(b)) {
		t.Fatalf("same seed produced different orders: %v vs %v", titles(a), titles(b))
	}

}

func TestSortByPriorityThenTitle(t *testing.T) {
	records := []models.ComicRecord{
		{Title: "Zed", Priority: 1},
		{Title: "Alpha", Priority: 2},
		{Title: "Beta", Priority: 1},
	}
	SortByPriorityThenTitle(records)
	want := []string{"Beta", "Zed", "Alpha"}
	if !reflect.DeepEqual(titles(records), want) {
		t.Fatalf("order = %v, want %v", titles(records), want)
	}
}

func TestFilterFresh(t *testing.T) {
	records := []models.ComicRecord{
		{Title: "Ongoing", Chapter: "Chapter 10"},
		{Title: "Done", Chapter: "Tamat"},
		{Title: "Finished", Chapter: "Completed"},
	}
	fresh := FilterFresh(records)
	if len(fresh) != 1 || fresh[0].Title != "Ongoing" {
		t.Fatalf("fresh filter kept %v", titles(fresh))
	}
}

func TestFilterTitleContains(t *testing.T) {
	records := []models.ComicRecord{
		{Title: "Solo Leveling"},
		{Title: "Tower of God"},
	}
	matched := FilterTitleContains(records, "SOLO")
	if len(matched) != 1 || matched[0].Title != "Solo Leveling" {
		t.Fatalf("matched = %v", titles(matched))
	}
}
