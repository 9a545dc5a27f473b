package models

// ComicRecord is one catalog entry extracted from an upstream page.
// Link always holds the internal detail route, never the upstream URL.
type ComicRecord struct {
	Title         string  `json:"title"`
	Link          string  `json:"link"`
	Image         string  `json:"image"`
	Chapter       string  `json:"chapter"`
	Type          string  `json:"type,omitempty"`
	Status        string  `json:"status,omitempty"`
	Relevance     int     `json:"relevance,omitempty"`
	TrendingScore int     `json:"trending_score,omitempty"`
	Priority      int     `json:"-"`
	SourceKey     string  `json:"-"`
	SortKey       float64 `json:"-"`
}

// ChapterRef is one row of a comic's chapter table.
type ChapterRef struct {
	Title string `json:"title"`
	Link  string `json:"link"`
	Date  string `json:"date,omitempty"`
}

// ComicDetail is the full detail-page payload for a single comic.
type ComicDetail struct {
	Title    string       `json:"title"`
	Slug     string       `json:"slug"`
	Image    string       `json:"image,omitempty"`
	Synopsis string       `json:"synopsis,omitempty"`
	Genres   []string     `json:"genres,omitempty"`
	Chapters []ChapterRef `json:"chapters"`
}

// ChapterPages is the image list of a single chapter.
type ChapterPages struct {
	Title  string   `json:"title,omitempty"`
	Images []string `json:"images"`
}

// ChapterLink is one resolved navigation target: a display label and
// the chapter path it points at.
type ChapterLink struct {
	Label string `json:"label"`
	Link  string `json:"link"`
}

// NavigationResult carries the resolved neighbors of a chapter. A nil
// field means that neighbor does not exist or could not be resolved.
type NavigationResult struct {
	CurrentChapter string       `json:"current_chapter,omitempty"`
	PrevChapter    *ChapterLink `json:"prev_chapter"`
	NextChapter    *ChapterLink `json:"next_chapter"`
}

// Pagination describes the window applied to an aggregated listing.
type Pagination struct {
	CurrentPage int  `json:"current_page"`
	PerPage     int  `json:"per_page"`
	Total       int  `json:"total"`
	HasMore     bool `json:"has_more"`
}

// ComicList is the standard listing response envelope.
type ComicList struct {
	Comics     []ComicRecord `json:"comics"`
	Pagination Pagination    `json:"pagination"`
	Seed       *int64        `json:"seed,omitempty"`
}
