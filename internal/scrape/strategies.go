package scrape

// Built-in strategies for the upstream's known page layouts. The YAML
// loader can add to or replace these at startup.

// HomeLatest matches the homepage "terbaru" article grid.
func HomeLatest() Strategy {
	return Strategy{
		Name:             "home-latest",
		Containers:       []string{"article.ls4", ".ls4"},
		TitleSelectors:   []string{".ls4j h3 a", "h3 a"},
		LinkSelectors:    []string{".ls4j h3 a", "h3 a", ".ls4v a"},
		ImageSelectors:   []string{".ls4v img", "img"},
		ChapterSelectors: []string{"a.ls24", ".ls24"},
		DefaultChapter:   "Latest",
	}
}

// HomeRanking matches the homepage hot and ranking side lists.
func HomeRanking() Strategy {
	return Strategy{
		Name:             "home-ranking",
		Containers:       []string{".ranktainer .ls1, .hot .ls1", ".populer .ls1"},
		TitleSelectors:   []string{"h4 a", "h3 a"},
		ChapterSelectors: []string{".ls1r a", ".chapter"},
		DefaultChapter:   "Popular",
	}
}

// Library matches the pustaka and directory grid layouts.
func Library() Strategy {
	return Strategy{
		Name:             "library",
		Containers:       []string{".ls4, .bge, .bgei", ".ltst", "article.post"},
		TitleSelectors:   []string{"h3 a", "h4 a", ".title a", ".entry-title a"},
		ChapterSelectors: []string{".chapter", ".ls24", ".new-chapter", ".latest"},
	}
}

// HotList matches the dedicated hot page.
func HotList() Strategy {
	return Strategy{
		Name:             "hot-list",
		Containers:       []string{".hot .ls1, .daftar .bge", ".ls4, .bge"},
		TitleSelectors:   []string{"h4 a", "h3 a"},
		ChapterSelectors: []string{".ls1r a", ".chapter"},
		DefaultChapter:   "Hot",
	}
}

// SearchResults matches the site search and generic result layouts.
func SearchResults() Strategy {
	return Strategy{
		Name:             "search-results",
		Containers:       []string{"article.ls4, .ls4", ".bge", ".bgei", "article", ".search-result", ".result-item"},
		TitleSelectors:   []string{".ls4j h3 a", "h3 a", "h4 a", ".title a"},
		ChapterSelectors: []string{".chapter", ".ls24", `a[href*="chapter"]`},
	}
}

// Directory matches the daftar-komik listing with its type and status
// badges.
func Directory() Strategy {
	return Strategy{
		Name:             "directory",
		Containers:       []string{".ls4", ".bge, .bgei, .entry"},
		TitleSelectors:   []string{"h4 a", "h3 a", ".title a"},
		ChapterSelectors: []string{".ls4n", ".chapter", ".ls24"},
	}
}

// Broad is the widest strategy, used by the deep-catalog aggregation
// paths. Records must point at a comic page and carry a real title.
func Broad() Strategy {
	return Strategy{
		Name:             "broad",
		Containers:       []string{"article.ls4", ".ls4", ".bge", ".bgei"},
		TitleSelectors:   []string{".ls4j h3 a", "h3 a", "h4 a", ".title a"},
		LinkSelectors:    []string{".ls4v a", ".ls4j h3 a", "h3 a", "h4 a", ".title a"},
		ImageSelectors:   []string{".ls4v img", "img"},
		ChapterSelectors: []string{".ls24", ".chapter", ".new-chapter", ".latest"},
		DefaultChapter:   "Latest",
		LinkMustContain:  []string{"/manga/", "/komik/"},
		MinTitleLen:      3,
	}
}
