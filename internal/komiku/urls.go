package komiku

import (
	"fmt"
	"net/url"
)

// Catalog builds the upstream page URLs each endpoint scrapes. Base is
// configurable so tests can point at a local server; query parameters
// mirror what the site itself uses.
type Catalog struct {
	Base string
}

func NewCatalog() Catalog {
	return Catalog{Base: BaseURL}
}

func (c Catalog) Home() string {
	return c.Base + "/"
}

func (c Catalog) HomePage(page int) string {
	if page <= 1 {
		return c.Home()
	}
	return fmt.Sprintf("%s/page/%d/", c.Base, page)
}

func (c Catalog) Pustaka() string {
	return c.Base + "/pustaka/"
}

// PustakaOrdered lists the library ordered by "modified" (recently
// updated) or "meta_value_num" (view count).
func (c Catalog) PustakaOrdered(orderBy string) string {
	return fmt.Sprintf("%s/pustaka/?orderby=%s", c.Base, url.QueryEscape(orderBy))
}

func (c Catalog) PustakaTyped(comicType string) string {
	return fmt.Sprintf("%s/pustaka/?tipe=%s", c.Base, url.QueryEscape(comicType))
}

func (c Catalog) PustakaOrderedTyped(orderBy, comicType string) string {
	return fmt.Sprintf("%s/pustaka/?orderby=%s&tipe=%s", c.Base, url.QueryEscape(orderBy), url.QueryEscape(comicType))
}

func (c Catalog) PustakaPage(page int) string {
	return fmt.Sprintf("%s/pustaka/page/%d/", c.Base, page)
}

func (c Catalog) Hot() string {
	return c.Base + "/other/hot/"
}

func (c Catalog) Directory() string {
	return c.Base + "/daftar-komik/"
}

func (c Catalog) DirectoryTyped(comicType string) string {
	return fmt.Sprintf("%s/daftar-komik/?tipe=%s", c.Base, url.QueryEscape(comicType))
}

func (c Catalog) Search(query string) string {
	return fmt.Sprintf("%s/?s=%s", c.Base, url.QueryEscape(query))
}

func (c Catalog) Genre(genre string) string {
	return fmt.Sprintf("%s/genre/%s/", c.Base, url.PathEscape(genre))
}

func (c Catalog) TypePage(comicType string) string {
	return fmt.Sprintf("%s/type/%s/", c.Base, url.PathEscape(comicType))
}

func (c Catalog) Comic(slug string) string {
	return fmt.Sprintf("%s/manga/%s/", c.Base, url.PathEscape(slug))
}

func (c Catalog) Chapter(segment string) string {
	return fmt.Sprintf("%s/%s/", c.Base, segment)
}
