package domain

// Source is one named crawl target from the links catalog.
// A source may list several URLs (e.g. a homepage plus a blog page);
// Name may be empty when the catalog block starts with a bare URL.
type Source struct {
	Name string   `json:"name" bson:"name"`
	URLs []string `json:"urls" bson:"urls"`
}
