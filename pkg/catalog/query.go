package catalog

import (
	"golang.org/x/text/language"
	textsearch "golang.org/x/text/search"
)

// A Query keeps only records whose caption contains a search string. Matching
// ignores case, character width and diacritics, so a half-width query finds
// full-width titles and vice versa.
type Query struct {
	pattern *textsearch.Pattern
}

// NewQuery compiles a caption query. An empty string matches everything.
func NewQuery(s string) *Query {
	if s == "" {
		return &Query{}
	}

	m := textsearch.New(language.Japanese,
		textsearch.IgnoreCase,
		textsearch.IgnoreWidth,
		textsearch.IgnoreDiacritics,
	)
	return &Query{pattern: m.CompileString(s)}
}

// Matches reports whether the record's caption contains the query
func (q *Query) Matches(r Record) bool {
	if q == nil || q.pattern == nil {
		return true
	}
	start, _ := q.pattern.IndexString(r.Caption())
	return start >= 0
}

// Filter returns the matching records in input order
func (q *Query) Filter(records []Record) []Record {
	if q == nil || q.pattern == nil {
		return records
	}

	rv := make([]Record, 0, len(records))
	for _, r := range records {
		if q.Matches(r) {
			rv = append(rv, r)
		}
	}
	return rv
}
