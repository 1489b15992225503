package catalog

import (
	rand "github.com/thijzert/ondemand/lib/properrandom"
)

// A Selection describes how to narrow a list of records down. When Key is
// set, only records whose field equals Key qualify; otherwise Random picks
// any record, and without Random the first one wins.
type Selection struct {
	Key    string
	Random bool
}

// BySiteID returns every record with the given site id, in input order. When
// no site id is given, the result holds a single record chosen by the
// Random flag.
func BySiteID(records []Record, sel Selection) []Record {
	if len(records) == 0 {
		return nil
	}

	if sel.Key == "" {
		r, _ := pick(records, sel.Random)
		return []Record{r}
	}

	var rv []Record
	for _, r := range records {
		if r.SiteID() == sel.Key {
			rv = append(rv, r)
		}
	}
	return rv
}

// ByCornerID selects one record by corner id. If several records share the
// corner id, the last one in input order is returned.
func ByCornerID(records []Record, sel Selection) (Record, bool) {
	return selectOne(records, FieldCornerID, sel)
}

// ByFileID selects one record by file id. If several records share the file
// id, the last one in input order is returned.
func ByFileID(records []Record, sel Selection) (Record, bool) {
	return selectOne(records, FieldFileID, sel)
}

func selectOne(records []Record, field int, sel Selection) (Record, bool) {
	if len(records) == 0 {
		return Record{}, false
	}

	if sel.Key == "" {
		return pick(records, sel.Random)
	}

	var rv Record
	found := false
	for _, r := range records {
		if r[field] == sel.Key {
			rv = r
			found = true
		}
	}
	return rv, found
}

func pick(records []Record, random bool) (Record, bool) {
	if random {
		return records[rand.Intn(len(records))], true
	}
	return records[0], true
}
