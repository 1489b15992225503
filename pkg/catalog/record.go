package catalog

import (
	"fmt"
	"strings"

	oderrors "github.com/thijzert/ondemand/internal/plumbing/errors"
)

// NumFields is the number of tab-separated fields in every catalog line
const NumFields = 13

// Field indices within a Record
const (
	FieldSiteID   = 0
	FieldCornerID = 1
	FieldFileID   = 3
	FieldURL      = 12

	captionFirst = 6
	captionLast  = 11
)

// A Record is one episode as listed by the catalog tool
type Record [NumFields]string

// ParseRecord splits a catalog line on tabs. Any field count other than
// NumFields results in a FormatError.
func ParseRecord(line string) (Record, error) {
	var rv Record

	fields := strings.Split(line, "\t")
	if len(fields) != NumFields {
		return rv, oderrors.Format(line, fmt.Sprintf("unknown record format: expected %d fields, got %d", NumFields, len(fields)))
	}

	copy(rv[:], fields)
	return rv, nil
}

func (r Record) SiteID() string {
	return r[FieldSiteID]
}

func (r Record) CornerID() string {
	return r[FieldCornerID]
}

func (r Record) FileID() string {
	return r[FieldFileID]
}

// URL is the address of the episode's master manifest
func (r Record) URL() string {
	return r[FieldURL]
}

// Caption joins the non-empty title fragments with single spaces
func (r Record) Caption() string {
	parts := make([]string, 0, captionLast-captionFirst+1)
	for i := captionFirst; i <= captionLast; i++ {
		if r[i] != "" {
			parts = append(parts, r[i])
		}
	}
	return strings.Join(parts, " ")
}

// Detail returns the `siteid_cornerid` token the catalog tool accepts for
// listing the episodes of a single corner.
func Detail(siteID, cornerID string) string {
	return siteID + "_" + cornerID
}
