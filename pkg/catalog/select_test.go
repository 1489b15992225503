package catalog

import (
	"testing"
)

var sample = []Record{
	rec("0045", "01", "1"),
	rec("0164", "01", "1"),
	rec("0045", "02", "2"),
	rec("0045", "01", "3"),
	rec("0900", "07", "1"),
}

func TestBySiteID(t *testing.T) {
	got := BySiteID(sample, Selection{Key: "0045"})
	exp := []Record{sample[0], sample[2], sample[3]}
	if len(got) != len(exp) {
		t.Fatalf("expected %d records; got %d", len(exp), len(got))
	}
	for i := range exp {
		if got[i] != exp[i] {
			t.Errorf("record %d: expected %v; got %v", i, exp[i], got[i])
		}
	}

	if got := BySiteID(sample, Selection{Key: "9999"}); len(got) != 0 {
		t.Errorf("unknown site id: expected nothing; got %v", got)
	}
}

func TestBySiteIDNoKey(t *testing.T) {
	got := BySiteID(sample, Selection{})
	if len(got) != 1 || got[0] != sample[0] {
		t.Errorf("expected the first record; got %v", got)
	}

	for i := 0; i < 50; i++ {
		got = BySiteID(sample, Selection{Random: true})
		if len(got) != 1 || !contains(sample, got[0]) {
			t.Fatalf("random pick %v is not from the input", got)
		}
	}
}

func TestLastMatchWins(t *testing.T) {
	r, ok := ByCornerID(sample, Selection{Key: "01"})
	if !ok {
		t.Fatal("expected a match")
	}
	if r != sample[3] {
		t.Errorf("expected the last record with corner 01 (%v); got %v", sample[3], r)
	}

	r, ok = ByFileID(sample, Selection{Key: "1", Random: true})
	if !ok {
		t.Fatal("expected a match")
	}
	if r != sample[4] {
		t.Errorf("expected the last record with file 1 (%v); got %v", sample[4], r)
	}

	if _, ok := ByFileID(sample, Selection{Key: "42"}); ok {
		t.Errorf("unknown file id should not match")
	}
}

func TestFirstAndRandom(t *testing.T) {
	r, ok := ByCornerID(sample, Selection{})
	if !ok || r != sample[0] {
		t.Errorf("expected the first record; got %v (%v)", r, ok)
	}

	for i := 0; i < 50; i++ {
		r, ok = ByFileID(sample, Selection{Random: true})
		if !ok || !contains(sample, r) {
			t.Fatalf("random pick %v is not from the input", r)
		}
	}
}

func TestEmptySelection(t *testing.T) {
	sels := []Selection{
		{},
		{Random: true},
		{Key: "01"},
		{Key: "01", Random: true},
	}
	for _, sel := range sels {
		if got := BySiteID(nil, sel); len(got) != 0 {
			t.Errorf("%+v: expected no site records; got %v", sel, got)
		}
		if _, ok := ByCornerID([]Record{}, sel); ok {
			t.Errorf("%+v: expected no corner match", sel)
		}
		if _, ok := ByFileID(nil, sel); ok {
			t.Errorf("%+v: expected no file match", sel)
		}
	}
}

func contains(records []Record, r Record) bool {
	for _, x := range records {
		if x == r {
			return true
		}
	}
	return false
}
