package archive

import (
	"reflect"
	"testing"

	"github.com/camden-git/filmreel/models"
)

func TestWithout_UnknownIDLeavesCollection(t *testing.T) {
	c := SeedPhotos()
	if got := Without(c, "nope"); !reflect.DeepEqual(got, c) {
		t.Fatal("expected unchanged collection")
	}
}

func TestPrependWithoutRoundTrip(t *testing.T) {
	cases := []models.Collection{
		SeedPhotos(),
		{photo("a", "2023")},
		{photo("a", "2023"), photo("b", "2024"), photo("c", "2023")},
	}
	for i, c := range cases {
		r := photo("fresh", "2025")
		got := Without(Prepend(c, r), r.ID)
		if !reflect.DeepEqual(got, c) {
			t.Fatalf("case %d: round trip mismatch:\n got %+v\nwant %+v", i, got, c)
		}
	}
}

func TestPrepend_DoesNotAliasInput(t *testing.T) {
	c := make(models.Collection, 1, 4)
	c[0] = photo("a", "2023")
	out := Prepend(c, photo("b", "2023"))
	out[1].Title = "changed"
	if c[0].Title == "changed" {
		t.Fatal("Prepend must copy its input")
	}
}

func TestFilterByYear_OrderedSubsequence(t *testing.T) {
	c := models.Collection{
		photo("a", "2023"), photo("b", "2024"), photo("c", "2023"),
		photo("d", "2025"), photo("e", "2023"),
	}
	for _, year := range []string{"2023", "2024", "2025", "1999"} {
		view := FilterByYear(c, year)
		next := 0
		for _, p := range view {
			if p.ReelYear != year {
				t.Fatalf("%s view contains %s from %s", year, p.ID, p.ReelYear)
			}
			found := false
			for next < len(c) {
				if c[next].ID == p.ID {
					found = true
					next++
					break
				}
				next++
			}
			if !found {
				t.Fatalf("%s view is not an ordered subsequence", year)
			}
		}
	}
	if got := FilterByYear(c, "2023"); len(got) != 3 || got[0].ID != "a" || got[2].ID != "e" {
		t.Fatalf("unexpected 2023 view: %+v", got)
	}
	if got := FilterByYear(c, "1999"); got == nil || len(got) != 0 {
		t.Fatal("expected empty non-nil view")
	}
}
