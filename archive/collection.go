package archive

import "github.com/camden-git/filmreel/models"

// Prepend returns a new collection with p in front of c.
func Prepend(c models.Collection, p models.Photo) models.Collection {
	out := make(models.Collection, 0, len(c)+1)
	out = append(out, p)
	return append(out, c...)
}

// Without returns a new collection excluding every photo whose id is id.
// An unknown id yields a copy of c.
func Without(c models.Collection, id string) models.Collection {
	out := make(models.Collection, 0, len(c))
	for _, p := range c {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

// FilterByYear returns the photos of one reel, keeping their relative order.
func FilterByYear(c models.Collection, year string) models.Collection {
	out := make(models.Collection, 0)
	for _, p := range c {
		if p.ReelYear == year {
			out = append(out, p)
		}
	}
	return out
}

func indexOf(c models.Collection, id string) int {
	for i, p := range c {
		if p.ID == id {
			return i
		}
	}
	return -1
}
