package program

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownProgram = errors.New("unknown program")

// Catalog is the immutable set of programs the service knows about.
type Catalog struct {
	items []Descriptor
	byID  map[int]Descriptor
}

// NewCatalog validates items and indexes them by id. Duplicate ids and
// unknown family tags are rejected.
func NewCatalog(items []Descriptor) (Catalog, error) {
	byID := make(map[int]Descriptor, len(items))
	out := make([]Descriptor, 0, len(items))
	for _, item := range items {
		if item.ID <= 0 {
			return Catalog{}, fmt.Errorf("program %q: id must be > 0", item.Code)
		}
		if !item.Family.Known() {
			return Catalog{}, fmt.Errorf("program %d: unknown family %q", item.ID, item.Family)
		}
		if _, exists := byID[item.ID]; exists {
			return Catalog{}, fmt.Errorf("program %d: duplicate id", item.ID)
		}
		item.Grades = append([]Grade(nil), item.Grades...)
		byID[item.ID] = item
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return Catalog{items: out, byID: byID}, nil
}

func (c Catalog) Get(id int) (Descriptor, error) {
	item, ok := c.byID[id]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: id=%d", ErrUnknownProgram, id)
	}
	return item, nil
}

func (c Catalog) All() []Descriptor {
	return append([]Descriptor(nil), c.items...)
}

func (c Catalog) Len() int {
	return len(c.items)
}
