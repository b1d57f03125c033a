package store

import "sort"

// table is one entity table: an id allocator plus the id-keyed rows. The
// allocator is monotonically increasing; ids are never reused, even after
// removal.
type table[T any] struct {
	NextID uint32
	Rows   map[uint32]T
}

func newTable[T any]() table[T] {
	return table[T]{Rows: make(map[uint32]T)}
}

// insert allocates the next id, builds the row with it and stores it.
func (t *table[T]) insert(build func(id uint32) T) T {
	row := build(t.NextID)
	t.Rows[t.NextID] = row
	t.NextID++
	return row
}

func (t *table[T]) get(id uint32) (T, bool) {
	row, ok := t.Rows[id]
	return row, ok
}

// removeMany deletes all the given rows, or none: if any id is missing the
// table is left untouched and false is returned.
func (t *table[T]) removeMany(ids []uint32) bool {
	for _, id := range ids {
		if _, ok := t.Rows[id]; !ok {
			return false
		}
	}
	for _, id := range ids {
		delete(t.Rows, id)
	}
	return true
}

// sortedIDs returns every row id in ascending order. Scans iterate in this
// order so listings and pagination are deterministic.
func (t *table[T]) sortedIDs() []uint32 {
	ids := make([]uint32, 0, len(t.Rows))
	for id := range t.Rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// values returns every row in ascending id order.
func (t *table[T]) values() []T {
	ids := t.sortedIDs()
	rows := make([]T, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, t.Rows[id])
	}
	return rows
}
