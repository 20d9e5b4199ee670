package store

import (
	"sort"

	"TripKeeper/internal/repo"
)

type entry[T any] struct {
	seq   int64
	value T
}

// table is an id-keyed collection that remembers insertion order through seq.
// Values are copied in and out; a table is cloned for every transaction.
type table[T any] struct {
	rows map[string]entry[T]
	next int64
}

func newTable[T any]() table[T] {
	return table[T]{rows: make(map[string]entry[T])}
}

func (t table[T]) clone() table[T] {
	rows := make(map[string]entry[T], len(t.rows))
	for k, v := range t.rows {
		rows[k] = v
	}
	return table[T]{rows: rows, next: t.next}
}

func (t table[T]) len() int { return len(t.rows) }

func (t table[T]) has(id string) bool {
	_, ok := t.rows[id]
	return ok
}

func (t table[T]) get(id string) (T, bool) {
	e, ok := t.rows[id]
	return e.value, ok
}

func (t table[T]) row(id string) (repo.Row[T], bool) {
	e, ok := t.rows[id]
	if !ok {
		return repo.Row[T]{}, false
	}
	return repo.Row[T]{Seq: e.seq, Value: e.value}, true
}

// insert adds a new row at the end of the insertion order.
func (t *table[T]) insert(id string, v T) {
	t.next++
	t.rows[id] = entry[T]{seq: t.next, value: v}
}

// replace swaps the value of an existing row, keeping its position.
func (t *table[T]) replace(id string, v T) bool {
	e, ok := t.rows[id]
	if !ok {
		return false
	}
	e.value = v
	t.rows[id] = e
	return true
}

func (t *table[T]) remove(id string) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

// load restores rows read from the durable store.
func (t *table[T]) load(rows []repo.Row[T], idOf func(T) string) {
	for _, r := range rows {
		t.rows[idOf(r.Value)] = entry[T]{seq: r.Seq, value: r.Value}
		if r.Seq > t.next {
			t.next = r.Seq
		}
	}
}

// ordered returns rows in insertion order.
func (t table[T]) ordered() []repo.Row[T] {
	out := make([]repo.Row[T], 0, len(t.rows))
	for _, e := range t.rows {
		out = append(out, repo.Row[T]{Seq: e.seq, Value: e.value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

// ids returns the ids of rows matching fn.
func (t table[T]) ids(fn func(T) bool) []string {
	var out []string
	for id, e := range t.rows {
		if fn(e.value) {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
