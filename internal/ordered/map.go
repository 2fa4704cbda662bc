// Package ordered provides an insertion-ordered map, used throughout term
// for member tables: struct, union, arglist, and enum members must support
// both O(1) name lookup and traversal in declaration order.
package ordered

import "github.com/ctypealg/ctype/internal/iterate"

// Map represents an ordered map of key-value pairs.
// Use the All method to iterate over pairs in the order they were added.
// The zero value of Map is ready to use.
type Map[K comparable, V any] struct {
	head, tail *element[K, V]
	m          map[K]*element[K, V]
	n          int
}

type element[K comparable, V any] struct {
	k          K
	v          V
	prev, next *element[K, V]
}

// New returns a new Map with key type K and value type V.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{m: make(map[K]*element[K, V])}
}

// Len returns the number of entries in m.
func (m *Map[K, V]) Len() int {
	return m.n
}

// All returns a sequence that iterates over all items in m in insertion order.
// It is safe to add or delete items from the map while iterating: items added
// during iteration are yielded, items deleted during iteration are skipped.
func (m *Map[K, V]) All() iterate.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for e := m.head; e != nil; e = e.next {
			if !yield(e.k, e.v) {
				return
			}
		}
	}
}

// Get returns a value of type V if it exists in the map, otherwise the zero value.
func (m *Map[K, V]) Get(k K) (v V) {
	if e, ok := m.m[k]; ok {
		return e.v
	}
	return
}

// GetOK returns a value of type V if it exists in the map, otherwise the zero value,
// and a boolean value that expresses whether k is present in the map.
func (m *Map[K, V]) GetOK(k K) (v V, ok bool) {
	if e, ok := m.m[k]; ok {
		return e.v, ok
	}
	return
}

// At returns the key and value at position i in insertion order, and whether
// i was in range. A nil map has no positions in range.
func (m *Map[K, V]) At(i int) (k K, v V, ok bool) {
	if m == nil || i < 0 || i >= m.n {
		return k, v, false
	}
	e := m.head
	for ; i > 0; i-- {
		e = e.next
	}
	return e.k, e.v, true
}

// Set sets the value of k to v. If k is not present, the value is appended to the end.
// If k is already present in the map, its value is replaced in place (position unchanged).
// It returns true if k was present in the map and its value was replaced.
func (m *Map[K, V]) Set(k K, v V) (replaced bool) {
	if e, ok := m.m[k]; ok {
		e.v = v
		return true
	}
	if m.m == nil {
		m.m = make(map[K]*element[K, V])
	}
	e := &element[K, V]{k: k, v: v, prev: m.tail}
	if m.tail != nil {
		m.tail.next = e
	} else {
		m.head = e
	}
	m.tail = e
	m.m[k] = e
	m.n++
	return false
}

// Delete deletes key k from the map. It returns true if k was present in the map and deleted.
func (m *Map[K, V]) Delete(k K) (deleted bool) {
	e, ok := m.m[k]
	if !ok {
		return false
	}
	delete(m.m, k)
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		m.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		m.tail = e.prev
	}
	m.n--
	return true
}
