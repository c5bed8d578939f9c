package resolver

import (
	"bytes"
	"encoding/json"
	"slices"
	"strconv"
)

// CategoryCount is one entry of a distribution.
type CategoryCount struct {
	Category string
	Count    int
}

// Distribution is a category -> count tally ordered by descending count.
// Among equal counts the category seen first keeps its place.
type Distribution []CategoryCount

// Tally counts occurrences of each category label and orders the result by
// descending count. Ties keep first-seen order.
func Tally(categories []string) Distribution {
	index := make(map[string]int, len(categories))
	var dist Distribution
	for _, c := range categories {
		if i, ok := index[c]; ok {
			dist[i].Count++
			continue
		}
		index[c] = len(dist)
		dist = append(dist, CategoryCount{Category: c, Count: 1})
	}

	slices.SortStableFunc(dist, func(a, b CategoryCount) int {
		return b.Count - a.Count
	})
	return dist
}

// Top returns the recommended entry. ok is false for an empty distribution.
func (d Distribution) Top() (CategoryCount, bool) {
	if len(d) == 0 {
		return CategoryCount{}, false
	}
	return d[0], true
}

// Sum returns the total of all counts.
func (d Distribution) Sum() int {
	n := 0
	for _, e := range d {
		n += e.Count
	}
	return n
}

// Map returns the distribution as an unordered map.
func (d Distribution) Map() map[string]int {
	m := make(map[string]int, len(d))
	for _, e := range d {
		m[e.Category] = e.Count
	}
	return m
}

// MarshalJSON encodes the distribution as a JSON object whose keys follow
// distribution order.
func (d Distribution) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Category)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(e.Count))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
