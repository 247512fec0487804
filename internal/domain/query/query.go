// Package query searches, sorts, filters and aggregates a wine collection.
// Functions never mutate their input; every result is a new slice unless
// documented as a passthrough.
package query

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/okian/winedex/internal/domain/textfold"
	"github.com/okian/winedex/internal/domain/types"
)

// Order is a sort direction.
type Order string

// Sort directions.
const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// categoryAll disables a category filter.
const categoryAll = "all"

// ParseOrder reads a sort direction. An empty string means ascending.
func ParseOrder(s string) (Order, error) {
	switch Order(strings.ToLower(strings.TrimSpace(s))) {
	case "", Asc:
		return Asc, nil
	case Desc:
		return Desc, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidOrder, s)
}

// Search returns wines whose name, region, producer, grape, tasting notes
// or vintage contain term, ignoring case. A blank term returns wines as is.
func Search(wines []types.Wine, term string) []types.Wine {
	if strings.TrimSpace(term) == "" {
		return wines
	}
	needle := textfold.Lower(term)
	out := make([]types.Wine, 0, len(wines))
	for _, w := range wines {
		if matches(w, needle) {
			out = append(out, w)
		}
	}
	return out
}

func matches(w types.Wine, needle string) bool {
	for _, field := range [...]string{w.Name, w.Region, w.Producer, w.Grape, w.TastingNotes} {
		if strings.Contains(textfold.Lower(field), needle) {
			return true
		}
	}
	return strings.Contains(strconv.Itoa(w.Year), needle)
}

// Sort returns a copy of wines ordered by field. Strings compare without
// case. Absent values go last in both directions. The sort is stable, so
// ties keep their input order.
func Sort(wines []types.Wine, field string, order Order) ([]types.Wine, error) {
	out := slices.Clone(wines)
	get, err := accessor(field)
	if err != nil {
		return out, err
	}
	if order != Asc && order != Desc {
		return out, fmt.Errorf("%w: %q", ErrInvalidOrder, order)
	}

	slices.SortStableFunc(out, func(a, b types.Wine) int {
		va, vb := get(a), get(b)
		switch {
		case va.kind == kindAbsent && vb.kind == kindAbsent:
			return 0
		case va.kind == kindAbsent:
			return 1
		case vb.kind == kindAbsent:
			return -1
		}
		c := va.compare(vb)
		if order == Desc {
			return -c
		}
		return c
	})
	return out, nil
}

// FilterByCategory keeps wines matching value in category. Type, region
// and grape match exactly, year matches its decimal text, and rating keeps
// wines rated at or above the leading integer of value. An empty value or
// "all" returns wines as is.
func FilterByCategory(wines []types.Wine, category, value string) ([]types.Wine, error) {
	if value == "" || value == categoryAll {
		return wines, nil
	}

	var keep func(types.Wine) bool
	switch category {
	case "type":
		keep = func(w types.Wine) bool { return string(w.Type) == value }
	case "region":
		keep = func(w types.Wine) bool { return w.Region == value }
	case "grape":
		keep = func(w types.Wine) bool { return w.Grape == value }
	case "year":
		keep = func(w types.Wine) bool { return strconv.Itoa(w.Year) == value }
	case "rating":
		floor, ok := leadingInt(value)
		if !ok {
			return []types.Wine{}, nil
		}
		keep = func(w types.Wine) bool { return w.Rating >= floor }
	default:
		return wines, unknownField(category)
	}

	out := make([]types.Wine, 0, len(wines))
	for _, w := range wines {
		if keep(w) {
			out = append(out, w)
		}
	}
	return out, nil
}

// leadingInt parses an optionally signed run of digits at the start of s,
// after leading whitespace. "4 stars" yields 4.
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r")
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// UniqueValues returns the distinct non-empty values of field as text,
// sorted ascending. Zero numbers and false booleans are dropped too.
func UniqueValues(wines []types.Wine, field string) ([]string, error) {
	get, err := accessor(field)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(wines))
	out := make([]string, 0, len(wines))
	for _, w := range wines {
		s, ok := get(w).text()
		if !ok {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	slices.Sort(out)
	return out, nil
}

func unknownField(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownField, name)
}
