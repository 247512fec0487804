package query

import (
	"cmp"
	"slices"
	"strconv"
	"time"

	"github.com/okian/winedex/internal/domain/textfold"
	"github.com/okian/winedex/internal/domain/types"
)

type kind uint8

const (
	kindAbsent kind = iota
	kindString
	kindNumber
	kindBool
	kindTime
)

// value is one field read off a wine. Absent values model nil optional
// fields, empty free-text fields and an unknown vintage.
type value struct {
	kind kind
	s    string
	n    float64
	b    bool
	t    time.Time
}

func str(s string) value { return value{kind: kindString, s: s} }

func optStr(s string) value {
	if s == "" {
		return value{}
	}
	return str(s)
}

func num(n int) value { return value{kind: kindNumber, n: float64(n)} }

// year treats 0 as an unknown vintage.
func year(y int) value {
	if y <= 0 {
		return value{}
	}
	return num(y)
}

func optFloat(f *float64) value {
	if f == nil {
		return value{}
	}
	return value{kind: kindNumber, n: *f}
}

func optInt(i *int) value {
	if i == nil {
		return value{}
	}
	return num(*i)
}

func tm(t time.Time) value {
	if t.IsZero() {
		return value{}
	}
	return value{kind: kindTime, t: t}
}

// accessors maps JSON field names to reflection-free getters.
//
//nolint:gochecknoglobals // static dispatch table
var accessors = map[string]func(types.Wine) value{
	"id":               func(w types.Wine) value { return num(w.ID) },
	"name":             func(w types.Wine) value { return str(w.Name) },
	"year":             func(w types.Wine) value { return year(w.Year) },
	"region":           func(w types.Wine) value { return optStr(w.Region) },
	"producer":         func(w types.Wine) value { return optStr(w.Producer) },
	"type":             func(w types.Wine) value { return str(string(w.Type)) },
	"grape":            func(w types.Wine) value { return optStr(w.Grape) },
	"rating":           func(w types.Wine) value { return num(w.Rating) },
	"tastingNotes":     func(w types.Wine) value { return optStr(w.TastingNotes) },
	"captured":         func(w types.Wine) value { return value{kind: kindBool, b: w.Captured} },
	"dateAdded":        func(w types.Wine) value { return tm(w.DateAdded) },
	"abv":              func(w types.Wine) value { return optFloat(w.ABV) },
	"temperature":      func(w types.Wine) value { return optFloat(w.Temperature) },
	"decantTime":       func(w types.Wine) value { return optInt(w.DecantTime) },
	"price":            func(w types.Wine) value { return optFloat(w.Price) },
	"personalNotes":    func(w types.Wine) value { return optStr(w.PersonalNotes) },
	"purchaseLocation": func(w types.Wine) value { return optStr(w.PurchaseLocation) },
	"voiceNoteUrl":     func(w types.Wine) value { return optStr(w.VoiceNoteURL) },
	"photoUrl":         func(w types.Wine) value { return optStr(w.PhotoURL) },
	"rarity":           func(w types.Wine) value { return optStr(string(w.Rarity)) },
	"experiencePoints": func(w types.Wine) value { return num(w.ExperiencePoints) },
}

// Fields lists the field names Sort and UniqueValues accept.
func Fields() []string {
	out := make([]string, 0, len(accessors))
	for name := range accessors {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

func accessor(field string) (func(types.Wine) value, error) {
	get, ok := accessors[field]
	if !ok {
		return nil, unknownField(field)
	}
	return get, nil
}

// compare orders two present values of the same kind.
func (v value) compare(o value) int {
	switch v.kind {
	case kindString:
		return textfold.Compare(v.s, o.s)
	case kindNumber:
		return cmp.Compare(v.n, o.n)
	case kindBool:
		switch {
		case v.b == o.b:
			return 0
		case !v.b:
			return -1
		}
		return 1
	case kindTime:
		return v.t.Compare(o.t)
	}
	return 0
}

// text renders v for display and equality filters. Falsy values report false.
func (v value) text() (string, bool) {
	switch v.kind {
	case kindString:
		return v.s, v.s != ""
	case kindNumber:
		return strconv.FormatFloat(v.n, 'f', -1, 64), v.n != 0
	case kindBool:
		return strconv.FormatBool(v.b), v.b
	case kindTime:
		return v.t.UTC().Format(time.RFC3339), true
	}
	return "", false
}
