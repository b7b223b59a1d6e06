package query

import (
	"bytes"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Match reports whether doc satisfies the filter. doc may be any value that
// marshals to a BSON document; fields are addressed with dotted paths.
func Match(f Filter, doc any) (bool, error) {
	m, err := toDocument(doc)
	if err != nil {
		return false, err
	}
	return matchAll(f.conds, m), nil
}

// Apply filters, orders and windows docs in memory the way the store would.
func Apply[T any](q Query, docs []T) ([]T, error) {
	type row struct {
		doc T
		m   bson.M
	}
	rows := make([]row, 0, len(docs))
	for _, d := range docs {
		m, err := toDocument(d)
		if err != nil {
			return nil, err
		}
		if matchAll(q.Filter.conds, m) {
			rows = append(rows, row{doc: d, m: m})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		for _, s := range q.Sort {
			a, _ := lookup(rows[i].m, s.Field)
			b, _ := lookup(rows[j].m, s.Field)
			c := compare(a, b)
			if c == 0 {
				continue
			}
			if s.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})

	start := 0
	if q.Skip > 0 {
		start = len(rows)
		if q.Skip < int64(len(rows)) {
			start = int(q.Skip)
		}
	}
	end := len(rows)
	if q.Limit > 0 && q.Limit < int64(end-start) {
		end = start + int(q.Limit)
	}
	out := make([]T, 0, end-start)
	for _, r := range rows[start:end] {
		out = append(out, r.doc)
	}
	return out, nil
}

func toDocument(doc any) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("query: marshal document: %w", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("query: unmarshal document: %w", err)
	}
	return m, nil
}

func matchAll(conds []Cond, m bson.M) bool {
	for _, c := range conds {
		if !matchCond(c, m) {
			return false
		}
	}
	return true
}

func matchCond(c Cond, m bson.M) bool {
	switch c.kind {
	case KindEq:
		v, ok := lookup(m, c.field)
		return ok && equal(v, c.value)
	case KindContains:
		v, ok := lookup(m, c.field)
		s, isStr := v.(string)
		return ok && isStr && strings.Contains(strings.ToLower(s), strings.ToLower(c.text))
	case KindRange:
		v, ok := lookup(m, c.field)
		if !ok {
			return false
		}
		n, isNum := toFloat(v)
		if !isNum {
			return false
		}
		if c.min != nil && n < *c.min {
			return false
		}
		if c.max != nil && n > *c.max {
			return false
		}
		return true
	case KindAnyOf:
		for _, a := range c.alts {
			if matchCond(a, m) {
				return true
			}
		}
		return false
	case KindIn:
		v, ok := lookup(m, c.field)
		if !ok {
			return false
		}
		for _, x := range c.values {
			if equal(v, x) {
				return true
			}
		}
		return false
	case KindNotIn:
		v, ok := lookup(m, c.field)
		if !ok {
			return true
		}
		for _, x := range c.values {
			if equal(v, x) {
				return false
			}
		}
		return true
	}
	return false
}

func lookup(m bson.M, path string) (any, bool) {
	var cur any = m
	for _, part := range strings.Split(path, ".") {
		var ok bool
		switch doc := cur.(type) {
		case bson.M:
			cur, ok = doc[part]
		case bson.D:
			cur, ok = doc.Map()[part]
		}
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func equal(a, b any) bool {
	if x, ok := toFloat(a); ok {
		y, ok := toFloat(b)
		return ok && x == y
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.IsValid() && rb.IsValid() && ra.Kind() == reflect.String && rb.Kind() == reflect.String {
		return ra.String() == rb.String()
	}
	return reflect.DeepEqual(a, b)
}

func compare(a, b any) int {
	if x, ok := toFloat(a); ok {
		if y, ok := toFloat(b); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	}
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y)
		}
	case primitive.DateTime:
		if y, ok := b.(primitive.DateTime); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	case primitive.ObjectID:
		if y, ok := b.(primitive.ObjectID); ok {
			return bytes.Compare(x[:], y[:])
		}
	}
	return 0
}
