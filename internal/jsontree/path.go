package jsontree

import (
	"strconv"
	"strings"
)

// Get follows path from v. The zero Value is returned when any segment does
// not resolve, so lookups can be chained and checked once at the end:
//
//	name, ok := v.Get("byArtist.name").Str()
func (v Value) Get(path string) Value {
	res, _ := v.Lookup(path)
	return res
}

// Lookup is like Get but reports whether the full path resolved.
func (v Value) Lookup(path string) (Value, bool) {
	cur := v
	for _, seg := range splitPath(path) {
		next, ok := cur.step(seg)
		if !ok {
			return Value{}, false
		}
		cur = next
	}
	return cur, true
}

func (v Value) step(seg string) (Value, bool) {
	if key, want, ok := parseFilter(seg); ok {
		for _, item := range v.Items() {
			got, ok := item.Get(key).Text()
			if ok && got == want {
				return item, true
			}
		}
		return Value{}, false
	}

	if v.kind == Array {
		i, err := strconv.Atoi(seg)
		if err != nil {
			return Value{}, false
		}
		return v.Index(i)
	}
	return v.Field(seg)
}

// parseFilter recognizes "#(key=value)".
func parseFilter(seg string) (key, value string, ok bool) {
	if !strings.HasPrefix(seg, "#(") || !strings.HasSuffix(seg, ")") {
		return "", "", false
	}
	body := seg[2 : len(seg)-1]
	key, value, ok = strings.Cut(body, "=")
	if !ok || key == "" {
		return "", "", false
	}
	return key, value, true
}

// splitPath splits on dots that are not inside a filter's parentheses.
func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	var (
		segs  []string
		depth int
		start int
	)
	for i := 0; i < len(path); i++ {
		switch path[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case '.':
			if depth == 0 {
				segs = append(segs, path[start:i])
				start = i + 1
			}
		}
	}
	return append(segs, path[start:])
}
