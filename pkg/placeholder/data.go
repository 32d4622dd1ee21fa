package placeholder

import (
	"strings"
	"unicode/utf8"
)

// Data is the flat, string-keyed view of a page query string. Keys keep the
// position of their first occurrence so substitution order is deterministic;
// a repeated key overwrites the value but not the position.
type Data struct {
	keys   []string
	values map[string]string
}

// NewData returns an empty Data ready for Set.
func NewData() *Data {
	return &Data{values: make(map[string]string)}
}

// Set stores value under key.
func (d *Data) Set(key, value string) {
	if d.values == nil {
		d.values = make(map[string]string)
	}
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

// Get returns the value stored under key.
func (d *Data) Get(key string) (string, bool) {
	if d == nil {
		return "", false
	}
	v, ok := d.values[key]
	return v, ok
}

// Keys returns the keys in iteration order.
func (d *Data) Keys() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Len reports the number of keys.
func (d *Data) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Map returns a copy of the key/value pairs.
func (d *Data) Map() map[string]string {
	out := make(map[string]string, d.Len())
	if d == nil {
		return out
	}
	for k, v := range d.values {
		out[k] = v
	}
	return out
}

// BuildData parses a raw query string (with or without the leading "?") the
// way a browser's URLSearchParams does, then URL-decodes every value once
// more. A value that fails the second decode keeps its first-pass form.
func BuildData(rawQuery string) *Data {
	data := NewData()
	rawQuery = strings.TrimPrefix(rawQuery, "?")
	if rawQuery == "" {
		return data
	}
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		name, value, _ := strings.Cut(pair, "=")
		key := formDecode(name)
		val := formDecode(value)
		if decoded, ok := componentDecode(val); ok {
			val = decoded
		}
		data.Set(key, val)
	}
	return data
}

// formDecode applies application/x-www-form-urlencoded decoding: '+' becomes a
// space and well-formed percent escapes are decoded. Malformed escapes are
// kept verbatim instead of failing the whole value.
func formDecode(s string) string {
	if !strings.ContainsAny(s, "+%") {
		return s
	}
	buf := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '+':
			buf = append(buf, ' ')
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			buf = append(buf, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 2
		default:
			buf = append(buf, c)
		}
	}
	return strings.ToValidUTF8(string(buf), string(utf8.RuneError))
}

// componentDecode mirrors decodeURIComponent: '+' is left alone, every '%'
// must start a valid escape and the result must be valid UTF-8.
func componentDecode(s string) (string, bool) {
	if !strings.Contains(s, "%") {
		return s, true
	}
	buf := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '%' {
			buf = append(buf, c)
			continue
		}
		if i+2 >= len(s) || !isHex(s[i+1]) || !isHex(s[i+2]) {
			return "", false
		}
		buf = append(buf, unhex(s[i+1])<<4|unhex(s[i+2]))
		i += 2
	}
	if !utf8.Valid(buf) {
		return "", false
	}
	return string(buf), true
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

// Lookup returns the first value of key in rawQuery, decoded once, the way
// URLSearchParams.get does. It reports whether the key is present at all.
func Lookup(rawQuery, key string) (string, bool) {
	rawQuery = strings.TrimPrefix(rawQuery, "?")
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		name, value, _ := strings.Cut(pair, "=")
		if formDecode(name) == key {
			return formDecode(value), true
		}
	}
	return "", false
}
