package game

import "sort"

// Properties is the raw SGF payload of a node: property key to its values,
// in document order. Unknown keys are kept as-is.
type Properties map[string][]string

func (p Properties) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// First returns the first value of key, "" when absent.
func (p Properties) First(key string) string {
	if values := p[key]; len(values) > 0 {
		return values[0]
	}
	return ""
}

func (p Properties) Set(key string, values ...string) {
	p[key] = append([]string(nil), values...)
}

// Add appends value unless key already holds it.
func (p Properties) Add(key, value string) {
	for _, v := range p[key] {
		if v == value {
			return
		}
	}
	p[key] = append(p[key], value)
}

// Remove drops value from key and deletes the key once it is empty.
func (p Properties) Remove(key, value string) {
	values := p[key]
	out := values[:0:0]
	for _, v := range values {
		if v != value {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		delete(p, key)
		return
	}
	p[key] = out
}

func (p Properties) Delete(keys ...string) {
	for _, k := range keys {
		delete(p, k)
	}
}

// Clone deep-copies the bag. A nil bag clones to an empty one.
func (p Properties) Clone() Properties {
	out := make(Properties, len(p))
	for k, v := range p {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Keys returns the keys sorted alphabetically.
func (p Properties) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
