package uri

import "sort"

// Param is a single query parameter.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered set of query parameters. Keys are unique; order is the
// order of first insertion unless the set is explicitly sorted.
type Params []Param

// NewParams builds Params from alternating key/value pairs. A trailing key
// without a value is ignored.
func NewParams(kv ...string) Params {
	p := make(Params, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		p = p.Set(kv[i], kv[i+1])
	}
	return p
}

// FromMap builds Params from m in ascending key order, since map order is random.
func FromMap(m map[string]string) Params {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	p := make(Params, 0, len(m))
	for _, k := range keys {
		p = append(p, Param{Key: k, Value: m[k]})
	}
	return p
}

func (p Params) index(key string) int {
	for i := range p {
		if p[i].Key == key {
			return i
		}
	}
	return -1
}

// Has reports whether key is present, whatever its value.
func (p Params) Has(key string) bool {
	return p.index(key) >= 0
}

// Get returns the value stored under key, or "".
func (p Params) Get(key string) string {
	if i := p.index(key); i >= 0 {
		return p[i].Value
	}
	return ""
}

// Set replaces the value of key in place, or appends it.
func (p Params) Set(key, value string) Params {
	if i := p.index(key); i >= 0 {
		p[i].Value = value
		return p
	}
	return append(p, Param{Key: key, Value: value})
}

// SetDefault appends key only when it is absent.
func (p Params) SetDefault(key, value string) Params {
	if p.Has(key) {
		return p
	}
	return append(p, Param{Key: key, Value: value})
}

// PrependDefault puts key in front only when it is absent.
func (p Params) PrependDefault(key, value string) Params {
	if p.Has(key) {
		return p
	}
	return append(Params{{Key: key, Value: value}}, p...)
}

// Delete removes key if present.
func (p Params) Delete(key string) Params {
	if i := p.index(key); i >= 0 {
		return append(p[:i:i], p[i+1:]...)
	}
	return p
}

// Clone returns a copy that can be modified without touching p.
func (p Params) Clone() Params {
	if p == nil {
		return Params{}
	}
	return append(make(Params, 0, len(p)), p...)
}

// Sorted returns a copy ordered by key.
func (p Params) Sorted() Params {
	s := p.Clone()
	sort.SliceStable(s, func(i, j int) bool { return s[i].Key < s[j].Key })
	return s
}

// Map flattens p into a map.
func (p Params) Map() map[string]string {
	m := make(map[string]string, len(p))
	for _, kv := range p {
		m[kv.Key] = kv.Value
	}
	return m
}
