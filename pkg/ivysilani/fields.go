package ivysilani

import (
	"bytes"
	"encoding/json"
)

// Fields holds the tags of an API record in the order the server sent them.
// Tags the client has no accessor for are kept as well.
type Fields struct {
	keys   []string
	values map[string]string
}

// Set stores value under key. A repeated key keeps its first position.
func (f *Fields) Set(key, value string) {
	if f.values == nil {
		f.values = make(map[string]string)
	}
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
}

// Get returns the value for key and whether the server sent it.
func (f Fields) Get(key string) (string, bool) {
	v, ok := f.values[key]
	return v, ok
}

// Value returns the value for key or "".
func (f Fields) Value(key string) string {
	return f.values[key]
}

// Keys returns the tag names in server order.
func (f Fields) Keys() []string {
	keys := make([]string, len(f.keys))
	copy(keys, f.keys)
	return keys
}

// Len returns the number of tags.
func (f Fields) Len() int {
	return len(f.keys)
}

// MarshalJSON encodes the fields as an object preserving server order.
func (f Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range f.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
