// Package value converts raw settings values into typed ones.
//
// Values reach a ConfigStore either from Go callers or from a decoded TOML
// record, so the same setting may arrive as int or int64, []string or []any.
package value

// String returns v as a string, or "" when it is not one.
func String(v any) string {
	s, _ := v.(string)
	return s
}

// Int returns v as an int. TOML decodes integers as int64 and JSON-like
// callers hand in float64; anything else is 0.
func Int(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

// Bool returns v as a bool, or false when it is not one.
func Bool(v any) bool {
	b, _ := v.(bool)
	return b
}

// Strings returns v as a string slice. Non-string elements of a decoded
// array are skipped.
func Strings(v any) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Typed adds the typed getters of driven.ConfigStore on top of a raw lookup.
// Stores embed it and set Lookup to their own Get.
type Typed struct {
	Lookup func(key string) (any, bool)
}

// GetString returns the string at key, or "".
func (t Typed) GetString(key string) string {
	v, _ := t.Lookup(key)
	return String(v)
}

// GetInt returns the integer at key, or 0.
func (t Typed) GetInt(key string) int {
	v, _ := t.Lookup(key)
	return Int(v)
}

// GetBool returns the bool at key, or false.
func (t Typed) GetBool(key string) bool {
	v, _ := t.Lookup(key)
	return Bool(v)
}

// GetStringSlice returns the string list at key, or nil.
func (t Typed) GetStringSlice(key string) []string {
	v, _ := t.Lookup(key)
	return Strings(v)
}
