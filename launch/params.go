package launch

import (
	"slices"
	"strings"
)

// Recognized query parameter names.
const (
	KeyPath        = "path"
	KeyFile        = "file"
	KeyPaths       = "paths"
	KeyFiles       = "files"
	KeyGroup       = "group"
	KeyGroups      = "groups"
	KeyOpenGroup   = "open_group"
	KeyDicomweb    = "dicomweb"
	KeyStudy       = "study"
	KeySeries      = "series"
	KeyInstance    = "instance"
	KeyGroupSeries = "group_series"
	KeyUser        = "user"
	KeyPassword    = "password"
	KeyAuth        = "auth"
)

var recognizedKeys = map[string]bool{
	KeyPath: true, KeyFile: true, KeyPaths: true, KeyFiles: true,
	KeyGroup: true, KeyGroups: true, KeyOpenGroup: true,
	KeyDicomweb: true, KeyStudy: true, KeySeries: true, KeyInstance: true,
	KeyGroupSeries: true, KeyUser: true, KeyPassword: true, KeyAuth: true,
}

// Alternate spellings accepted from older launch links.
var keyAliases = map[string]string{
	"studyuid":            KeyStudy,
	"studyinstanceuid":    KeyStudy,
	"study_instance_uid":  KeyStudy,
	"seriesuid":           KeySeries,
	"seriesinstanceuid":   KeySeries,
	"series_instance_uid": KeySeries,
	"instanceuid":         KeyInstance,
	"sopinstanceuid":      KeyInstance,
	"sop_instance_uid":    KeyInstance,
	"dicomweb_url":        KeyDicomweb,
	"base_url":            KeyDicomweb,
	"wado_base":           KeyDicomweb,
	"groupseries":         KeyGroupSeries,
	"series_group":        KeyGroupSeries,
	"opengroup":           KeyOpenGroup,
	"active_group":        KeyOpenGroup,
	"group_index":         KeyOpenGroup,
	"username":            KeyUser,
	"dicomweb_user":       KeyUser,
	"dicomweb_username":   KeyUser,
	"pass":                KeyPassword,
	"dicomweb_pass":       KeyPassword,
	"dicomweb_password":   KeyPassword,
	"dicomweb_auth":       KeyAuth,
}

// CanonicalKey lower-cases and trims a decoded key and maps aliases to the
// recognized name. Unrecognized keys come back lower-cased.
func CanonicalKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	if canonical, ok := keyAliases[key]; ok {
		return canonical
	}
	return key
}

// Param is one decoded key=value pair.
type Param struct {
	Key   string
	Value string
}

// ParameterBag is the decoded query of one launch URL: an ordered mapping
// from key to values where repeated keys accumulate in encounter order.
// It is built once by ParseURL and is read-only afterwards.
type ParameterBag struct {
	entries []Param
}

func (b *ParameterBag) add(key, value string) {
	b.entries = append(b.entries, Param{Key: key, Value: value})
}

// Len returns the number of pairs in the bag.
func (b ParameterBag) Len() int {
	return len(b.entries)
}

// Keys returns the distinct keys in first-encounter order.
func (b ParameterBag) Keys() []string {
	var keys []string
	for _, p := range b.entries {
		if !slices.Contains(keys, p.Key) {
			keys = append(keys, p.Key)
		}
	}
	return keys
}

// Values returns every value of key in encounter order, blank ones included.
func (b ParameterBag) Values(key string) []string {
	var values []string
	for _, p := range b.entries {
		if p.Key == key {
			values = append(values, p.Value)
		}
	}
	return values
}

// Entries returns the pairs whose key is one of keys, in encounter order.
// With no keys it returns a copy of every pair.
func (b ParameterBag) Entries(keys ...string) []Param {
	if len(keys) == 0 {
		return slices.Clone(b.entries)
	}
	var out []Param
	for _, p := range b.entries {
		if slices.Contains(keys, p.Key) {
			out = append(out, p)
		}
	}
	return out
}

// Has reports whether key carries at least one non-blank value. A key given
// only as "key" or "key=" counts as absent for resolution.
func (b ParameterBag) Has(key string) bool {
	for _, p := range b.entries {
		if p.Key == key && !isBlank(p.Value) {
			return true
		}
	}
	return false
}

// HasAny reports whether any of keys carries a non-blank value.
func (b ParameterBag) HasAny(keys ...string) bool {
	for _, key := range keys {
		if b.Has(key) {
			return true
		}
	}
	return false
}

// Last returns the last non-blank value of key, trimmed.
func (b ParameterBag) Last(key string) (string, bool) {
	for i := len(b.entries) - 1; i >= 0; i-- {
		p := b.entries[i]
		if p.Key == key && !isBlank(p.Value) {
			return strings.TrimSpace(p.Value), true
		}
	}
	return "", false
}

// Unrecognized returns keys the resolver ignores, in first-encounter order.
func (b ParameterBag) Unrecognized() []string {
	var out []string
	for _, key := range b.Keys() {
		if !recognizedKeys[key] {
			out = append(out, key)
		}
	}
	return out
}
