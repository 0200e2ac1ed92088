package launch

import (
	"net/url"
	"strings"
	"unicode/utf8"

	perrors "github.com/caio-sobreiro/perspecta/errors"
)

// Delimiters used inside parameter values.
const (
	GroupItemSep = "|" // between entries of one group
	GroupListSep = ";" // between groups
	PathListSep  = "," // between paths of paths=/files= when no '|' is present
)

// DecodeComponent percent-decodes one query key or value. A '+' decodes to
// a space. Input without escapes is returned unchanged.
func DecodeComponent(s string) (string, error) {
	decoded, err := url.QueryUnescape(s)
	if err != nil {
		return "", perrors.NewLaunchError(perrors.ErrMalformedURL, "",
			"Invalid percent-encoding in URL.")
	}
	if !utf8.ValidString(decoded) {
		return "", perrors.NewLaunchError(perrors.ErrMalformedURL, "",
			"URL contains invalid UTF-8 after decoding.")
	}
	return decoded, nil
}

// SplitGroup splits one group value on '|'. Blank segments are dropped, so
// "a||b|" yields [a b].
func SplitGroup(value string) []string {
	return splitNonBlank(value, GroupItemSep)
}

// SplitGroupList splits a value on ';' into groups and each group on '|'.
// Groups left empty after dropping blank segments are dropped too.
func SplitGroupList(value string) [][]string {
	var groups [][]string
	for _, segment := range strings.Split(value, GroupListSep) {
		if group := SplitGroup(segment); len(group) > 0 {
			groups = append(groups, group)
		}
	}
	return groups
}

// SplitPathList splits a paths=/files= value. When the value holds a '|'
// that is the separator, which keeps commas inside file names intact;
// otherwise ',' is used.
func SplitPathList(value string) []string {
	if strings.Contains(value, GroupItemSep) {
		return splitNonBlank(value, GroupItemSep)
	}
	return splitNonBlank(value, PathListSep)
}

func splitNonBlank(value, sep string) []string {
	var out []string
	for _, part := range strings.Split(value, sep) {
		if isBlank(part) {
			continue
		}
		out = append(out, part)
	}
	return out
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
