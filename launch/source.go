package launch

import (
	"strings"

	perrors "github.com/caio-sobreiro/perspecta/errors"
)

const (
	// Scheme is the custom URL scheme the viewer is registered for.
	Scheme = "perspecta"
	// CommandOpen is the only command the scheme accepts.
	CommandOpen = "open"
	// OpenFlag may precede local paths on the command line.
	OpenFlag = "--open"
)

// IsLaunchURL reports whether s starts with perspecta://. A bare
// "perspecta:" prefix is not enough, so such an argument stays a file path.
func IsLaunchURL(s string) bool {
	scheme, rest, ok := strings.Cut(strings.TrimSpace(s), ":")
	return ok && strings.EqualFold(scheme, Scheme) && strings.HasPrefix(rest, "//")
}

// ParseURL decodes a perspecta://open?... URL into a ParameterBag.
//
// The scheme is matched case-insensitively and a fragment is dropped. The
// command segment must be "open"; "open/<encoded path>" adds that path as a
// path= value. The query is split on '&', each pair on its first '=', and
// key and value are percent-decoded independently. A key without '=' is
// kept with an empty value.
func ParseURL(raw string) (ParameterBag, error) {
	raw = strings.TrimSpace(raw)
	scheme, rest, ok := strings.Cut(raw, ":")
	if !ok || !strings.EqualFold(scheme, Scheme) {
		return ParameterBag{}, perrors.NewLaunchError(perrors.ErrUnknownScheme, "",
			"URL must start with perspecta://")
	}

	rest = strings.TrimPrefix(rest, "//")
	rest, _, _ = strings.Cut(rest, "#")
	location, query, _ := strings.Cut(rest, "?")

	var bag ParameterBag
	if err := parseLocation(location, &bag); err != nil {
		return ParameterBag{}, err
	}
	if err := parseQuery(query, &bag); err != nil {
		return ParameterBag{}, err
	}
	return bag, nil
}

func parseLocation(location string, bag *ParameterBag) error {
	location = strings.Trim(strings.TrimSpace(location), "/")
	command, tail, _ := strings.Cut(location, "/")
	if !strings.EqualFold(command, CommandOpen) {
		return perrors.Errorf(perrors.ErrUnsupportedCommand, "",
			"Unsupported command %q; expected %q.", command, CommandOpen)
	}
	if tail == "" {
		return nil
	}

	path, err := DecodeComponent(tail)
	if err != nil {
		return err
	}
	if !isBlank(path) {
		bag.add(KeyPath, path)
	}
	return nil
}

func parseQuery(query string, bag *ParameterBag) error {
	for _, pair := range strings.Split(query, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")

		key, err := DecodeComponent(rawKey)
		if err != nil {
			return err
		}
		key = CanonicalKey(key)
		if key == "" {
			return perrors.NewLaunchError(perrors.ErrMalformedURL, "",
				"URL query contains a parameter without a name.")
		}

		value, err := DecodeComponent(rawValue)
		if err != nil {
			return perrors.Errorf(perrors.ErrMalformedURL, key,
				"%s (parameter '%s')", perrors.Reason(err), key)
		}
		bag.add(key, value)
	}
	return nil
}
