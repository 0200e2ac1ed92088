package launch

import (
	"encoding/base64"
	"strings"
	"unicode/utf8"

	perrors "github.com/caio-sobreiro/perspecta/errors"
	"github.com/caio-sobreiro/perspecta/types"
)

// resolveCredentials reads DICOMweb credentials from bag. It returns nil
// when no credential parameter is present.
func resolveCredentials(bag ParameterBag) (*types.Credentials, error) {
	user, hasUser := bag.Last(KeyUser)
	password, hasPassword := bag.Last(KeyPassword)
	auth, hasAuth := bag.Last(KeyAuth)

	switch {
	case hasAuth && (hasUser || hasPassword):
		return nil, perrors.NewLaunchError(perrors.ErrAmbiguousCredentials, KeyAuth,
			"Use either auth= or user=/password=, not both.")
	case hasAuth:
		return ParseAuth(auth)
	case hasUser != hasPassword:
		param := KeyPassword
		if hasPassword {
			param = KeyUser
		}
		return nil, perrors.NewLaunchError(perrors.ErrIncompleteCredentials, param,
			"DICOMweb credentials must include both user and password.")
	case hasUser:
		return types.NewCredentials(user, password)
	default:
		return nil, nil
	}
}

// ParseAuth reads an auth= value: "username:password", split at the first
// ':'. A value without ':' is accepted when it is a base64 Basic token
// that decodes to that form.
func ParseAuth(value string) (*types.Credentials, error) {
	user, password, ok := strings.Cut(value, ":")
	if !ok {
		user, password, ok = decodeBasicToken(value)
	}
	if !ok {
		return nil, perrors.NewLaunchError(perrors.ErrMalformedAuth, KeyAuth,
			"auth must be encoded as username:password (percent-encoded).")
	}

	creds, err := types.NewCredentials(strings.TrimSpace(user), strings.TrimSpace(password))
	if err != nil {
		return nil, perrors.NewLaunchError(perrors.ErrIncompleteCredentials, KeyAuth,
			"auth must include both username and password.")
	}
	return creds, nil
}

func decodeBasicToken(token string) (string, string, bool) {
	token = strings.TrimSpace(token)
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.RawStdEncoding} {
		decoded, err := enc.DecodeString(token)
		if err != nil || !utf8.Valid(decoded) {
			continue
		}
		return strings.Cut(string(decoded), ":")
	}
	return "", "", false
}
