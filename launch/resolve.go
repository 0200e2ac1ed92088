package launch

import (
	"strconv"

	perrors "github.com/caio-sobreiro/perspecta/errors"
	"github.com/caio-sobreiro/perspecta/types"
)

// Option configures a Resolver.
type Option func(*Resolver)

// WithStrictParams makes the resolver reject parameters it would otherwise
// ignore because a higher-precedence form is present: path keys next to
// group=/groups=, and series=/instance= next to group_series=. Such input
// fails with ErrAmbiguousParameters.
func WithStrictParams(strict bool) Option {
	return func(r *Resolver) {
		r.strict = strict
	}
}

// Resolver turns launch input into a validated launch plan. It never
// touches the file system or the network, holds no mutable state and is
// safe for concurrent use.
type Resolver struct {
	strict bool
}

// New builds a Resolver.
func New(opts ...Option) *Resolver {
	r := &Resolver{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Strict reports whether ambiguous parameters are rejected.
func (r *Resolver) Strict() bool {
	return r.strict
}

// ResolveArgs resolves command-line arguments (program name excluded).
//
// No arguments gives EmptyLaunch. A single perspecta: URL is resolved as a
// URL activation. Otherwise every argument, after an optional leading
// --open, is a local path and together they form one group of 1 or 4.
func (r *Resolver) ResolveArgs(args []string) (types.LaunchPlan, error) {
	if len(args) == 0 {
		return types.EmptyLaunch{}, nil
	}
	if len(args) == 1 && IsLaunchURL(args[0]) {
		return r.ResolveURL(args[0])
	}

	paths := args
	if paths[0] == OpenFlag {
		paths = paths[1:]
		if len(paths) == 0 {
			return nil, perrors.NewLaunchError(perrors.ErrInvalidGroupSize, "args",
				"Missing file path(s) after --open.")
		}
	}

	if !types.ValidGroupSize(len(paths)) {
		return nil, perrors.NewGroupSizeError("args", 0, len(paths), "paths")
	}
	group, err := types.NewLocalGroup(paths...)
	if err != nil {
		return nil, err
	}
	return plan(types.NewLocalGroups([]types.LocalGroup{group}, 0))
}

// ResolveURL resolves a perspecta://open?... activation URL.
func (r *Resolver) ResolveURL(raw string) (types.LaunchPlan, error) {
	bag, err := ParseURL(raw)
	if err != nil {
		return nil, err
	}
	return r.ResolveParams(bag)
}

// ResolveParams assembles a plan from decoded URL parameters. Checks run in
// a fixed order and the first failure is returned: credentials, local
// groups, mixed launch mode, DICOMweb target, open_group.
func (r *Resolver) ResolveParams(bag ParameterBag) (types.LaunchPlan, error) {
	creds, err := resolveCredentials(bag)
	if err != nil {
		return nil, err
	}

	local, err := resolveLocalGroups(bag, r.strict)
	if err != nil {
		return nil, err
	}
	if len(local) > 0 && bag.Has(KeyDicomweb) {
		return nil, perrors.NewLaunchError(perrors.ErrMixedLaunchMode, KeyDicomweb,
			"Cannot mix local file launch (path=/group=...) with dicomweb=.")
	}

	remote, err := resolveDicomweb(bag, r.strict)
	if err != nil {
		return nil, err
	}
	if remote == nil && creds != nil {
		return nil, perrors.NewLaunchError(perrors.ErrMissingDicomwebURL, KeyDicomweb,
			"DICOMweb credentials were provided without dicomweb= URL.")
	}

	// open_group is validated in every mode; single-target mode ignores it.
	openIndex, err := parseOpenGroup(bag)
	if err != nil {
		return nil, err
	}

	switch {
	case len(local) > 0:
		return plan(types.NewLocalGroups(local, openIndex))
	case remote != nil:
		base, err := types.NewDicomwebBase(remote.baseURL, creds)
		if err != nil {
			return nil, err
		}
		if remote.groups != nil {
			return plan(types.NewDicomwebGrouped(base, remote.studyUID, remote.groups, openIndex))
		}
		target, err := types.NewDicomwebTarget(base, remote.studyUID, remote.seriesUID, remote.instanceUID)
		if err != nil {
			return nil, err
		}
		return plan(types.NewDicomwebSingle(target))
	default:
		return types.EmptyLaunch{}, nil
	}
}

// parseOpenGroup reads open_group: absent or blank means 0, otherwise a
// non-negative base-10 integer. The last non-blank value wins.
func parseOpenGroup(bag ParameterBag) (int, error) {
	value, ok := bag.Last(KeyOpenGroup)
	if !ok {
		return 0, nil
	}
	n, err := strconv.ParseUint(value, 10, strconv.IntSize-1)
	if err != nil {
		return 0, perrors.NewLaunchError(perrors.ErrMalformedOpenGroup, KeyOpenGroup,
			"open_group must be a non-negative integer.")
	}
	return int(n), nil
}

// plan drops the zero-value variant a failed constructor returns so callers
// never see a non-nil plan next to an error.
func plan[P types.LaunchPlan](p P, err error) (types.LaunchPlan, error) {
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ResolveArgs resolves command-line arguments with default options.
func ResolveArgs(args []string) (types.LaunchPlan, error) {
	return New().ResolveArgs(args)
}

// ResolveURL resolves an activation URL with default options.
func ResolveURL(raw string) (types.LaunchPlan, error) {
	return New().ResolveURL(raw)
}
