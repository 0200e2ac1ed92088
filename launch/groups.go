package launch

import (
	perrors "github.com/caio-sobreiro/perspecta/errors"
	"github.com/caio-sobreiro/perspecta/types"
)

var pathKeys = []string{KeyPath, KeyFile, KeyPaths, KeyFiles}

// resolveLocalGroups reads the local file groups from bag.
//
// group=/groups= take precedence: every value becomes one group (group=) or
// a ';'-separated list of groups (groups=), in encounter order, and the
// path keys are ignored; an explicit grouping without any path is an
// error. Otherwise all path=/file=/paths=/files= values form
// one implicit group. Neither form present yields no groups.
func resolveLocalGroups(bag ParameterBag, strict bool) ([]types.LocalGroup, error) {
	if bag.HasAny(KeyGroup, KeyGroups) {
		if strict && bag.HasAny(pathKeys...) {
			return nil, perrors.NewLaunchError(perrors.ErrAmbiguousParameters, KeyGroup,
				"Cannot mix grouped launch (group=...) with path=/paths= parameters.")
		}
		return explicitGroups(bag)
	}
	return implicitGroup(bag)
}

func explicitGroups(bag ParameterBag) ([]types.LocalGroup, error) {
	var groups []types.LocalGroup
	for _, p := range bag.Entries(KeyGroup, KeyGroups) {
		var raw [][]string
		if p.Key == KeyGroup {
			if paths := SplitGroup(p.Value); len(paths) > 0 {
				raw = append(raw, paths)
			}
		} else {
			raw = SplitGroupList(p.Value)
		}

		for _, paths := range raw {
			if !types.ValidGroupSize(len(paths)) {
				return nil, perrors.NewGroupSizeError(p.Key, len(groups), len(paths), "paths")
			}
			group, err := types.NewLocalGroup(paths...)
			if err != nil {
				return nil, err
			}
			groups = append(groups, group)
		}
	}
	if len(groups) == 0 {
		return nil, perrors.NewLaunchError(perrors.ErrInvalidGroupSize, KeyGroup,
			"group=/groups= does not name any file path.")
	}
	return groups, nil
}

func implicitGroup(bag ParameterBag) ([]types.LocalGroup, error) {
	var paths []string
	for _, p := range bag.Entries(pathKeys...) {
		switch p.Key {
		case KeyPaths, KeyFiles:
			paths = append(paths, SplitPathList(p.Value)...)
		default:
			if !isBlank(p.Value) {
				paths = append(paths, p.Value)
			}
		}
	}
	if len(paths) == 0 {
		return nil, nil
	}

	if !types.ValidGroupSize(len(paths)) {
		return nil, perrors.NewGroupSizeError(KeyPath, 0, len(paths), "paths")
	}
	group, err := types.NewLocalGroup(paths...)
	if err != nil {
		return nil, err
	}
	return []types.LocalGroup{group}, nil
}
