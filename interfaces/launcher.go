// Package interfaces contains the contracts between the launch resolver and
// the viewer components that act on a plan.
package interfaces

import (
	"context"

	"github.com/caio-sobreiro/perspecta/types"
)

// Launcher loads the content a launch plan names. There is one method per
// plan variant, so an implementation handles every variant by construction.
type Launcher interface {
	// OpenLocalGroups loads local file groups and shows plan.OpenGroup() first.
	OpenLocalGroups(ctx context.Context, plan types.LocalGroups) error

	// OpenDicomweb loads one study, series or instance from a DICOMweb server.
	OpenDicomweb(ctx context.Context, plan types.DicomwebSingle) error

	// OpenDicomwebGroups loads series groups of one study and shows
	// plan.OpenGroup() first.
	OpenDicomwebGroups(ctx context.Context, plan types.DicomwebGrouped) error

	// StartEmpty starts without preloaded content. status is empty for a
	// plain start and carries the reason when the launch input was rejected.
	StartEmpty(ctx context.Context, status string) error
}
