// Package services routes resolved launch plans to the viewer components
// that load them.
package services

import (
	"context"
	"fmt"
	"log/slog"

	perrors "github.com/caio-sobreiro/perspecta/errors"
	"github.com/caio-sobreiro/perspecta/interfaces"
	"github.com/caio-sobreiro/perspecta/types"
)

// StatusPrefix starts the status message shown when launch input is rejected.
const StatusPrefix = "Launch URL/args error: "

// Dispatcher routes launch plans to a Launcher.
//
// The dispatcher picks the Launcher method matching the plan variant. A
// resolution error never reaches the launcher as a partial plan: the viewer
// starts empty and shows the reason instead.
//
// Example usage:
//
//	d := services.NewDispatcher(viewer)
//	plan, err := launch.ResolveArgs(os.Args[1:])
//	if err := d.Launch(ctx, plan, err); err != nil {
//		// the launcher failed
//	}
type Dispatcher struct {
	launcher interfaces.Launcher
}

// NewDispatcher creates a dispatcher for launcher.
func NewDispatcher(launcher interfaces.Launcher) *Dispatcher {
	return &Dispatcher{launcher: launcher}
}

// Dispatch hands plan to the matching Launcher method.
func (d *Dispatcher) Dispatch(ctx context.Context, plan types.LaunchPlan) error {
	if plan == nil {
		return fmt.Errorf("dispatch: nil launch plan")
	}

	slog.DebugContext(ctx, "Dispatching launch plan", "kind", plan.Kind().String())

	switch p := plan.(type) {
	case types.EmptyLaunch:
		return d.launcher.StartEmpty(ctx, "")
	case types.LocalGroups:
		return d.launcher.OpenLocalGroups(ctx, p)
	case types.DicomwebSingle:
		return d.launcher.OpenDicomweb(ctx, p)
	case types.DicomwebGrouped:
		return d.launcher.OpenDicomwebGroups(ctx, p)
	default:
		slog.WarnContext(ctx, "No launcher method for plan", "kind", plan.Kind().String())
		return fmt.Errorf("dispatch: unsupported launch plan %T", plan)
	}
}

// Launch dispatches the result of a resolution. When resolveErr is set the
// launcher starts empty with StatusMessage(resolveErr) as its status.
func (d *Dispatcher) Launch(ctx context.Context, plan types.LaunchPlan, resolveErr error) error {
	if resolveErr != nil {
		slog.WarnContext(ctx, "Launch input rejected",
			"code", perrors.Code(resolveErr),
			"reason", perrors.Reason(resolveErr))
		return d.launcher.StartEmpty(ctx, StatusMessage(resolveErr))
	}
	return d.Dispatch(ctx, plan)
}

// StatusMessage is the status text shown for a rejected launch.
func StatusMessage(err error) string {
	return StatusPrefix + perrors.Reason(err)
}
