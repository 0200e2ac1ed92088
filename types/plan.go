package types

import (
	"slices"

	perrors "github.com/caio-sobreiro/perspecta/errors"
)

// PlanKind identifies a launch plan variant
type PlanKind int

const (
	PlanEmpty PlanKind = iota
	PlanLocalGroups
	PlanDicomwebSingle
	PlanDicomwebGrouped
)

func (k PlanKind) String() string {
	switch k {
	case PlanEmpty:
		return "empty"
	case PlanLocalGroups:
		return "local-groups"
	case PlanDicomwebSingle:
		return "dicomweb"
	case PlanDicomwebGrouped:
		return "dicomweb-groups"
	default:
		return "unknown"
	}
}

// LaunchPlan is the validated description of what the viewer opens at
// startup. The set of implementations is closed: EmptyLaunch, LocalGroups,
// DicomwebSingle and DicomwebGrouped. A plan is immutable once built.
type LaunchPlan interface {
	Kind() PlanKind
	isLaunchPlan()
}

// EmptyLaunch tells the viewer to start with no preloaded content.
type EmptyLaunch struct{}

func (EmptyLaunch) Kind() PlanKind { return PlanEmpty }
func (EmptyLaunch) isLaunchPlan()  {}

// LocalGroups opens one or more local file groups.
type LocalGroups struct {
	groups    []LocalGroup
	openIndex int
}

// NewLocalGroups requires at least one group and an open index inside the
// group list.
func NewLocalGroups(groups []LocalGroup, openIndex int) (LocalGroups, error) {
	if err := checkOpenIndex(len(groups), openIndex); err != nil {
		return LocalGroups{}, err
	}
	return LocalGroups{groups: slices.Clone(groups), openIndex: openIndex}, nil
}

func (LocalGroups) Kind() PlanKind { return PlanLocalGroups }
func (LocalGroups) isLaunchPlan()  {}

// Groups returns a copy of the group list.
func (p LocalGroups) Groups() []LocalGroup {
	return slices.Clone(p.groups)
}

// OpenIndex returns the index of the group shown first.
func (p LocalGroups) OpenIndex() int {
	return p.openIndex
}

// OpenGroup returns the group shown first.
func (p LocalGroups) OpenGroup() LocalGroup {
	return p.groups[p.openIndex]
}

// DicomwebSingle opens one study, series or instance from a DICOMweb server.
type DicomwebSingle struct {
	target DicomwebTarget
}

// NewDicomwebSingle wraps a target into a plan.
func NewDicomwebSingle(target DicomwebTarget) (DicomwebSingle, error) {
	if target.studyUID == "" {
		return DicomwebSingle{}, perrors.NewLaunchError(perrors.ErrMissingStudyUID, "study",
			"DICOMweb launch requires 'study' (StudyInstanceUID).")
	}
	return DicomwebSingle{target: target}, nil
}

func (DicomwebSingle) Kind() PlanKind { return PlanDicomwebSingle }
func (DicomwebSingle) isLaunchPlan()  {}

// Target returns the remote target to load.
func (p DicomwebSingle) Target() DicomwebTarget {
	return p.target
}

// DicomwebGrouped opens groups of series from one study on a DICOMweb server.
type DicomwebGrouped struct {
	base      DicomwebBase
	studyUID  string
	groups    []GroupSeriesSpec
	openIndex int
}

// NewDicomwebGrouped requires a study UID, at least one series group and an
// open index inside the group list.
func NewDicomwebGrouped(base DicomwebBase, studyUID string, groups []GroupSeriesSpec, openIndex int) (DicomwebGrouped, error) {
	if studyUID == "" {
		return DicomwebGrouped{}, perrors.NewLaunchError(perrors.ErrMissingStudyUID, "study",
			"Grouped DICOMweb launch requires study UID via study=...")
	}
	if err := checkOpenIndex(len(groups), openIndex); err != nil {
		return DicomwebGrouped{}, err
	}
	return DicomwebGrouped{
		base:      base,
		studyUID:  studyUID,
		groups:    slices.Clone(groups),
		openIndex: openIndex,
	}, nil
}

func (DicomwebGrouped) Kind() PlanKind { return PlanDicomwebGrouped }
func (DicomwebGrouped) isLaunchPlan()  {}

// Base returns the shared endpoint and credentials.
func (p DicomwebGrouped) Base() DicomwebBase {
	return p.base
}

// StudyUID returns the study every group belongs to.
func (p DicomwebGrouped) StudyUID() string {
	return p.studyUID
}

// Groups returns a copy of the series group list.
func (p DicomwebGrouped) Groups() []GroupSeriesSpec {
	return slices.Clone(p.groups)
}

// OpenIndex returns the index of the group shown first.
func (p DicomwebGrouped) OpenIndex() int {
	return p.openIndex
}

// OpenGroup returns the group shown first.
func (p DicomwebGrouped) OpenGroup() GroupSeriesSpec {
	return p.groups[p.openIndex]
}

func checkOpenIndex(count, openIndex int) error {
	if count == 0 {
		return perrors.NewLaunchError(perrors.ErrInvalidGroupSize, "",
			"a grouped launch needs at least one group")
	}
	if openIndex < 0 || openIndex >= count {
		return perrors.Errorf(perrors.ErrOpenGroupOutOfRange, "open_group",
			"open_group %d is out of range; %d group(s) available.", openIndex, count)
	}
	return nil
}
