// Package types contains the launch request data model: local and remote
// groups, DICOMweb targets, credentials and the launch plan variants.
package types

import (
	"fmt"
	"log/slog"
	"slices"

	perrors "github.com/caio-sobreiro/perspecta/errors"
)

// ValidGroupSize reports whether n entries form a viewable group: a single
// image or a four-view layout.
func ValidGroupSize(n int) bool {
	return n == 1 || n == 4
}

// LocalGroup is an ordered set of 1 or 4 local file paths viewed together.
type LocalGroup struct {
	paths []string
}

// NewLocalGroup creates a local group, rejecting sizes other than 1 or 4.
func NewLocalGroup(paths ...string) (LocalGroup, error) {
	if !ValidGroupSize(len(paths)) {
		return LocalGroup{}, perrors.Errorf(perrors.ErrInvalidGroupSize, "",
			"a local group must contain exactly 1 or 4 paths, got %d", len(paths))
	}
	return LocalGroup{paths: slices.Clone(paths)}, nil
}

// Paths returns a copy of the group's paths in display order.
func (g LocalGroup) Paths() []string {
	return slices.Clone(g.paths)
}

// Len returns the number of paths in the group.
func (g LocalGroup) Len() int {
	return len(g.paths)
}

// GroupSeriesSpec is an ordered set of 1 or 4 series UIDs of one study,
// viewed together the same way a LocalGroup is.
type GroupSeriesSpec struct {
	seriesUIDs []string
}

// NewGroupSeriesSpec creates a remote series group, rejecting sizes other
// than 1 or 4.
func NewGroupSeriesSpec(seriesUIDs ...string) (GroupSeriesSpec, error) {
	if !ValidGroupSize(len(seriesUIDs)) {
		return GroupSeriesSpec{}, perrors.Errorf(perrors.ErrInvalidGroupSize, "",
			"a series group must contain exactly 1 or 4 series UIDs, got %d", len(seriesUIDs))
	}
	return GroupSeriesSpec{seriesUIDs: slices.Clone(seriesUIDs)}, nil
}

// SeriesUIDs returns a copy of the group's series UIDs in display order.
func (g GroupSeriesSpec) SeriesUIDs() []string {
	return slices.Clone(g.seriesUIDs)
}

// Len returns the number of series in the group.
func (g GroupSeriesSpec) Len() int {
	return len(g.seriesUIDs)
}

// Credentials holds HTTP basic credentials for a DICOMweb server. A nil
// *Credentials means requests go out unauthenticated.
type Credentials struct {
	username string
	password string
}

// NewCredentials requires both a username and a password.
func NewCredentials(username, password string) (*Credentials, error) {
	if username == "" || password == "" {
		return nil, perrors.NewLaunchError(perrors.ErrIncompleteCredentials, "",
			"DICOMweb credentials must include both user and password.")
	}
	return &Credentials{username: username, password: password}, nil
}

// Username returns the user name, or "" for nil credentials.
func (c *Credentials) Username() string {
	if c == nil {
		return ""
	}
	return c.username
}

// Password returns the password in clear text, or "" for nil credentials.
// Never log it; log the Credentials value instead.
func (c *Credentials) Password() string {
	if c == nil {
		return ""
	}
	return c.password
}

// String never prints the password.
func (c *Credentials) String() string {
	if c == nil {
		return "<none>"
	}
	return fmt.Sprintf("%s:[redacted]", c.username)
}

// LogValue implements slog.LogValuer so credentials can be logged safely.
func (c *Credentials) LogValue() slog.Value {
	if c == nil {
		return slog.StringValue("none")
	}
	return slog.GroupValue(
		slog.String("user", c.username),
		slog.String("password", "[redacted]"),
	)
}

// DicomwebBase is a DICOMweb endpoint plus the credentials used against it.
type DicomwebBase struct {
	url         string
	credentials *Credentials
}

// NewDicomwebBase creates a base from an already-normalized endpoint URL.
func NewDicomwebBase(url string, credentials *Credentials) (DicomwebBase, error) {
	if url == "" {
		return DicomwebBase{}, perrors.NewLaunchError(perrors.ErrMalformedURL, "dicomweb",
			"DICOMweb URL must include a server base URL.")
	}
	return DicomwebBase{url: url, credentials: credentials}, nil
}

// URL returns the normalized DICOMweb endpoint, e.g. http://host:8042/dicom-web.
func (b DicomwebBase) URL() string {
	return b.url
}

// Credentials returns the credentials for the endpoint, or nil.
func (b DicomwebBase) Credentials() *Credentials {
	return b.credentials
}

// DicomwebTarget addresses a study, and optionally one series or instance
// of it, on a DICOMweb server.
type DicomwebTarget struct {
	base        DicomwebBase
	studyUID    string
	seriesUID   string
	instanceUID string
}

// NewDicomwebTarget creates a target. The study UID is required.
func NewDicomwebTarget(base DicomwebBase, studyUID, seriesUID, instanceUID string) (DicomwebTarget, error) {
	if studyUID == "" {
		return DicomwebTarget{}, perrors.NewLaunchError(perrors.ErrMissingStudyUID, "study",
			"DICOMweb launch requires 'study' (StudyInstanceUID).")
	}
	return DicomwebTarget{
		base:        base,
		studyUID:    studyUID,
		seriesUID:   seriesUID,
		instanceUID: instanceUID,
	}, nil
}

// Base returns the endpoint and credentials of the target.
func (t DicomwebTarget) Base() DicomwebBase {
	return t.base
}

// BaseURL returns the normalized DICOMweb endpoint URL.
func (t DicomwebTarget) BaseURL() string {
	return t.base.url
}

// Credentials returns the basic-auth credentials, nil when unauthenticated.
func (t DicomwebTarget) Credentials() *Credentials {
	return t.base.credentials
}

// StudyUID returns the StudyInstanceUID. It is never empty.
func (t DicomwebTarget) StudyUID() string {
	return t.studyUID
}

// SeriesUID returns the SeriesInstanceUID, empty for a whole-study target.
func (t DicomwebTarget) SeriesUID() string {
	return t.seriesUID
}

// InstanceUID returns the SOPInstanceUID, empty unless one instance is addressed.
func (t DicomwebTarget) InstanceUID() string {
	return t.instanceUID
}

// Level returns the retrieval level the target addresses.
func (t DicomwebTarget) Level() QueryLevel {
	return Level(t.studyUID, t.seriesUID, t.instanceUID)
}
