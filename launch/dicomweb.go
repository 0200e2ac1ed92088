package launch

import (
	"net/url"
	"strings"

	perrors "github.com/caio-sobreiro/perspecta/errors"
	"github.com/caio-sobreiro/perspecta/types"
)

// DicomwebSegment is the path segment that marks a DICOMweb endpoint.
const DicomwebSegment = "dicom-web"

// remoteRequest is the DICOMweb side of a launch before credentials are
// attached. groups is non-nil in grouped mode.
type remoteRequest struct {
	baseURL     string
	studyUID    string
	seriesUID   string
	instanceUID string
	groups      []types.GroupSeriesSpec
}

// embeddedUIDs are the UIDs found in a WADO-RS style path such as
// /dicom-web/studies/<study>/series/<series>/instances/<instance>.
type embeddedUIDs struct {
	study    string
	series   string
	instance string
}

// NormalizeBaseURL turns a server root or DICOMweb endpoint into the
// endpoint URL: query and fragment are dropped, any /studies/... suffix is
// cut, a trailing '/' is removed, a user:password@ part is rejected, and /dicom-web is appended when no path
// segment already equals dicom-web.
//
//	http://localhost:8042                  -> http://localhost:8042/dicom-web
//	http://localhost:8042/dicom-web/       -> http://localhost:8042/dicom-web
//	http://host/pacs/dicom-web/studies/1.2 -> http://host/pacs/dicom-web
func NormalizeBaseURL(raw string) (string, error) {
	base, _, err := splitDicomwebURL(raw)
	return base, err
}

func splitDicomwebURL(raw string) (string, embeddedUIDs, error) {
	value := strings.TrimSpace(raw)
	value, _, _ = strings.Cut(value, "#")
	value, _, _ = strings.Cut(value, "?")
	value = strings.TrimRight(value, "/")

	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", embeddedUIDs{}, perrors.NewLaunchError(perrors.ErrMalformedURL, KeyDicomweb,
			"DICOMweb URL must be an absolute http:// or https:// URL.")
	}
	if u.User != nil {
		return "", embeddedUIDs{}, perrors.NewLaunchError(perrors.ErrMalformedURL, KeyDicomweb,
			"DICOMweb URL must not embed credentials; use user=/password= or auth=.")
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) == 1 && segments[0] == "" {
		segments = nil
	}

	var ids embeddedUIDs
	for i, segment := range segments {
		if strings.EqualFold(segment, "studies") {
			ids = uidsFromPath(segments[i:])
			segments = segments[:i]
			break
		}
	}

	hasEndpoint := false
	for _, segment := range segments {
		if strings.EqualFold(segment, DicomwebSegment) {
			hasEndpoint = true
			break
		}
	}
	if !hasEndpoint {
		segments = append(segments, DicomwebSegment)
	}

	u.Path = "/" + strings.Join(segments, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	return u.String(), ids, nil
}

func uidsFromPath(segments []string) embeddedUIDs {
	var ids embeddedUIDs
	for i := 0; i+1 < len(segments); i++ {
		uid := strings.TrimSpace(segments[i+1])
		if uid == "" {
			continue
		}
		switch strings.ToLower(segments[i]) {
		case "studies":
			ids.study = uid
		case "series":
			ids.series = uid
		case "instances":
			ids.instance = uid
		default:
			continue
		}
		i++
	}
	return ids
}

// resolveDicomweb reads the remote target from bag. It returns nil when no
// dicomweb= value is present.
func resolveDicomweb(bag ParameterBag, strict bool) (*remoteRequest, error) {
	raw, ok := bag.Last(KeyDicomweb)
	if !ok {
		if bag.Has(KeyGroupSeries) {
			return nil, perrors.NewLaunchError(perrors.ErrMissingDicomwebURL, KeyGroupSeries,
				"Grouped DICOMweb launch requires dicomweb= URL and study UID.")
		}
		return nil, nil
	}

	baseURL, ids, err := splitDicomwebURL(raw)
	if err != nil {
		return nil, err
	}

	req := &remoteRequest{
		baseURL:     baseURL,
		studyUID:    lastOr(bag, KeyStudy, ids.study),
		seriesUID:   lastOr(bag, KeySeries, ids.series),
		instanceUID: lastOr(bag, KeyInstance, ids.instance),
	}

	if !bag.Has(KeyGroupSeries) {
		if req.studyUID == "" {
			return nil, perrors.NewLaunchError(perrors.ErrMissingStudyUID, KeyStudy,
				"DICOMweb launch requires 'study' (StudyInstanceUID).")
		}
		return req, nil
	}

	if strict && bag.HasAny(KeySeries, KeyInstance) {
		return nil, perrors.NewLaunchError(perrors.ErrAmbiguousParameters, KeyGroupSeries,
			"Cannot mix grouped DICOMweb launch (group_series=...) with series=/instance= parameters.")
	}
	if req.studyUID == "" {
		return nil, perrors.NewLaunchError(perrors.ErrMissingStudyUID, KeyStudy,
			"Grouped DICOMweb launch requires study UID via study=...")
	}

	groups, err := seriesGroups(bag)
	if err != nil {
		return nil, err
	}
	// Each group names its own series.
	req.seriesUID = ""
	req.instanceUID = ""
	req.groups = groups
	return req, nil
}

func seriesGroups(bag ParameterBag) ([]types.GroupSeriesSpec, error) {
	var groups []types.GroupSeriesSpec
	for _, value := range bag.Values(KeyGroupSeries) {
		for _, raw := range SplitGroupList(value) {
			uids := make([]string, len(raw))
			for i, uid := range raw {
				uids[i] = strings.TrimSpace(uid)
			}
			if !types.ValidGroupSize(len(uids)) {
				return nil, perrors.NewGroupSizeError(KeyGroupSeries, len(groups), len(uids), "series UIDs")
			}
			spec, err := types.NewGroupSeriesSpec(uids...)
			if err != nil {
				return nil, err
			}
			groups = append(groups, spec)
		}
	}
	if len(groups) == 0 {
		return nil, perrors.NewLaunchError(perrors.ErrInvalidGroupSize, KeyGroupSeries,
			"group_series does not name any series UID.")
	}
	return groups, nil
}

func lastOr(bag ParameterBag, key, fallback string) string {
	if v, ok := bag.Last(key); ok {
		return v
	}
	return fallback
}
