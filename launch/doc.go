// Package launch resolves how the viewer was started into a launch plan.
//
// The viewer is started either with local file paths on the command line or
// through a perspecta:// URL activation:
//
//	perspecta a.dcm b.dcm c.dcm d.dcm
//	perspecta 'perspecta://open?groups=rcc.dcm|lcc.dcm|rmlo.dcm|lmlo.dcm;report.dcm&open_group=1'
//	perspecta 'perspecta://open?dicomweb=http%3A%2F%2Flocalhost%3A8042&study=1.2.3&user=bob&password=secret'
//
// Both entry points produce one of the types.LaunchPlan variants or a
// typed error from package errors. Resolution is pure: no file system or
// network access happens here, and a failed resolution never yields a
// partial plan.
//
// Recognized URL parameters:
//
//	path, file            one local path (repeatable)
//	paths, files          local paths separated by '|' or ','
//	group                 one group of 1 or 4 paths separated by '|'
//	groups                groups separated by ';', paths by '|'
//	open_group            zero-based index of the group shown first
//	dicomweb              DICOMweb server root or endpoint URL
//	study, series, instance
//	group_series          series groups separated by ';', UIDs by '|'
//	user, password        HTTP basic credentials
//	auth                  "user:password" or a base64 Basic token
package launch
