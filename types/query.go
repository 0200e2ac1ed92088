package types

// QueryLevel represents the DICOMweb retrieval level a target points at
type QueryLevel string

const (
	QueryLevelStudy  QueryLevel = "STUDY"
	QueryLevelSeries QueryLevel = "SERIES"
	QueryLevelImage  QueryLevel = "IMAGE"
)

// Level returns the query level implied by which UIDs are set. An instance
// UID without a series UID still addresses the study as a whole, since
// WADO-RS instance paths require the series.
func Level(studyUID, seriesUID, instanceUID string) QueryLevel {
	switch {
	case seriesUID != "" && instanceUID != "":
		return QueryLevelImage
	case seriesUID != "":
		return QueryLevelSeries
	default:
		return QueryLevelStudy
	}
}
