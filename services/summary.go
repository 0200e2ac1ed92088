package services

import (
	"github.com/caio-sobreiro/perspecta/types"
)

const redacted = "[redacted]"

// Summary is a flat, serialisable description of a launch plan. The
// password is never carried; Password holds "[redacted]" when credentials
// are attached.
type Summary struct {
	Mode        string     `json:"mode"`
	Status      string     `json:"status,omitempty"`
	Groups      [][]string `json:"groups,omitempty"`
	OpenGroup   int        `json:"open_group"`
	Dicomweb    string     `json:"dicomweb,omitempty"`
	StudyUID    string     `json:"study,omitempty"`
	SeriesUID   string     `json:"series,omitempty"`
	InstanceUID string     `json:"instance,omitempty"`
	Level       string     `json:"level,omitempty"`
	User        string     `json:"user,omitempty"`
	Password    string     `json:"password,omitempty"`
}

// Summarize describes plan. A nil plan summarises as an empty launch.
func Summarize(plan types.LaunchPlan) Summary {
	switch p := plan.(type) {
	case types.LocalGroups:
		s := Summary{Mode: p.Kind().String(), OpenGroup: p.OpenIndex()}
		for _, g := range p.Groups() {
			s.Groups = append(s.Groups, g.Paths())
		}
		return s

	case types.DicomwebSingle:
		t := p.Target()
		s := Summary{
			Mode:        p.Kind().String(),
			Dicomweb:    t.BaseURL(),
			StudyUID:    t.StudyUID(),
			SeriesUID:   t.SeriesUID(),
			InstanceUID: t.InstanceUID(),
			Level:       string(t.Level()),
		}
		s.setCredentials(t.Credentials())
		return s

	case types.DicomwebGrouped:
		s := Summary{
			Mode:      p.Kind().String(),
			OpenGroup: p.OpenIndex(),
			Dicomweb:  p.Base().URL(),
			StudyUID:  p.StudyUID(),
			Level:     string(types.QueryLevelSeries),
		}
		for _, g := range p.Groups() {
			s.Groups = append(s.Groups, g.SeriesUIDs())
		}
		s.setCredentials(p.Base().Credentials())
		return s

	default:
		return Summary{Mode: types.PlanEmpty.String()}
	}
}

func (s *Summary) setCredentials(c *types.Credentials) {
	if c == nil {
		return
	}
	s.User = c.Username()
	s.Password = redacted
}
