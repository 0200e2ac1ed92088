package launch

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	perrors "github.com/caio-sobreiro/perspecta/errors"
	"github.com/caio-sobreiro/perspecta/types"
)

func localPaths(t *testing.T, p types.LaunchPlan) ([][]string, int) {
	t.Helper()
	local, ok := p.(types.LocalGroups)
	require.True(t, ok, "expected LocalGroups, got %T", p)

	var out [][]string
	for _, g := range local.Groups() {
		out = append(out, g.Paths())
	}
	return out, local.OpenIndex()
}

func groupedSeries(t *testing.T, p types.LaunchPlan) ([][]string, types.DicomwebGrouped) {
	t.Helper()
	grouped, ok := p.(types.DicomwebGrouped)
	require.True(t, ok, "expected DicomwebGrouped, got %T", p)

	var out [][]string
	for _, g := range grouped.Groups() {
		out = append(out, g.SeriesUIDs())
	}
	return out, grouped
}

func TestResolveArgs(t *testing.T) {
	t.Run("single path", func(t *testing.T) {
		p, err := ResolveArgs([]string{"a.dcm"})
		require.NoError(t, err)
		groups, open := localPaths(t, p)
		require.Equal(t, [][]string{{"a.dcm"}}, groups)
		require.Equal(t, 0, open)
	})

	t.Run("four paths", func(t *testing.T) {
		p, err := ResolveArgs([]string{"a.dcm", "b.dcm", "c.dcm", "d.dcm"})
		require.NoError(t, err)
		groups, _ := localPaths(t, p)
		require.Equal(t, [][]string{{"a.dcm", "b.dcm", "c.dcm", "d.dcm"}}, groups)
	})

	t.Run("open flag", func(t *testing.T) {
		p, err := ResolveArgs([]string{"--open", "a.dcm"})
		require.NoError(t, err)
		groups, _ := localPaths(t, p)
		require.Equal(t, [][]string{{"a.dcm"}}, groups)
	})

	t.Run("no args", func(t *testing.T) {
		p, err := ResolveArgs(nil)
		require.NoError(t, err)
		require.Equal(t, types.EmptyLaunch{}, p)
	})

	t.Run("url activation", func(t *testing.T) {
		p, err := ResolveArgs([]string{"perspecta://open?path=example-data%2Fa.dcm"})
		require.NoError(t, err)
		groups, _ := localPaths(t, p)
		require.Equal(t, [][]string{{"example-data/a.dcm"}}, groups)
	})

	for _, n := range []int{2, 3, 5} {
		t.Run(fmt.Sprintf("%d paths", n), func(t *testing.T) {
			args := make([]string, n)
			for i := range args {
				args[i] = fmt.Sprintf("%d.dcm", i)
			}
			p, err := ResolveArgs(args)
			require.ErrorIs(t, err, perrors.ErrInvalidGroupSize)
			require.Nil(t, p)
		})
	}

	t.Run("open flag without paths", func(t *testing.T) {
		_, err := ResolveArgs([]string{"--open"})
		require.ErrorIs(t, err, perrors.ErrInvalidGroupSize)
	})
}

func TestResolveURL_LocalGroups(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		wantGroups [][]string
		wantOpen   int
	}{
		{
			name:       "single path",
			url:        "perspecta://open?path=example-data%2Fa.dcm",
			wantGroups: [][]string{{"example-data/a.dcm"}},
		},
		{
			name: "repeated path params",
			url:  "perspecta://open?path=example-data%2Frcc.dcm&path=example-data%2Flcc.dcm&path=example-data%2Frmlo.dcm&path=example-data%2Flmlo.dcm",
			wantGroups: [][]string{{
				"example-data/rcc.dcm", "example-data/lcc.dcm", "example-data/rmlo.dcm", "example-data/lmlo.dcm",
			}},
		},
		{
			name:       "mixed path keys in encounter order",
			url:        "perspecta://open?file=a.dcm&paths=b.dcm,c.dcm&path=d.dcm",
			wantGroups: [][]string{{"a.dcm", "b.dcm", "c.dcm", "d.dcm"}},
		},
		{
			name:       "files with pipes",
			url:        "perspecta://open?files=a.dcm|b.dcm|c.dcm|d.dcm",
			wantGroups: [][]string{{"a.dcm", "b.dcm", "c.dcm", "d.dcm"}},
		},
		{
			name:       "groups with open_group",
			url:        "perspecta://open?groups=a|b|c|d;e&open_group=1",
			wantGroups: [][]string{{"a", "b", "c", "d"}, {"e"}},
			wantOpen:   1,
		},
		{
			name: "repeated group params",
			url:  "perspecta://open?group=example-data%2Frcc.dcm|example-data%2Flcc.dcm|example-data%2Frmlo.dcm|example-data%2Flmlo.dcm&group=example-data%2Freport.dcm",
			wantGroups: [][]string{
				{"example-data/rcc.dcm", "example-data/lcc.dcm", "example-data/rmlo.dcm", "example-data/lmlo.dcm"},
				{"example-data/report.dcm"},
			},
		},
		{
			name:       "group and groups interleaved",
			url:        "perspecta://open?group=a&groups=b;c|d|e|f&group=g&open_group=3",
			wantGroups: [][]string{{"a"}, {"b"}, {"c", "d", "e", "f"}, {"g"}},
			wantOpen:   3,
		},
		{
			name:       "group wins over path",
			url:        "perspecta://open?path=ignored.dcm&group=a.dcm",
			wantGroups: [][]string{{"a.dcm"}},
		},
		{
			name:       "blank open_group defaults to zero",
			url:        "perspecta://open?group=a&group=b&open_group=",
			wantGroups: [][]string{{"a"}, {"b"}},
		},
		{
			name:       "last open_group wins",
			url:        "perspecta://open?group=a&group=b&open_group=0&open_group=1",
			wantGroups: [][]string{{"a"}, {"b"}},
			wantOpen:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ResolveURL(tt.url)
			require.NoError(t, err)
			groups, open := localPaths(t, p)
			require.Equal(t, tt.wantGroups, groups)
			require.Equal(t, tt.wantOpen, open)
		})
	}
}

func TestResolveURL_DicomwebSingle(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		wantBase     string
		wantStudy    string
		wantSeries   string
		wantInstance string
		wantUser     string
	}{
		{
			name:       "endpoint with series",
			url:        "perspecta://open?dicomweb=http%3A%2F%2Flocalhost%3A8042%2Fdicom-web&study=study_uid_alpha&series=series_uid_beta",
			wantBase:   "http://localhost:8042/dicom-web",
			wantStudy:  "study_uid_alpha",
			wantSeries: "series_uid_beta",
		},
		{
			name:      "server root with auth",
			url:       "perspecta://open?dicomweb=http%3A%2F%2Flocalhost%3A8042&study_instance_uid=study_uid_alpha&user=vieweruser&password=viewerpass",
			wantBase:  "http://localhost:8042/dicom-web",
			wantStudy: "study_uid_alpha",
			wantUser:  "vieweruser",
		},
		{
			name:         "embedded path extracts uids",
			url:          "perspecta://open?dicomweb=http%3A%2F%2Flocalhost%3A8042%2Fdicom-web%2Fstudies%2Fstudy_uid_alpha%2Fseries%2Fseries_uid_beta%2Finstances%2Finstance_uid_gamma",
			wantBase:     "http://localhost:8042/dicom-web",
			wantStudy:    "study_uid_alpha",
			wantSeries:   "series_uid_beta",
			wantInstance: "instance_uid_gamma",
		},
		{
			name:      "open_group ignored in single mode",
			url:       "perspecta://open?dicomweb=http%3A%2F%2Fh%3A8042&study=S1&open_group=2",
			wantBase:  "http://h:8042/dicom-web",
			wantStudy: "S1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ResolveURL(tt.url)
			require.NoError(t, err)

			single, ok := p.(types.DicomwebSingle)
			require.True(t, ok, "expected DicomwebSingle, got %T", p)
			target := single.Target()
			require.Equal(t, tt.wantBase, target.BaseURL())
			require.Equal(t, tt.wantStudy, target.StudyUID())
			require.Equal(t, tt.wantSeries, target.SeriesUID())
			require.Equal(t, tt.wantInstance, target.InstanceUID())
			require.Equal(t, tt.wantUser, target.Credentials().Username())
		})
	}
}

func TestResolveURL_DicomwebGrouped(t *testing.T) {
	p, err := ResolveURL("perspecta://open?dicomweb=http%3A%2F%2Flocalhost%3A8042%2Fdicom-web&study=study_uid_alpha&group_series=series_a|series_b|series_c|series_d&group_series=series_report&open_group=0")
	require.NoError(t, err)

	groups, grouped := groupedSeries(t, p)
	require.Equal(t, [][]string{{"series_a", "series_b", "series_c", "series_d"}, {"series_report"}}, groups)
	require.Equal(t, 0, grouped.OpenIndex())
	require.Equal(t, "study_uid_alpha", grouped.StudyUID())
	require.Equal(t, "http://localhost:8042/dicom-web", grouped.Base().URL())
	require.Nil(t, grouped.Base().Credentials())

	p, err = ResolveURL("perspecta://open?dicomweb=http%3A%2F%2Fh&study=st&group_series=a;b;c&open_group=2&auth=Ym9iOnNlY3JldA%3D%3D")
	require.NoError(t, err)
	groups, grouped = groupedSeries(t, p)
	require.Equal(t, [][]string{{"a"}, {"b"}, {"c"}}, groups)
	require.Equal(t, 2, grouped.OpenIndex())
	require.Equal(t, "bob", grouped.Base().Credentials().Username())
	require.Equal(t, "secret", grouped.Base().Credentials().Password())
}

func TestResolveURL_Empty(t *testing.T) {
	for _, raw := range []string{"perspecta://open", "perspecta://open?", "perspecta://open?foo=bar&path=", "perspecta://open?study=orphan"} {
		t.Run(raw, func(t *testing.T) {
			p, err := ResolveURL(raw)
			require.NoError(t, err)
			require.Equal(t, types.EmptyLaunch{}, p)
		})
	}
}

func TestResolveURL_Errors(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr error
	}{
		{"group of three", "perspecta://open?group=a|b|c&open_group=0", perrors.ErrInvalidGroupSize},
		{"second group invalid", "perspecta://open?groups=a;b|c", perrors.ErrInvalidGroupSize},
		{"implicit group of two", "perspecta://open?path=a&path=b", perrors.ErrInvalidGroupSize},
		{"implicit group of five", "perspecta://open?paths=a,b,c,d,e", perrors.ErrInvalidGroupSize},
		{"path then dicomweb", "perspecta://open?path=a.dcm&dicomweb=http%3A%2F%2Fh&study=s", perrors.ErrMixedLaunchMode},
		{"dicomweb then path", "perspecta://open?dicomweb=http%3A%2F%2Fh&study=s&path=a.dcm", perrors.ErrMixedLaunchMode},
		{"groups and dicomweb", "perspecta://open?groups=a;b&dicomweb=http%3A%2F%2Fh&study=s", perrors.ErrMixedLaunchMode},
		{"missing study", "perspecta://open?dicomweb=http%3A%2F%2Flocalhost%3A8042%2Fdicom-web", perrors.ErrMissingStudyUID},
		{"grouped missing study", "perspecta://open?dicomweb=http%3A%2F%2Fh&group_series=a", perrors.ErrMissingStudyUID},
		{"user without password", "perspecta://open?dicomweb=http%3A%2F%2Flocalhost%3A8042%2Fdicom-web&study=study_uid_alpha&user=vieweruser", perrors.ErrIncompleteCredentials},
		{"user alone", "perspecta://open?user=bob", perrors.ErrIncompleteCredentials},
		{"auth and pair", "perspecta://open?dicomweb=http%3A%2F%2Fh&study=s&auth=Ym9iOnNlY3JldA%3D%3D&user=bob&password=secret", perrors.ErrAmbiguousCredentials},
		{"auth malformed", "perspecta://open?dicomweb=http%3A%2F%2Fh&study=s&auth=bob-secret", perrors.ErrMalformedAuth},
		{"credentials without dicomweb", "perspecta://open?path=a.dcm&user=bob&password=secret", perrors.ErrMissingDicomwebURL},
		{"group_series without dicomweb", "perspecta://open?study=study_uid_alpha&group_series=series_a|series_b|series_c|series_d", perrors.ErrMissingDicomwebURL},
		{"open_group not a number", "perspecta://open?group=a&open_group=first", perrors.ErrMalformedOpenGroup},
		{"open_group negative", "perspecta://open?group=a&open_group=-1", perrors.ErrMalformedOpenGroup},
		{"open_group signed", "perspecta://open?group=a&open_group=%2B1", perrors.ErrMalformedOpenGroup},
		{"open_group malformed in single mode", "perspecta://open?dicomweb=http%3A%2F%2Fh&study=s&open_group=x", perrors.ErrMalformedOpenGroup},
		{"open_group past local groups", "perspecta://open?group=a&group=b&open_group=2", perrors.ErrOpenGroupOutOfRange},
		{"open_group past series groups", "perspecta://open?dicomweb=http%3A%2F%2Fh&study=s&group_series=a&open_group=1", perrors.ErrOpenGroupOutOfRange},
		{"bad dicomweb URL", "perspecta://open?dicomweb=localhost&study=s", perrors.ErrMalformedURL},
		{"dicomweb URL with userinfo", "perspecta://open?dicomweb=http%3A%2F%2Fbob%3Ahunter2%40h&study=s", perrors.ErrMalformedURL},
		{"groups with only delimiters", "perspecta://open?groups=;&path=a.dcm", perrors.ErrInvalidGroupSize},
		{"group with only delimiters", "perspecta://open?group=|&path=a.dcm", perrors.ErrInvalidGroupSize},
		{"bad escape", "perspecta://open?path=%E0%A4%A", perrors.ErrMalformedURL},
		{"unknown scheme", "https://open?path=a.dcm", perrors.ErrUnknownScheme},
		{"unsupported command", "perspecta://close?path=a.dcm", perrors.ErrUnsupportedCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ResolveURL(tt.url)
			require.ErrorIs(t, err, tt.wantErr)
			require.Nil(t, p, "a failed resolution must not produce a plan")
		})
	}
}

func TestResolveURL_GroupSizeErrorDetails(t *testing.T) {
	_, err := ResolveURL("perspecta://open?groups=a|b|c|d;e|f")

	var sizeErr *perrors.GroupSizeError
	require.ErrorAs(t, err, &sizeErr)
	require.Equal(t, KeyGroups, sizeErr.Param)
	require.Equal(t, 1, sizeErr.Index)
	require.Equal(t, 2, sizeErr.Size)
}

func TestResolver_Strict(t *testing.T) {
	strict := New(WithStrictParams(true))
	require.True(t, strict.Strict())

	_, err := strict.ResolveURL("perspecta://open?path=ignored.dcm&group=a.dcm")
	require.ErrorIs(t, err, perrors.ErrAmbiguousParameters)

	_, err = strict.ResolveURL("perspecta://open?dicomweb=http%3A%2F%2Fh&study=s&instance=i&group_series=a")
	require.ErrorIs(t, err, perrors.ErrAmbiguousParameters)

	p, err := strict.ResolveURL("perspecta://open?group=a.dcm")
	require.NoError(t, err)
	groups, _ := localPaths(t, p)
	require.Equal(t, [][]string{{"a.dcm"}}, groups)

	require.False(t, New().Strict())
}

func TestResolve_OpenIndexAlwaysInRange(t *testing.T) {
	queries := []string{
		"group=a&group=b&group=c",
		"groups=a|b|c|d;e;f|g|h|i",
		"path=a",
		"dicomweb=http%3A%2F%2Fh&study=s&group_series=a;b;c|d|e|f",
	}

	for _, q := range queries {
		for open := 0; open < 5; open++ {
			raw := fmt.Sprintf("perspecta://open?%s&open_group=%d", q, open)
			p, err := ResolveURL(raw)
			if err != nil {
				require.ErrorIs(t, err, perrors.ErrOpenGroupOutOfRange, raw)
				continue
			}
			switch plan := p.(type) {
			case types.LocalGroups:
				require.Less(t, plan.OpenIndex(), len(plan.Groups()), raw)
			case types.DicomwebGrouped:
				require.Less(t, plan.OpenIndex(), len(plan.Groups()), raw)
			default:
				t.Fatalf("unexpected plan %T for %s", p, raw)
			}
		}
	}
}

func TestResolve_Concurrent(t *testing.T) {
	r := New()
	urls := []string{
		"perspecta://open?groups=a|b|c|d;e&open_group=1",
		"perspecta://open?dicomweb=http%3A%2F%2Fh&study=s",
	}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(raw string) {
			defer wg.Done()
			p, err := r.ResolveURL(raw)
			if err != nil || p == nil {
				t.Errorf("ResolveURL(%q) = %v, %v", raw, p, err)
			}
		}(urls[i%len(urls)])
	}
	wg.Wait()
}

func TestResolveArgs_SchemePrefixWithoutSlashesIsAPath(t *testing.T) {
	p, err := ResolveArgs([]string{"perspecta:notes.dcm"})
	require.NoError(t, err)
	groups, _ := localPaths(t, p)
	require.Equal(t, [][]string{{"perspecta:notes.dcm"}}, groups)
}

func TestResolveURL_StandaloneBasicToken(t *testing.T) {
	// A colon-free auth value is accepted when it is a base64 user:password token.
	p, err := ResolveURL("perspecta://open?dicomweb=http%3A%2F%2Fh&study=s&auth=Ym9iOnNlY3JldA%3D%3D")
	require.NoError(t, err)

	single, ok := p.(types.DicomwebSingle)
	require.True(t, ok, "expected DicomwebSingle, got %T", p)
	require.Equal(t, "bob", single.Target().Credentials().Username())
	require.Equal(t, "secret", single.Target().Credentials().Password())

	_, err = ResolveURL("perspecta://open?dicomweb=http%3A%2F%2Fh&study=s&auth=bobsecret")
	require.ErrorIs(t, err, perrors.ErrMalformedAuth)
}
