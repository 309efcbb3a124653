package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pfrederiksen/abs-calendar/internal/api"
	"github.com/pfrederiksen/abs-calendar/internal/config"
	"github.com/pfrederiksen/abs-calendar/internal/release"
)

type stubSource struct {
	records []*release.Record
	err     error
}

func (s stubSource) FetchReleases(context.Context) ([]*release.Record, error) {
	return s.records, s.err
}

// useSource swaps the release source factory for the duration of a test.
func useSource(t *testing.T, src api.ReleaseSource) {
	t.Helper()
	orig := newSource
	newSource = func(config.Config, *zap.Logger) api.ReleaseSource { return src }
	t.Cleanup(func() { newSource = orig })
}

func sampleReleases(t *testing.T) []*release.Record {
	t.Helper()
	cpiTime, err := release.ParseTime("2025-12-17T00:30:00+11:00")
	require.NoError(t, err)
	labourTime, err := release.ParseTime("2026-01-08T11:30:00+11:00")
	require.NoError(t, err)
	return []*release.Record{
		release.NewRecord(cpiTime, "Consumer Price Index", "Monthly CPI indicator", "Nov 2025",
			"https://www.abs.gov.au/statistics/economy/price-indexes-and-inflation/consumer-price-index-australia/latest-release"),
		release.NewRecord(labourTime, "Labour Account Australia", "", "Sep 2025", ""),
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestFetch_JSONByDefault(t *testing.T) {
	useSource(t, stubSource{records: sampleReleases(t)})

	out, err := execute(t, "fetch")
	require.NoError(t, err)

	var got []release.Record
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Consumer Price Index", got[0].Title)
	assert.Equal(t, "economy", got[0].Theme)
}

func TestFetch_ICalendar(t *testing.T) {
	useSource(t, stubSource{records: sampleReleases(t)})

	out, err := execute(t, "fetch", "--format", "icalendar")
	require.NoError(t, err)
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20251217")

	out, err = execute(t, "fetch", "--format", "icalendar", "--allday", "false")
	require.NoError(t, err)
	assert.Contains(t, out, "DTSTART:20251216T133000Z")
}

func TestFetch_Filters(t *testing.T) {
	useSource(t, stubSource{records: sampleReleases(t)})

	out, err := execute(t, "fetch", "--filter", "referencePeriod=Sep 2025", "--filter", "theme=nope")
	require.NoError(t, err)

	var got []release.Record
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Labour Account Australia", got[0].Title)

	out, err = execute(t, "fetch", "--filter", "title=none")
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(out))
}

func TestFetch_AllDayIgnoredForJSON(t *testing.T) {
	useSource(t, stubSource{records: sampleReleases(t)})

	out, err := execute(t, "fetch", "--allday", "Mars/Olympus")
	require.NoError(t, err)

	var got []release.Record
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got, 2)
}

func TestFetch_OutputFile(t *testing.T) {
	useSource(t, stubSource{records: sampleReleases(t)})

	path := filepath.Join(t.TempDir(), "abs.ics")
	out, err := execute(t, "fetch", "--format", "icalendar", "--output", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "BEGIN:VCALENDAR")
}

func TestFetch_Errors(t *testing.T) {
	tests := []struct {
		name    string
		source  stubSource
		args    []string
		wantErr string
	}{
		{"invalid format", stubSource{}, []string{"fetch", "--format", "xml"}, "invalid format"},
		{"invalid filter", stubSource{}, []string{"fetch", "--filter", "theme"}, "invalid filter"},
		{"unknown timezone", stubSource{}, []string{"fetch", "--format", "icalendar", "--allday", "Mars/Olympus"}, "unknown timezone"},
		{"scrape failure", stubSource{err: errors.New("unexpected status code 503")}, []string{"fetch"}, "fetching releases"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useSource(t, tt.source)
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd()
	names := make([]string, 0, len(cmd.Commands()))
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "fetch")
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
}
