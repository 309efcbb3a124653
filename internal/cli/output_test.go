package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/abs-calendar/internal/calendar"
	"github.com/pfrederiksen/abs-calendar/internal/release"
)

func TestWriteOutput_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, sampleReleases(t), FormatJSON, calendar.Options{}, false))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Nov 2025", got[0]["referencePeriod"])
	assert.NotContains(t, got[1], "theme")
}

func TestWriteOutput_JSONEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, nil, FormatJSON, calendar.Options{}, false))
	assert.Equal(t, "[]", strings.TrimSpace(buf.String()))
}

func TestWriteOutput_Text(t *testing.T) {
	t.Parallel()

	loc, err := time.LoadLocation("Australia/Melbourne")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, sampleReleases(t), FormatText, calendar.Options{AllDay: loc}, false))
	out := buf.String()
	assert.Contains(t, out, "2025-12-17  Consumer Price Index for Nov 2025")
	assert.Contains(t, out, "2026-01-08  Labour Account Australia for Sep 2025")
	assert.Contains(t, out, "Total: 2 releases")
	assert.NotContains(t, out, "UID:")
}

func TestWriteOutput_TextVerbose(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, sampleReleases(t), FormatText, calendar.Options{}, true))
	out := buf.String()
	assert.Contains(t, out, "2025-12-17T00:30:00+11:00  Consumer Price Index for Nov 2025")
	assert.Contains(t, out, "UID: Consumer-Price-Index-Nov-2025-2025-12-17T00-30-00-11-00")
	assert.Contains(t, out, "Topic: economy / price-indexes-and-inflation / consumer-price-index-australia")
	assert.Contains(t, out, "Description: Monthly CPI indicator")
}

func TestWriteOutput_TextEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, nil, FormatText, calendar.Options{}, false))
	assert.Equal(t, "No releases found.\n", buf.String())
}

func TestWriteOutput_ICalendar(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, sampleReleases(t), FormatICalendar, calendar.Options{}, false))
	assert.Equal(t, 2, strings.Count(buf.String(), "BEGIN:VEVENT"))
	assert.Contains(t, buf.String(), "DTSTART:20251216T133000Z")
}

func TestWriteOutput_UnknownFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := WriteOutput(&buf, nil, OutputFormat("xml"), calendar.Options{}, false)
	require.Error(t, err)
	assert.False(t, OutputFormat("xml").Valid())
	assert.True(t, FormatICalendar.Valid())
}
