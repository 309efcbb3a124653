package scraper

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBase(t *testing.T) *url.URL {
	t.Helper()
	base, err := url.Parse(testRoot)
	require.NoError(t, err)
	return base
}

func TestExtractReleases(t *testing.T) {
	t.Parallel()

	records, err := ExtractReleases(mustDoc(page(pagerHTML, entryCPI, entryPlain)), testBase(t))
	require.NoError(t, err)
	require.Len(t, records, 2)

	cpi := records[0]
	assert.True(t, time.Date(2025, 12, 17, 0, 30, 0, 0, time.UTC).Equal(cpi.Time))
	assert.Equal(t, "Consumer Price Index, Australia", cpi.Title)
	assert.Equal(t, "Monthly CPI indicator", cpi.Description)
	assert.Equal(t, "Nov 2025", cpi.ReferencePeriod)
	assert.Equal(t,
		"https://www.abs.gov.au/statistics/economy/price-indexes-and-inflation/consumer-price-index-australia/latest-release",
		cpi.LatestURL)
	assert.Equal(t, "economy", cpi.Theme)
	assert.Equal(t, "price-indexes-and-inflation", cpi.ParentTopic)
	assert.Equal(t, "consumer-price-index-australia", cpi.Topic)

	plain := records[1]
	assert.Equal(t, "Labour Account Australia", plain.Title)
	assert.Empty(t, plain.Description)
	assert.False(t, plain.HasLatest())
	assert.Empty(t, plain.Theme)
	assert.Empty(t, plain.ParentTopic)
	assert.Empty(t, plain.Topic)
}

func TestExtractReleases_NoEntries(t *testing.T) {
	t.Parallel()

	records, err := ExtractReleases(mustDoc(page(pagerHTML)), testBase(t))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestExtractReleases_MissingRequiredElements(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		entry    string
		selector string
	}{
		{
			name:     "missing time",
			entry:    `<div class="calendar"><div class="event-name">T</div><div class="event-description"></div><div class="reference-period-value">P</div></div>`,
			selector: "time[datetime]",
		},
		{
			name:     "time without datetime",
			entry:    `<div class="calendar"><time>soon</time><div class="event-name">T</div><div class="event-description"></div><div class="reference-period-value">P</div></div>`,
			selector: "time[datetime]",
		},
		{
			name:     "missing title",
			entry:    `<div class="calendar"><time datetime="2025-12-17T11:30:00+11:00"></time><div class="event-description"></div><div class="reference-period-value">P</div></div>`,
			selector: TitleSelector,
		},
		{
			name:     "missing description",
			entry:    `<div class="calendar"><time datetime="2025-12-17T11:30:00+11:00"></time><div class="event-name">T</div><div class="reference-period-value">P</div></div>`,
			selector: DescriptionSelector,
		},
		{
			name:     "missing reference period",
			entry:    `<div class="calendar"><time datetime="2025-12-17T11:30:00+11:00"></time><div class="event-name">T</div><div class="event-description"></div></div>`,
			selector: ReferencePeriodSelector,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractReleases(mustDoc(page(entryCPI, tt.entry)), testBase(t))
			require.ErrorIs(t, err, ErrMissingElement)
			assert.Contains(t, err.Error(), tt.selector)
			assert.Contains(t, err.Error(), "entry 1")
		})
	}
}

func TestExtractReleases_BadDatetime(t *testing.T) {
	t.Parallel()

	entry := `<div class="calendar"><time datetime="next week"></time><div class="event-name">T</div><div class="event-description"></div><div class="reference-period-value">P</div></div>`
	_, err := ExtractReleases(mustDoc(page(entry)), testBase(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "next week")
}
