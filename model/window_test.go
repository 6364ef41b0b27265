package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dateAgo returns the local calendar date offset days before today.
func dateAgo(offset int) string {
	return time.Now().AddDate(0, 0, -offset).Format("2006-01-02")
}

func statsWithClickDates(offsets ...int) *Statistics {
	entries := make([]BreakdownEntry, 0, len(offsets))
	for _, offset := range offsets {
		entries = append(entries, BreakdownEntry{Key: dateAgo(offset), Count: offset * 10})
	}
	return &Statistics{
		ClicksByDate:       NewBreakdown(entries...),
		UniqueClicksByDate: NewBreakdown(entries...),
	}
}

func TestLastNDays_Window(t *testing.T) {
	s := statsWithClickDates(1, 3, 5, 10, 15)

	t.Run("7 day window keeps offsets 1 3 5", func(t *testing.T) {
		got, err := s.LastNDays(7)
		require.NoError(t, err)
		assert.Len(t, got, 3)
		for _, offset := range []int{1, 3, 5} {
			assert.Equal(t, offset*10, got[dateAgo(offset)])
		}
	})

	t.Run("20 day window keeps everything", func(t *testing.T) {
		got, err := s.LastNDays(20)
		require.NoError(t, err)
		assert.Len(t, got, 5)
	})

	t.Run("0 day window with no entries today", func(t *testing.T) {
		_, err := s.LastNDays(0)
		var noData *NoDataInWindowError
		require.ErrorAs(t, err, &noData)
		assert.Equal(t, 0, noData.Days)
	})

	t.Run("0 day window keeps an entry dated today", func(t *testing.T) {
		today := statsWithClickDates(0)
		got, err := today.LastNDays(0)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}

func TestLastNDaysUnique(t *testing.T) {
	s := statsWithClickDates(1, 3, 5, 10, 15)
	got, err := s.LastNDaysUnique(7)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestLastNDays_MalformedDate(t *testing.T) {
	s := &Statistics{ClicksByDate: NewBreakdown(
		BreakdownEntry{Key: dateAgo(1), Count: 5},
		BreakdownEntry{Key: "January 5th", Count: 2},
	)}

	_, err := s.LastNDays(7)
	var malformed *MalformedDateError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "January 5th", malformed.Value)
}

func TestLastNDays_EmptyDatasetStillWindowError(t *testing.T) {
	// An all-empty dataset surfaces through the same window error; the Days
	// value tells the caller which request produced nothing.
	s := &Statistics{ClicksByDate: NewBreakdown()}
	_, err := s.LastNDays(30)
	var noData *NoDataInWindowError
	require.ErrorAs(t, err, &noData)
	assert.Equal(t, 30, noData.Days)
}
