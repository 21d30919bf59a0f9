package dates_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"airrvie/pkg/apperr"
	"airrvie/pkg/dates"
)

func TestParsePlainDate(t *testing.T) {
	got, err := dates.Parse("2026-08-29")
	require.NoError(t, err)
	require.Equal(t, "2026-08-29", dates.Format(got))
}

func TestParseRFC3339Truncates(t *testing.T) {
	got, err := dates.Parse("2026-08-29T15:04:05Z")
	require.NoError(t, err)
	require.Equal(t, "2026-08-29", dates.Format(got))
	require.Zero(t, got.Hour())
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := dates.Parse("29/08/2026")
	require.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestParseOrToday(t *testing.T) {
	got, err := dates.ParseOrToday("")
	require.NoError(t, err)
	require.Equal(t, time.Now().Format(dates.Layout), dates.Format(got))

	got, err = dates.ParseOrToday("2026-01-02")
	require.NoError(t, err)
	require.Equal(t, "2026-01-02", dates.Format(got))
}

func TestFormatPtr(t *testing.T) {
	require.Empty(t, dates.FormatPtr(nil))
	d := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "2026-08-29", dates.FormatPtr(&d))
}
