package query

import (
	"net/url"
	"strings"
	"testing"
	"time"

	apierrors "overlayapi/internal/errors"
	"overlayapi/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTxid = strings.Repeat("ab", 32)

func requireValidationCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	apiErr := apierrors.AsAPIError(err)
	assert.Equal(t, 400, apiErr.Status)
	assert.Equal(t, code, apiErr.Code)
}

func TestParseQuerySpec_Defaults(t *testing.T) {
	spec, err := ParseQuerySpec(url.Values{})
	require.NoError(t, err)

	assert.True(t, spec.Valid())
	assert.Equal(t, 50, spec.Limit())
	assert.Equal(t, 0, spec.Skip())
	assert.Equal(t, models.SortDescending, spec.SortOrder())
	_, hasTxid := spec.Txid()
	assert.False(t, hasTxid)
	_, hasStart := spec.StartDate()
	assert.False(t, hasStart)
	_, hasEnd := spec.EndDate()
	assert.False(t, hasEnd)
}

func TestQuerySpec_OnlyParsedSpecsAreValid(t *testing.T) {
	assert.False(t, QuerySpec{}.Valid())

	spec, err := ParseQuerySpec(url.Values{})
	require.NoError(t, err)
	assert.True(t, spec.Valid())

	_, err = ParseQuerySpec(url.Values{"limit": {"-3"}})
	require.Error(t, err)
}

func TestParseQuerySpec_EmptyValuesAreAbsent(t *testing.T) {
	spec, err := ParseQuerySpec(url.Values{
		"txid":      {""},
		"limit":     {""},
		"skip":      {""},
		"startDate": {""},
		"endDate":   {""},
		"sortOrder": {""},
	})
	require.NoError(t, err)
	assert.Equal(t, defaultQuerySpec(), spec)
}

func TestParseQuerySpec_Txid(t *testing.T) {
	t.Run("should accept 64 hex characters in either case", func(t *testing.T) {
		for _, txid := range []string{testTxid, strings.ToUpper(testTxid)} {
			spec, err := ParseQuerySpec(url.Values{"txid": {txid}})
			require.NoError(t, err)
			got, ok := spec.Txid()
			assert.True(t, ok)
			assert.Equal(t, txid, got)
		}
	})

	invalid := map[string]string{
		"too short":     testTxid[:63],
		"too long":      testTxid + "a",
		"non hex":       strings.Repeat("zz", 32),
		"0x prefixed":   "0x" + testTxid[:62],
		"inner space":   testTxid[:32] + " " + testTxid[33:],
		"short literal": "abc",
	}
	for name, txid := range invalid {
		t.Run("should reject "+name, func(t *testing.T) {
			_, err := ParseQuerySpec(url.Values{"txid": {txid}})
			requireValidationCode(t, err, apierrors.ErrInvalidTxid)
		})
	}
}

func TestParseQuerySpec_LimitIsClamped(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"0", 1},
		{"1", 1},
		{"5", 5},
		{"100", 100},
		{"101", 100},
		{"250", 100},
		{"99999999999999999999999", 100},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			spec, err := ParseQuerySpec(url.Values{"limit": {tt.input}})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, spec.Limit())
		})
	}
}

func TestParseQuerySpec_InvalidLimit(t *testing.T) {
	for _, input := range []string{"-1", "ten", "1.5", "+5", "5a"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseQuerySpec(url.Values{"limit": {input}})
			requireValidationCode(t, err, apierrors.ErrInvalidLimit)
		})
	}
}

func TestParseQuerySpec_Skip(t *testing.T) {
	t.Run("should keep large skip values unbounded", func(t *testing.T) {
		spec, err := ParseQuerySpec(url.Values{"skip": {"1000000"}})
		require.NoError(t, err)
		assert.Equal(t, 1000000, spec.Skip())
	})

	for _, input := range []string{"-1", "abc", "2.0", "99999999999999999999999"} {
		t.Run("should reject "+input, func(t *testing.T) {
			_, err := ParseQuerySpec(url.Values{"skip": {input}})
			requireValidationCode(t, err, apierrors.ErrInvalidSkip)
		})
	}
}

func TestParseQuerySpec_Dates(t *testing.T) {
	t.Run("should accept ISO 8601 forms", func(t *testing.T) {
		tests := map[string]time.Time{
			"2024-03-01":                time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			"2024-03-01T10:20:30":       time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC),
			"2024-03-01T10:20:30Z":      time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC),
			"2024-03-01T10:20:30.5Z":    time.Date(2024, 3, 1, 10, 20, 30, 500000000, time.UTC),
			"2024-03-01T12:20:30+02:00": time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC),
		}
		for input, expected := range tests {
			spec, err := ParseQuerySpec(url.Values{"startDate": {input}})
			require.NoError(t, err, input)
			got, ok := spec.StartDate()
			require.True(t, ok)
			assert.True(t, expected.Equal(got), "%s parsed as %s", input, got)
		}
	})

	for _, input := range []string{"yesterday", "2024-13-01", "2024-02-30", "01/02/2024", "1700000000"} {
		t.Run("should reject "+input, func(t *testing.T) {
			_, err := ParseQuerySpec(url.Values{"endDate": {input}})
			requireValidationCode(t, err, apierrors.ErrInvalidDate)
		})
	}

	t.Run("should accept equal bounds", func(t *testing.T) {
		_, err := ParseQuerySpec(url.Values{"startDate": {"2024-03-01"}, "endDate": {"2024-03-01"}})
		require.NoError(t, err)
	})
}

func TestParseQuerySpec_InvertedRange(t *testing.T) {
	base := url.Values{"startDate": {"2024-03-02"}, "endDate": {"2024-03-01"}}

	extras := []url.Values{
		{},
		{"txid": {testTxid}},
		{"limit": {"500"}},
		{"skip": {"10"}},
		{"sortOrder": {"asc"}},
		{"txid": {testTxid}, "limit": {"0"}, "skip": {"3"}, "sortOrder": {"desc"}},
	}
	for _, extra := range extras {
		values := url.Values{}
		for k, v := range base {
			values[k] = v
		}
		for k, v := range extra {
			values[k] = v
		}
		_, err := ParseQuerySpec(values)
		requireValidationCode(t, err, apierrors.ErrInvalidDateRange)
	}
}

func TestParseQuerySpec_SortOrder(t *testing.T) {
	for _, input := range []string{"asc", "desc"} {
		spec, err := ParseQuerySpec(url.Values{"sortOrder": {input}})
		require.NoError(t, err)
		assert.Equal(t, models.SortOrder(input), spec.SortOrder())
	}

	for _, input := range []string{"ASC", "Desc", "ascending", "descending", "1", "-1", " asc", "asc "} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseQuerySpec(url.Values{"sortOrder": {input}})
			requireValidationCode(t, err, apierrors.ErrInvalidSortOrder)
		})
	}
}

func TestParseQuerySpec_Echo(t *testing.T) {
	spec, err := ParseQuerySpec(url.Values{
		"txid":      {testTxid},
		"limit":     {"500"},
		"startDate": {"2024-03-01"},
		"sortOrder": {"asc"},
	})
	require.NoError(t, err)

	echo := spec.Echo()
	require.NotNil(t, echo.Txid)
	assert.Equal(t, testTxid, *echo.Txid)
	assert.Equal(t, 100, echo.Limit)
	assert.Equal(t, 0, echo.Skip)
	require.NotNil(t, echo.StartDate)
	assert.Equal(t, "2024-03-01T00:00:00Z", *echo.StartDate)
	assert.Nil(t, echo.EndDate)
	assert.Equal(t, models.SortAscending, echo.SortOrder)
}
