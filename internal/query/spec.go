package query

import (
	"time"

	"overlayapi/internal/configuration"
	"overlayapi/internal/models"
)

// QuerySpec is a validated, bounded records query. The zero value is not usable;
// specs are produced by ParseQuerySpec only.
type QuerySpec struct {
	txid      *string
	limit     int
	skip      int
	startDate *time.Time
	endDate   *time.Time
	sortOrder models.SortOrder
	valid     bool
}

func (s QuerySpec) Txid() (string, bool) {
	if s.txid == nil {
		return "", false
	}
	return *s.txid, true
}

func (s QuerySpec) Limit() int { return s.limit }

func (s QuerySpec) Skip() int { return s.skip }

func (s QuerySpec) StartDate() (time.Time, bool) {
	if s.startDate == nil {
		return time.Time{}, false
	}
	return *s.startDate, true
}

func (s QuerySpec) EndDate() (time.Time, bool) {
	if s.endDate == nil {
		return time.Time{}, false
	}
	return *s.endDate, true
}

func (s QuerySpec) SortOrder() models.SortOrder { return s.sortOrder }

// Valid reports whether the spec went through ParseQuerySpec.
func (s QuerySpec) Valid() bool { return s.valid }

// Echo returns the effective query in its wire form.
func (s QuerySpec) Echo() models.EchoedQuery {
	echo := models.EchoedQuery{
		Txid:      s.txid,
		Limit:     s.limit,
		Skip:      s.skip,
		SortOrder: s.sortOrder,
	}
	if s.startDate != nil {
		v := s.startDate.UTC().Format(time.RFC3339Nano)
		echo.StartDate = &v
	}
	if s.endDate != nil {
		v := s.endDate.UTC().Format(time.RFC3339Nano)
		echo.EndDate = &v
	}
	return echo
}

// defaultQuerySpec is the starting point of ParseQuerySpec.
func defaultQuerySpec() QuerySpec {
	return QuerySpec{
		limit:     configuration.DefaultQueryLimit,
		sortOrder: models.SortDescending,
		valid:     true,
	}
}
