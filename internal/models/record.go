package models

import "time"

// Record is an overlay entry pointing at a transaction output. Records are written by
// the ingestion pipeline and are only ever read here.
type Record struct {
	Txid        string    `bson:"txid"        gorm:"column:txid;type:varchar(64);primaryKey"      json:"txid"`
	OutputIndex int       `bson:"outputIndex" gorm:"column:output_index;primaryKey;autoIncrement:false" json:"outputIndex"`
	CreatedAt   time.Time `bson:"createdAt"   gorm:"column:created_at;not null;index"             json:"createdAt"`
}

// RecordSummary is the public projection of a Record.
type RecordSummary struct {
	Txid        string `json:"txid"`
	OutputIndex int    `json:"outputIndex"`
}

func (r Record) Summary() RecordSummary {
	return RecordSummary{Txid: r.Txid, OutputIndex: r.OutputIndex}
}

// Summaries never returns nil so empty pages serialize as [].
func Summaries(records []Record) []RecordSummary {
	out := make([]RecordSummary, 0, len(records))
	for _, r := range records {
		out = append(out, r.Summary())
	}
	return out
}

// RecordFilter is the backend-neutral form of a store filter. Nil fields are absent
// predicates; present predicates are combined with AND.
type RecordFilter struct {
	Txid          *string
	CreatedAfter  *time.Time // inclusive
	CreatedBefore *time.Time // inclusive
}

func (f RecordFilter) IsEmpty() bool {
	return f.Txid == nil && f.CreatedAfter == nil && f.CreatedBefore == nil
}

type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// Page carries the bounded pagination and ordering applied to a find.
type Page struct {
	Limit int
	Skip  int
	Order SortOrder
}
