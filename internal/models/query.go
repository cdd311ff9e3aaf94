package models

// RecordsQueryParams is the raw, untrusted shape of a records query.
// Field order is the order in which validation failures are reported.
type RecordsQueryParams struct {
	Txid      string `validate:"omitempty,txid"`
	Limit     string `validate:"omitempty,number"`
	Skip      string `validate:"omitempty,number"`
	StartDate string `validate:"omitempty,isodate"`
	EndDate   string `validate:"omitempty,isodate"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
}

// EchoedQuery reports the effective query back to the caller.
type EchoedQuery struct {
	Txid      *string   `json:"txid,omitempty"`
	Limit     int       `json:"limit"`
	Skip      int       `json:"skip"`
	StartDate *string   `json:"startDate,omitempty"`
	EndDate   *string   `json:"endDate,omitempty"`
	SortOrder SortOrder `json:"sortOrder"`
}
