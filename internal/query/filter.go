package query

import "overlayapi/internal/models"

// BuildFilter maps a validated spec to a store filter. It cannot fail: every
// rejection already happened in ParseQuerySpec.
func BuildFilter(spec QuerySpec) models.RecordFilter {
	var filter models.RecordFilter

	if txid, ok := spec.Txid(); ok {
		filter.Txid = &txid
	}
	if start, ok := spec.StartDate(); ok {
		filter.CreatedAfter = &start
	}
	if end, ok := spec.EndDate(); ok {
		filter.CreatedBefore = &end
	}

	return filter
}
