package query

import "overlayapi/internal/models"

func BuildPage(spec QuerySpec) models.Page {
	return models.Page{
		Limit: spec.Limit(),
		Skip:  spec.Skip(),
		Order: spec.SortOrder(),
	}
}

// RecentPage returns the newest n records.
func RecentPage(n int) models.Page {
	return models.Page{Limit: n, Order: models.SortDescending}
}
