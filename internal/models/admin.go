package models

// DashboardStatistics holds the public trailing-window counts.
type DashboardStatistics struct {
	Last24h int64 `json:"last24h"`
	Last7d  int64 `json:"last7d"`
	Last30d int64 `json:"last30d"`
}

// DashboardResponse is served to the public dashboard.
type DashboardResponse struct {
	TotalRecords  int64               `json:"totalRecords"`
	RecentRecords []RecordSummary     `json:"recentRecords"`
	Statistics    DashboardStatistics `json:"statistics"`
}

// RecordsResponse is the result of a records query. Count is the number of records
// matching the filter, independent of pagination.
type RecordsResponse struct {
	Records []RecordSummary `json:"records"`
	Count   int64           `json:"count"`
	Query   EchoedQuery     `json:"query"`
}

// DatabaseStats describes the backing store.
type DatabaseStats struct {
	Collections int64 `json:"collections"`
	Indexes     int64 `json:"indexes"`
	StorageSize int64 `json:"storageSize"`
}

// RecentActivity holds the admin trailing-window counts.
type RecentActivity struct {
	Last1h  int64 `json:"last1h"`
	Last24h int64 `json:"last24h"`
	Last7d  int64 `json:"last7d"`
	Last30d int64 `json:"last30d"`
}

// AdminStatsResponse contains store-wide statistics for the admin panel.
type AdminStatsResponse struct {
	TotalRecords   int64          `json:"totalRecords"`
	DatabaseStats  DatabaseStats  `json:"databaseStats"`
	RecentActivity RecentActivity `json:"recentActivity"`
}

type DatabaseStatus string

const (
	DatabaseConnected    DatabaseStatus = "connected"
	DatabaseDisconnected DatabaseStatus = "disconnected"
)

type HealthResponse struct {
	Database  DatabaseStatus `json:"database"`
	Timestamp string         `json:"timestamp"`
}
