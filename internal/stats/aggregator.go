package stats

import (
	"context"
	"sync"
	"time"

	"overlayapi/internal/models"

	"golang.org/x/sync/errgroup"
)

// Window is a named trailing duration.
type Window struct {
	Name     string
	Duration time.Duration
}

var (
	Last1h  = Window{Name: "last1h", Duration: time.Hour}
	Last24h = Window{Name: "last24h", Duration: 24 * time.Hour}
	Last7d  = Window{Name: "last7d", Duration: 7 * 24 * time.Hour}
	Last30d = Window{Name: "last30d", Duration: 30 * 24 * time.Hour}
)

var (
	DashboardWindows = []Window{Last24h, Last7d, Last30d}
	AdminWindows     = []Window{Last1h, Last24h, Last7d, Last30d}
)

// Counter is the part of the record store the aggregator needs.
type Counter interface {
	Count(ctx context.Context, filter models.RecordFilter) (int64, error)
}

// Counts maps a window name to the number of records created inside it.
type Counts map[string]int64

func (c Counts) Dashboard() models.DashboardStatistics {
	return models.DashboardStatistics{
		Last24h: c[Last24h.Name],
		Last7d:  c[Last7d.Name],
		Last30d: c[Last30d.Name],
	}
}

func (c Counts) RecentActivity() models.RecentActivity {
	return models.RecentActivity{
		Last1h:  c[Last1h.Name],
		Last24h: c[Last24h.Name],
		Last7d:  c[Last7d.Name],
		Last30d: c[Last30d.Name],
	}
}

type Aggregator struct {
	counter Counter
}

func NewAggregator(counter Counter) *Aggregator {
	return &Aggregator{counter: counter}
}

// Compute counts, for every window, the records with createdAt >= now - window.
// Windows are independent counts against the same now; they are not differences of
// each other. The first failing window aborts the computation.
func (a *Aggregator) Compute(ctx context.Context, now time.Time, windows []Window) (Counts, error) {
	now = now.UTC()
	counts := make(Counts, len(windows))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, window := range windows {
		since := now.Add(-window.Duration)
		g.Go(func() error {
			n, err := a.counter.Count(ctx, models.RecordFilter{CreatedAfter: &since})
			if err != nil {
				return err
			}
			mu.Lock()
			counts[window.Name] = n
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return counts, nil
}
