package store

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"overlayapi/internal/models"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"go.uber.org/zap"
)

// bleve stores datetimes as int64 nanoseconds; bounds outside this range are rejected.
var (
	minIndexTime = time.Unix(0, -1<<63+1).UTC()
	maxIndexTime = time.Unix(0, 1<<63-1).UTC()
)

// indexedRecord is the document shape indexed in bleve.
type indexedRecord struct {
	Txid        string    `json:"txid"`
	OutputIndex int       `json:"output_index"`
	CreatedAt   time.Time `json:"created_at"`
}

// FilesystemStore reads records from a local bleve index. It backs single-node
// deployments that do not run a database server.
type FilesystemStore struct {
	index   bleve.Index
	dir     string
	timeout time.Duration
}

// NewFilesystemStore opens the bleve index at the configured directory, creating an
// empty one if none exists.
func NewFilesystemStore(config models.FilesystemStoreConfiguration, timeout time.Duration) (*FilesystemStore, error) {
	dir := config.Directory

	index, err := bleve.Open(dir)
	if err != nil {
		index, err = bleve.New(dir, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("failed to create record index: %w", err)
		}
		zap.L().Info("Created record index", zap.String("directory", dir))
	}

	return &FilesystemStore{index: index, dir: dir, timeout: timeout}, nil
}

func buildIndexMapping() *mapping.IndexMappingImpl {
	keywordMapping := bleve.NewKeywordFieldMapping()
	numericMapping := bleve.NewNumericFieldMapping()
	dateMapping := bleve.NewDateTimeFieldMapping()

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("txid", keywordMapping)
	docMapping.AddFieldMappingsAt("output_index", numericMapping)
	docMapping.AddFieldMappingsAt("created_at", dateMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping

	return indexMapping
}

func documentID(r models.Record) string {
	return fmt.Sprintf("%s:%d", r.Txid, r.OutputIndex)
}

// Index adds records to the index. It is used by the ingestion tooling and tests;
// the HTTP surface never writes.
func (s *FilesystemStore) Index(records ...models.Record) error {
	batch := s.index.NewBatch()
	for _, r := range records {
		doc := indexedRecord{Txid: r.Txid, OutputIndex: r.OutputIndex, CreatedAt: r.CreatedAt.UTC()}
		if err := batch.Index(documentID(r), doc); err != nil {
			return fmt.Errorf("failed to index record %s: %w", documentID(r), err)
		}
	}
	return s.index.Batch(batch)
}

func bleveFilter(f models.RecordFilter) query.Query {
	var queries []query.Query

	if f.Txid != nil {
		termQuery := bleve.NewTermQuery(*f.Txid)
		termQuery.SetField("txid")
		queries = append(queries, termQuery)
	}

	if f.CreatedAfter != nil || f.CreatedBefore != nil {
		dateQuery, ok := bleveDateRange(f.CreatedAfter, f.CreatedBefore)
		if !ok {
			return bleve.NewMatchNoneQuery()
		}
		if dateQuery != nil {
			queries = append(queries, dateQuery)
		}
	}

	if len(queries) == 0 {
		return bleve.NewMatchAllQuery()
	}
	if len(queries) == 1 {
		return queries[0]
	}
	return bleve.NewConjunctionQuery(queries...)
}

// bleveDateRange builds an inclusive range on created_at. Bounds beyond what the
// index can represent are opened; ok is false when the range cannot match anything.
func bleveDateRange(after, before *time.Time) (query.Query, bool) {
	var start, end time.Time

	if after != nil {
		if after.After(maxIndexTime) {
			return nil, false
		}
		if !after.Before(minIndexTime) {
			start = after.UTC()
		}
	}
	if before != nil {
		if before.Before(minIndexTime) {
			return nil, false
		}
		if !before.After(maxIndexTime) {
			end = before.UTC()
		}
	}

	if start.IsZero() && end.IsZero() {
		return nil, true
	}

	inclusive := true
	dateQuery := bleve.NewDateRangeInclusiveQuery(start, end, &inclusive, &inclusive)
	dateQuery.SetField("created_at")
	return dateQuery, true
}

func bleveSort(order models.SortOrder) []string {
	if order == models.SortAscending {
		return []string{"created_at", "txid", "output_index"}
	}
	return []string{"-created_at", "-txid", "-output_index"}
}

func (s *FilesystemStore) Count(ctx context.Context, filter models.RecordFilter) (int64, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	req := bleve.NewSearchRequest(bleveFilter(filter))
	req.Size = 0

	result, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return 0, unavailable(ctx, "count records", err)
	}
	return int64(result.Total), nil
}

func (s *FilesystemStore) Find(ctx context.Context, filter models.RecordFilter, page models.Page) ([]models.Record, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	req := bleve.NewSearchRequestOptions(bleveFilter(filter), page.Limit, page.Skip, false)
	req.SortBy(bleveSort(page.Order))
	req.Fields = []string{"txid", "output_index", "created_at"}

	result, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, unavailable(ctx, "find records", err)
	}

	records := make([]models.Record, 0, len(result.Hits))
	for _, hit := range result.Hits {
		records = append(records, recordFromFields(hit.Fields))
	}
	return records, nil
}

func recordFromFields(fields map[string]any) models.Record {
	var r models.Record
	r.Txid, _ = fields["txid"].(string)
	if outputIndex, ok := fields["output_index"].(float64); ok {
		r.OutputIndex = int(outputIndex)
	}
	if s, ok := fields["created_at"].(string); ok {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			r.CreatedAt = t.UTC()
		}
	}
	return r
}

func (s *FilesystemStore) Metadata(ctx context.Context) (models.DatabaseStats, error) {
	var size int64
	err := filepath.WalkDir(s.dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		size += info.Size()
		return nil
	})
	if err != nil {
		return models.DatabaseStats{}, unavailable(ctx, "index size", err)
	}

	return models.DatabaseStats{
		Collections: 1,
		Indexes:     int64(len(buildIndexMapping().DefaultMapping.Properties)),
		StorageSize: size,
	}, nil
}

func (s *FilesystemStore) Ping(ctx context.Context) error {
	if _, err := s.index.DocCount(); err != nil {
		return unavailable(ctx, "ping", err)
	}
	return nil
}

func (s *FilesystemStore) Close(_ context.Context) error {
	return s.index.Close()
}
