package repository

import (
	"fmt"
	"sort"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"

	"golang-stock-dashboard/internal/entity"
)

// SuggestionRepository resolves partial symbol or company name input into
// ranked typeahead suggestions.
type SuggestionRepository interface {
	Search(query string, limit int) ([]entity.StockSuggestion, error)
	Close() error
}

type suggestionRepository struct {
	index bleve.Index
}

// NewSuggestionRepository builds an in-memory bleve index over the given
// catalog. The index is small enough to rebuild on every startup.
func NewSuggestionRepository(stocks []entity.CatalogStock) (SuggestionRepository, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create suggestion index: %w", err)
	}

	batch := index.NewBatch()
	for _, stock := range stocks {
		// Symbols can repeat across exchanges, so key by both.
		id := fmt.Sprintf("%s-%s", stock.Symbol, stock.Exchange)
		if err := batch.Index(id, stock); err != nil {
			return nil, fmt.Errorf("failed to add %s to batch: %w", id, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		return nil, fmt.Errorf("failed to index catalog: %w", err)
	}

	return &suggestionRepository{index: index}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()

	stockMapping := bleve.NewDocumentMapping()

	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Store = true
	textFieldMapping.Index = true
	stockMapping.AddFieldMappingsAt("symbol", textFieldMapping)
	stockMapping.AddFieldMappingsAt("name", textFieldMapping)
	stockMapping.AddFieldMappingsAt("exchange", textFieldMapping)
	stockMapping.AddFieldMappingsAt("sector", textFieldMapping)

	popularityFieldMapping := bleve.NewNumericFieldMapping()
	popularityFieldMapping.Store = true
	popularityFieldMapping.Index = true
	stockMapping.AddFieldMappingsAt("popularity_score", popularityFieldMapping)

	indexMapping.AddDocumentMapping("_default", stockMapping)
	return indexMapping
}

// Search combines a symbol prefix query with a name match query and ranks
// hits by bleve relevance blended with catalog popularity.
func (r *suggestionRepository) Search(query string, limit int) ([]entity.StockSuggestion, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}

	symbolQuery := bleve.NewPrefixQuery(q)
	symbolQuery.SetField("symbol")

	nameQuery := bleve.NewMatchQuery(q)
	nameQuery.SetField("name")

	searchRequest := bleve.NewSearchRequest(bleve.NewDisjunctionQuery(symbolQuery, nameQuery))
	searchRequest.Fields = []string{"symbol", "name", "exchange", "popularity_score"}
	searchRequest.Size = limit * 3

	searchResults, err := r.index.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("suggestion search failed: %w", err)
	}

	type scoredHit struct {
		suggestion entity.StockSuggestion
		score      float64
	}

	hits := make([]scoredHit, 0, len(searchResults.Hits))
	for _, hit := range searchResults.Hits {
		suggestion := entity.StockSuggestion{
			Symbol:   fieldString(hit.Fields, "symbol"),
			Exchange: fieldString(hit.Fields, "exchange"),
			Name:     fieldString(hit.Fields, "name"),
		}
		if suggestion.Symbol == "" {
			continue
		}
		popularity := fieldFloat(hit.Fields, "popularity_score")
		hits = append(hits, scoredHit{
			suggestion: suggestion,
			score:      hit.Score + popularity,
		})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })
	if len(hits) > limit {
		hits = hits[:limit]
	}

	suggestions := make([]entity.StockSuggestion, len(hits))
	for i, h := range hits {
		suggestions[i] = h.suggestion
	}
	return suggestions, nil
}

func (r *suggestionRepository) Close() error {
	return r.index.Close()
}

func fieldString(fields map[string]interface{}, key string) string {
	if val, ok := fields[key].(string); ok {
		return val
	}
	return ""
}

func fieldFloat(fields map[string]interface{}, key string) float64 {
	if val, ok := fields[key].(float64); ok {
		return val
	}
	return 0
}
