// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/goccy/go-json"

	"github.com/tomtom215/waypoint/internal/metrics"
	"github.com/tomtom215/waypoint/internal/models"
)

const elasticBackend = "elasticsearch"

// ElasticConfig configures the Elasticsearch location source.
type ElasticConfig struct {
	Addresses []string
	Username  string
	Password  string
	Index     string
	PageSize  int
}

// ElasticLocations serves active locations from an Elasticsearch index.
type ElasticLocations struct {
	client   *elasticsearch.Client
	index    string
	pageSize int
}

var _ LocationStore = (*ElasticLocations)(nil)

// NewElasticLocations creates the Elasticsearch client.
func NewElasticLocations(cfg ElasticConfig) (*ElasticLocations, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 500
	}
	index := cfg.Index
	if index == "" {
		index = "locations"
	}
	return &ElasticLocations{client: client, index: index, pageSize: pageSize}, nil
}

// Ping checks the cluster answers.
func (e *ElasticLocations) Ping(ctx context.Context) error {
	res, err := e.client.Ping(e.client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch ping: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("elasticsearch ping: %s", res.Status())
	}
	return nil
}

// locationMapping is the index mapping EnsureIndex creates.
const locationMapping = `{
  "mappings": {
    "properties": {
      "id":           {"type": "keyword"},
      "name":         {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "name_vi":      {"type": "text"},
      "address":      {"type": "text"},
      "district":     {"type": "keyword"},
      "location":     {"type": "geo_point"},
      "rating":       {"type": "float"},
      "review_count": {"type": "integer"},
      "categories":   {"type": "keyword"},
      "price_level":  {"type": "integer"},
      "is_active":    {"type": "boolean"}
    }
  }
}`

// elasticDocument is the indexed form of a location.
type elasticDocument struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	NameVI      string   `json:"name_vi,omitempty"`
	Address     string   `json:"address,omitempty"`
	District    string   `json:"district,omitempty"`
	Location    geoPoint `json:"location"`
	Rating      *float64 `json:"rating,omitempty"`
	ReviewCount int      `json:"review_count"`
	Categories  []string `json:"categories"`
	PriceLevel  int      `json:"price_level,omitempty"`
	IsActive    bool     `json:"is_active"`
}

type geoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func toDocument(l models.Location) elasticDocument {
	categories := l.Categories
	if categories == nil {
		categories = []string{}
	}
	return elasticDocument{
		ID:          l.ID,
		Name:        l.Name,
		NameVI:      l.NameVI,
		Address:     l.Address,
		District:    l.District,
		Location:    geoPoint{Lat: l.Coordinate.Latitude, Lon: l.Coordinate.Longitude},
		Rating:      l.Rating,
		ReviewCount: l.ReviewCount,
		Categories:  categories,
		PriceLevel:  l.PriceLevel,
		IsActive:    l.Active,
	}
}

func (d elasticDocument) toLocation() models.Location {
	categories := d.Categories
	if categories == nil {
		categories = []string{}
	}
	return models.Location{
		ID:          d.ID,
		Name:        d.Name,
		NameVI:      d.NameVI,
		Address:     d.Address,
		District:    d.District,
		Coordinate:  models.Coordinate{Latitude: d.Location.Lat, Longitude: d.Location.Lon},
		Rating:      d.Rating,
		ReviewCount: d.ReviewCount,
		Categories:  categories,
		PriceLevel:  d.PriceLevel,
		Active:      d.IsActive,
	}
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source elasticDocument `json:"_source"`
			Sort   []interface{}   `json:"sort"`
		} `json:"hits"`
	} `json:"hits"`
}

// GetAll pages through every active location with search_after.
func (e *ElasticLocations) GetAll(ctx context.Context) (locations []models.Location, err error) {
	start := time.Now()
	defer func() { metrics.RecordStoreQuery(elasticBackend, "get_all_locations", time.Since(start), err) }()

	locations = make([]models.Location, 0)
	var after []interface{}
	for {
		page, err := e.searchPage(ctx, after)
		if err != nil {
			return nil, err
		}
		for _, hit := range page.Hits.Hits {
			locations = append(locations, hit.Source.toLocation())
		}

		hits := page.Hits.Hits
		if len(hits) < e.pageSize {
			return locations, nil
		}
		after = hits[len(hits)-1].Sort
		if len(after) == 0 {
			return nil, fmt.Errorf("elasticsearch page is missing sort values")
		}
	}
}

func (e *ElasticLocations) searchPage(ctx context.Context, after []interface{}) (*searchResponse, error) {
	query := map[string]interface{}{
		"size": e.pageSize,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []interface{}{
					map[string]interface{}{"term": map[string]interface{}{"is_active": true}},
				},
			},
		},
		"sort": []interface{}{
			map[string]interface{}{"id": "asc"},
		},
	}
	if len(after) > 0 {
		query["search_after"] = after
	}

	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("encode search: %w", err)
	}

	res, err := e.client.Search(
		e.client.Search.WithContext(ctx),
		e.client.Search.WithIndex(e.index),
		e.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("search locations: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 64<<10))
		return nil, fmt.Errorf("search locations: status %d: %s", res.StatusCode, strings.TrimSpace(string(msg)))
	}

	var page searchResponse
	if err := json.NewDecoder(res.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return &page, nil
}

// EnsureIndex creates the index with the location mapping if it is missing.
func (e *ElasticLocations) EnsureIndex(ctx context.Context) error {
	res, err := e.client.Indices.Exists([]string{e.index}, e.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index existence: %w", err)
	}
	_ = res.Body.Close()
	if res.StatusCode == 200 {
		return nil
	}

	res, err = e.client.Indices.Create(
		e.index,
		e.client.Indices.Create.WithBody(strings.NewReader(locationMapping)),
		e.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return fmt.Errorf("create index: status %d: %s", res.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}

// IndexLocations bulk-indexes locations keyed by id and refreshes the index.
func (e *ElasticLocations) IndexLocations(ctx context.Context, locations []models.Location) error {
	if len(locations) == 0 {
		return nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, l := range locations {
		meta := map[string]interface{}{
			"index": map[string]interface{}{"_index": e.index, "_id": l.ID},
		}
		if err := enc.Encode(meta); err != nil {
			return fmt.Errorf("encode bulk meta: %w", err)
		}
		if err := enc.Encode(toDocument(l)); err != nil {
			return fmt.Errorf("encode location %q: %w", l.ID, err)
		}
	}

	req := esapi.BulkRequest{
		Body:    &buf,
		Refresh: "true",
	}
	res, err := req.Do(ctx, e.client)
	if err != nil {
		return fmt.Errorf("bulk index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 64<<10))
		return fmt.Errorf("bulk index: status %d: %s", res.StatusCode, strings.TrimSpace(string(msg)))
	}

	var result struct {
		Errors bool `json:"errors"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode bulk response: %w", err)
	}
	if result.Errors {
		return fmt.Errorf("bulk index: one or more documents were rejected")
	}
	return nil
}
