package application

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/creatorlink/internal/domain/entity"
)

const esTimeout = 3 * time.Second

// ProfileIndex keeps creator profiles searchable in Elasticsearch. A nil client
// turns every call into a no-op.
type ProfileIndex struct {
	ES     *elasticsearch.Client
	Index  string
	Logger *logrus.Logger
}

func NewProfileIndex(es *elasticsearch.Client, index string, logger *logrus.Logger) *ProfileIndex {
	return &ProfileIndex{ES: es, Index: index, Logger: logger}
}

func (p *ProfileIndex) enabled() bool { return p != nil && p.ES != nil && p.Index != "" }

var creatorMapping = `{
  "mappings": {
    "properties": {
      "displayName":        {"type": "text"},
      "username":           {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "bio":                {"type": "text"},
      "location":           {"type": "text"},
      "primaryPlatform":    {"type": "keyword"},
      "categories":         {"type": "keyword"},
      "contentTypes":       {"type": "keyword"},
      "languages":          {"type": "keyword"},
      "collaborationTypes": {"type": "keyword"},
      "followerCount":      {"type": "integer"},
      "ratePerPost":        {"type": "integer"},
      "updatedAt":          {"type": "date"}
    }
  }
}`

// EnsureIndex creates the index with its mapping when it does not exist yet.
func (p *ProfileIndex) EnsureIndex(ctx context.Context) error {
	if !p.enabled() {
		return nil
	}
	c, cancel := context.WithTimeout(ctx, esTimeout)
	defer cancel()

	res, err := p.ES.Indices.Exists([]string{p.Index}, p.ES.Indices.Exists.WithContext(c))
	if err != nil {
		return err
	}
	_ = res.Body.Close()
	if res.StatusCode == 200 {
		return nil
	}

	res, err = p.ES.Indices.Create(p.Index,
		p.ES.Indices.Create.WithContext(c),
		p.ES.Indices.Create.WithBody(strings.NewReader(creatorMapping)),
	)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && !strings.Contains(res.String(), "resource_already_exists_exception") {
		return fmt.Errorf("create index %s: %s", p.Index, res.Status())
	}
	return nil
}

// Put indexes (or replaces) one profile.
func (p *ProfileIndex) Put(ctx context.Context, profile entity.CreatorProfile) error {
	if !p.enabled() {
		return nil
	}
	b, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: p.Index, DocumentID: profile.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, esTimeout)
	defer cancel()
	res, err := req.Do(c, p.ES)
	if err != nil {
		if p.Logger != nil {
			p.Logger.WithError(err).WithField("profile_id", profile.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		if p.Logger != nil {
			p.Logger.WithField("status", res.Status()).WithField("profile_id", profile.ID).Warn("es index response error")
		}
		return fmt.Errorf("index profile: %s", res.Status())
	}
	return nil
}

type SearchQuery struct {
	Text         string
	Category     string
	Platform     string
	MinFollowers int
	Size         int
}

// Search runs a multi_match over names and bio with optional keyword filters.
func (p *ProfileIndex) Search(ctx context.Context, q SearchQuery) ([]entity.CreatorProfile, error) {
	if !p.enabled() {
		return []entity.CreatorProfile{}, nil
	}
	if q.Size <= 0 || q.Size > 50 {
		q.Size = 10
	}

	must := []any{}
	if t := strings.TrimSpace(q.Text); t != "" {
		must = append(must, map[string]any{
			"multi_match": map[string]any{
				"query":  t,
				"fields": []string{"displayName^2", "username^2", "bio", "location"},
			},
		})
	} else {
		must = append(must, map[string]any{"match_all": map[string]any{}})
	}
	filter := []any{}
	if q.Category != "" {
		filter = append(filter, map[string]any{"term": map[string]any{"categories": q.Category}})
	}
	if q.Platform != "" {
		filter = append(filter, map[string]any{"term": map[string]any{"primaryPlatform": strings.ToLower(q.Platform)}})
	}
	if q.MinFollowers > 0 {
		filter = append(filter, map[string]any{"range": map[string]any{"followerCount": map[string]any{"gte": q.MinFollowers}}})
	}
	body := map[string]any{
		"query": map[string]any{"bool": map[string]any{"must": must, "filter": filter}},
		"size":  q.Size,
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, esTimeout)
	defer cancel()

	res, err := p.ES.Search(p.ES.Search.WithContext(c), p.ES.Search.WithIndex(p.Index), p.ES.Search.WithBody(bytes.NewReader(b)))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("search profiles: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source entity.CreatorProfile `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]entity.CreatorProfile, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
