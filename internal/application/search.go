package application

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"cars-api/internal/domain/entity"
)

// indexUser pushes the user's searchable fields to Elasticsearch. Indexing
// is best-effort: failures are logged and never fail the write that
// triggered them.
func (s *UserService) indexUser(ctx context.Context, u *entity.User) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":         u.ID,
		"login":      u.Login,
		"email":      u.Email,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"status":     u.Status,
		"updated_at": u.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{
		Index:      s.ESIndex,
		DocumentID: strconv.FormatInt(u.ID, 10),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
}

// Search runs a multi_match query over login, email, and name fields.
func (s *UserService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"login^2", "email^2", "first_name", "last_name"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
