// Package search maintains a read-side projection of users in
// Elasticsearch, fed by the event worker. The index is a convenience
// surface; Postgres stays the source of truth.
package search

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const requestTimeout = 3 * time.Second

// NewClient creates an Elasticsearch client with sane transport defaults
// and optional basic auth.
func NewClient(addrs []string, username, password string) (*elasticsearch.Client, error) {
	cfg := elasticsearch.Config{
		Addresses: addrs,
		Username:  username,
		Password:  password,
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: 5 * time.Second,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		},
	}
	return elasticsearch.NewClient(cfg)
}

// UserIndexer writes user documents into a single index.
type UserIndexer struct {
	es    *elasticsearch.Client
	index string
}

func NewUserIndexer(es *elasticsearch.Client, index string) *UserIndexer {
	return &UserIndexer{es: es, index: index}
}

// Index stores (or replaces) the full document for a user.
func (i *UserIndexer) Index(ctx context.Context, userID string, doc map[string]any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{
		Index:      i.index,
		DocumentID: userID,
		Body:       strings.NewReader(string(body)),
		Refresh:    "false",
	}
	return i.do(ctx, userID, req.Do)
}

// UpdateFields applies a partial document update.
func (i *UserIndexer) UpdateFields(ctx context.Context, userID string, fields map[string]any) error {
	body, err := json.Marshal(map[string]any{"doc": fields, "doc_as_upsert": true})
	if err != nil {
		return err
	}
	req := esapi.UpdateRequest{
		Index:      i.index,
		DocumentID: userID,
		Body:       strings.NewReader(string(body)),
	}
	return i.do(ctx, userID, req.Do)
}

func (i *UserIndexer) do(ctx context.Context, userID string, fn func(context.Context, esapi.Transport) (*esapi.Response, error)) error {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := fn(c, i.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("elasticsearch responded %s for user %s", res.Status(), userID)
	}
	return nil
}
