package api

import (
	"context"
	"net/url"
	"strconv"
)

// SearchMetadata queries external metadata providers (e.g. by ISBN or title)
// through the server's enrichment endpoint for a library.
func (c *Client) SearchMetadata(ctx context.Context, libraryID, query, searchType string, maxResults int) ([]EnrichmentResult, error) {
	if searchType == "" {
		searchType = "auto"
	}
	q := url.Values{}
	q.Set("query", query)
	q.Set("search_type", searchType)
	q.Set("max_results", strconv.Itoa(maxResults))

	var results []EnrichmentResult
	if err := c.get(ctx, "/libraries/"+libraryID+"/enrichment/search", q, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// PreviewMetadata fetches the full metadata record for one identifier
func (c *Client) PreviewMetadata(ctx context.Context, libraryID, identifier string) (map[string]interface{}, error) {
	var preview map[string]interface{}
	if err := c.get(ctx, "/libraries/"+libraryID+"/enrichment/preview/"+identifier, nil, &preview); err != nil {
		return nil, err
	}
	return preview, nil
}
