package concepts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultTimeout bounds each lookup request.
	DefaultTimeout = 30 * time.Second

	// DefaultChunkSize caps how many references one request carries; larger
	// batches are split to keep URLs within server limits.
	DefaultChunkSize = 100

	// conceptRepresentation limits the payload to the fields the audit needs.
	conceptRepresentation = "custom:(uuid,display,datatype:(display))"
)

// Client resolves concepts against an OpenMRS-style REST endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	chunkSize  int
	timeout    time.Duration
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the HTTP timeout. It applies regardless of option order
// and never mutates a client supplied via WithHTTPClient.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithChunkSize overrides how many references are sent per request.
func WithChunkSize(size int) ClientOption {
	return func(c *Client) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// NewClient creates a resolver for the dictionary rooted at baseURL, e.g.
// "https://emr.example.org/openmrs/ws/rest/v1".
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		chunkSize:  DefaultChunkSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		// Copy before setting the timeout so a shared caller-supplied client
		// is left untouched.
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

type conceptPayload struct {
	UUID     string `json:"uuid"`
	Display  string `json:"display"`
	Datatype struct {
		Display string `json:"display"`
	} `json:"datatype"`
}

type conceptListResponse struct {
	Results []conceptPayload `json:"results"`
}

// LookupBatch implements Resolver. References are fetched in chunks; any
// requested reference missing from the responses lands in Unresolved.
func (c *Client) LookupBatch(ctx context.Context, refs []string) (BatchResult, error) {
	if len(refs) == 0 {
		return BatchResult{}, nil
	}

	found := make(map[string]Concept, len(refs))
	for start := 0; start < len(refs); start += c.chunkSize {
		end := start + c.chunkSize
		if end > len(refs) {
			end = len(refs)
		}
		if err := c.fetchChunk(ctx, refs[start:end], found); err != nil {
			return BatchResult{}, err
		}
	}

	result := BatchResult{}
	seen := make(map[string]bool, len(refs))
	for _, ref := range refs {
		if seen[ref] {
			continue
		}
		seen[ref] = true
		if concept, ok := found[ref]; ok {
			result.Resolved = append(result.Resolved, concept)
		} else {
			result.Unresolved = append(result.Unresolved, ref)
		}
	}
	return result, nil
}

func (c *Client) fetchChunk(ctx context.Context, refs []string, found map[string]Concept) error {
	endpoint := fmt.Sprintf("%s/concept?references=%s&v=%s",
		c.baseURL,
		url.QueryEscape(strings.Join(refs, ",")),
		url.QueryEscape(conceptRepresentation),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return fmt.Errorf("concepts: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("concepts: lookup request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("concepts: lookup failed with status %d", resp.StatusCode)
	}

	var payload conceptListResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("concepts: decode lookup response: %w", err)
	}

	for _, entry := range payload.Results {
		found[entry.UUID] = Concept{
			UUID:     entry.UUID,
			Display:  entry.Display,
			Datatype: entry.Datatype.Display,
		}
	}
	return nil
}
