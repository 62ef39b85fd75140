// Package hostapi reads the host CMS REST API: registered categories, the
// category of an entity, and whether the translation plugin is active.
package hostapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"translationgate/internal/domain/entities"
	"translationgate/internal/ports/output"
)

var (
	_ output.CategoryRegistry   = (*Client)(nil)
	_ output.TranslationService = (*Client)(nil)
)

const maxBodyBytes = 1 << 20

var errInvalidJSON = errors.New("réponse JSON invalide")

// Paths are relative to the base URL; ResolvePath must contain {id}.
// Queries are gjson paths evaluated on the response body.
type Options struct {
	BaseURL         string
	Token           string
	CategoriesPath  string
	CategoriesQuery string
	ResolvePath     string
	ResolveQuery    string
	PluginPath      string
	PluginQuery     string
	Timeout         time.Duration
}

type Client struct {
	opts Options
	http *http.Client
}

func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	return &Client{
		opts: opts,
		http: &http.Client{Timeout: timeout},
	}
}

// ListRegisteredCategories returns the catalog in the order the host lists it.
func (c *Client) ListRegisteredCategories(ctx context.Context) (entities.CategoryCatalog, error) {
	body, status, err := c.get(ctx, c.opts.CategoriesPath)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("list categories: statut HTTP %d", status)
	}

	result := gjson.GetBytes(body, c.opts.CategoriesQuery)
	catalog := entities.CategoryCatalog{}
	for _, item := range result.Array() {
		if id := strings.TrimSpace(item.String()); id != "" && !catalog.Has(id) {
			catalog = append(catalog, id)
		}
	}
	return catalog, nil
}

// ResolveCategoryOf treats 404 and an empty result as "no category".
func (c *Client) ResolveCategoryOf(ctx context.Context, entityID string) (string, bool, error) {
	path := expandID(c.opts.ResolvePath, entityID)
	body, status, err := c.get(ctx, path)
	if err != nil {
		return "", false, fmt.Errorf("resolve category of %s: %w", entityID, err)
	}
	switch {
	case status == http.StatusNotFound:
		return "", false, nil
	case status != http.StatusOK:
		return "", false, fmt.Errorf("resolve category of %s: statut HTTP %d", entityID, status)
	}

	category := strings.TrimSpace(gjson.GetBytes(body, c.opts.ResolveQuery).String())
	return category, category != "", nil
}

// expandID substitutes {id}, escaped for the part of the URL it sits in.
func expandID(template, entityID string) string {
	escaped := url.PathEscape(entityID)
	if q := strings.Index(template, "?"); q >= 0 && strings.Index(template, "{id}") > q {
		escaped = url.QueryEscape(entityID)
	}
	return strings.ReplaceAll(template, "{id}", escaped)
}

// IsActive reports whether the plugin status reads "active".
func (c *Client) IsActive(ctx context.Context) (bool, error) {
	body, status, err := c.get(ctx, c.opts.PluginPath)
	if err != nil {
		return false, fmt.Errorf("plugin status: %w", err)
	}
	switch {
	case status == http.StatusNotFound:
		return false, nil
	case status != http.StatusOK:
		return false, fmt.Errorf("plugin status: statut HTTP %d", status)
	}

	value := gjson.GetBytes(body, c.opts.PluginQuery)
	if value.Type == gjson.True {
		return true, nil
	}
	return strings.EqualFold(value.String(), "active"), nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.BaseURL+path, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")
	if c.opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode == http.StatusOK && !gjson.ValidBytes(body) {
		return nil, resp.StatusCode, errInvalidJSON
	}
	return body, resp.StatusCode, nil
}
