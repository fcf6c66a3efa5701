// Package carebackend lee los niños del usuario desde el backend REST de cuidado.
package carebackend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"child-care-tracker/internal/domain/children"
	"child-care-tracker/internal/platform/httpclient"
)

const childrenPath = "/v1/children"

type Client struct {
	http *httpclient.Client
}

// New: baseURL requerido. Reintenta 5xx y errores de red antes de reportar caída.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("carebackend: base url required")
	}
	hc, err := httpclient.NewWithBaseURL(baseURL, timeout)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc.WithRetry(2, 250*time.Millisecond)}, nil
}

type listResponse struct {
	Children []children.RemoteChild `json:"children"`
}

// ListChildren: 401/403 => children.ErrUnauthorized; cualquier otra falla se devuelve envuelta
// para que el servicio caiga al cache.
func (c *Client) ListChildren(ctx context.Context, token string) ([]children.RemoteChild, error) {
	var out listResponse
	err := c.http.DoJSON(ctx, http.MethodGet, childrenPath,
		map[string]string{"Authorization": "Bearer " + strings.TrimSpace(token)}, nil, &out)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) &&
			(httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden) {
			return nil, children.ErrUnauthorized
		}
		return nil, fmt.Errorf("carebackend: list children: %w", err)
	}
	if out.Children == nil {
		out.Children = []children.RemoteChild{}
	}
	return out.Children, nil
}
