package apiclient

import (
	"context"
	"net/http"

	"github.com/salaryhelper/salaryhelper-client/internal/domain"
)

// HealthCheck returns the raw envelope of /health.
func (c *Client) HealthCheck(ctx context.Context) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: "/health"})
}

func (c *Client) AdminStats(ctx context.Context) (domain.AdminStats, error) {
	stats := domain.AdminStats{}
	if err := c.call(ctx, Request{Method: http.MethodGet, Path: "/admin/stats"}, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (c *Client) AdminUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.call(ctx, Request{Method: http.MethodGet, Path: "/admin/users"}, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}
