// Package roster talks to the timetable service that knows which teachers
// are on duty for a slot and which groups need closer supervision.
package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/guardia-api/internal/models"
	appErrors "github.com/noah-isme/guardia-api/pkg/errors"
)

// Provider answers the two questions the assignment engine asks of the
// timetable subsystem. Tests inject fakes; production uses Client.
type Provider interface {
	TeachersOnDuty(ctx context.Context, weekday, hour int) ([]models.DutyTeacher, error)
	IsProblematicGroup(ctx context.Context, groupCode string) (bool, error)
}

type cacheStore interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Options tunes the client.
type Options struct {
	BaseURL       string
	Timeout       time.Duration
	DutyCacheTTL  time.Duration
	GroupCacheTTL time.Duration
	Cache         cacheStore
	Logger        *zap.Logger
}

// Client is the HTTP implementation of Provider with a redis-backed cache.
// Every call is bounded by the configured timeout so a slow timetable
// service degrades one hour, never the whole registration.
type Client struct {
	baseURL       string
	client        *http.Client
	cache         cacheStore
	dutyCacheTTL  time.Duration
	groupCacheTTL time.Duration
	logger        *zap.Logger
}

// NewClient builds the roster client.
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 3 * time.Second
	}
	if opts.DutyCacheTTL <= 0 {
		opts.DutyCacheTTL = 5 * time.Minute
	}
	if opts.GroupCacheTTL <= 0 {
		opts.GroupCacheTTL = time.Hour
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Client{
		baseURL:       opts.BaseURL,
		client:        &http.Client{Timeout: opts.Timeout},
		cache:         opts.Cache,
		dutyCacheTTL:  opts.DutyCacheTTL,
		groupCacheTTL: opts.GroupCacheTTL,
		logger:        opts.Logger,
	}
}

type dutyRosterPayload struct {
	Teachers []models.DutyTeacher `json:"teachers"`
}

type groupPayload struct {
	Problematic bool `json:"problematic"`
}

// TeachersOnDuty returns the on-duty pool for (weekday, hour).
func (c *Client) TeachersOnDuty(ctx context.Context, weekday, hour int) ([]models.DutyTeacher, error) {
	cacheKey := fmt.Sprintf("roster:duty:%d:%d", weekday, hour)
	if c.cache != nil {
		var cached []models.DutyTeacher
		if err := c.cache.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	endpoint := fmt.Sprintf("%s/teachers-on-duty?weekday=%d&hour=%d", c.baseURL, weekday, hour)
	var payload dutyRosterPayload
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey, payload.Teachers, c.dutyCacheTTL); err != nil {
			c.logger.Warn("duty roster cache write failed", zap.Error(err))
		}
	}
	return payload.Teachers, nil
}

// IsProblematicGroup reports whether a group needs the problematic track.
// Lookup failures default to false so assignment still proceeds on the
// normal track.
func (c *Client) IsProblematicGroup(ctx context.Context, groupCode string) (bool, error) {
	cacheKey := "roster:group:" + groupCode
	if c.cache != nil {
		var cached bool
		if err := c.cache.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	endpoint := fmt.Sprintf("%s/group-is-problematic?groupId=%s", c.baseURL, url.QueryEscape(groupCode))
	var payload groupPayload
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return false, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey, payload.Problematic, c.groupCacheTTL); err != nil {
			c.logger.Warn("group cache write failed", zap.Error(err))
		}
	}
	return payload.Problematic, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstreamUnavailable.Code, appErrors.ErrUpstreamUnavailable.Status, "build roster request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstreamUnavailable.Code, appErrors.ErrUpstreamUnavailable.Status, "duty roster unreachable")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return appErrors.Clone(appErrors.ErrUpstreamUnavailable,
			"duty roster returned status "+strconv.Itoa(resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstreamUnavailable.Code, appErrors.ErrUpstreamUnavailable.Status, "decode roster response")
	}
	return nil
}
