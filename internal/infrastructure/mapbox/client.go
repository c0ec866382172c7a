package mapbox

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/crashstats-service/internal/config"
	"github.com/crashstats-service/internal/domain/repository"
)

type client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	country     string
	proximity   string
	bbox        string
	resultLimit int
	logger      *zap.Logger
}

// NewMapboxClient creates the forward-geocoding client. Results are biased
// toward the dataset's municipality via proximity and bbox parameters.
func NewMapboxClient(cfg *config.GeocodeConfig, logger *zap.Logger) repository.GeocodeRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL:     cfg.BaseURL,
		accessToken: cfg.AccessToken,
		country:     cfg.Country,
		proximity:   cfg.Proximity,
		bbox:        cfg.BBox,
		resultLimit: cfg.ResultLimit,
		logger:      logger,
	}
}

// ForwardGeocode proxies one place search to Mapbox and returns the response
// body verbatim so the map UI can consume the provider format directly.
func (c *client) ForwardGeocode(ctx context.Context, query string) ([]byte, error) {
	if query == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}

	endpoint := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%s.json", c.baseURL, url.PathEscape(query))

	params := url.Values{}
	params.Set("access_token", c.accessToken)
	params.Set("limit", strconv.Itoa(c.resultLimit))
	params.Set("autocomplete", "true")
	params.Set("country", c.country)
	params.Set("proximity", c.proximity)
	params.Set("bbox", c.bbox)

	c.logger.Debug("Calling Mapbox Geocoding API",
		zap.String("query", query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("Failed to read response", zap.Error(err))
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Mapbox API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("mapbox API error: status %d", resp.StatusCode)
	}

	return body, nil
}
