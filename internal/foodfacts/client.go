package foodfacts

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/dukerupert/listkeep/internal/model"
)

const defaultBaseURL = "https://platform.fatsecret.com/rest/server.api"

var errNotConfigured = errors.New("food facts API credentials not configured")

// Config holds FatSecret API credentials from environment variables.
type Config struct {
	ClientID     string
	ClientSecret string
}

// Client talks to the FatSecret platform API with OAuth 1.0 request
// signing. When credentials are missing or a call fails, lookups fall
// back to a built-in mock dataset so the feature keeps working offline.
type Client struct {
	cfg     Config
	client  *http.Client
	baseURL string
	logger  *slog.Logger
}

// NewClient creates a food-facts client with the given configuration.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		cfg:     cfg,
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: defaultBaseURL,
		logger:  logger,
	}
}

// Configured reports whether real API credentials are present.
// Placeholder values and implausibly short strings count as unconfigured.
func (c *Client) Configured() bool {
	id, secret := c.cfg.ClientID, c.cfg.ClientSecret
	if id == "" || secret == "" {
		return false
	}
	if id == "your_client_id" || secret == "your_client_secret" {
		return false
	}
	return len(id) > 20 && len(secret) > 20
}

// foodList accepts FatSecret's single-object-or-array encoding of
// foods.food.
type foodList []model.FoodItem

func (l *foodList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		return json.Unmarshal(data, (*[]model.FoodItem)(l))
	}
	var one model.FoodItem
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*l = foodList{one}
	return nil
}

// servingList accepts the same single-or-array encoding for servings.
type servingList []model.Serving

func (l *servingList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		return json.Unmarshal(data, (*[]model.Serving)(l))
	}
	var one model.Serving
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*l = servingList{one}
	return nil
}

type searchResponse struct {
	Foods struct {
		Food foodList `json:"food"`
	} `json:"foods"`
}

type detailsResponse struct {
	Food *struct {
		FoodID   string `json:"food_id"`
		FoodName string `json:"food_name"`
		FoodType string `json:"food_type"`
		FoodURL  string `json:"food_url"`
		Servings struct {
			Serving servingList `json:"serving"`
		} `json:"servings"`
	} `json:"food"`
}

// SearchFood performs a free-text food search. It never surfaces an error:
// missing credentials, transport failure, or a malformed payload all fall
// back to the mock dataset filtered by the query.
func (c *Client) SearchFood(ctx context.Context, query string) []model.EnhancedFoodItem {
	body, err := c.call(ctx, map[string]string{
		"method":            "foods.search",
		"search_expression": query,
		"format":            "json",
	})
	if err != nil {
		if !errors.Is(err, errNotConfigured) {
			c.logger.Warn("food search failed, using mock data", "error", err)
		}
		return mockSearch(query)
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		c.logger.Warn("decode food search response", "error", err)
		return mockSearch(query)
	}

	items := make([]model.EnhancedFoodItem, 0, len(result.Foods.Food))
	for i, food := range result.Foods.Food {
		items = append(items, model.EnhancedFoodItem{
			FoodItem: food,
			// FatSecret provides no images; map well-known names to stock photos
			ImageURL: foodImageURL(food.FoodName, i),
		})
	}
	return items
}

// GetFoodDetails returns the nutrition record for a food id, or nil when
// the provider has no such food. Failed calls fall back to mock details.
func (c *Client) GetFoodDetails(ctx context.Context, foodID string) *model.FoodDetails {
	body, err := c.call(ctx, map[string]string{
		"method": "food.get",
		"id":     foodID,
		"format": "json",
	})
	if err != nil {
		if !errors.Is(err, errNotConfigured) {
			c.logger.Warn("food details failed, using mock data", "error", err)
		}
		return mockDetails(foodID)
	}

	var result detailsResponse
	if err := json.Unmarshal(body, &result); err != nil {
		c.logger.Warn("decode food details response", "error", err)
		return mockDetails(foodID)
	}
	if result.Food == nil {
		return nil
	}

	return &model.FoodDetails{
		FoodID:   result.Food.FoodID,
		FoodName: result.Food.FoodName,
		FoodType: result.Food.FoodType,
		FoodURL:  result.Food.FoodURL,
		Servings: model.ServingList{Serving: result.Food.Servings.Serving},
	}
}

// call signs and sends one API request, retrying transient failures with
// fibonacci backoff.
func (c *Client) call(ctx context.Context, params map[string]string) ([]byte, error) {
	if !c.Configured() {
		return nil, errNotConfigured
	}

	signed := c.sign(http.MethodPost, params)

	values := url.Values{}
	for k, v := range signed {
		values.Set(k, v)
	}
	reqURL := c.baseURL + "?" + values.Encode()

	var body []byte
	backoff := retry.WithMaxRetries(2, retry.NewFibonacci(500*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := c.client.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return retry.RetryableError(fmt.Errorf("food API returned status %d", resp.StatusCode))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("food API returned status %d", resp.StatusCode)
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

// sign adds the OAuth 1.0 parameters and HMAC-SHA1 signature required by
// the FatSecret API.
func (c *Client) sign(method string, params map[string]string) map[string]string {
	all := map[string]string{
		"oauth_consumer_key":     c.cfg.ClientID,
		"oauth_signature_method": "HMAC-SHA1",
		"oauth_timestamp":        strconv.FormatInt(time.Now().Unix(), 10),
		"oauth_nonce":            nonce(),
		"oauth_version":          "1.0",
	}
	for k, v := range params {
		all[k] = v
	}

	base := method + "&" + percentEncode(c.baseURL) + "&" + percentEncode(paramString(all))
	signingKey := percentEncode(c.cfg.ClientSecret) + "&"

	mac := hmac.New(sha1.New, []byte(signingKey))
	mac.Write([]byte(base))
	all["oauth_signature"] = base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return all
}

func paramString(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, percentEncode(k)+"="+percentEncode(params[k]))
	}
	return strings.Join(parts, "&")
}

// percentEncode applies RFC 3986 encoding as OAuth 1.0 requires;
// url.QueryEscape would emit '+' for spaces and break the signature.
func percentEncode(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch >= 'A' && ch <= 'Z', ch >= 'a' && ch <= 'z', ch >= '0' && ch <= '9',
			ch == '-', ch == '.', ch == '_', ch == '~':
			b.WriteByte(ch)
		default:
			fmt.Fprintf(&b, "%%%02X", ch)
		}
	}
	return b.String()
}

func nonce() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand only fails if the OS entropy source is broken
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return hex.EncodeToString(b)
}
