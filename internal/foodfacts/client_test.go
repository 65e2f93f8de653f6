package foodfacts

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const (
	testClientID     = "abcdefghijklmnopqrstu"
	testClientSecret = "1234567890123456789012"
)

func testClient(server *httptest.Server) *Client {
	c := NewClient(Config{ClientID: testClientID, ClientSecret: testClientSecret}, slog.Default())
	if server != nil {
		c.baseURL = server.URL
		c.client = server.Client()
	}
	return c
}

func TestConfigured(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		secret string
		want   bool
	}{
		{"empty", "", "", false},
		{"placeholder", "your_client_id", "your_client_secret", false},
		{"too short", "abc", "def", false},
		{"real-looking", testClientID, testClientSecret, true},
	}
	for _, tt := range tests {
		c := NewClient(Config{ClientID: tt.id, ClientSecret: tt.secret}, slog.Default())
		if got := c.Configured(); got != tt.want {
			t.Errorf("%s: Configured() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSearchFoodUnconfiguredUsesMockData(t *testing.T) {
	c := NewClient(Config{}, slog.Default())

	results := c.SearchFood(context.Background(), "apple")
	if len(results) != 1 {
		t.Fatalf("expected 1 mock result, got %d", len(results))
	}
	if results[0].FoodName != "Apple" {
		t.Errorf("food name = %q, want Apple", results[0].FoodName)
	}
	if results[0].Calories == "" {
		t.Error("mock result should carry nutrition summary")
	}
}

func TestSearchFoodEmptyQueryReturnsDefaults(t *testing.T) {
	c := NewClient(Config{}, slog.Default())

	results := c.SearchFood(context.Background(), "   ")
	if len(results) != 8 {
		t.Fatalf("expected 8 default results, got %d", len(results))
	}
}

func TestSearchFoodMockFiltersByType(t *testing.T) {
	c := NewClient(Config{}, slog.Default())

	results := c.SearchFood(context.Background(), "grain")
	if len(results) != 2 {
		t.Fatalf("expected 2 grain results, got %d", len(results))
	}
	for _, r := range results {
		if r.FoodType != "grain" {
			t.Errorf("food type = %q, want grain", r.FoodType)
		}
	}
}

func TestSearchFoodParsesArrayResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.RawQuery, "oauth_signature") {
			t.Error("request missing oauth signature")
		}
		w.Write([]byte(`{"foods":{"food":[
			{"food_id":"100","food_name":"Cheddar Cheese","food_type":"Generic","food_url":"https://example.com/100"},
			{"food_id":"101","food_name":"Milk","food_type":"Generic","food_url":"https://example.com/101"}
		]}}`))
	}))
	defer server.Close()

	c := testClient(server)
	results := c.SearchFood(context.Background(), "dairy")
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].FoodID != "100" || results[1].FoodName != "Milk" {
		t.Errorf("unexpected results: %+v", results)
	}
	if results[1].ImageURL == "" {
		t.Error("expected image url for milk")
	}
}

func TestSearchFoodParsesSingleObjectResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"foods":{"food":{"food_id":"100","food_name":"Cheddar Cheese","food_type":"Generic","food_url":"https://example.com/100"}}}`))
	}))
	defer server.Close()

	c := testClient(server)
	results := c.SearchFood(context.Background(), "cheddar")
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].FoodID != "100" {
		t.Errorf("food id = %q, want 100", results[0].FoodID)
	}
}

func TestSearchFoodServerErrorFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	c := testClient(server)
	results := c.SearchFood(context.Background(), "banana")
	if len(results) != 1 || results[0].FoodName != "Banana" {
		t.Fatalf("expected mock banana fallback, got %+v", results)
	}
}

func TestGetFoodDetailsParsesServings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"food":{"food_id":"100","food_name":"Cheddar Cheese","food_type":"Generic","food_url":"https://example.com/100",
			"servings":{"serving":{"serving_id":"1","serving_description":"1 slice","calories":"113","protein":"7"}}}}`))
	}))
	defer server.Close()

	c := testClient(server)
	details := c.GetFoodDetails(context.Background(), "100")
	if details == nil {
		t.Fatal("expected details, got nil")
	}
	if details.FoodName != "Cheddar Cheese" {
		t.Errorf("food name = %q, want Cheddar Cheese", details.FoodName)
	}
	if len(details.Servings.Serving) != 1 {
		t.Fatalf("expected 1 serving, got %d", len(details.Servings.Serving))
	}
	if details.Servings.Serving[0].Calories != "113" {
		t.Errorf("calories = %q, want 113", details.Servings.Serving[0].Calories)
	}
}

func TestGetFoodDetailsAbsentFoodReturnsNil(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"code":106,"message":"Invalid ID"}}`))
	}))
	defer server.Close()

	c := testClient(server)
	if details := c.GetFoodDetails(context.Background(), "999999"); details != nil {
		t.Errorf("expected nil for absent food, got %+v", details)
	}
}

func TestGetFoodDetailsMockFallback(t *testing.T) {
	c := NewClient(Config{}, slog.Default())

	details := c.GetFoodDetails(context.Background(), "2")
	if details == nil {
		t.Fatal("expected mock details")
	}
	if details.FoodName != "Banana" {
		t.Errorf("food name = %q, want Banana", details.FoodName)
	}

	// Unknown ids get the apple record rather than nothing.
	details = c.GetFoodDetails(context.Background(), "does-not-exist")
	if details == nil || details.FoodName != "Apple" {
		t.Errorf("expected apple default, got %+v", details)
	}
}

func TestSignatureDeterministicParams(t *testing.T) {
	c := NewClient(Config{ClientID: testClientID, ClientSecret: testClientSecret}, slog.Default())

	signed := c.sign(http.MethodPost, map[string]string{"method": "foods.search", "format": "json"})
	for _, key := range []string{"oauth_consumer_key", "oauth_nonce", "oauth_timestamp", "oauth_signature"} {
		if signed[key] == "" {
			t.Errorf("signed params missing %s", key)
		}
	}
	if signed["oauth_signature_method"] != "HMAC-SHA1" {
		t.Errorf("signature method = %q, want HMAC-SHA1", signed["oauth_signature_method"])
	}
}

func TestPercentEncode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"hello", "hello"},
		{"a b", "a%20b"},
		{"a+b", "a%2Bb"},
		{"foo~bar-baz_qux.ok", "foo~bar-baz_qux.ok"},
		{"a&b=c", "a%26b%3Dc"},
	}
	for _, tt := range tests {
		if got := percentEncode(tt.in); got != tt.want {
			t.Errorf("percentEncode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHealthInfoKnownFood(t *testing.T) {
	c := NewClient(Config{}, slog.Default())

	info := c.HealthInfo("Apple")
	if len(info.Benefits) == 0 || len(info.StorageTips) == 0 {
		t.Error("apple health info should be populated")
	}
	if info.Benefits[0] != "Rich in fiber for digestive health" {
		t.Errorf("unexpected first benefit: %q", info.Benefits[0])
	}
}

func TestHealthInfoGenericFallback(t *testing.T) {
	c := NewClient(Config{}, slog.Default())

	info := c.HealthInfo("durian")
	if len(info.Benefits) == 0 || len(info.Risks) == 0 || len(info.QuickFacts) == 0 ||
		len(info.ShoppingTips) == 0 || len(info.StorageTips) == 0 {
		t.Errorf("generic health info should fill every section: %+v", info)
	}
}

func TestAPIStatus(t *testing.T) {
	unconfigured := NewClient(Config{}, slog.Default())
	if status := unconfigured.APIStatus(); status.Configured || status.Message == "" {
		t.Errorf("unexpected status: %+v", status)
	}

	configured := NewClient(Config{ClientID: testClientID, ClientSecret: testClientSecret}, slog.Default())
	if status := configured.APIStatus(); !status.Configured {
		t.Errorf("expected configured status: %+v", status)
	}
}

func TestFoodListDecodesBothShapes(t *testing.T) {
	var single searchResponse
	if err := json.Unmarshal([]byte(`{"foods":{"food":{"food_id":"1","food_name":"Apple"}}}`), &single); err != nil {
		t.Fatalf("decode single: %v", err)
	}
	if len(single.Foods.Food) != 1 {
		t.Fatalf("single decode length = %d, want 1", len(single.Foods.Food))
	}

	var many searchResponse
	if err := json.Unmarshal([]byte(`{"foods":{"food":[{"food_id":"1"},{"food_id":"2"}]}}`), &many); err != nil {
		t.Fatalf("decode array: %v", err)
	}
	if len(many.Foods.Food) != 2 {
		t.Fatalf("array decode length = %d, want 2", len(many.Foods.Food))
	}
}
