package foodfacts

import (
	"strings"

	"github.com/dukerupert/listkeep/internal/model"
)

// Status reports whether the API is usable with real credentials.
type Status struct {
	Configured bool   `json:"configured"`
	Message    string `json:"message"`
}

// APIStatus returns the current credential state for the status endpoint.
func (c *Client) APIStatus() Status {
	if c.Configured() {
		return Status{
			Configured: true,
			Message:    "Food facts API is configured and ready to use.",
		}
	}
	return Status{
		Configured: false,
		Message:    "Food facts API credentials not configured. Using mock data.",
	}
}

var healthData = map[string]model.HealthInfo{
	"apple": {
		Benefits: []string{
			"Rich in fiber for digestive health",
			"Contains antioxidants that may reduce disease risk",
			"Good source of vitamin C for immune support",
			"May help with weight management",
		},
		Risks: []string{
			"Seeds contain small amounts of cyanide compounds",
			"May cause digestive issues if eaten in large quantities",
		},
		QuickFacts: []string{
			"One of the most popular fruits worldwide",
			"Contains about 4g of fiber per medium apple",
			"Over 7,500 varieties exist globally",
			"Peak season is fall in most regions",
		},
		ShoppingTips: []string{
			"Choose firm apples with smooth skin",
			"Avoid apples with soft spots or wrinkles",
			"Store-bought apples may have wax coating",
			"Organic options reduce pesticide exposure",
		},
		StorageTips: []string{
			"Store in refrigerator crisper drawer",
			"Keep away from strong-smelling foods",
			"Can last 1-2 months when properly stored",
			"Store separately from other fruits to prevent rapid ripening",
		},
	},
}

// HealthInfo returns curated tips for a food name. Unknown foods get a
// generic record so callers never handle an absent result.
func (c *Client) HealthInfo(foodName string) model.HealthInfo {
	if info, ok := healthData[strings.ToLower(foodName)]; ok {
		return info
	}
	return model.HealthInfo{
		Benefits:   []string{"Nutritional information available upon further research"},
		Risks:      []string{"Consult healthcare provider for dietary restrictions"},
		QuickFacts: []string{"Popular food item with various nutritional properties"},
		ShoppingTips: []string{
			"Select fresh, high-quality items",
			"Check for proper color and texture",
		},
		StorageTips: []string{
			"Follow general food storage guidelines",
			"Store in appropriate temperature conditions",
		},
	}
}
