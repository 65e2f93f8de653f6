package foodfacts

import (
	"strings"

	"github.com/dukerupert/listkeep/internal/model"
)

// mockFoods is the offline demo dataset served when no real credentials
// are configured.
var mockFoods = []model.EnhancedFoodItem{
	{
		FoodItem: model.FoodItem{FoodID: "1", FoodName: "Apple", FoodType: "fruit", FoodURL: "https://example.com"},
		ImageURL: "https://images.unsplash.com/photo-1560806887-1e4cd0b6cbd6?w=200&h=200&fit=crop",
		Calories: "52", Protein: "0.3g", Carbs: "14g", Fat: "0.2g",
	},
	{
		FoodItem: model.FoodItem{FoodID: "2", FoodName: "Banana", FoodType: "fruit", FoodURL: "https://example.com"},
		ImageURL: "https://images.unsplash.com/photo-1571771894821-ce9b6c11b08e?w=200&h=200&fit=crop",
		Calories: "89", Protein: "1.1g", Carbs: "23g", Fat: "0.3g",
	},
	{
		FoodItem: model.FoodItem{FoodID: "6", FoodName: "Orange", FoodType: "fruit", FoodURL: "https://example.com"},
		ImageURL: "https://images.unsplash.com/photo-1547514701-42782101795e?w=200&h=200&fit=crop",
		Calories: "47", Protein: "0.9g", Carbs: "12g", Fat: "0.1g",
	},
	{
		FoodItem: model.FoodItem{FoodID: "7", FoodName: "Strawberry", FoodType: "fruit", FoodURL: "https://example.com"},
		ImageURL: "https://images.unsplash.com/photo-1464965911861-746a04b4bca6?w=200&h=200&fit=crop",
		Calories: "32", Protein: "0.7g", Carbs: "8g", Fat: "0.3g",
	},
	{
		FoodItem: model.FoodItem{FoodID: "3", FoodName: "Broccoli", FoodType: "vegetable", FoodURL: "https://example.com"},
		ImageURL: "https://images.unsplash.com/photo-1459411552884-841db9b3cc2a?w=200&h=200&fit=crop",
		Calories: "34", Protein: "2.8g", Carbs: "7g", Fat: "0.4g",
	},
	{
		FoodItem: model.FoodItem{FoodID: "8", FoodName: "Carrot", FoodType: "vegetable", FoodURL: "https://example.com"},
		ImageURL: "https://images.unsplash.com/photo-1445282768818-728615cc910a?w=200&h=200&fit=crop",
		Calories: "41", Protein: "0.9g", Carbs: "10g", Fat: "0.2g",
	},
	{
		FoodItem: model.FoodItem{FoodID: "9", FoodName: "Spinach", FoodType: "vegetable", FoodURL: "https://example.com"},
		ImageURL: "https://images.unsplash.com/photo-1576045057995-568f588f82fb?w=200&h=200&fit=crop",
		Calories: "23", Protein: "2.9g", Carbs: "4g", Fat: "0.4g",
	},
	{
		FoodItem: model.FoodItem{FoodID: "4", FoodName: "Chicken Breast", FoodType: "meat", FoodURL: "https://example.com"},
		ImageURL: "https://images.unsplash.com/photo-1604503468506-a8da13d82791?w=200&h=200&fit=crop",
		Calories: "165", Protein: "31g", Carbs: "0g", Fat: "3.6g",
	},
	{
		FoodItem: model.FoodItem{FoodID: "5", FoodName: "Salmon", FoodType: "fish", FoodURL: "https://example.com"},
		ImageURL: "https://images.unsplash.com/photo-1467003909585-2f8a72700288?w=200&h=200&fit=crop",
		Calories: "208", Protein: "22g", Carbs: "0g", Fat: "12g",
	},
	{
		FoodItem: model.FoodItem{FoodID: "10", FoodName: "Eggs", FoodType: "protein", FoodURL: "https://example.com"},
		ImageURL: "https://images.unsplash.com/photo-1582722872445-44dc5f7e3c8f?w=200&h=200&fit=crop",
		Calories: "155", Protein: "13g", Carbs: "1g", Fat: "11g",
	},
	{
		FoodItem: model.FoodItem{FoodID: "11", FoodName: "Brown Rice", FoodType: "grain", FoodURL: "https://example.com"},
		ImageURL: "https://images.unsplash.com/photo-1536304993881-ff6e9eefa2a6?w=200&h=200&fit=crop",
		Calories: "111", Protein: "3g", Carbs: "23g", Fat: "0.9g",
	},
	{
		FoodItem: model.FoodItem{FoodID: "12", FoodName: "Oats", FoodType: "grain", FoodURL: "https://example.com"},
		ImageURL: "https://images.unsplash.com/photo-1517686469429-8bdb88b9f907?w=200&h=200&fit=crop",
		Calories: "389", Protein: "17g", Carbs: "66g", Fat: "7g",
	},
}

// mockSearch filters the demo dataset by name or type. An empty query
// returns the first eight entries for a browse-style default view.
func mockSearch(query string) []model.EnhancedFoodItem {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		out := make([]model.EnhancedFoodItem, 8)
		copy(out, mockFoods[:8])
		return out
	}

	out := []model.EnhancedFoodItem{}
	for _, food := range mockFoods {
		if strings.Contains(strings.ToLower(food.FoodName), q) ||
			strings.Contains(strings.ToLower(food.FoodType), q) {
			out = append(out, food)
		}
	}
	return out
}

type mockServing struct {
	name    string
	typ     string
	serving model.Serving
}

var mockServings = map[string]mockServing{
	"1": {
		name: "Apple", typ: "fruit",
		serving: model.Serving{
			ServingDescription:  "1 medium apple",
			MetricServingAmount: "182", MetricServingUnit: "g",
			Calories: "95", Carbohydrate: "25", Protein: "0.47", Fat: "0.31",
			Fiber: "4.4", Sugar: "19", Sodium: "2", Potassium: "195", VitaminC: "8.4",
		},
	},
	"2": {
		name: "Banana", typ: "fruit",
		serving: model.Serving{
			ServingDescription:  "1 medium banana",
			MetricServingAmount: "118", MetricServingUnit: "g",
			Calories: "105", Carbohydrate: "27", Protein: "1.3", Fat: "0.4",
			Fiber: "3.1", Sugar: "14", Sodium: "1", Potassium: "422", VitaminC: "10.3",
		},
	},
	"4": {
		name: "Chicken Breast", typ: "meat",
		serving: model.Serving{
			ServingDescription:  "100g cooked",
			MetricServingAmount: "100", MetricServingUnit: "g",
			Calories: "165", Carbohydrate: "0", Protein: "31", Fat: "3.6",
			Fiber: "0", Sugar: "0", Sodium: "74", Potassium: "256",
		},
	},
}

// mockDetails returns demo nutrition data for a food id. Unknown ids get
// the apple record so the detail screen always has something to show.
func mockDetails(foodID string) *model.FoodDetails {
	entry, ok := mockServings[foodID]
	if !ok {
		entry = mockServings["1"]
	}

	serving := entry.serving
	serving.ServingID = "1"
	serving.ServingURL = "https://example.com"
	serving.MeasurementDescription = "serving"

	return &model.FoodDetails{
		FoodID:   foodID,
		FoodName: entry.name,
		FoodType: entry.typ,
		FoodURL:  "https://example.com",
		Servings: model.ServingList{Serving: []model.Serving{serving}},
	}
}

// foodImageURL maps well-known food names to stock photos; unmatched
// names rotate through a small set of generic images.
func foodImageURL(foodName string, index int) string {
	named := []struct {
		key string
		url string
	}{
		{"apple", "https://images.unsplash.com/photo-1560806887-1e4cd0b6cbd6?w=200&h=200&fit=crop"},
		{"banana", "https://images.unsplash.com/photo-1571771894821-ce9b6c11b08e?w=200&h=200&fit=crop"},
		{"orange", "https://images.unsplash.com/photo-1547514701-42782101795e?w=200&h=200&fit=crop"},
		{"broccoli", "https://images.unsplash.com/photo-1459411552884-841db9b3cc2a?w=200&h=200&fit=crop"},
		{"carrot", "https://images.unsplash.com/photo-1445282768818-728615cc910a?w=200&h=200&fit=crop"},
		{"chicken", "https://images.unsplash.com/photo-1604503468506-a8da13d82791?w=200&h=200&fit=crop"},
		{"salmon", "https://images.unsplash.com/photo-1467003909585-2f8a72700288?w=200&h=200&fit=crop"},
		{"bread", "https://images.unsplash.com/photo-1509440159596-0249088772ff?w=200&h=200&fit=crop"},
		{"milk", "https://images.unsplash.com/photo-1550583724-b2692b85b150?w=200&h=200&fit=crop"},
		{"egg", "https://images.unsplash.com/photo-1582722872445-44dc5f7e3c8f?w=200&h=200&fit=crop"},
	}

	lower := strings.ToLower(foodName)
	for _, entry := range named {
		if strings.Contains(lower, entry.key) {
			return entry.url
		}
	}

	generic := []string{
		"https://images.unsplash.com/photo-1498837167922-ddd27525d352?w=200&h=200&fit=crop",
		"https://images.unsplash.com/photo-1490645935967-10de6ba17061?w=200&h=200&fit=crop",
		"https://images.unsplash.com/photo-1546069901-ba9599a7e63c?w=200&h=200&fit=crop",
		"https://images.unsplash.com/photo-1481487196290-c152efe083f5?w=200&h=200&fit=crop",
	}
	return generic[index%len(generic)]
}
