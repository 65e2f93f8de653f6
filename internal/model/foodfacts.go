package model

// FoodItem is a single search result from the food-facts provider.
// Field names mirror the FatSecret REST payload.
type FoodItem struct {
	FoodID          string `json:"food_id"`
	FoodName        string `json:"food_name"`
	FoodType        string `json:"food_type"`
	FoodURL         string `json:"food_url"`
	FoodDescription string `json:"food_description,omitempty"`
}

// EnhancedFoodItem is a FoodItem with the display fields the UI wants.
type EnhancedFoodItem struct {
	FoodItem
	ImageURL string `json:"image_url,omitempty"`
	Calories string `json:"calories,omitempty"`
	Protein  string `json:"protein,omitempty"`
	Carbs    string `json:"carbs,omitempty"`
	Fat      string `json:"fat,omitempty"`
}

// Serving is one nutrition serving record. All values are the provider's
// loosely-typed strings; absent nutrients stay empty.
type Serving struct {
	ServingID              string `json:"serving_id"`
	ServingDescription     string `json:"serving_description"`
	ServingURL             string `json:"serving_url,omitempty"`
	MeasurementDescription string `json:"measurement_description,omitempty"`
	MetricServingAmount    string `json:"metric_serving_amount,omitempty"`
	MetricServingUnit      string `json:"metric_serving_unit,omitempty"`
	NumberOfUnits          string `json:"number_of_units,omitempty"`
	Calories               string `json:"calories,omitempty"`
	Carbohydrate           string `json:"carbohydrate,omitempty"`
	Protein                string `json:"protein,omitempty"`
	Fat                    string `json:"fat,omitempty"`
	SaturatedFat           string `json:"saturated_fat,omitempty"`
	Fiber                  string `json:"fiber,omitempty"`
	Sugar                  string `json:"sugar,omitempty"`
	Sodium                 string `json:"sodium,omitempty"`
	Potassium              string `json:"potassium,omitempty"`
	Cholesterol            string `json:"cholesterol,omitempty"`
	Calcium                string `json:"calcium,omitempty"`
	Iron                   string `json:"iron,omitempty"`
	VitaminA               string `json:"vitamin_a,omitempty"`
	VitaminC               string `json:"vitamin_c,omitempty"`
}

// ServingList wraps the provider's servings envelope.
type ServingList struct {
	Serving []Serving `json:"serving"`
}

// FoodDetails is the full nutrition record for one food.
type FoodDetails struct {
	FoodID   string      `json:"food_id"`
	FoodName string      `json:"food_name"`
	FoodType string      `json:"food_type"`
	FoodURL  string      `json:"food_url,omitempty"`
	Servings ServingList `json:"servings"`
}

// HealthInfo is static health-tip content for a food name.
type HealthInfo struct {
	Benefits     []string `json:"benefits"`
	Risks        []string `json:"risks"`
	QuickFacts   []string `json:"quick_facts"`
	ShoppingTips []string `json:"shopping_tips"`
	StorageTips  []string `json:"storage_tips"`
}
