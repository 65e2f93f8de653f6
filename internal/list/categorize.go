package list

import "strings"

// Categorize returns the category name for the given item name, used when
// the caller picks no category. Case-insensitive: exact match first, then
// substring match. Falls back to "Other".
func Categorize(itemName string) string {
	name := strings.ToLower(strings.TrimSpace(itemName))
	if name == "" {
		return "Other"
	}

	if cat, ok := exactMatch[name]; ok {
		return cat
	}

	// Substring match, more specific keywords first
	for _, entry := range substringMatches {
		if strings.Contains(name, entry.keyword) {
			return entry.category
		}
	}

	return "Other"
}

var exactMatch = map[string]string{
	// Fruits & Vegetables
	"apple":        "Fruits & Vegetables",
	"apples":       "Fruits & Vegetables",
	"banana":       "Fruits & Vegetables",
	"bananas":      "Fruits & Vegetables",
	"orange":       "Fruits & Vegetables",
	"oranges":      "Fruits & Vegetables",
	"lemon":        "Fruits & Vegetables",
	"lemons":       "Fruits & Vegetables",
	"lime":         "Fruits & Vegetables",
	"limes":        "Fruits & Vegetables",
	"avocado":      "Fruits & Vegetables",
	"avocados":     "Fruits & Vegetables",
	"tomato":       "Fruits & Vegetables",
	"tomatoes":     "Fruits & Vegetables",
	"potato":       "Fruits & Vegetables",
	"potatoes":     "Fruits & Vegetables",
	"onion":        "Fruits & Vegetables",
	"onions":       "Fruits & Vegetables",
	"garlic":       "Fruits & Vegetables",
	"lettuce":      "Fruits & Vegetables",
	"spinach":      "Fruits & Vegetables",
	"kale":         "Fruits & Vegetables",
	"broccoli":     "Fruits & Vegetables",
	"carrots":      "Fruits & Vegetables",
	"celery":       "Fruits & Vegetables",
	"cucumber":     "Fruits & Vegetables",
	"mushrooms":    "Fruits & Vegetables",
	"grapes":       "Fruits & Vegetables",
	"strawberries": "Fruits & Vegetables",
	"blueberries":  "Fruits & Vegetables",
	"watermelon":   "Fruits & Vegetables",
	"pineapple":    "Fruits & Vegetables",
	"mango":        "Fruits & Vegetables",
	"zucchini":     "Fruits & Vegetables",
	"ginger":       "Fruits & Vegetables",
	"cilantro":     "Fruits & Vegetables",
	"basil":        "Fruits & Vegetables",

	// Dairy & Eggs
	"milk":           "Dairy & Eggs",
	"eggs":           "Dairy & Eggs",
	"butter":         "Dairy & Eggs",
	"cheese":         "Dairy & Eggs",
	"yogurt":         "Dairy & Eggs",
	"cream cheese":   "Dairy & Eggs",
	"sour cream":     "Dairy & Eggs",
	"heavy cream":    "Dairy & Eggs",
	"cottage cheese": "Dairy & Eggs",

	// Meat & Seafood
	"chicken":       "Meat & Seafood",
	"beef":          "Meat & Seafood",
	"pork":          "Meat & Seafood",
	"turkey":        "Meat & Seafood",
	"bacon":         "Meat & Seafood",
	"sausage":       "Meat & Seafood",
	"ham":           "Meat & Seafood",
	"steak":         "Meat & Seafood",
	"salmon":        "Meat & Seafood",
	"shrimp":        "Meat & Seafood",
	"tuna":          "Meat & Seafood",
	"fish":          "Meat & Seafood",
	"ground beef":   "Meat & Seafood",
	"ground turkey": "Meat & Seafood",
	"hot dogs":      "Meat & Seafood",
	"deli meat":     "Meat & Seafood",

	// Bakery
	"bread":     "Bakery",
	"bagels":    "Bakery",
	"tortillas": "Bakery",
	"rolls":     "Bakery",
	"buns":      "Bakery",
	"croissant": "Bakery",
	"muffins":   "Bakery",

	// Beverages
	"coffee":       "Beverages",
	"tea":          "Beverages",
	"juice":        "Beverages",
	"soda":         "Beverages",
	"water":        "Beverages",
	"beer":         "Beverages",
	"wine":         "Beverages",
	"orange juice": "Beverages",

	// Pantry
	"rice":          "Pantry",
	"pasta":         "Pantry",
	"flour":         "Pantry",
	"sugar":         "Pantry",
	"salt":          "Pantry",
	"pepper":        "Pantry",
	"olive oil":     "Pantry",
	"cereal":        "Pantry",
	"oats":          "Pantry",
	"peanut butter": "Pantry",
	"honey":         "Pantry",
	"ketchup":       "Pantry",
	"mustard":       "Pantry",
	"mayonnaise":    "Pantry",
	"soy sauce":     "Pantry",
	"beans":         "Pantry",

	// Frozen
	"ice cream":         "Frozen",
	"frozen pizza":      "Frozen",
	"frozen vegetables": "Frozen",
	"frozen fruit":      "Frozen",

	// Household
	"paper towels":      "Household",
	"toilet paper":      "Household",
	"dish soap":         "Household",
	"laundry detergent": "Household",
	"trash bags":        "Household",
	"sponges":           "Household",
	"aluminum foil":     "Household",

	// Personal Care
	"shampoo":     "Personal Care",
	"conditioner": "Personal Care",
	"toothpaste":  "Personal Care",
	"deodorant":   "Personal Care",
	"soap":        "Personal Care",
	"lotion":      "Personal Care",
	"razors":      "Personal Care",
}

var substringMatches = []struct {
	keyword  string
	category string
}{
	{"frozen", "Frozen"},
	{"organic baby", "Fruits & Vegetables"},
	{"chicken", "Meat & Seafood"},
	{"beef", "Meat & Seafood"},
	{"pork", "Meat & Seafood"},
	{"fish", "Meat & Seafood"},
	{"shrimp", "Meat & Seafood"},
	{"yogurt", "Dairy & Eggs"},
	{"cheese", "Dairy & Eggs"},
	{"milk", "Dairy & Eggs"},
	{"bread", "Bakery"},
	{"bagel", "Bakery"},
	{"tortilla", "Bakery"},
	{"juice", "Beverages"},
	{"water", "Beverages"},
	{"coffee", "Beverages"},
	{"tea", "Beverages"},
	{"canned", "Pantry"},
	{"sauce", "Pantry"},
	{"spice", "Pantry"},
	{"oil", "Pantry"},
	{"soap", "Household"},
	{"cleaner", "Household"},
	{"detergent", "Household"},
	{"paper", "Household"},
	{"shampoo", "Personal Care"},
	{"toothbrush", "Personal Care"},
	{"spinach", "Fruits & Vegetables"},
	{"berries", "Fruits & Vegetables"},
	{"salad", "Fruits & Vegetables"},
}
