package insight

import "fmt"

// categorySuggestions maps a spending category to a fixed savings tip. Lookup
// is by exact category name; unknown categories get defaultSuggestion.
var categorySuggestions = map[string]string{
	"Food and Drink": "Try meal prepping to cut costs by 20%! Your wallet and waistline will thank you.",
	"Transportation": "Consider walking or biking for short trips - it's free and healthy!",
	"Entertainment":  "Look for student discounts and free events on campus.",
	"Shopping":       "Wait 24 hours before buying non-essentials - you might not want it tomorrow.",
	"Coffee Shops":   "A $5 coffee habit = $1,825/year. Consider a French press!",
	"Other":          "This category needs some attention - track what's going here.",
}

const defaultSuggestion = "Consider if this spending aligns with your goals."

// categoryRecommendation is a ready-made plan for trimming one category.
type categoryRecommendation struct {
	key        string // lowercased category name
	roast      string
	action     string
	savingRate float64
	impactVerb string
}

// categoryRecommendations is matched by substring in either direction, so
// "Food and Drink" hits "food and drink" and a vendor's "Travel &
// Transportation" still hits "transportation". Ordered: a free-text category
// matching several keys always resolves to the first entry here.
var categoryRecommendations = []categoryRecommendation{
	{
		key:        "food and drink",
		roast:      "You spent %s on food delivery this month? You're single-handedly keeping the restaurant industry afloat.",
		action:     "Try meal prepping 3 days a week instead of ordering delivery.",
		savingRate: 0.4,
		impactVerb: "Save %s monthly and actually know what's in your food.",
	},
	{
		key:        "transportation",
		roast:      "You spent %s on rides this month? You could've just bought a used bike and a helmet.",
		action:     "Replace just 2 rideshare trips per week with public transit or walking.",
		savingRate: 0.4,
		impactVerb: "Save %s monthly and get some exercise.",
	},
	{
		key:        "shopping",
		roast:      "Amazon called - they want to know if you're their silent business partner after you spent %s on shopping.",
		action:     "Wait 48 hours before buying anything over $25 online.",
		savingRate: 0.4,
		impactVerb: "Reduce impulse purchases by %s monthly.",
	},
	{
		key:        "coffee shops",
		roast:      "You spent %s on coffee this month? That's not a latte, that's a mortgage.",
		action:     "Make coffee at home 4 days a week, treat yourself 3 days.",
		savingRate: 0.6,
		impactVerb: "Save %s monthly and still get your caffeine fix.",
	},
	{
		key:        "entertainment",
		roast:      "You've built a streaming hedge fund after spending %s on entertainment.",
		action:     "Keep only 2 streaming services and rotate them monthly.",
		savingRate: 0.5,
		impactVerb: "Save %s monthly and actually watch what you pay for.",
	},
}

func defaultCategoryRecommendation(category string, amount float64) Recommendation {
	return Recommendation{
		Roast:          fmt.Sprintf("%s on %s? You're basically a walking ATM for this industry.", money(amount), category),
		Recommendation: fmt.Sprintf("Reduce %s spending by 25%% through better planning and alternatives.", category),
		Impact:         fmt.Sprintf("Save %s monthly and redirect funds to your goals.", money(amount*0.25)),
	}
}

// genericTips close out every recommendation list regardless of the data.
var genericTips = []Recommendation{
	{
		Roast:          "Your subscriptions look like Pokemon: you're trying to catch 'em all.",
		Recommendation: "Cancel 2 subscriptions you haven't used in 30 days.",
		Impact:         "Save $20-40 monthly and simplify your life.",
	},
	{
		Roast:          "Retail therapy is not tax-deductible, sorry.",
		Recommendation: "Use the 24-hour rule for purchases over $50.",
		Impact:         "Reduce impulse spending by 60% and avoid buyer's remorse.",
	},
}

// overspendingRecommendation is appended whenever outflow exceeds inflow.
var overspendingRecommendation = Recommendation{
	Roast:          "You saved $0 this month - bold strategy, let's see how it plays out.",
	Recommendation: "Start by saving just $20 per week automatically.",
	Impact:         "Build a $1,040 emergency fund by year-end and reduce financial stress.",
}
