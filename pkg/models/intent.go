package models

// Intent is the closed set of analytical goals a question can map to.
type Intent string

const (
	// Business intents. Every one of these must have a query template
	// registered in pkg/query; startup validation enforces it.
	IntentTotalStockItems      Intent = "TOTAL_STOCK_ITEMS"
	IntentDistinctProductCount Intent = "DISTINCT_PRODUCT_COUNT"
	IntentTotalRevenue         Intent = "TOTAL_REVENUE"
	IntentTopStockProducts     Intent = "TOP_STOCK_PRODUCTS"
	IntentTopSoldProducts      Intent = "TOP_SOLD_PRODUCTS"
	IntentTopCitiesByRevenue   Intent = "TOP_CITIES_BY_REVENUE"
	IntentTopClientsByRevenue  Intent = "TOP_CLIENTS_BY_REVENUE"
	IntentRevenueByCity        Intent = "REVENUE_BY_CITY"
	IntentRevenueByProduct     Intent = "REVENUE_BY_PRODUCT"
	IntentRevenueByClient      Intent = "REVENUE_BY_CLIENT"
	IntentDateFilteredRevenue  Intent = "DATE_FILTERED_REVENUE"

	// System intents. Never carry a query template.
	IntentOutOfScope Intent = "OUT_OF_SCOPE"
	IntentUnknown    Intent = "UNKNOWN"
)

// BusinessIntents returns every intent that must be answerable by the
// query compiler, in declaration order.
func BusinessIntents() []Intent {
	return []Intent{
		IntentTotalStockItems,
		IntentDistinctProductCount,
		IntentTotalRevenue,
		IntentTopStockProducts,
		IntentTopSoldProducts,
		IntentTopCitiesByRevenue,
		IntentTopClientsByRevenue,
		IntentRevenueByCity,
		IntentRevenueByProduct,
		IntentRevenueByClient,
		IntentDateFilteredRevenue,
	}
}

// ParseIntent maps a stored label (e.g. from the reference corpus) onto the
// enumeration. The second return is false for labels outside the closed set,
// including the system intents, which are never valid corpus labels.
func ParseIntent(label string) (Intent, bool) {
	for _, i := range BusinessIntents() {
		if string(i) == label {
			return i, true
		}
	}
	return IntentUnknown, false
}

// IsSystem reports whether the intent is one of the system outcomes
// (classification failed or deliberately unanswerable).
func (i Intent) IsSystem() bool {
	return i == IntentUnknown || i == IntentOutOfScope
}
