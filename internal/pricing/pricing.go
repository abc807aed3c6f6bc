// Package pricing computes the displayed order total. The quote is a
// display aid for the customer; it is never persisted as the price of
// record.
package pricing

// basePrices maps layer count to size-in-inches to the base dollar price.
var basePrices = map[int]map[int]int{
	2: {6: 60, 8: 70, 10: 80},
	3: {6: 70, 8: 80, 10: 90},
	4: {6: 80, 8: 90, 10: 100},
}

// Base returns the base price for the given layer count and size. A
// combination outside the table prices at 0.
func Base(layers, size int) int {
	sizes, ok := basePrices[layers]
	if !ok {
		return 0
	}
	return sizes[size]
}

// Total returns base price plus the unit prices of every selected flavor
// and extra.
func Total(layers, size int, flavorPrices, extraPrices []float64) float64 {
	total := float64(Base(layers, size))
	for _, p := range flavorPrices {
		total += p
	}
	for _, p := range extraPrices {
		total += p
	}
	return total
}
