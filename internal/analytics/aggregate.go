package analytics

import "sort"

// CityOrderCount is one row of the top-cities ranking.
type CityOrderCount struct {
	City        string `json:"city"`
	TotalOrders int    `json:"total_orders"`
}

// CityCategoryCount is the winning category of a city together with its
// line-item count.
type CityCategoryCount struct {
	City        string `json:"city"`
	Category    string `json:"category"`
	TotalOrders int    `json:"total_orders"`
}

// Summary holds the dashboard key metrics.
type Summary struct {
	TotalOrders      int     `json:"total_orders"`
	TotalCities      int     `json:"total_cities"`
	AvgOrdersPerCity float64 `json:"avg_orders_per_city"`
}

// TopCategoryPerCity returns, for each city, the product category with the
// highest line-item count among eligible orders, ranked by that count and
// truncated to n cities.
//
// Joins that cannot be resolved do not fail the aggregation: a line item
// whose product has no category label, or whose order has no resolvable
// customer city, never enters the grouping. A city whose items all fail to
// resolve is therefore absent from the result rather than present with an
// empty category.
//
// Ties are broken deterministically: within a city the lexicographically
// smallest category label wins, and cities with equal winning counts rank
// in ascending city order.
func TopCategoryPerCity(ds *Dataset, eligible OrderSet, n int) []CityCategoryCount {
	if ds == nil || n <= 0 {
		return nil
	}

	type cityCategory struct {
		city     string
		category string
	}
	counts := make(map[cityCategory]int)

	for _, item := range ds.Items {
		if !eligible.Has(item.OrderID) {
			continue
		}
		city, ok := ds.CityOf(item.OrderID)
		if !ok {
			continue
		}
		label, ok := ds.CategoryLabelOf(item.ProductID)
		if !ok {
			continue
		}
		counts[cityCategory{city, label}]++
	}

	best := make(map[string]CityCategoryCount)
	for key, count := range counts {
		cur, seen := best[key.city]
		if !seen || count > cur.TotalOrders ||
			(count == cur.TotalOrders && key.category < cur.Category) {
			best[key.city] = CityCategoryCount{
				City:        key.city,
				Category:    key.category,
				TotalOrders: count,
			}
		}
	}

	ranked := make([]CityCategoryCount, 0, len(best))
	for _, row := range best {
		ranked = append(ranked, row)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TotalOrders != ranked[j].TotalOrders {
			return ranked[i].TotalOrders > ranked[j].TotalOrders
		}
		return ranked[i].City < ranked[j].City
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// TopCitiesByOrderCount ranks cities by the number of eligible orders placed
// by their customers. Orders without a resolvable customer are dropped.
func TopCitiesByOrderCount(ds *Dataset, eligible OrderSet, n int) []CityOrderCount {
	if ds == nil || n <= 0 {
		return nil
	}

	counts := make(map[string]int)
	for _, o := range ds.Orders {
		if !eligible.Has(o.ID) {
			continue
		}
		city, ok := ds.CityOf(o.ID)
		if !ok {
			continue
		}
		counts[city]++
	}

	ranked := make([]CityOrderCount, 0, len(counts))
	for city, count := range counts {
		ranked = append(ranked, CityOrderCount{City: city, TotalOrders: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TotalOrders != ranked[j].TotalOrders {
			return ranked[i].TotalOrders > ranked[j].TotalOrders
		}
		return ranked[i].City < ranked[j].City
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Summarize computes the key metrics over eligible orders. The per-city
// average is defined as zero when no city resolves, never a division error.
func Summarize(ds *Dataset, eligible OrderSet) Summary {
	if ds == nil {
		return Summary{}
	}

	var total int
	cities := make(map[string]struct{})
	for _, o := range ds.Orders {
		if !eligible.Has(o.ID) {
			continue
		}
		total++
		if city, ok := ds.CityOf(o.ID); ok {
			cities[city] = struct{}{}
		}
	}

	s := Summary{TotalOrders: total, TotalCities: len(cities)}
	if s.TotalCities > 0 {
		s.AvgOrdersPerCity = float64(s.TotalOrders) / float64(s.TotalCities)
	}
	return s
}
