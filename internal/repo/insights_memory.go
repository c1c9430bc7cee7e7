package repo

import (
	"github.com/rogerio-castellano/order-insights/internal/analytics"
)

// InMemoryInsightsRepository computes insights directly over the dataset
// repository's snapshot using the analytics package.
type InMemoryInsightsRepository struct {
	datasets *InMemoryDatasetRepository
}

func NewInMemoryInsightsRepository(datasets *InMemoryDatasetRepository) *InMemoryInsightsRepository {
	return &InMemoryInsightsRepository{datasets: datasets}
}

// eligible resolves a date filter to the order-id set the aggregator
// consumes. A zero filter yields nil, meaning "no restriction".
func eligible(ds *analytics.Dataset, f OrderFilter) analytics.OrderSet {
	if f.IsZero() {
		return nil
	}
	set := analytics.OrderSet{}
	for _, o := range ds.Orders {
		if f.Matches(o) {
			set[o.ID] = struct{}{}
		}
	}
	return set
}

func (r *InMemoryInsightsRepository) TopCities(f OrderFilter, limit int) ([]analytics.CityOrderCount, error) {
	ds, err := r.datasets.Snapshot()
	if err != nil {
		return nil, err
	}
	return analytics.TopCitiesByOrderCount(ds, eligible(ds, f), limit), nil
}

func (r *InMemoryInsightsRepository) TopCategories(f OrderFilter, limit int) ([]analytics.CityCategoryCount, error) {
	ds, err := r.datasets.Snapshot()
	if err != nil {
		return nil, err
	}
	return analytics.TopCategoryPerCity(ds, eligible(ds, f), limit), nil
}

func (r *InMemoryInsightsRepository) Summary(f OrderFilter) (analytics.Summary, error) {
	ds, err := r.datasets.Snapshot()
	if err != nil {
		return analytics.Summary{}, err
	}
	return analytics.Summarize(ds, eligible(ds, f)), nil
}
