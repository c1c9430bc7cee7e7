package analytics_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/order-insights/internal/analytics"
	"github.com/rogerio-castellano/order-insights/internal/models"
)

func order(id, customerID string) models.Order {
	return models.Order{ID: id, CustomerID: customerID, PurchasedAt: time.Date(2017, 6, 1, 0, 0, 0, 0, time.UTC)}
}

func TestTopCategoryPerCity_SingleCity(t *testing.T) {
	ds := analytics.NewDataset(
		[]models.Order{order("o1", "c1"), order("o2", "c1")},
		[]models.Customer{{ID: "c1", City: "springfield"}},
		[]models.OrderItem{
			{OrderID: "o1", ProductID: "p1"},
			{OrderID: "o1", ProductID: "p2"},
			{OrderID: "o2", ProductID: "p1"},
		},
		[]models.Product{
			{ID: "p1", CategoryName: "toys"},
			{ID: "p2", CategoryName: "toys"},
		},
		[]models.CategoryTranslation{{Name: "toys", NameEnglish: "toys"}},
	)

	got := analytics.TopCategoryPerCity(ds, nil, 10)

	require.Len(t, got, 1)
	assert.Equal(t, "springfield", got[0].City)
	assert.Equal(t, "toys", got[0].Category)
	// three line items resolve to toys, not two distinct orders
	assert.Equal(t, 3, got[0].TotalOrders)
}

func TestTopCategoryPerCity_TieBreaksLexicographically(t *testing.T) {
	ds := analytics.NewDataset(
		[]models.Order{order("o1", "c1"), order("o2", "c1")},
		[]models.Customer{{ID: "c1", City: "metropolis"}},
		[]models.OrderItem{
			{OrderID: "o1", ProductID: "p1"},
			{OrderID: "o2", ProductID: "p2"},
		},
		[]models.Product{
			{ID: "p1", CategoryName: "toys"},
			{ID: "p2", CategoryName: "books"},
		},
		[]models.CategoryTranslation{
			{Name: "toys", NameEnglish: "toys"},
			{Name: "books", NameEnglish: "books"},
		},
	)

	got := analytics.TopCategoryPerCity(ds, nil, 10)

	require.Len(t, got, 1)
	assert.Equal(t, "metropolis", got[0].City)
	// toys and books tie at 1; the lexicographically smaller label wins
	assert.Equal(t, "books", got[0].Category)
	assert.Equal(t, 1, got[0].TotalOrders)
}

func TestTopCategoryPerCity_TranslationFallsBackToCode(t *testing.T) {
	ds := analytics.NewDataset(
		[]models.Order{order("o1", "c1")},
		[]models.Customer{{ID: "c1", City: "shelbyville"}},
		[]models.OrderItem{{OrderID: "o1", ProductID: "p1"}},
		[]models.Product{{ID: "p1", CategoryName: "brinquedos"}},
		nil,
	)

	got := analytics.TopCategoryPerCity(ds, nil, 10)

	require.Len(t, got, 1)
	assert.Equal(t, "brinquedos", got[0].Category)
}

func TestTopCategoryPerCity_UnresolvedJoinsAreDropped(t *testing.T) {
	ds := analytics.NewDataset(
		[]models.Order{order("o1", "c1"), order("o2", "c1"), order("o3", "ghost")},
		[]models.Customer{{ID: "c1", City: "springfield"}},
		[]models.OrderItem{
			{OrderID: "o1", ProductID: "p1"},
			{OrderID: "o1", ProductID: "missing-product"},
			{OrderID: "o2", ProductID: "p2"}, // product without category
			{OrderID: "o3", ProductID: "p1"}, // order without customer
		},
		[]models.Product{
			{ID: "p1", CategoryName: "toys"},
			{ID: "p2", CategoryName: ""},
		},
		[]models.CategoryTranslation{{Name: "toys", NameEnglish: "toys"}},
	)

	got := analytics.TopCategoryPerCity(ds, nil, 10)

	require.Len(t, got, 1)
	assert.Equal(t, "springfield", got[0].City)
	assert.Equal(t, "toys", got[0].Category)
	assert.Equal(t, 1, got[0].TotalOrders)
}

func TestTopCategoryPerCity_CityWithNoResolvableCategoryIsExcluded(t *testing.T) {
	ds := analytics.NewDataset(
		[]models.Order{order("o1", "c1")},
		[]models.Customer{{ID: "c1", City: "ghost-town"}},
		[]models.OrderItem{{OrderID: "o1", ProductID: "unknown"}},
		nil,
		nil,
	)

	got := analytics.TopCategoryPerCity(ds, nil, 10)
	assert.Empty(t, got)
}

func TestTopCategoryPerCity_CardinalityAndOrdering(t *testing.T) {
	var (
		orders    []models.Order
		customers []models.Customer
		items     []models.OrderItem
	)
	// 15 cities; city i has i+1 line items so counts are all distinct
	for i := 0; i < 15; i++ {
		city := fmt.Sprintf("city-%02d", i)
		customerID := fmt.Sprintf("c%d", i)
		customers = append(customers, models.Customer{ID: customerID, City: city})
		orderID := fmt.Sprintf("o%d", i)
		orders = append(orders, order(orderID, customerID))
		for j := 0; j <= i; j++ {
			items = append(items, models.OrderItem{OrderID: orderID, ProductID: "p1"})
		}
	}
	ds := analytics.NewDataset(orders, customers, items,
		[]models.Product{{ID: "p1", CategoryName: "toys"}},
		[]models.CategoryTranslation{{Name: "toys", NameEnglish: "toys"}},
	)

	got := analytics.TopCategoryPerCity(ds, nil, 10)

	require.Len(t, got, 10)
	seen := map[string]bool{}
	for i, row := range got {
		assert.False(t, seen[row.City], "duplicate city %s", row.City)
		seen[row.City] = true
		if i > 0 {
			assert.GreaterOrEqual(t, got[i-1].TotalOrders, row.TotalOrders)
		}
	}
	assert.Equal(t, "city-14", got[0].City)
	assert.Equal(t, 15, got[0].TotalOrders)
}

func TestTopCategoryPerCity_FilterExcludingEverything(t *testing.T) {
	ds := analytics.NewDataset(
		[]models.Order{order("o1", "c1")},
		[]models.Customer{{ID: "c1", City: "springfield"}},
		[]models.OrderItem{{OrderID: "o1", ProductID: "p1"}},
		[]models.Product{{ID: "p1", CategoryName: "toys"}},
		[]models.CategoryTranslation{{Name: "toys", NameEnglish: "toys"}},
	)

	got := analytics.TopCategoryPerCity(ds, analytics.OrderSet{}, 10)
	assert.Empty(t, got)
}

func TestTopCategoryPerCity_FilterRestrictsOrders(t *testing.T) {
	ds := analytics.NewDataset(
		[]models.Order{order("o1", "c1"), order("o2", "c2")},
		[]models.Customer{
			{ID: "c1", City: "springfield"},
			{ID: "c2", City: "shelbyville"},
		},
		[]models.OrderItem{
			{OrderID: "o1", ProductID: "p1"},
			{OrderID: "o2", ProductID: "p1"},
		},
		[]models.Product{{ID: "p1", CategoryName: "toys"}},
		[]models.CategoryTranslation{{Name: "toys", NameEnglish: "toys"}},
	)

	got := analytics.TopCategoryPerCity(ds, analytics.OrderSet{"o2": {}}, 10)

	require.Len(t, got, 1)
	assert.Equal(t, "shelbyville", got[0].City)
}

func TestTopCategoryPerCity_Idempotent(t *testing.T) {
	ds := analytics.NewDataset(
		[]models.Order{order("o1", "c1"), order("o2", "c2")},
		[]models.Customer{
			{ID: "c1", City: "springfield"},
			{ID: "c2", City: "shelbyville"},
		},
		[]models.OrderItem{
			{OrderID: "o1", ProductID: "p1"},
			{OrderID: "o1", ProductID: "p2"},
			{OrderID: "o2", ProductID: "p2"},
		},
		[]models.Product{
			{ID: "p1", CategoryName: "toys"},
			{ID: "p2", CategoryName: "books"},
		},
		[]models.CategoryTranslation{
			{Name: "toys", NameEnglish: "toys"},
			{Name: "books", NameEnglish: "books"},
		},
	)

	first := analytics.TopCategoryPerCity(ds, nil, 10)
	second := analytics.TopCategoryPerCity(ds, nil, 10)
	assert.Equal(t, first, second)
}

func TestTopCitiesByOrderCount(t *testing.T) {
	ds := analytics.NewDataset(
		[]models.Order{
			order("o1", "c1"), order("o2", "c1"), order("o3", "c2"),
			order("o4", "ghost"),
		},
		[]models.Customer{
			{ID: "c1", City: "springfield"},
			{ID: "c2", City: "shelbyville"},
		},
		nil, nil, nil,
	)

	got := analytics.TopCitiesByOrderCount(ds, nil, 10)

	require.Len(t, got, 2)
	assert.Equal(t, analytics.CityOrderCount{City: "springfield", TotalOrders: 2}, got[0])
	assert.Equal(t, analytics.CityOrderCount{City: "shelbyville", TotalOrders: 1}, got[1])
}

func TestTopCitiesByOrderCount_TiesRankByCityName(t *testing.T) {
	ds := analytics.NewDataset(
		[]models.Order{order("o1", "c1"), order("o2", "c2")},
		[]models.Customer{
			{ID: "c1", City: "zanesville"},
			{ID: "c2", City: "akron"},
		},
		nil, nil, nil,
	)

	got := analytics.TopCitiesByOrderCount(ds, nil, 10)

	require.Len(t, got, 2)
	assert.Equal(t, "akron", got[0].City)
	assert.Equal(t, "zanesville", got[1].City)
}

func TestSummarize(t *testing.T) {
	ds := analytics.NewDataset(
		[]models.Order{order("o1", "c1"), order("o2", "c1"), order("o3", "c2")},
		[]models.Customer{
			{ID: "c1", City: "springfield"},
			{ID: "c2", City: "shelbyville"},
		},
		nil, nil, nil,
	)

	s := analytics.Summarize(ds, nil)

	assert.Equal(t, 3, s.TotalOrders)
	assert.Equal(t, 2, s.TotalCities)
	assert.InDelta(t, 1.5, s.AvgOrdersPerCity, 1e-9)
}

func TestSummarize_ZeroCitiesYieldsZeroAverage(t *testing.T) {
	ds := analytics.NewDataset(
		[]models.Order{order("o1", "ghost")},
		nil, nil, nil, nil,
	)

	s := analytics.Summarize(ds, nil)

	assert.Equal(t, 1, s.TotalOrders)
	assert.Equal(t, 0, s.TotalCities)
	assert.Zero(t, s.AvgOrdersPerCity)
}

func TestSummarize_EmptyFilter(t *testing.T) {
	ds := analytics.NewDataset(
		[]models.Order{order("o1", "c1")},
		[]models.Customer{{ID: "c1", City: "springfield"}},
		nil, nil, nil,
	)

	s := analytics.Summarize(ds, analytics.OrderSet{})
	assert.Equal(t, analytics.Summary{}, s)
}
