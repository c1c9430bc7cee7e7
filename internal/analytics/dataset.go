package analytics

import (
	"github.com/rogerio-castellano/order-insights/internal/models"
)

// Dataset is a read-only snapshot of the five source tables. The aggregation
// functions never mutate it, so one snapshot can serve concurrent callers.
type Dataset struct {
	Orders       []models.Order
	Customers    []models.Customer
	Items        []models.OrderItem
	Products     []models.Product
	Translations []models.CategoryTranslation

	customersByID map[string]models.Customer
	ordersByID    map[string]models.Order
	productsByID  map[string]models.Product
	englishByCode map[string]string
}

// NewDataset builds the lookup indexes once so the per-request joins stay a
// single pass over the line items.
func NewDataset(
	orders []models.Order,
	customers []models.Customer,
	items []models.OrderItem,
	products []models.Product,
	translations []models.CategoryTranslation,
) *Dataset {
	ds := &Dataset{
		Orders:       orders,
		Customers:    customers,
		Items:        items,
		Products:     products,
		Translations: translations,
	}
	ds.reindex()
	return ds
}

func (ds *Dataset) reindex() {
	ds.customersByID = make(map[string]models.Customer, len(ds.Customers))
	for _, c := range ds.Customers {
		ds.customersByID[c.ID] = c
	}
	ds.ordersByID = make(map[string]models.Order, len(ds.Orders))
	for _, o := range ds.Orders {
		ds.ordersByID[o.ID] = o
	}
	ds.productsByID = make(map[string]models.Product, len(ds.Products))
	for _, p := range ds.Products {
		ds.productsByID[p.ID] = p
	}
	ds.englishByCode = make(map[string]string, len(ds.Translations))
	for _, t := range ds.Translations {
		ds.englishByCode[t.Name] = t.NameEnglish
	}
}

// CityOf resolves the customer city of an order. ok is false when the order
// or its customer is unknown; such orders are dropped from city aggregations.
func (ds *Dataset) CityOf(orderID string) (string, bool) {
	o, ok := ds.ordersByID[orderID]
	if !ok {
		return "", false
	}
	c, ok := ds.customersByID[o.CustomerID]
	if !ok || c.City == "" {
		return "", false
	}
	return c.City, true
}

// CategoryLabelOf resolves the category label of a product: the English
// translation when one exists, otherwise the untranslated code. ok is false
// when the product is unknown or carries no category at all.
func (ds *Dataset) CategoryLabelOf(productID string) (string, bool) {
	p, ok := ds.productsByID[productID]
	if !ok || p.CategoryName == "" {
		return "", false
	}
	if english, ok := ds.englishByCode[p.CategoryName]; ok && english != "" {
		return english, true
	}
	return p.CategoryName, true
}

// OrderSet is an optional filter of eligible order ids. A nil set means
// "no filter"; an empty non-nil set matches nothing.
type OrderSet map[string]struct{}

func (s OrderSet) Has(orderID string) bool {
	if s == nil {
		return true
	}
	_, ok := s[orderID]
	return ok
}
