package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/rogerio-castellano/order-insights/internal/analytics"
	api "github.com/rogerio-castellano/order-insights/internal/http"
)

func TestTopCitiesHandler(t *testing.T) {
	t.Cleanup(clearAll)
	seedDataset()
	r := api.NewRouter()

	w := get(r, "/insights/top-cities")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var rows []analytics.CityOrderCount
	if err := json.NewDecoder(w.Body).Decode(&rows); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("expected 2 cities, got %d", len(rows))
	}
	if rows[0].City != "springfield" || rows[0].TotalOrders != 3 {
		t.Errorf("expected springfield with 3 orders first, got %+v", rows[0])
	}
	if rows[1].City != "shelbyville" || rows[1].TotalOrders != 1 {
		t.Errorf("expected shelbyville with 1 order second, got %+v", rows[1])
	}
}

func TestTopCitiesHandler_YearFilter(t *testing.T) {
	t.Cleanup(clearAll)
	seedDataset()
	r := api.NewRouter()

	w := get(r, "/insights/top-cities?year=2018")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var rows []analytics.CityOrderCount
	if err := json.NewDecoder(w.Body).Decode(&rows); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	if len(rows) != 1 || rows[0].City != "shelbyville" {
		t.Errorf("expected only shelbyville in 2018, got %+v", rows)
	}
}

func TestTopCitiesHandler_InvalidDate(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	w := get(r, "/insights/top-cities?from=yesterday")

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 Bad Request, got %d", w.Code)
	}
}

func TestTopCitiesHandler_InvertedRange(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	w := get(r, "/insights/top-cities?from=2018-01-01&to=2017-01-01")

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 Bad Request, got %d", w.Code)
	}
}

func TestTopCategoriesHandler(t *testing.T) {
	t.Cleanup(clearAll)
	seedDataset()
	r := api.NewRouter()

	w := get(r, "/insights/top-categories")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var rows []analytics.CityCategoryCount
	if err := json.NewDecoder(w.Body).Decode(&rows); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].City != "springfield" || rows[0].Category != "toys" || rows[0].TotalOrders != 3 {
		t.Errorf("expected springfield/toys/3 first, got %+v", rows[0])
	}
	if rows[1].City != "shelbyville" || rows[1].Category != "books" || rows[1].TotalOrders != 1 {
		t.Errorf("expected shelbyville/books/1 second, got %+v", rows[1])
	}
}

func TestTopCategoriesHandler_DateRange(t *testing.T) {
	t.Cleanup(clearAll)
	seedDataset()
	r := api.NewRouter()

	// only o3 (June 20) and o2 (June 15) fall inside the window
	w := get(r, "/insights/top-categories?from=2017-06-01&to=2017-06-30")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var rows []analytics.CityCategoryCount
	if err := json.NewDecoder(w.Body).Decode(&rows); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	if len(rows) != 1 {
		t.Fatalf("expected 1 city, got %d: %+v", len(rows), rows)
	}
	// springfield keeps one toys item (o2) and gains one books item (o3);
	// the tie breaks on the lexicographically smaller category
	if rows[0].City != "springfield" || rows[0].Category != "books" || rows[0].TotalOrders != 1 {
		t.Errorf("expected springfield/books/1, got %+v", rows[0])
	}
}

func TestTopCategoriesHandler_FilterExcludingEverything(t *testing.T) {
	t.Cleanup(clearAll)
	seedDataset()
	r := api.NewRouter()

	w := get(r, "/insights/top-categories?year=1999")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var rows []analytics.CityCategoryCount
	if err := json.NewDecoder(w.Body).Decode(&rows); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected empty result, got %+v", rows)
	}
}

func TestSummaryHandler(t *testing.T) {
	t.Cleanup(clearAll)
	seedDataset()
	r := api.NewRouter()

	w := get(r, "/insights/summary")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var s analytics.Summary
	if err := json.NewDecoder(w.Body).Decode(&s); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	if s.TotalOrders != 4 {
		t.Errorf("expected 4 total orders, got %d", s.TotalOrders)
	}
	if s.TotalCities != 2 {
		t.Errorf("expected 2 cities, got %d", s.TotalCities)
	}
	if s.AvgOrdersPerCity != 2.0 {
		t.Errorf("expected average 2.0, got %v", s.AvgOrdersPerCity)
	}
}

func TestSummaryHandler_EmptyDataset(t *testing.T) {
	t.Cleanup(clearAll)
	datasetRepo.Clear()
	r := api.NewRouter()

	w := get(r, "/insights/summary")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var s analytics.Summary
	if err := json.NewDecoder(w.Body).Decode(&s); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if s.TotalOrders != 0 || s.TotalCities != 0 || s.AvgOrdersPerCity != 0 {
		t.Errorf("expected zeroed summary, got %+v", s)
	}
}
