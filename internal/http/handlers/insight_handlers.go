package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rogerio-castellano/order-insights/internal/analytics"
	"github.com/rogerio-castellano/order-insights/internal/repo"
)

// maxTopN caps every ranking at ten rows, matching the dashboard layout.
const maxTopN = 10

const dateLayout = "2006-01-02"

func parseOrderFilter(q url.Values) (repo.OrderFilter, error) {
	var f repo.OrderFilter

	if s := q.Get("from"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return f, fmt.Errorf("invalid 'from' date %q, want YYYY-MM-DD", s)
		}
		f.Since = &t
	}
	if s := q.Get("to"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return f, fmt.Errorf("invalid 'to' date %q, want YYYY-MM-DD", s)
		}
		f.Until = &t
	}
	if s := q.Get("year"); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil {
			return f, fmt.Errorf("invalid 'year' %q", s)
		}
		f.Year = &y
	}

	if f.Since != nil && f.Until != nil && f.Until.Before(*f.Since) {
		return f, fmt.Errorf("'to' date precedes 'from' date")
	}
	return f, nil
}

func parseLimit(q url.Values) (int, error) {
	s := q.Get("limit")
	if s == "" {
		return maxTopN, nil
	}
	limit, err := strconv.Atoi(s)
	if err != nil || limit <= 0 {
		return 0, fmt.Errorf("limit must be a positive integer")
	}
	if limit > maxTopN {
		limit = maxTopN
	}
	return limit, nil
}

// cacheParts renders the filter canonically so equivalent requests share a
// cache entry.
func cacheParts(f repo.OrderFilter, limit int) []string {
	from, to, year := "-", "-", "-"
	if f.Since != nil {
		from = f.Since.Format(dateLayout)
	}
	if f.Until != nil {
		to = f.Until.Format(dateLayout)
	}
	if f.Year != nil {
		year = strconv.Itoa(*f.Year)
	}
	return []string{from, to, year, strconv.Itoa(limit)}
}

// respondCached serves the metric from the insight cache when possible and
// falls back to computing it. Caching is best effort: a missing cache
// service or a Redis hiccup only costs a recomputation.
func respondCached(w http.ResponseWriter, r *http.Request, metric string, parts []string, compute func() (any, error)) {
	var key string
	if insightCache != nil {
		key = insightCache.Key(r.Context(), metric, parts...)
		if payload, ok := insightCache.Get(r.Context(), key); ok {
			w.Header().Set("Content-Type", "application/json")
			if _, err := w.Write(payload); err != nil {
				log.Printf("failed to write cached response: %v", err)
			}
			return
		}
	}

	data, err := compute()
	if err != nil {
		http.Error(w, "could not compute "+metric, http.StatusInternalServerError)
		return
	}

	payload, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	if insightCache != nil {
		insightCache.Set(r.Context(), key, payload)
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(payload); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

// TopCitiesHandler godoc
// @Summary Top cities by order count
// @Tags insights
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD, inclusive)"
// @Param to query string false "End date (YYYY-MM-DD, inclusive)"
// @Param year query int false "Calendar year shorthand"
// @Param limit query int false "Rows to return (max 10)"
// @Success 200 {array} analytics.CityOrderCount
// @Failure 400 {string} string "Invalid query"
// @Failure 500 {string} string "Internal error"
// @Router /insights/top-cities [get]
func TopCitiesHandler(w http.ResponseWriter, r *http.Request) {
	f, err := parseOrderFilter(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	limit, err := parseLimit(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	respondCached(w, r, "top-cities", cacheParts(f, limit), func() (any, error) {
		rows, err := insightsRepo.TopCities(f, limit)
		if err != nil {
			return nil, err
		}
		if rows == nil {
			rows = []analytics.CityOrderCount{}
		}
		return rows, nil
	})
}

// TopCategoriesHandler godoc
// @Summary Most popular product category per city
// @Description For each city, the category with the most order line items,
// @Description ranked by that count. Ties break on the smaller category name.
// @Tags insights
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD, inclusive)"
// @Param to query string false "End date (YYYY-MM-DD, inclusive)"
// @Param year query int false "Calendar year shorthand"
// @Param limit query int false "Rows to return (max 10)"
// @Success 200 {array} analytics.CityCategoryCount
// @Failure 400 {string} string "Invalid query"
// @Failure 500 {string} string "Internal error"
// @Router /insights/top-categories [get]
func TopCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	f, err := parseOrderFilter(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	limit, err := parseLimit(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	respondCached(w, r, "top-categories", cacheParts(f, limit), func() (any, error) {
		rows, err := insightsRepo.TopCategories(f, limit)
		if err != nil {
			return nil, err
		}
		if rows == nil {
			rows = []analytics.CityCategoryCount{}
		}
		return rows, nil
	})
}

// SummaryHandler godoc
// @Summary Dashboard key metrics
// @Tags insights
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD, inclusive)"
// @Param to query string false "End date (YYYY-MM-DD, inclusive)"
// @Param year query int false "Calendar year shorthand"
// @Success 200 {object} analytics.Summary
// @Failure 400 {string} string "Invalid query"
// @Failure 500 {string} string "Internal error"
// @Router /insights/summary [get]
func SummaryHandler(w http.ResponseWriter, r *http.Request) {
	f, err := parseOrderFilter(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	respondCached(w, r, "summary", cacheParts(f, 0), func() (any, error) {
		return insightsRepo.Summary(f)
	})
}
