package handlers

import (
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rogerio-castellano/order-insights/internal/auditlog"
	"github.com/rogerio-castellano/order-insights/internal/csvload"
	"github.com/rogerio-castellano/order-insights/internal/repo"
)

func storeDataset(name string, file multipart.File, mode repo.ImportMode) (int, error) {
	switch name {
	case repo.DatasetOrders:
		rows, err := csvload.LoadOrders(file)
		if err != nil {
			return 0, err
		}
		return datasetRepo.StoreOrders(rows, mode)
	case repo.DatasetCustomers:
		rows, err := csvload.LoadCustomers(file)
		if err != nil {
			return 0, err
		}
		return datasetRepo.StoreCustomers(rows, mode)
	case repo.DatasetOrderItems:
		rows, err := csvload.LoadOrderItems(file)
		if err != nil {
			return 0, err
		}
		return datasetRepo.StoreOrderItems(rows, mode)
	case repo.DatasetProducts:
		rows, err := csvload.LoadProducts(file)
		if err != nil {
			return 0, err
		}
		return datasetRepo.StoreProducts(rows, mode)
	case repo.DatasetTranslations:
		rows, err := csvload.LoadTranslations(file)
		if err != nil {
			return 0, err
		}
		return datasetRepo.StoreTranslations(rows, mode)
	}
	return 0, repo.ErrUnknownDataset
}

// ImportDatasetHandler godoc
// @Summary Import a dataset via CSV
// @Tags datasets
// @Accept multipart/form-data
// @Produce json
// @Param name path string true "Dataset name (orders|customers|order_items|products|category_translations)"
// @Param file formData file true "CSV file"
// @Param mode query string false "Import mode (replace|append)"
// @Success 200 {object} ImportResult
// @Failure 400 {string} string "Invalid file"
// @Failure 404 {string} string "Unknown dataset"
// @Failure 500 {string} string "Internal error"
// @Router /datasets/{name}/import [post]
// @Security BearerAuth
func ImportDatasetHandler(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	mode := repo.ImportMode(strings.ToLower(r.URL.Query().Get("mode")))
	if mode != repo.ModeAppend {
		mode = repo.ModeReplace // default
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	imported, err := storeDataset(name, file, mode)
	if err != nil {
		if err == repo.ErrUnknownDataset {
			http.Error(w, "unknown dataset", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// New data invalidates every cached insight.
	if insightCache != nil {
		if err := insightCache.Bump(r.Context()); err != nil {
			log.Printf("failed to bump insight cache generation: %v", err)
		}
	}

	if importLog != nil {
		actor, _ := tokenClaim(r, "username")
		entry := auditlog.Entry{
			Dataset: name,
			Mode:    string(mode),
			Rows:    imported,
			Actor:   actor,
			Time:    time.Now().UTC(),
		}
		if err := importLog.Record(r.Context(), entry); err != nil {
			log.Printf("failed to record import audit entry: %v", err)
		}
	}

	err = writeJSON(w, http.StatusOK, ImportResult{
		Dataset:  name,
		Mode:     string(mode),
		Imported: imported,
	})
	if err != nil {
		http.Error(w, "", http.StatusInternalServerError)
	}
}

// DatasetCountsHandler godoc
// @Summary Row counts per dataset
// @Tags datasets
// @Produce json
// @Success 200 {object} repo.DatasetCounts
// @Failure 500 {string} string "Internal error"
// @Router /datasets [get]
func DatasetCountsHandler(w http.ResponseWriter, r *http.Request) {
	counts, err := datasetRepo.Counts()
	if err != nil {
		http.Error(w, "could not fetch dataset counts", http.StatusInternalServerError)
		return
	}
	if err := writeJSON(w, http.StatusOK, counts); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

// ImportLogHandler godoc
// @Summary Recent dataset imports
// @Tags datasets
// @Produce json
// @Param n query int false "Max entries"
// @Success 200 {array} auditlog.Entry
// @Failure 403 {string} string "Forbidden"
// @Failure 500 {string} string "Internal error"
// @Router /datasets/imports [get]
// @Security BearerAuth
func ImportLogHandler(w http.ResponseWriter, r *http.Request) {
	role, err := tokenClaim(r, "role")
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	if role != "admin" {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if importLog == nil {
		if err := writeJSON(w, http.StatusOK, []auditlog.Entry{}); err != nil {
			log.Printf("failed to write JSON response: %v", err)
		}
		return
	}

	n := 0
	if s := r.URL.Query().Get("n"); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			n = v
		}
	}
	entries, err := importLog.Recent(r.Context(), n)
	if err != nil {
		http.Error(w, "could not fetch import log", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []auditlog.Entry{}
	}
	if err := writeJSON(w, http.StatusOK, entries); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}
