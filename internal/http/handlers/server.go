package handlers

import (
	"github.com/rogerio-castellano/order-insights/internal/auditlog"
	"github.com/rogerio-castellano/order-insights/internal/cache"
	repo "github.com/rogerio-castellano/order-insights/internal/repo"
)

var (
	datasetRepo  repo.DatasetRepository
	insightsRepo repo.InsightsRepository
	userRepo     repo.UserRepository

	insightCache *cache.InsightCache
	importLog    *auditlog.Log
)

func SetDatasetRepo(r repo.DatasetRepository) {
	datasetRepo = r
}

func SetInsightsRepo(r repo.InsightsRepository) {
	insightsRepo = r
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

// SetInsightCache wires the Redis-backed insight cache. Handlers work
// without one; nil disables caching.
func SetInsightCache(c *cache.InsightCache) {
	insightCache = c
}

// SetImportLog wires the Redis-backed import audit log. nil disables it.
func SetImportLog(l *auditlog.Log) {
	importLog = l
}
