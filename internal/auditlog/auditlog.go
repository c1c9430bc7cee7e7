// Package auditlog records dataset imports in a capped Redis list.
package auditlog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	listKey    = "datasets:importlog"
	maxEntries = 200
)

type Entry struct {
	Dataset string    `json:"dataset"`
	Mode    string    `json:"mode"`
	Rows    int       `json:"rows"`
	Actor   string    `json:"actor"`
	Time    time.Time `json:"time"`
}

type Log struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Log {
	return &Log{rdb: rdb}
}

// Record appends an import event and trims the list to the newest entries.
func (l *Log) Record(ctx context.Context, e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if err := l.rdb.RPush(ctx, listKey, data).Err(); err != nil {
		return err
	}
	return l.rdb.LTrim(ctx, listKey, -maxEntries, -1).Err()
}

// Recent returns up to n entries, newest first.
func (l *Log) Recent(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 || n > maxEntries {
		n = maxEntries
	}
	raw, err := l.rdb.LRange(ctx, listKey, int64(-n), -1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		var e Entry
		if json.Unmarshal([]byte(raw[i]), &e) == nil {
			entries = append(entries, e)
		}
	}
	return entries, nil
}
