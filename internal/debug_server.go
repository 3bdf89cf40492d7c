package internal

import (
	"chat-relay/infrastructure/storage"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/database"
)

const inspectEndpoint = "/inspect"

// StartInspector exposes the badger keyspace on localhost. Message bodies stay sealed.
func StartInspector(db *badger.DB, port int, log *slog.Logger) {
	url := fmt.Sprintf("http://localhost:%d%s", port, inspectEndpoint)
	log.Info("Debug Badger inspector available", "url", url)
	database.StartDebugServer(db, port, inspectEndpoint, InspectMapper)
}

func InspectMapper(key string, val []byte) database.InspectRow {
	row := database.DefaultMapper(key, val)
	row.Key = key
	record := storage.Describe(key, val)
	row.Type = record.Type
	row.Namespace = record.Namespace
	row.EntityID = record.EntityID
	row.Detail = record.Detail
	if !record.At.IsZero() {
		row.Timestamp = record.At.Format(time.RFC3339)
	}
	return row
}
