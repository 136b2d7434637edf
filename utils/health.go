package utils

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// HealthCheck pings the backing stores and reports per-dependency status.
func HealthCheck(client *mongo.Client) map[string]string {
	status := map[string]string{"server": "ok"}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if client != nil && client.Ping(ctx, nil) == nil {
		status["mongo"] = "ok"
	} else {
		status["mongo"] = "unreachable"
	}

	if cache := GetCacheClient(); cache.Ping(ctx).Err() == nil {
		status["redis"] = "ok"
	} else {
		status["redis"] = "unreachable"
	}

	return status
}
