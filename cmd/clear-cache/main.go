// cmd/clear-cache/main.go
// Operator tool that empties the configured release cache
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"UpdateCheck/internal/db/postgres"
	"UpdateCheck/internal/plugin"
)

func main() {
	expiredOnly := flag.Bool("expired", false, "only remove expired entries (postgres backend)")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := plugin.CacheConfigFromEnv()
	if cfg.Backend == plugin.BackendMemory {
		log.Fatal("The memory backend lives inside the server process; nothing to clear")
	}

	cache, closeCache, err := plugin.OpenCache(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open release cache: %v", err)
	}
	defer closeCache()

	if *expiredOnly {
		repo, ok := cache.(*postgres.ReleaseCacheRepository)
		if !ok {
			log.Fatalf("-expired is only supported by the postgres backend (got %q)", cfg.Backend)
		}
		n, err := repo.PurgeExpired(ctx)
		if err != nil {
			log.Fatalf("Failed to purge expired entries: %v", err)
		}
		log.Printf("Removed %d expired entries", n)
		return
	}

	cache.Clear(ctx)
	log.Printf("Cleared %s release cache", cfg.Backend)
}
