package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

// Envelope mirrors the version header every progression blob carries.
type Envelope struct {
	Version *int `json:"Version"`
}

// maxKnownVersion must track the highest blobVersion the repositories
// write. Blobs above it were written by a newer build.
const maxKnownVersion = 1

func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	fmt.Println("Connected to Redis:", redisURL)
	fmt.Println("Scanning progression blobs...")

	iter := client.Scan(ctx, 0, "progression:*", 0).Iterator()

	var badKeys []string
	var checkedCount int

	for iter.Next(ctx) {
		key := iter.Val()
		checkedCount++

		data, err := client.Get(ctx, key).Result()
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", key, err)
			continue
		}

		var env Envelope
		if err := json.Unmarshal([]byte(data), &env); err != nil {
			fmt.Printf("✗ Corrupted JSON in %s\n", key)
			badKeys = append(badKeys, key)
			continue
		}

		// Blobs written before the version header was introduced have
		// no Version field at all.
		if env.Version == nil {
			fmt.Printf("✗ Missing version header in %s\n", key)
			badKeys = append(badKeys, key)
			continue
		}
		if *env.Version > maxKnownVersion {
			fmt.Printf("✗ Future version %d in %s\n", *env.Version, key)
			badKeys = append(badKeys, key)
		}
	}

	if err := iter.Err(); err != nil {
		log.Fatal("Error during scan:", err)
	}

	fmt.Printf("\nChecked %d keys, found %d unreadable blobs\n", checkedCount, len(badKeys))

	if len(badKeys) == 0 {
		fmt.Println("All blobs look healthy!")
		return
	}

	fmt.Println("\nUnreadable keys:")
	for _, key := range badKeys {
		fmt.Printf("  - %s\n", key)
	}

	fmt.Print("\nDo you want to DELETE these blobs? (yes/no): ")
	var response string
	fmt.Scanln(&response)

	if response == "yes" {
		for _, key := range badKeys {
			if err := client.Del(ctx, key).Err(); err != nil {
				fmt.Printf("Failed to delete %s: %v\n", key, err)
			} else {
				fmt.Printf("Deleted %s\n", key)
			}
		}
		fmt.Println("\nCleanup complete!")
	} else {
		fmt.Println("Aborted - no changes made")
	}
}
