package services

import (
	"log"
	"time"
)

// ChallengeSweeper evicts expired entries and reports how many were removed.
type ChallengeSweeper interface {
	Sweep() int
}

// StartSweeper starts the background eviction loop for expired one-time codes.
func StartSweeper(store ChallengeSweeper) {
	go func() {
		log.Println("Challenge sweeper started...")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			if removed := store.Sweep(); removed > 0 {
				log.Printf("Evicted %d expired one-time code(s)", removed)
			}
		}
	}()
}
