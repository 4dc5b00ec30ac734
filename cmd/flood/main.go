package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/lixenwraith/runlog"
)

var levels = []int64{
	runlog.LevelDebug,
	runlog.LevelInfo,
	runlog.LevelWarn,
	runlog.LevelError,
}

var logger *runlog.Logger

func generateRandomMessage(size int) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "
	var sb strings.Builder
	sb.Grow(size)
	for i := 0; i < size; i++ {
		sb.WriteByte(chars[rand.Intn(len(chars))])
	}
	return sb.String()
}

// logBurst mixes distinct random records with a repeating template per burst
func logBurst(burstID, logsPerBurst, maxMessageSize int) {
	for i := 0; i < logsPerBurst; i++ {
		if i%4 == 0 {
			logger.Warnf("worker %d waiting for lock", burstID%8)
			continue
		}
		level := levels[rand.Intn(len(levels))]
		msg := generateRandomMessage(rand.Intn(maxMessageSize) + 10)
		logger.Log(level, "bst=%d seq=%d rnd=%d %s", burstID, i, rand.Int63(), msg)
	}
}

// worker goroutine function
func worker(burstChan chan int, wg *sync.WaitGroup, completedBursts *atomic.Int64, total, logsPerBurst, maxMessageSize int) {
	defer wg.Done()
	for burstID := range burstChan {
		logBurst(burstID, logsPerBurst, maxMessageSize)
		completed := completedBursts.Add(1)
		if completed%10 == 0 || completed == int64(total) {
			fmt.Printf("\rProgress: %d/%d bursts completed", completed, total)
		}
	}
}

func main() {
	dir := flag.String("dir", "./flood_logs", "log directory")
	workers := flag.Int("workers", 64, "concurrent producers")
	totalBursts := flag.Int("bursts", 100, "bursts to submit")
	logsPerBurst := flag.Int("per-burst", 500, "records per burst")
	maxMessageSize := flag.Int("max-size", 2000, "maximum random message size")
	maxSizeKB := flag.Int64("max-size-kb", 1000, "rotate past this file size")
	unfiltered := flag.Bool("unfiltered", false, "disable flood suppression")
	flag.Parse()

	fmt.Println("--- Logger Flood Test ---")

	var err error
	logger, err = runlog.NewBuilder().
		Name("flood").
		Directory(*dir).
		RetentionCount(5).
		MaxSizeKB(*maxSizeKB).
		Verbose(true).
		Unfiltered(*unfiltered).
		MirrorDebug(false).
		HeartbeatIntervalS(1).
		Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start logger: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Logger started. Writing to: %s\n", logger.CurrentLog())

	fmt.Printf("Starting flood test: %d workers, %d bursts, %d logs/burst.\n",
		*workers, *totalBursts, *logsPerBurst)
	fmt.Println("Press Ctrl+C to stop early.")

	// --- Setup Workers and Signal Handling ---
	burstChan := make(chan int, *workers)
	var wg sync.WaitGroup
	completedBursts := atomic.Int64{}
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	stopChan := make(chan struct{})

	go func() {
		<-sigChan
		fmt.Println("\n[Signal Received] Stopping burst generation...")
		close(stopChan)
	}()

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go worker(burstChan, &wg, &completedBursts, *totalBursts, *logsPerBurst, *maxMessageSize)
	}

	// --- Run Test ---
	startTime := time.Now()
submit:
	for i := 1; i <= *totalBursts; i++ {
		select {
		case burstChan <- i:
		case <-stopChan:
			fmt.Println("[Signal Received] Halting burst submission.")
			break submit
		}
	}
	close(burstChan)

	fmt.Println("\nWaiting for workers to finish...")
	wg.Wait()
	duration := time.Since(startTime)
	finalCompleted := completedBursts.Load()

	fmt.Printf("\n--- Test Finished ---")
	fmt.Printf("\nCompleted %d/%d bursts in %v\n", finalCompleted, *totalBursts, duration.Round(time.Millisecond))
	if finalCompleted > 0 && duration.Seconds() > 0 {
		logsPerSec := float64(finalCompleted*int64(*logsPerBurst)) / duration.Seconds()
		fmt.Printf("Approximate Logs/sec: %.2f\n", logsPerSec)
	}

	// --- Shutdown Logger ---
	fmt.Println("Shutting down logger (allowing up to 30s for the queue to drain)...")
	if err := logger.Shutdown(30 * time.Second); err != nil {
		fmt.Fprintf(os.Stderr, "Logger shutdown error: %v\n", err)
	} else {
		fmt.Println("Logger shutdown complete.")
	}

	stats := logger.Stats()
	fmt.Printf("enqueued=%d processed=%d suppressed=%d dropped=%d peak_queue=%d rotations=%d deletions=%d\n",
		stats.Enqueued, stats.Processed, stats.Suppressed, stats.Dropped,
		stats.PeakQueueDepth, stats.Rotations, stats.Deletions)
}
