package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/lixenwraith/runlog"
)

const configFile = "simple_config.toml"

// Example TOML content
var tomlContent = `
# Example simple_config.toml
[log]
  name = "simple"
  directory = "./simple_logs"
  extension = "txt"
  crash_directory = "./simple_logs/crash"
  retention_count = 5
  verbose = true
  mirror_debug = true
  heartbeat_interval_s = 1
  # Other settings use defaults
`

// tick logs the same template repeatedly to show flood suppression
func tick(n int) {
	for i := 0; i < n; i++ {
		runlog.Infof("polling upstream, attempt %d", i%10)
	}
}

func main() {
	fmt.Println("--- Simple Logger Example ---")

	// --- Setup Config ---
	err := os.WriteFile(configFile, []byte(tomlContent), 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write dummy config: %v\n", err)
	} else {
		fmt.Printf("Created dummy config file: %s\n", configFile)
	}

	// Messages logged before Init reach the fallback handler
	runlog.Infof("configuration file written, starting logger")

	// --- Initialize Logger ---
	if err := runlog.InitFromFile(configFile); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Logger initialized.")

	if prev := runlog.PreviousLog(); prev != "" {
		runlog.Infof("previous run log: %s", prev)
	}
	if crash := runlog.PreviousCrashLog(); crash != "" {
		runlog.Warnf("crash log found from an earlier run: %s", crash)
	}

	// --- Logging ---
	runlog.Debugf("This is a debug message, user_id=%d", 123)
	runlog.Infof("Application starting...")
	runlog.Warnf("Potential issue detected, threshold=%.2f", 0.95)
	runlog.Errorf("An error occurred!\ncode=%d\nretry=%t", 500, false)
	runlog.Default().Dump(runlog.LevelInfo, "effective config", runlog.Default().GetConfig())

	tick(45)
	runlog.Infof("upstream reachable")

	// Logging from goroutines
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			runlog.Infof("Goroutine started id=%d", id)
			time.Sleep(time.Duration(50+id*50) * time.Millisecond)
			runlog.Infof("Goroutine finished id=%d", id)
		}(i)
	}

	// Wait for goroutines to finish before shutting down logger
	wg.Wait()
	fmt.Println("Goroutines finished.")

	// Let one heartbeat through
	time.Sleep(1200 * time.Millisecond)

	// --- Shutdown Logger ---
	fmt.Println("Shutting down logger...")
	if err := runlog.Shutdown(2 * time.Second); err != nil {
		fmt.Fprintf(os.Stderr, "Logger shutdown error: %v\n", err)
	} else {
		fmt.Println("Logger shutdown complete.")
	}

	fmt.Println("--- Example Finished ---")
	fmt.Printf("Check log files in './simple_logs' and the config '%s'.\n", configFile)
}
