// FILE: examples/fasthttp/main.go
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/lixenwraith/runlog"
	"github.com/lixenwraith/runlog/compat"
)

func main() {
	// Create and configure logger through the compat builder
	logCfg := runlog.DefaultConfig()
	logCfg.Name = "fasthttp"
	logCfg.Directory = "./fasthttp_logs"

	builder := compat.NewBuilder().WithConfig(logCfg)
	fasthttpAdapter, err := builder.BuildFastHTTP(
		compat.WithDefaultLevel(runlog.LevelInfo),
		compat.WithLevelDetector(customLevelDetector),
	)
	if err != nil {
		panic(err)
	}
	logger, _ := builder.GetLogger()
	defer logger.Shutdown()

	// Configure fasthttp server
	server := &fasthttp.Server{
		Handler: requestHandler(logger),
		Logger:  fasthttpAdapter,

		// Other server settings
		Name:              "MyServer",
		Concurrency:       fasthttp.DefaultConcurrency,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		TCPKeepalive:      true,
		ReduceMemoryUsage: true,
	}

	// Start server
	fmt.Println("Starting server on :8080")
	if err := server.ListenAndServe(":8080"); err != nil {
		logger.Errorf("server stopped: %v", err)
	}
}

func requestHandler(logger *runlog.Logger) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		logger.Debugf("request %s %s", ctx.Method(), ctx.Path())
		ctx.SetContentType("text/plain")
		fmt.Fprintf(ctx, "Hello, world! Path: %s\n", ctx.Path())
	}
}

func customLevelDetector(msg string) int64 {
	// Inspect specific fasthttp message patterns
	if strings.Contains(msg, "connection cannot be served") {
		return runlog.LevelWarn
	}
	if strings.Contains(msg, "error when serving connection") {
		return runlog.LevelError
	}

	// Use default detection
	return compat.DetectLogLevel(msg)
}
