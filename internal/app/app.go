package app

import (
	"log"

	"fieldcorrect/internal/config"
	"fieldcorrect/internal/correction"
	"fieldcorrect/internal/httpx"
	"fieldcorrect/internal/llm"
	"fieldcorrect/internal/server"
)

func Main() {
	cfg := config.LoadConfig()
	appliedHTTPTimeout := httpx.ConfigureExternalHTTPClient(cfg.ExternalHTTPTimeoutSeconds)

	gateway := llm.New(llm.Config{
		Provider: cfg.LLMProvider,
		Model:    cfg.LLMModel,
		APIKey:   cfg.APIKey(),
	}, httpx.ExternalHTTPClient())

	log.Printf(
		"Config loaded. Provider=%s Model=%s Configured=%v Port=%d Debug=%v MaxWorkers=%d ConcurrentThreshold=%d ExternalHTTPTimeout=%s",
		gateway.Provider(),
		gateway.Model(),
		gateway.Configured(),
		cfg.Port,
		cfg.Debug,
		cfg.LLMMaxWorkers,
		cfg.BatchConcurrentThreshold,
		appliedHTTPTimeout,
	)

	monitor := llm.NewHealthMonitor(gateway)
	monitor.StartScheduler(cfg.HealthProbeSchedule)

	svc := correction.NewService(gateway)
	dispatcher := correction.NewDispatcher(svc, cfg.LLMMaxWorkers)

	srv := server.New(cfg, svc, dispatcher, gateway, monitor)

	log.Printf("Starting Field Correction API on port %d", cfg.Port)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
