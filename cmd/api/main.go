package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"investment_analytics/pkg/api/analysis"
	"investment_analytics/pkg/core/store"
)

// ServerConfig is the optional defaults file (config/defaults.yaml).
type ServerConfig struct {
	Addr     string `yaml:"addr"`
	Database struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"database"`
}

func loadConfig() ServerConfig {
	cfg := ServerConfig{Addr: ":8080"}

	data, err := os.ReadFile("config/defaults.yaml")
	if err != nil {
		fmt.Println("[CONFIG] No defaults file, using built-in defaults")
		return cfg
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		fmt.Printf("[CONFIG] Failed to parse defaults file: %v\n", err)
		return cfg
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	return cfg
}

func main() {
	// Load environment variables
	godotenv.Load()

	cfg := loadConfig()

	// Scenario persistence is optional; the analysis endpoints are pure and
	// never touch the pool.
	if cfg.Database.Enabled {
		if err := store.InitDB(context.Background()); err != nil {
			fmt.Printf("[WARNING] Scenario store unavailable: %v\n", err)
		} else {
			fmt.Println("[STORE] Scenario store connected")
			defer store.Close()
		}
	}

	http.HandleFunc("/api/analysis/deal-score", analysis.HandleDealScore)
	http.HandleFunc("/api/analysis/strategies", analysis.HandleStrategies)
	http.HandleFunc("/api/analysis/projection", analysis.HandleProjection)
	http.HandleFunc("/api/analysis/sensitivity", analysis.HandleSensitivity)
	http.HandleFunc("/api/analysis/report", analysis.HandleReport)

	// Scenario persistence endpoints; they report an error until the store
	// is connected.
	http.HandleFunc("/api/scenarios/save", analysis.HandleScenarioSave)
	http.HandleFunc("/api/scenarios/list", analysis.HandleScenarioList)
	http.HandleFunc("/api/scenarios/compare", analysis.HandleScenarioCompare)
	http.HandleFunc("/api/scenarios/delete", analysis.HandleScenarioDelete)

	fmt.Printf("API server starting on %s...\n", cfg.Addr)
	fmt.Println("  - POST /api/analysis/deal-score")
	fmt.Println("  - POST /api/analysis/strategies")
	fmt.Println("  - POST /api/analysis/projection")
	fmt.Println("  - POST /api/analysis/sensitivity")
	fmt.Println("  - POST /api/analysis/report")
	fmt.Println("  - POST /api/scenarios/save")
	fmt.Println("  - GET  /api/scenarios/list")
	fmt.Println("  - GET  /api/scenarios/compare?id=...")
	fmt.Println("  - POST /api/scenarios/delete?id=...")

	if err := http.ListenAndServe(cfg.Addr, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
