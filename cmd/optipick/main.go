package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/RomainR99/Forge-Optipick/internal/allocate"
	"github.com/RomainR99/Forge-Optipick/internal/api"
	"github.com/RomainR99/Forge-Optipick/internal/compare"
	"github.com/RomainR99/Forge-Optipick/internal/config"
	"github.com/RomainR99/Forge-Optipick/internal/enrichment"
	"github.com/RomainR99/Forge-Optipick/internal/grid"
	"github.com/RomainR99/Forge-Optipick/internal/iox"
	"github.com/RomainR99/Forge-Optipick/internal/logger"
	"github.com/RomainR99/Forge-Optipick/internal/model"
	"github.com/RomainR99/Forge-Optipick/internal/pattern"
	"github.com/RomainR99/Forge-Optipick/internal/slotting"
	"github.com/RomainR99/Forge-Optipick/internal/store"
)

var version = "dev"

// loadDotEnv loads environment variables from a local .env file so that a
// double-clicked or cron-launched binary still sees PORT / data path
// overrides. Existing OS env vars are never overridden.
func loadDotEnv() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return
	}
	for _, line := range strings.Split(string(data), "\n") {
		l := strings.TrimSpace(line)
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}
		parts := strings.SplitN(l, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])
		if key != "" && os.Getenv(key) == "" {
			os.Setenv(key, val)
		}
	}
}

func main() {
	loadDotEnv()

	warehousePath := flag.String("warehouse", "data/warehouse.json", "path to warehouse.json")
	productsPath := flag.String("products", "data/products.json", "path to products.json")
	agentsPath := flag.String("agents", "data/agents.json", "path to agents.json")
	ordersPath := flag.String("orders", "data/orders.json", "path to orders.json")
	solver := flag.String("solver", "first_fit", "allocation strategy: first_fit, cp, cpsat, batching_cpsat")
	outDir := flag.String("out", "data", "directory to write allocation.json/metrics.json/unassigned_orders.json")
	runCompare := flag.Bool("day4", false, "run all strategies side by side and report a comparison")
	runSlotting := flag.Bool("day5", false, "run historical pattern analysis and storage slotting simulation")
	serve := flag.Bool("serve", false, "start the HTTP API instead of a one-shot batch run")
	flag.Parse()

	logger.Banner(version)

	warehouse, err := iox.LoadWarehouse(*warehousePath)
	if err != nil {
		logger.Error("Load", fmt.Sprintf("warehouse: %v", err))
		os.Exit(1)
	}
	catalog, err := iox.LoadCatalog(*productsPath)
	if err != nil {
		logger.Error("Load", fmt.Sprintf("products: %v", err))
		os.Exit(1)
	}
	agents, err := iox.LoadAgents(*agentsPath)
	if err != nil {
		logger.Error("Load", fmt.Sprintf("agents: %v", err))
		os.Exit(1)
	}
	orders, err := iox.LoadOrders(*ordersPath)
	if err != nil {
		logger.Error("Load", fmt.Sprintf("orders: %v", err))
		os.Exit(1)
	}
	if err := enrichment.EnrichAll(orders, catalog); err != nil {
		logger.Error("Enrich", err.Error())
		os.Exit(1)
	}
	zones := grid.BuildIndex(warehouse)
	cfg := config.Default()

	if *serve {
		runServer(cfg, warehouse, catalog, agents, orders)
		return
	}

	if *runCompare {
		runComparator(cfg, warehouse, catalog, agents, orders, zones)
		return
	}
	if *runSlotting {
		runSlottingReport(warehouse, catalog, agents, orders, zones)
		return
	}

	runAllocation(*solver, cfg, warehouse, catalog, agents, orders, zones, *outDir)
}

func runAllocation(strategy string, cfg *config.Config, w *model.Warehouse, catalog *model.Catalog, agents []*model.Agent, orders []*model.Order, zones *grid.Index, outDir string) {
	var assignment *model.Assignment
	var err error

	switch strategy {
	case allocate.StrategyCP:
		assignment, err = allocate.Declarative(orders, agents, catalog, w, zones, allocate.DeclarativeOptions{
			Objective: allocate.MaximizeAssigned, TimeLimit: cfg.SolverTimeLimit,
		})
	case allocate.StrategyCPSAT:
		assignment, err = allocate.CPSAT(orders, agents, catalog, w, zones, allocate.CPSATOptions{
			Objective: allocate.MaximizeAssigned, TimeLimit: cfg.SolverTimeLimit,
		})
	case allocate.StrategyBatchingCPSAT:
		assignment, err = allocate.RunBatching(orders, agents, catalog, w, zones,
			allocate.BatchOptions{MaxWeightKg: cfg.MaxBatchWeightKg, MaxVolumeDm3: cfg.MaxBatchVolumeDm3, WindowMinutes: cfg.BatchWindowMinutes},
			allocate.CPSATOptions{Objective: allocate.MaximizeAssigned, TimeLimit: cfg.SolverTimeLimit},
		)
	default:
		assignment, err = allocate.FirstFit(orders, agents, catalog, zones)
	}
	if err != nil {
		logger.Error("Allocate", err.Error())
		os.Exit(1)
	}

	os.MkdirAll(outDir, 0o755)
	if err := iox.WriteAllocation(filepath.Join(outDir, "allocation.json"), assignment, agents); err != nil {
		logger.Error("Write", err.Error())
		os.Exit(1)
	}
	if err := iox.WriteMetrics(filepath.Join(outDir, "metrics.json"), agents); err != nil {
		logger.Error("Write", err.Error())
		os.Exit(1)
	}
	if err := iox.WriteUnassignedOrders(filepath.Join(outDir, "unassigned_orders.json"), assignment, orders, agents, catalog, zones); err != nil {
		logger.Error("Write", err.Error())
		os.Exit(1)
	}

	byAgent := assignment.ByAgent()
	assigned := 0
	for _, ids := range byAgent {
		assigned += len(ids)
	}
	logger.Section(fmt.Sprintf("Allocation (%s)", strategy))
	logger.Stats("orders assigned", fmt.Sprintf("%d/%d", assigned, len(orders)))
	logger.Success("Allocate", "wrote allocation.json, metrics.json, unassigned_orders.json")
}

func runComparator(cfg *config.Config, w *model.Warehouse, catalog *model.Catalog, agents []*model.Agent, orders []*model.Order, zones *grid.Index) {
	strategies := []string{allocate.StrategyFirstFit, allocate.StrategyCP, allocate.StrategyCPSAT, allocate.StrategyBatchingCPSAT}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	results := compare.Run(ctx, strategies, orders, agents, catalog, w, zones, cfg)

	logger.Section("Strategy comparison")
	for _, r := range results {
		if r.Err != nil {
			logger.Warn(r.Strategy, r.Err.Error())
			continue
		}
		assigned := 0
		for _, ids := range r.Assignment.ByAgent() {
			assigned += len(ids)
		}
		logger.Stats(r.Strategy, fmt.Sprintf("assigned=%d/%d lateOrders=%d", assigned, len(orders), len(r.Metrics.LateOrders)))
	}

	if db, err := store.Open(""); err == nil {
		defer db.Close()
		for _, r := range results {
			if r.Err != nil {
				continue
			}
			assigned := 0
			totalDistance := 0
			for _, om := range r.Metrics.Orders {
				totalDistance += om.DistanceM
			}
			for _, ids := range r.Assignment.ByAgent() {
				assigned += len(ids)
			}
			db.InsertRun(r.Strategy, len(orders), assigned, totalDistance, 0, r.Metrics)
		}
	}
}

func runSlottingReport(w *model.Warehouse, catalog *model.Catalog, agents []*model.Agent, orders []*model.Order, zones *grid.Index) {
	logger.Section("Historical pattern analysis")
	report := pattern.Analyze(orders, catalog, zones)
	logger.Stats("distinct products seen", len(report.ProductFrequency))
	logger.Stats("co-ordered pairs", len(report.CoOrderedPairs))

	logger.Section("Storage slotting proposal")
	placement := slotting.Propose(orders, catalog, w, zones)
	logger.Stats("products relocated", len(placement))

	// RunBeforeAfter derives its own "before"/"after" placement internally;
	// catalog here must stay the current, unrelocated layout or the
	// comparison measures an already-optimized baseline against itself.
	result, err := slotting.RunBeforeAfter(w, orders, agents, catalog, zones, 200, 42)
	if err != nil {
		logger.Error("Simulate", err.Error())
		return
	}
	logger.Stats("distance before", result.DistanceCurrent)
	logger.Stats("distance after", result.DistanceOptimized)
	logger.Success("Simulate", fmt.Sprintf("%.1f%% distance reduction", result.ReductionPercent))
}

func runServer(cfg *config.Config, w *model.Warehouse, catalog *model.Catalog, agents []*model.Agent, orders []*model.Order) {
	srv := api.NewServer(cfg, w, catalog, agents, orders)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5001"
	}
	addr := ":" + port
	logger.Server(addr)

	httpServer := &http.Server{Addr: addr, Handler: srv.Handler()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		logger.Info("Server", "Shutting down gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server", fmt.Sprintf("Failed: %v", err))
		os.Exit(1)
	}
	logger.Info("Server", "Stopped")
}
