// Package api exposes the reference HTTP surface of spec.md §6: static
// data echo, current-orders + assignment, full stats, and an order
// submission endpoint. Not part of the planning core; a thin read layer
// over it.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/RomainR99/Forge-Optipick/internal/allocate"
	"github.com/RomainR99/Forge-Optipick/internal/config"
	"github.com/RomainR99/Forge-Optipick/internal/enrichment"
	"github.com/RomainR99/Forge-Optipick/internal/grid"
	"github.com/RomainR99/Forge-Optipick/internal/metrics"
	"github.com/RomainR99/Forge-Optipick/internal/model"
	"github.com/RomainR99/Forge-Optipick/internal/tour"
)

// Server holds the static warehouse/catalog/fleet data plus the
// process-wide append-only order store (spec.md §9's re-architecture of the
// "in-memory global orders list" anti-pattern: one writer lock guards
// appends; readers snapshot before planning).
type Server struct {
	cfg     *config.Config
	w       *model.Warehouse
	catalog *model.Catalog
	zones   *grid.Index
	agents  []*model.Agent

	ordersMu sync.Mutex
	orders   []*model.Order
	nextSeq  int

	statsGroup singleflight.Group
}

// NewServer builds a Server over fixed warehouse/catalog/fleet data and an
// initial order list (its own copy, owned by the server from then on).
func NewServer(cfg *config.Config, w *model.Warehouse, catalog *model.Catalog, agents []*model.Agent, orders []*model.Order) *Server {
	return &Server{
		cfg:     cfg,
		w:       w,
		catalog: catalog,
		zones:   grid.BuildIndex(w),
		agents:  agents,
		orders:  append([]*model.Order(nil), orders...),
		nextSeq: len(orders) + 1,
	}
}

// Handler builds the mux described in spec.md §6.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/warehouse", s.handleWarehouse)
	mux.HandleFunc("GET /api/products", s.handleProducts)
	mux.HandleFunc("GET /api/agents", s.handleAgents)
	mux.HandleFunc("GET /api/orders", s.handleGetOrders)
	mux.HandleFunc("POST /api/orders", s.handlePostOrder)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	return mux
}

func (s *Server) snapshotOrders() []*model.Order {
	s.ordersMu.Lock()
	defer s.ordersMu.Unlock()
	out := make([]*model.Order, len(s.orders))
	for i, o := range s.orders {
		cp := *o
		cp.Items = append([]model.OrderItem(nil), o.Items...)
		out[i] = &cp
	}
	return out
}

func (s *Server) handleWarehouse(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.w)
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.catalog.All())
}

func (s *Server) handleAgents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.agents)
}

func (s *Server) handleGetOrders(w http.ResponseWriter, r *http.Request) {
	strategy := r.URL.Query().Get("alloc")
	if strategy == "" {
		strategy = allocate.StrategyFirstFit
	}

	orders := s.snapshotOrders()
	if err := enrichment.EnrichAll(orders, s.catalog); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	assignment, err := s.allocate(strategy, orders)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, map[string]any{
		"orders":     orders,
		"assignment": assignment.ByAgent(),
	})
}

func (s *Server) handlePostOrder(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ReceivedTime string            `json:"received_time"`
		Deadline     string            `json:"deadline"`
		Priority     string            `json:"priority"`
		Items        []model.OrderItem `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("decode body: %v", err))
		return
	}
	if len(body.Items) == 0 {
		writeError(w, http.StatusBadRequest, "items must not be empty")
		return
	}

	s.ordersMu.Lock()
	orderID := fmt.Sprintf("Order_W%03d", s.nextSeq)
	s.nextSeq++
	order := &model.Order{
		ID:           orderID,
		ReceivedTime: body.ReceivedTime,
		Deadline:     body.Deadline,
		Priority:     body.Priority,
		Items:        body.Items,
	}
	s.orders = append(s.orders, order)
	s.ordersMu.Unlock()

	s.writeStats(w, allocate.StrategyFirstFit, orderID)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	strategy := r.URL.Query().Get("alloc")
	if strategy == "" {
		strategy = allocate.StrategyFirstFit
	}
	s.writeStats(w, strategy, "")
}

// writeStats computes the full stats payload, deduplicating concurrent
// identical requests with a singleflight group keyed by strategy and new
// order id, so a burst of GET clients on the same strategy triggers one
// planning call (spec.md §5's serializability
// requirement, satisfied here by snapshotting orders per call).
func (s *Server) writeStats(w http.ResponseWriter, strategy, newOrderID string) {
	v, err, _ := s.statsGroup.Do(strategy+"|"+newOrderID, func() (any, error) {
		orders := s.snapshotOrders()
		if err := enrichment.EnrichAll(orders, s.catalog); err != nil {
			return nil, err
		}
		assignment, err := s.allocate(strategy, orders)
		if err != nil {
			return nil, err
		}
		report := metrics.Evaluate(assignment, orders, s.agents, s.w)

		routes := make(map[string][]model.Location, len(s.agents))
		byAgent := assignment.ByAgent()
		for _, agent := range s.agents {
			var agentOrders []*model.Order
			assigned := make(map[string]struct{}, len(byAgent[agent.ID]))
			for _, id := range byAgent[agent.ID] {
				assigned[id] = struct{}{}
			}
			for _, o := range orders {
				if _, ok := assigned[o.ID]; ok {
					agentOrders = append(agentOrders, o)
				}
			}
			route := tour.Plan(agent, agentOrders, s.w, s.catalog, tour.Options{TimeLimit: s.cfg.SolverTimeLimit, FloorLocked: s.cfg.FloorLockedRouting})
			routes[agent.ID] = route.Stops
		}

		return map[string]any{
			"assignment": byAgent,
			"routes":     routes,
			"metrics":    report.Orders,
			"totals":     report.AgentTotals,
			"order_id":   newOrderID,
		}, nil
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSONStatus(w, http.StatusOK, v)
}

func (s *Server) allocate(strategy string, orders []*model.Order) (*model.Assignment, error) {
	agents := model.CloneFleet(s.agents)
	switch strategy {
	case allocate.StrategyCP:
		return allocate.Declarative(orders, agents, s.catalog, s.w, s.zones, allocate.DeclarativeOptions{
			Objective: allocate.MaximizeAssigned, TimeLimit: s.cfg.SolverTimeLimit,
		})
	case allocate.StrategyCPSAT:
		return allocate.CPSAT(orders, agents, s.catalog, s.w, s.zones, allocate.CPSATOptions{
			Objective: allocate.MaximizeAssigned, TimeLimit: s.cfg.SolverTimeLimit,
		})
	default:
		return allocate.FirstFit(orders, agents, s.catalog, s.zones)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
