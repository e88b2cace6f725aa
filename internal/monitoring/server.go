// Package monitoring serves a small ops endpoint on its own port: a JSON
// stats snapshot and a websocket that streams the same snapshot on a timer.
package monitoring

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"freight-backend/internal/health"
	"freight-backend/internal/timeutil"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

type Server struct {
	checker    *health.HealthChecker
	port       int
	startedAt  time.Time
	clients    map[*websocket.Conn]bool
	clientsMux sync.Mutex
}

type Stats struct {
	Health        health.HealthStatus `json:"health"`
	CPUPercent    float64             `json:"cpu_percent"`
	MemoryPercent float64             `json:"memory_percent"`
	MemoryUsed    string              `json:"memory_used"`
	MemoryTotal   string              `json:"memory_total"`
	DiskPercent   float64             `json:"disk_percent"`
	DiskUsed      string              `json:"disk_used"`
	DiskTotal     string              `json:"disk_total"`
	Uptime        string              `json:"uptime"`
	CollectedAt   time.Time           `json:"collected_at"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewServer(checker *health.HealthChecker, port int) *Server {
	return &Server{
		checker:   checker,
		port:      port,
		startedAt: timeutil.Now(),
		clients:   make(map[*websocket.Conn]bool),
	}
}

// Start blocks serving the monitoring endpoint. Run it in its own goroutine.
func (s *Server) Start() {
	r := mux.NewRouter()
	r.HandleFunc("/api/stats", s.getStats).Methods("GET")
	r.HandleFunc("/ws", s.handleWebSocket)

	go s.streamStats()

	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("[Monitoring] Listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Printf("[Monitoring] Server stopped: %v", err)
	}
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	stats := s.collectStats(r.Context())
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

func (s *Server) collectStats(ctx context.Context) Stats {
	stats := Stats{
		Health:      s.checker.Check(ctx),
		Uptime:      formatUptime(time.Since(s.startedAt)),
		CollectedAt: timeutil.Now(),
	}

	if cpuPercents, err := cpu.Percent(0, false); err == nil && len(cpuPercents) > 0 {
		stats.CPUPercent = cpuPercents[0]
	}
	if memStats, err := mem.VirtualMemory(); err == nil {
		stats.MemoryPercent = memStats.UsedPercent
		stats.MemoryUsed = formatBytes(memStats.Used)
		stats.MemoryTotal = formatBytes(memStats.Total)
	}
	if diskStats, err := disk.Usage("/"); err == nil {
		stats.DiskPercent = diskStats.UsedPercent
		stats.DiskUsed = formatBytes(diskStats.Used)
		stats.DiskTotal = formatBytes(diskStats.Total)
	}

	return stats
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Monitoring] WebSocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	s.clientsMux.Lock()
	s.clients[conn] = true
	s.clientsMux.Unlock()

	// Block reading until the peer goes away
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			s.clientsMux.Lock()
			delete(s.clients, conn)
			s.clientsMux.Unlock()
			return
		}
	}
}

// streamStats pushes a fresh snapshot to every connected client on a timer.
func (s *Server) streamStats() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		s.clientsMux.Lock()
		if len(s.clients) == 0 {
			s.clientsMux.Unlock()
			continue
		}
		s.clientsMux.Unlock()

		stats := s.collectStats(context.Background())

		s.clientsMux.Lock()
		for client := range s.clients {
			if err := client.WriteJSON(stats); err != nil {
				client.Close()
				delete(s.clients, client)
			}
		}
		s.clientsMux.Unlock()
	}
}

func formatBytes(bytes uint64) string {
	gb := float64(bytes) / (1024 * 1024 * 1024)
	if gb < 1 {
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
	}
	return fmt.Sprintf("%.1f GB", gb)
}

func formatUptime(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh", days, hours)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
