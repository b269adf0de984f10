package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/propman/backend/internal/infrastructure/persistence"
	"github.com/propman/backend/internal/infrastructure/scheduler"
	"github.com/propman/backend/internal/interfaces/http/dto"
)

// SystemHandler handles system information and health endpoints
type SystemHandler struct {
	BaseHandler
	db               *persistence.Database
	billingScheduler *scheduler.BillingScheduler
	startTime        time.Time
}

// NewSystemHandler creates a new SystemHandler. The scheduler may be nil when
// the billing job is disabled.
func NewSystemHandler(db *persistence.Database, billingScheduler *scheduler.BillingScheduler) *SystemHandler {
	return &SystemHandler{
		db:               db,
		billingScheduler: billingScheduler,
		startTime:        time.Now(),
	}
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// GetSystemInfo returns basic build and uptime information
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	info := SystemInfoResponse{
		Name:      "Property Management API",
		Version:   "1.0.0",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(info))
}

// PingResponse represents the ping response
type PingResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Ping checks that the API is responsive
func (h *SystemHandler) Ping(c *gin.Context) {
	response := PingResponse{
		Message:   "pong",
		Timestamp: time.Now().Format(time.RFC3339),
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// BillingRunResponse describes the most recent billing run
type BillingRunResponse struct {
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	PeriodStart time.Time  `json:"period_start"`
	Status      string     `json:"status"`
	Error       string     `json:"error,omitempty"`
	Generated   int        `json:"generated"`
	Skipped     int        `json:"skipped"`
	Failed      int        `json:"failed"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status      string              `json:"status"`
	Timestamp   string              `json:"timestamp"`
	Database    string              `json:"database"`
	OpenConns   int                 `json:"open_connections"`
	InUse       int                 `json:"in_use"`
	Idle        int                 `json:"idle"`
	LastBillRun *BillingRunResponse `json:"last_billing_run,omitempty"`
}

// Health reports database connectivity and the last billing run
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().Format(time.RFC3339),
		Database:  "up",
	}

	if err := h.db.Ping(); err != nil {
		resp.Status = "degraded"
		resp.Database = "down"
	} else if stats, err := h.db.Stats(); err == nil {
		resp.OpenConns = stats.OpenConnections
		resp.InUse = stats.InUse
		resp.Idle = stats.Idle
	}

	if h.billingScheduler != nil {
		if record := h.billingScheduler.LastRun(); record != nil {
			run := &BillingRunResponse{
				StartedAt:   record.StartedAt,
				CompletedAt: record.CompletedAt,
				PeriodStart: record.PeriodStart,
				Status:      string(record.Status),
				Error:       record.Error,
			}
			if record.Summary != nil {
				run.Generated = record.Summary.Generated
				run.Skipped = record.Summary.Skipped
				run.Failed = record.Summary.Failed
			}
			resp.LastBillRun = run
		}
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, dto.NewSuccessResponse(resp))
}
