package handlers

import (
	"context"
	"net/http"
	"time"

	"mernspace-auth/helper"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

func SetupHealthRoutes(mux *http.ServeMux, db *gorm.DB, rdb *redis.Client) {
	h := &HealthHandler{db: db, redis: rdb}
	mux.HandleFunc("GET /healthz", h.healthz)
	mux.HandleFunc("GET /readyz", h.readyz)
}

func (h *HealthHandler) healthz(w http.ResponseWriter, r *http.Request) {
	helper.WriteJson(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HealthHandler) readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{}
	if h.db != nil {
		checks["database"] = "ok"
		sqlDB, err := h.db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			checks["database"] = "unhealthy: " + err.Error()
		}
	}
	if h.redis != nil {
		checks["redis"] = "ok"
		if err := h.redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = "unhealthy: " + err.Error()
		}
	}

	status, state := http.StatusOK, "ok"
	for _, v := range checks {
		if v != "ok" {
			status, state = http.StatusServiceUnavailable, "unhealthy"
			break
		}
	}
	helper.WriteJson(w, status, map[string]any{"status": state, "checks": checks})
}
