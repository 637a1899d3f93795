package modules

import (
	"context"
	"expvar"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-auth-api/internal/domain/autherr"
	"github.com/oksasatya/go-auth-api/internal/interface/middleware"
	"github.com/oksasatya/go-auth-api/pkg/response"
)

// Check reports whether a backing service is reachable.
type Check func(ctx context.Context) error

type healthStatus struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

// HealthModule exposes /health and, outside production, expvar at /debug/vars.
type HealthModule struct {
	checks map[string]Check
	debug  bool
}

func NewHealthModule(pool *pgxpool.Pool, rdb *redis.Client, debug bool) *HealthModule {
	checks := map[string]Check{}
	if pool != nil {
		checks["postgres"] = pool.Ping
	}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	return NewHealthModuleWithChecks(checks, debug)
}

func NewHealthModuleWithChecks(checks map[string]Check, debug bool) *HealthModule {
	return &HealthModule{checks: checks, debug: debug}
}

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", m.Health)
	if m.debug {
		rg.GET("/debug/vars", gin.WrapH(expvar.Handler()))
	}
}

func (m *HealthModule) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(m.checks))
	for name := range m.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	st := healthStatus{Status: "ok", Services: make(map[string]string, len(names))}
	for _, name := range names {
		if err := m.checks[name](ctx); err != nil {
			st.Status = "degraded"
			st.Services[name] = "down"
			continue
		}
		st.Services[name] = "up"
	}

	if st.Status != "ok" {
		c.JSON(http.StatusServiceUnavailable, response.APIResponse[healthStatus]{
			StatusCode: http.StatusServiceUnavailable,
			Data:       st,
			Message:    "Service degraded",
			RequestID:  c.GetString(middleware.CtxRequestIDKey),
			Timestamp:  time.Now().UTC(),
			Error:      &response.ErrorBody{Code: string(autherr.Internal)},
		})
		return
	}
	response.Success(c, http.StatusOK, st, "OK")
}
