package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Handler holds shared dependencies (db pool) for all route handlers. The
// pool is constructed once at startup and injected — no ambient globals.
type Handler struct {
	db *pgxpool.Pool
}

/* ─── Database helpers ────────────────────────────────────────────────── */

// queryOne runs a query and scans the first row into T using RowToStructByName.
// Returns pgx.ErrNoRows when the query matches nothing. Logs query and scan
// errors for debugging (e.g. struct/column mismatches).
func queryOne[T any](pool *pgxpool.Pool, ctx context.Context, sql string, args pgx.NamedArgs) (T, error) {
	rows, err := pool.Query(ctx, sql, args)
	if err != nil {
		log.Printf("[queryOne] Query error: %v", err)
		var zero T
		return zero, err
	}
	result, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		log.Printf("[queryOne] Scan error: %v", err)
	}
	return result, err
}

// queryMany runs a query and scans all rows into []T using RowToStructByName.
func queryMany[T any](pool *pgxpool.Pool, ctx context.Context, sql string, args pgx.NamedArgs) ([]T, error) {
	rows, err := pool.Query(ctx, sql, args)
	if err != nil {
		log.Printf("[queryMany] Query error: %v", err)
		return nil, err
	}
	results, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		log.Printf("[queryMany] Scan error: %v", err)
	}
	return results, err
}

/* ─── Response envelope ──────────────────────────────────────────────── */

// Every response is shaped {success, data?, error?, details?}.

func apiOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

// apiValidationError carries the full list of violated fields alongside the
// generic message. Only validation failures have a details array.
func apiValidationError(c *gin.Context, message string, details []validationDetail) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": message, "details": details})
}

/* ─── Server setup ────────────────────────────────────────────────────── */

// newDBPool creates the shared connection pool from DB_URL. Pool capacity is
// tunable via DB_POOL_MAX; it is a resource limit, not a correctness knob.
func newDBPool(ctx context.Context) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(os.Getenv("DB_URL"))
	if err != nil {
		return nil, err
	}
	if s := os.Getenv("DB_POOL_MAX"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			config.MaxConns = int32(n)
		}
	}
	// Use simple query protocol to avoid "cached plan must not change result type"
	// errors from server-side prepared statement caches after schema changes.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	return pgxpool.NewWithConfig(ctx, config)
}

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	api := router.Group("/api")

	// Reference data — public, read-only
	config := api.Group("/config")
	config.GET("/all", h.getAllConfig)
	config.GET("/calculation-methods", h.listCalculationMethods)
	config.GET("/calculation-methods/:key", h.getCalculationMethod)
	config.GET("/activity-levels", h.listActivityLevels)
	config.GET("/diet-goals", h.listDietGoals)

	// Calculations — ensureUser resolves (or mints) the identity token and
	// guarantees a users row exists before any handler runs.
	calculate := api.Group("/calculate", h.ensureUser())
	calculate.POST("/bmr", h.calculateBMR)
	calculate.POST("/tdee", h.calculateTDEE)
	calculate.POST("/target-calories", h.calculateTargetCalories)

	// History — keyed purely off the client token; a missing token is a 400,
	// not a fresh identity (reads against a brand-new token are meaningless).
	history := api.Group("/history", requireToken())
	history.GET("", h.listHistory)
	history.GET("/latest-complete", h.latestComplete)
	history.DELETE("/:id", h.deleteRecord)
	history.DELETE("", h.deleteAllHistory)
}

// registerFallback wires the JSON 404 for unmatched /api paths and the SPA
// index fallback for everything else.
func registerFallback(router *gin.Engine, staticDir string) {
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			apiError(c, http.StatusNotFound, "route not found")
			return
		}
		c.File(staticDir + "/index.html")
	})
}
