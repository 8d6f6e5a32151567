package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"
)

// Reference-data endpoints: read-only accessors over the seeded tables.
// Only active rows are visible, ordered by sort_order.

// Column lists for RowToStructByName — the SELECT must match the struct
// fields exactly, so keep these next to the struct definitions they mirror.
const (
	methodColumns = "method_key, name, description, formula_male, formula_female, is_active, sort_order"
	levelColumns  = "level_key, name, description, multiplier, is_active, sort_order"
	goalColumns   = "goal_key, name, description, adjustment_type, adjustment_min, adjustment_max, advice, is_active, sort_order"
)

// listCalculationMethods returns all active calculation methods.
// GET /api/config/calculation-methods.
func (h *Handler) listCalculationMethods(c *gin.Context) {
	methods, err := queryMany[calculationMethod](h.db, c,
		`SELECT `+methodColumns+` FROM calculation_methods
		 WHERE is_active = true ORDER BY sort_order`, nil)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "internal server error")
		return
	}
	if methods == nil {
		methods = []calculationMethod{}
	}
	apiOK(c, methods)
}

// getCalculationMethod returns one active method by key, or 404.
// GET /api/config/calculation-methods/:key.
func (h *Handler) getCalculationMethod(c *gin.Context) {
	method, err := queryOne[calculationMethod](h.db, c,
		`SELECT `+methodColumns+` FROM calculation_methods
		 WHERE method_key = @key AND is_active = true`,
		pgx.NamedArgs{"key": c.Param("key")})
	if errors.Is(err, pgx.ErrNoRows) {
		apiError(c, http.StatusNotFound, "calculation method not found")
		return
	}
	if err != nil {
		apiError(c, http.StatusInternalServerError, "internal server error")
		return
	}
	apiOK(c, method)
}

// listActivityLevels returns all active activity levels.
// GET /api/config/activity-levels.
func (h *Handler) listActivityLevels(c *gin.Context) {
	levels, err := queryMany[activityLevel](h.db, c,
		`SELECT `+levelColumns+` FROM activity_levels
		 WHERE is_active = true ORDER BY sort_order`, nil)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "internal server error")
		return
	}
	if levels == nil {
		levels = []activityLevel{}
	}
	apiOK(c, levels)
}

// listDietGoals returns all active diet goals.
// GET /api/config/diet-goals.
func (h *Handler) listDietGoals(c *gin.Context) {
	goals, err := queryMany[dietGoal](h.db, c,
		`SELECT `+goalColumns+` FROM diet_goals
		 WHERE is_active = true ORDER BY sort_order`, nil)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "internal server error")
		return
	}
	if goals == nil {
		goals = []dietGoal{}
	}
	apiOK(c, goals)
}

// getAllConfig returns methods, levels, and goals in one response for client
// bootstrap. The three reads are independent and fan out concurrently; the
// first failure fails the whole call.
// GET /api/config/all.
func (h *Handler) getAllConfig(c *gin.Context) {
	var (
		methods []calculationMethod
		levels  []activityLevel
		goals   []dietGoal
	)

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		methods, err = queryMany[calculationMethod](h.db, ctx,
			`SELECT `+methodColumns+` FROM calculation_methods
			 WHERE is_active = true ORDER BY sort_order`, nil)
		return err
	})
	g.Go(func() error {
		var err error
		levels, err = queryMany[activityLevel](h.db, ctx,
			`SELECT `+levelColumns+` FROM activity_levels
			 WHERE is_active = true ORDER BY sort_order`, nil)
		return err
	})
	g.Go(func() error {
		var err error
		goals, err = queryMany[dietGoal](h.db, ctx,
			`SELECT `+goalColumns+` FROM diet_goals
			 WHERE is_active = true ORDER BY sort_order`, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		apiError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	if methods == nil {
		methods = []calculationMethod{}
	}
	if levels == nil {
		levels = []activityLevel{}
	}
	if goals == nil {
		goals = []dietGoal{}
	}

	apiOK(c, gin.H{
		"calculationMethods": methods,
		"activityLevels":     levels,
		"dietGoals":          goals,
	})
}
