package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// Calculation endpoints. Shared flow: validate the body, resolve the active
// reference row, run the pure engine, append to the history ledger, then
// respond. The history write always lands before the response is sent.

// calculateBMR computes BMR from biometrics.
// POST /api/calculate/bmr {method, gender, age, height, weight}.
func (h *Handler) calculateBMR(c *gin.Context) {
	var body bmrRequest
	if !bindJSON(c, &body) {
		return
	}

	method, err := queryOne[calculationMethod](h.db, c,
		`SELECT `+methodColumns+` FROM calculation_methods
		 WHERE method_key = @key AND is_active = true`,
		pgx.NamedArgs{"key": body.Method})
	if errors.Is(err, pgx.ErrNoRows) {
		apiError(c, http.StatusBadRequest, "unsupported calculation method")
		return
	}
	if err != nil {
		apiError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	bmr, trace, err := computeBMR(method.MethodKey, body.Gender, body.Age, body.Height, body.Weight)
	if err != nil {
		// Key is active in reference data but has no formula branch.
		apiError(c, http.StatusBadRequest, "unsupported calculation method")
		return
	}

	// Gender selects one of the two named formula columns explicitly.
	formula := method.FormulaFemale
	if body.Gender == "male" {
		formula = method.FormulaMale
	}

	result := gin.H{"bmr": bmr, "formula": formula}
	if err := h.appendHistory(c, "bmr", body, result); err != nil {
		apiError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	apiOK(c, gin.H{
		"bmr":         bmr,
		"formula":     formula,
		"calculation": trace,
		"userToken":   c.GetString("user_token"),
	})
}

// calculateTDEE scales a BMR by an activity-level multiplier.
// POST /api/calculate/tdee {bmr, activity_level}.
func (h *Handler) calculateTDEE(c *gin.Context) {
	var body tdeeRequest
	if !bindJSON(c, &body) {
		return
	}

	level, err := queryOne[activityLevel](h.db, c,
		`SELECT `+levelColumns+` FROM activity_levels
		 WHERE level_key = @key AND is_active = true`,
		pgx.NamedArgs{"key": body.ActivityLevel})
	if errors.Is(err, pgx.ErrNoRows) {
		apiError(c, http.StatusBadRequest, "unsupported activity level")
		return
	}
	if err != nil {
		apiError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	tdee, trace := computeTDEE(body.BMR, level.Multiplier)
	info := activityInfo{Name: level.Name, Description: level.Description}

	result := gin.H{"tdee": tdee, "multiplier": level.Multiplier, "activityInfo": info}
	if err := h.appendHistory(c, "tdee", body, result); err != nil {
		apiError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	apiOK(c, gin.H{
		"tdee":         tdee,
		"bmr":          body.BMR,
		"multiplier":   level.Multiplier,
		"calculation":  trace,
		"activityInfo": info,
		"userToken":    c.GetString("user_token"),
	})
}

// calculateTargetCalories derives a target calorie range from TDEE and a
// diet goal's percentage bounds.
// POST /api/calculate/target-calories {tdee, diet_goal}.
func (h *Handler) calculateTargetCalories(c *gin.Context) {
	var body targetCaloriesRequest
	if !bindJSON(c, &body) {
		return
	}

	goal, err := queryOne[dietGoal](h.db, c,
		`SELECT `+goalColumns+` FROM diet_goals
		 WHERE goal_key = @key AND is_active = true`,
		pgx.NamedArgs{"key": body.DietGoal})
	if errors.Is(err, pgx.ErrNoRows) {
		apiError(c, http.StatusBadRequest, "unsupported diet goal")
		return
	}
	if err != nil {
		apiError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	if goal.AdjustmentType != "percentage" {
		apiError(c, http.StatusBadRequest, "unsupported adjustment type")
		return
	}

	r := computeTargetRange(body.TDEE, goal.AdjustmentMin, goal.AdjustmentMax)
	trace := targetTrace(goal.Name, goal.AdjustmentMin, goal.AdjustmentMax, r)

	adjRange := adjustmentRange{
		Min: r.Min,
		Max: r.Max,
		Percentage: percentageRange{
			Min: goal.AdjustmentMin,
			Max: goal.AdjustmentMax,
		},
	}
	info := goalInfo{Name: goal.Name, Description: goal.Description, Advice: goal.Advice}

	result := gin.H{"targetCalories": r.Target, "adjustmentRange": adjRange, "goalInfo": info}
	if err := h.appendHistory(c, "target_calories", body, result); err != nil {
		apiError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	apiOK(c, gin.H{
		"targetCalories":  r.Target,
		"tdee":            body.TDEE,
		"adjustmentRange": adjRange,
		"goalInfo":        info,
		"calculation":     trace,
		"userToken":       c.GetString("user_token"),
	})
}
