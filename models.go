package main

import (
	"encoding/json"
	"time"
)

/* ─── Domain structs ─────────────────────────────────────────────────── */

// user maps to the users table. Identity is a client-held opaque token —
// there are no credentials. Rows are created lazily on first sight of a
// token and never mutated afterwards.
type user struct {
	ID        int        `json:"id" db:"id"`
	Token     string     `json:"token" db:"token"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// calculationMethod maps to calculation_methods. The male/female formulas are
// explicit named columns; gender selects one of the two fields directly.
type calculationMethod struct {
	MethodKey     string `json:"method_key" db:"method_key"`
	Name          string `json:"name" db:"name"`
	Description   string `json:"description" db:"description"`
	FormulaMale   string `json:"formula_male" db:"formula_male"`
	FormulaFemale string `json:"formula_female" db:"formula_female"`
	IsActive      bool   `json:"is_active" db:"is_active"`
	SortOrder     int    `json:"sort_order" db:"sort_order"`
}

// activityLevel maps to activity_levels. Multiplier scales BMR into TDEE.
type activityLevel struct {
	LevelKey    string  `json:"level_key" db:"level_key"`
	Name        string  `json:"name" db:"name"`
	Description string  `json:"description" db:"description"`
	Multiplier  float64 `json:"multiplier" db:"multiplier"`
	IsActive    bool    `json:"is_active" db:"is_active"`
	SortOrder   int     `json:"sort_order" db:"sort_order"`
}

// dietGoal maps to diet_goals. adjustment_min/max are percentage deltas
// applied to TDEE (adjustment_min <= adjustment_max is a DB constraint).
type dietGoal struct {
	GoalKey        string  `json:"goal_key" db:"goal_key"`
	Name           string  `json:"name" db:"name"`
	Description    string  `json:"description" db:"description"`
	AdjustmentType string  `json:"adjustment_type" db:"adjustment_type"`
	AdjustmentMin  float64 `json:"adjustment_min" db:"adjustment_min"`
	AdjustmentMax  float64 `json:"adjustment_max" db:"adjustment_max"`
	Advice         string  `json:"advice" db:"advice"`
	IsActive       bool    `json:"is_active" db:"is_active"`
	SortOrder      int     `json:"sort_order" db:"sort_order"`
}

// calculationRecord is one row of the append-only calculation_history ledger.
// Input and result snapshots are stored as jsonb and passed through verbatim.
type calculationRecord struct {
	ID              int             `json:"id" db:"id"`
	CalculationType string          `json:"calculation_type" db:"calculation_type"`
	InputData       json.RawMessage `json:"input_data" db:"input_data"`
	ResultData      json.RawMessage `json:"result_data" db:"result_data"`
	CreatedAt       *time.Time      `json:"created_at" db:"created_at"`
}

/* ─── Request types ──────────────────────────────────────────────────── */

// bmrRequest is the request body for POST /api/calculate/bmr. The binding
// tags are the validation contract — every violated field is reported.
type bmrRequest struct {
	Method string  `json:"method" binding:"required"`
	Gender string  `json:"gender" binding:"required,oneof=male female"`
	Age    int     `json:"age" binding:"required,gte=1,lte=120"`
	Height float64 `json:"height" binding:"required,gte=100,lte=250"`
	Weight float64 `json:"weight" binding:"required,gte=30,lte=200"`
}

// tdeeRequest is the request body for POST /api/calculate/tdee.
type tdeeRequest struct {
	BMR           float64 `json:"bmr" binding:"required,gte=500,lte=5000"`
	ActivityLevel string  `json:"activity_level" binding:"required"`
}

// targetCaloriesRequest is the request body for POST /api/calculate/target-calories.
type targetCaloriesRequest struct {
	TDEE     float64 `json:"tdee" binding:"required,gte=500,lte=8000"`
	DietGoal string  `json:"diet_goal" binding:"required"`
}

/* ─── Response fragments ─────────────────────────────────────────────── */

// activityInfo is the descriptive activity-level metadata echoed in TDEE
// responses and stored in the result snapshot.
type activityInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// goalInfo is the descriptive diet-goal metadata echoed in target-calories
// responses and stored in the result snapshot.
type goalInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Advice      string `json:"advice"`
}

// adjustmentRange describes the computed calorie bounds plus the raw
// percentage bounds they were derived from.
type adjustmentRange struct {
	Min        float64         `json:"min"`
	Max        float64         `json:"max"`
	Percentage percentageRange `json:"percentage"`
}

type percentageRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// pagination is the paging block of the history list response.
// HasMore is offset+limit < total.
type pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"hasMore"`
}
