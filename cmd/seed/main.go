// CLI tool to seed the reference-data tables (calculation methods, activity
// levels, diet goals). Idempotent: upserts by key, so re-running updates the
// display fields but leaves keys and sort order stable.
// Usage: go run ./cmd/seed (from the repo root)
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

type methodSeed struct {
	Key           string
	Name          string
	Description   string
	FormulaMale   string
	FormulaFemale string
	SortOrder     int
}

type levelSeed struct {
	Key         string
	Name        string
	Description string
	Multiplier  float64
	SortOrder   int
}

type goalSeed struct {
	Key            string
	Name           string
	Description    string
	AdjustmentType string
	AdjustmentMin  float64
	AdjustmentMax  float64
	Advice         string
	SortOrder      int
}

var calculationMethods = []methodSeed{
	{
		Key:           "mifflin",
		Name:          "Mifflin-St Jeor Equation (1990)",
		Description:   "The most widely used and validated estimate today",
		FormulaMale:   "BMR = 10 × weight(kg) + 6.25 × height(cm) - 5 × age + 5",
		FormulaFemale: "BMR = 10 × weight(kg) + 6.25 × height(cm) - 5 × age - 161",
		SortOrder:     1,
	},
}

var activityLevels = []levelSeed{
	{Key: "sedentary", Name: "Sedentary", Description: "Little or no exercise, desk job", Multiplier: 1.2, SortOrder: 1},
	{Key: "light", Name: "Lightly active", Description: "Light exercise 1-3 times per week", Multiplier: 1.375, SortOrder: 2},
	{Key: "moderate", Name: "Moderately active", Description: "Moderate exercise 3-5 times per week", Multiplier: 1.55, SortOrder: 3},
	{Key: "active", Name: "Very active", Description: "Hard training 6-7 times per week", Multiplier: 1.725, SortOrder: 4},
	{Key: "very_active", Name: "Extremely active", Description: "Athletes and physical labourers", Multiplier: 1.9, SortOrder: 5},
}

var dietGoals = []goalSeed{
	{
		Key: "fat_loss", Name: "Fat Loss",
		Description:    "TDEE - 15~25% (roughly 300~500 kcal below maintenance)",
		AdjustmentType: "percentage", AdjustmentMin: -25, AdjustmentMax: -15,
		Advice:    "Keep protein intake high and train with weights to preserve lean mass while cutting",
		SortOrder: 1,
	},
	{
		Key: "maintenance", Name: "Maintenance",
		Description:    "= TDEE itself",
		AdjustmentType: "percentage", AdjustmentMin: 0, AdjustmentMax: 0,
		Advice:    "Hold weight steady — suited to stable phases and performance optimisation",
		SortOrder: 2,
	},
	{
		Key: "muscle_gain", Name: "Muscle Gain",
		Description:    "TDEE + 5~15% (roughly 200~500 kcal above maintenance)",
		AdjustmentType: "percentage", AdjustmentMin: 5, AdjustmentMax: 15,
		Advice:    "Pair the surplus with weight training and a high-protein diet to limit fat gain",
		SortOrder: 3,
	},
}

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, os.Getenv("DB_URL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	// All three tables in one transaction so a partial seed never lands.
	tx, err := conn.Begin(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting transaction: %v\n", err)
		os.Exit(1)
	}
	defer tx.Rollback(ctx)

	for _, m := range calculationMethods {
		_, err := tx.Exec(ctx,
			`INSERT INTO calculation_methods (method_key, name, description, formula_male, formula_female, sort_order)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (method_key) DO UPDATE SET
			   name = EXCLUDED.name,
			   description = EXCLUDED.description,
			   formula_male = EXCLUDED.formula_male,
			   formula_female = EXCLUDED.formula_female`,
			m.Key, m.Name, m.Description, m.FormulaMale, m.FormulaFemale, m.SortOrder)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error seeding calculation method %s: %v\n", m.Key, err)
			os.Exit(1)
		}
	}

	for _, l := range activityLevels {
		_, err := tx.Exec(ctx,
			`INSERT INTO activity_levels (level_key, name, description, multiplier, sort_order)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (level_key) DO UPDATE SET
			   name = EXCLUDED.name,
			   description = EXCLUDED.description,
			   multiplier = EXCLUDED.multiplier`,
			l.Key, l.Name, l.Description, l.Multiplier, l.SortOrder)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error seeding activity level %s: %v\n", l.Key, err)
			os.Exit(1)
		}
	}

	for _, g := range dietGoals {
		_, err := tx.Exec(ctx,
			`INSERT INTO diet_goals (goal_key, name, description, adjustment_type, adjustment_min, adjustment_max, advice, sort_order)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 ON CONFLICT (goal_key) DO UPDATE SET
			   name = EXCLUDED.name,
			   description = EXCLUDED.description,
			   adjustment_min = EXCLUDED.adjustment_min,
			   adjustment_max = EXCLUDED.adjustment_max,
			   advice = EXCLUDED.advice`,
			g.Key, g.Name, g.Description, g.AdjustmentType, g.AdjustmentMin, g.AdjustmentMax, g.Advice, g.SortOrder)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error seeding diet goal %s: %v\n", g.Key, err)
			os.Exit(1)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error committing seed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Seeded %d method(s), %d activity level(s), %d diet goal(s).\n",
		len(calculationMethods), len(activityLevels), len(dietGoals))
}
