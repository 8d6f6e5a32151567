package main

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Pure calculation engine: deterministic arithmetic over validated inputs and
// fetched reference rows. Nothing in this file touches the database.

// errUnsupportedMethod is returned when a method key exists in reference data
// but has no formula branch here (only mifflin is implemented).
var errUnsupportedMethod = errors.New("unsupported calculation method")

// round1 rounds to 1 decimal place, half away from zero (math.Round on the
// value scaled by 10). Every calorie figure in the API goes through this.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// formatNum renders a float the way the UI expects: no exponent, no trailing
// zeros (2000 not 2000.0, 1703.8 stays 1703.8).
func formatNum(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// signedNum is formatNum with an explicit leading + for non-negative values,
// used for percentage bounds in trace strings ("+5~+15%", "-25~-15%").
func signedNum(x float64) string {
	s := formatNum(x)
	if x >= 0 {
		s = "+" + s
	}
	return s
}

// computeBMR computes BMR via Mifflin-St Jeor and the matching trace string.
//
//	male:   10*weight + 6.25*height - 5*age + 5
//	female: 10*weight + 6.25*height - 5*age - 161
//
// methodKey is validated against reference data by the caller; any key other
// than mifflin has no formula branch and fails with errUnsupportedMethod.
func computeBMR(methodKey, gender string, age int, heightCM, weightKG float64) (float64, string, error) {
	if methodKey != "mifflin" {
		return 0, "", errUnsupportedMethod
	}

	base := 10*weightKG + 6.25*heightCM - 5*float64(age)
	var bmr float64
	var tail string
	if gender == "male" {
		bmr = base + 5
		tail = "+ 5"
	} else {
		bmr = base - 161
		tail = "- 161"
	}
	bmr = round1(bmr)

	trace := fmt.Sprintf("10 × %s + 6.25 × %s - 5 × %d %s = %s",
		formatNum(weightKG), formatNum(heightCM), age, tail, formatNum(bmr))
	return bmr, trace, nil
}

// computeTDEE scales BMR by an activity multiplier. The multiplier comes from
// an active activity_levels row resolved by the caller.
func computeTDEE(bmr, multiplier float64) (float64, string) {
	tdee := round1(bmr * multiplier)
	trace := fmt.Sprintf("TDEE = BMR × activity multiplier = %s × %s = %s kcal/day",
		formatNum(bmr), formatNum(multiplier), formatNum(tdee))
	return tdee, trace
}

// targetRange is the computed calorie range for a percentage diet goal.
// Target is the midpoint of the rounded bounds, not a separate formula.
type targetRange struct {
	Min    float64
	Max    float64
	Target float64
}

// computeTargetRange applies percentage bounds to TDEE. adjMin/adjMax are
// whole percentages (-25 means TDEE minus 25%).
func computeTargetRange(tdee, adjMin, adjMax float64) targetRange {
	min := round1(tdee * (1 + adjMin/100))
	max := round1(tdee * (1 + adjMax/100))
	return targetRange{
		Min:    min,
		Max:    max,
		Target: round1((min + max) / 2),
	}
}

// targetTrace builds the display trace for a target-calories result,
// e.g. "Fat Loss = TDEE -25~-15% = 1533.5~1737.9 kcal/day".
func targetTrace(goalName string, adjMin, adjMax float64, r targetRange) string {
	return fmt.Sprintf("%s = TDEE %s~%s%% = %s~%s kcal/day",
		goalName, signedNum(adjMin), signedNum(adjMax), formatNum(r.Min), formatNum(r.Max))
}
