package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

// setupTestRouter builds a Gin engine with the calculate routes registered
// behind a stub identity middleware (no DB needed — these tests only exercise
// paths that fail before any query runs).
func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &Handler{}
	router := gin.New()

	stubIdentity := func(c *gin.Context) {
		c.Set("user_id", 1)
		c.Set("user_token", "test-token")
		c.Next()
	}
	calculate := router.Group("/api/calculate", stubIdentity)
	calculate.POST("/bmr", h.calculateBMR)
	calculate.POST("/tdee", h.calculateTDEE)
	calculate.POST("/target-calories", h.calculateTargetCalories)

	history := router.Group("/api/history", requireToken())
	history.GET("", h.listHistory)

	registerFallback(router, "./static")
	return router
}

// doJSONRequest sends a request with a JSON body and returns the recorder.
func doJSONRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// errorEnvelope mirrors the {success, error, details} failure shape.
type errorEnvelope struct {
	Success bool               `json:"success"`
	Error   string             `json:"error"`
	Details []validationDetail `json:"details"`
}

/* ─── Validation behavior ────────────────────────────────────────────── */

// TestCalculateBMR_ReportsAllViolatedFields verifies that a body violating
// every constraint produces one detail per field, not just the first failure.
func TestCalculateBMR_ReportsAllViolatedFields(t *testing.T) {
	router := setupTestRouter()

	// method missing, gender invalid, age/height/weight all out of range
	w := doJSONRequest(router, "POST", "/api/calculate/bmr",
		`{"gender":"robot","age":150,"height":50,"weight":500}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	var resp errorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Success {
		t.Error("expected success=false")
	}

	got := make(map[string]string, len(resp.Details))
	for _, d := range resp.Details {
		got[d.Field] = d.Message
	}
	for _, field := range []string{"method", "gender", "age", "height", "weight"} {
		if _, ok := got[field]; !ok {
			t.Errorf("expected a detail for field %q, got %v", field, got)
		}
	}
	if got["method"] != "is required" {
		t.Errorf("method message = %q, want \"is required\"", got["method"])
	}
	if got["gender"] != "must be one of: male, female" {
		t.Errorf("gender message = %q, want oneof message", got["gender"])
	}
	if got["age"] != "must be at most 120" {
		t.Errorf("age message = %q, want \"must be at most 120\"", got["age"])
	}
}

// TestCalculateTDEE_RangeViolations verifies the bmr bounds and required
// activity_level are enforced before any reference lookup.
func TestCalculateTDEE_RangeViolations(t *testing.T) {
	router := setupTestRouter()

	w := doJSONRequest(router, "POST", "/api/calculate/tdee", `{"bmr":100}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	var resp errorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	got := make(map[string]string, len(resp.Details))
	for _, d := range resp.Details {
		got[d.Field] = d.Message
	}
	if got["bmr"] != "must be at least 500" {
		t.Errorf("bmr message = %q, want \"must be at least 500\"", got["bmr"])
	}
	if got["activity_level"] != "is required" {
		t.Errorf("activity_level message = %q, want \"is required\"", got["activity_level"])
	}
}

// TestCalculateTargetCalories_Validation verifies the tdee upper bound.
func TestCalculateTargetCalories_Validation(t *testing.T) {
	router := setupTestRouter()

	w := doJSONRequest(router, "POST", "/api/calculate/target-calories",
		`{"tdee":9000,"diet_goal":"fat_loss"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	var resp errorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(resp.Details) != 1 || resp.Details[0].Field != "tdee" {
		t.Errorf("expected a single tdee detail, got %v", resp.Details)
	}
}

// TestCalculateBMR_MalformedJSON verifies malformed bodies get the generic
// message with no details array.
func TestCalculateBMR_MalformedJSON(t *testing.T) {
	router := setupTestRouter()

	w := doJSONRequest(router, "POST", "/api/calculate/bmr", `{"method":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	var resp errorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Error != "invalid request body" {
		t.Errorf("error = %q, want \"invalid request body\"", resp.Error)
	}
	if len(resp.Details) != 0 {
		t.Errorf("expected no details, got %v", resp.Details)
	}
}

/* ─── Identity gating ────────────────────────────────────────────────── */

// TestHistory_MissingToken verifies history routes reject requests without
// the identity header instead of minting a throwaway token.
func TestHistory_MissingToken(t *testing.T) {
	router := setupTestRouter()

	req := httptest.NewRequest("GET", "/api/history", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	var resp errorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Error != "user token missing" {
		t.Errorf("error = %q, want \"user token missing\"", resp.Error)
	}
}

/* ─── Route fallback ─────────────────────────────────────────────────── */

// TestUnknownAPIRoute_JSON404 verifies unmatched /api paths return the JSON
// envelope, not the SPA fallback.
func TestUnknownAPIRoute_JSON404(t *testing.T) {
	router := setupTestRouter()

	req := httptest.NewRequest("GET", "/api/nope", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var resp errorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Error != "route not found" {
		t.Errorf("error = %q, want \"route not found\"", resp.Error)
	}
}

/* ─── Pagination arithmetic ──────────────────────────────────────────── */

// TestParsePagination verifies the 10/0 defaults and garbage fallback.
func TestParsePagination(t *testing.T) {
	cases := []struct {
		limitStr, offsetStr   string
		wantLimit, wantOffset int
	}{
		{"", "", 10, 0},
		{"25", "50", 25, 50},
		{"-5", "-1", 10, 0},
		{"abc", "xyz", 10, 0},
		{"0", "0", 10, 0},
	}
	for _, tc := range cases {
		limit, offset := parsePagination(tc.limitStr, tc.offsetStr)
		if limit != tc.wantLimit || offset != tc.wantOffset {
			t.Errorf("parsePagination(%q, %q) = (%d, %d), want (%d, %d)",
				tc.limitStr, tc.offsetStr, limit, offset, tc.wantLimit, tc.wantOffset)
		}
	}
}

// TestHasMore verifies hasMore = offset+limit < total, including the boundary
// where the final page exactly exhausts the rows.
func TestHasMore(t *testing.T) {
	cases := []struct {
		offset, limit, total int
		want                 bool
	}{
		{0, 10, 25, true},
		{10, 10, 25, true},
		{20, 10, 25, false},
		{0, 10, 10, false},
		{0, 10, 0, false},
	}
	for _, tc := range cases {
		if got := tc.offset+tc.limit < tc.total; got != tc.want {
			t.Errorf("hasMore(offset=%d, limit=%d, total=%d) = %v, want %v",
				tc.offset, tc.limit, tc.total, got, tc.want)
		}
	}
}
