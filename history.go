package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// History ledger: append-only log of calculations, keyed by the user token.
// Rows are never updated — only appended, listed, and deleted.

// recordColumns is the row shape returned to clients (the owning ids stay
// server-side).
const recordColumns = "id, calculation_type, input_data, result_data, created_at"

// calculationTypes are the valid values of calculation_history.calculation_type.
var calculationTypes = []string{"bmr", "tdee", "target_calories"}

// appendHistory writes one ledger row for the current request's user. Input
// and result snapshots are marshalled here so the stored jsonb matches what
// the client sent and received. Never rejects on business grounds — any
// error is a store failure.
func (h *Handler) appendHistory(c *gin.Context, calcType string, input, result any) error {
	inputJSON, err := json.Marshal(input)
	if err != nil {
		return err
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return err
	}

	_, err = h.db.Exec(c,
		`INSERT INTO calculation_history (user_id, user_token, calculation_type, input_data, result_data)
		 VALUES (@userID, @token, @type, @input, @result)`,
		pgx.NamedArgs{
			"userID": c.GetInt("user_id"),
			"token":  c.GetString("user_token"),
			"type":   calcType,
			"input":  string(inputJSON),
			"result": string(resultJSON),
		})
	return err
}

// parsePagination applies the limit/offset defaults (10/0) and rejects
// garbage by falling back to the defaults.
func parsePagination(limitStr, offsetStr string) (limit, offset int) {
	limit = 10
	if n, err := strconv.Atoi(limitStr); err == nil && n > 0 {
		limit = n
	}
	offset = 0
	if n, err := strconv.Atoi(offsetStr); err == nil && n > 0 {
		offset = n
	}
	return limit, offset
}

// listHistory returns the user's calculations newest-first with pagination.
// GET /api/history?type=&limit=&offset=.
func (h *Handler) listHistory(c *gin.Context) {
	token := c.GetString("user_token")
	limit, offset := parsePagination(c.Query("limit"), c.Query("offset"))

	filter := ""
	args := pgx.NamedArgs{"token": token, "limit": limit, "offset": offset}
	if t := c.Query("type"); t != "" {
		filter = " AND calculation_type = @type"
		args["type"] = t
	}

	records, err := queryMany[calculationRecord](h.db, c,
		`SELECT `+recordColumns+` FROM calculation_history
		 WHERE user_token = @token`+filter+`
		 ORDER BY created_at DESC LIMIT @limit OFFSET @offset`, args)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "internal server error")
		return
	}
	if records == nil {
		records = []calculationRecord{}
	}

	var total int
	err = h.db.QueryRow(c,
		`SELECT COUNT(*) FROM calculation_history WHERE user_token = @token`+filter, args).Scan(&total)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	apiOK(c, gin.H{
		"history": records,
		"pagination": pagination{
			Total:   total,
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+limit < total,
		},
	})
}

// latestComplete returns the most recent record of each calculation type,
// any of which may be null. Three independent single-row lookups, not one
// aggregated query — used to restore client state on page load.
// GET /api/history/latest-complete.
func (h *Handler) latestComplete(c *gin.Context) {
	token := c.GetString("user_token")

	latest := make(map[string]*calculationRecord, len(calculationTypes))
	for _, calcType := range calculationTypes {
		record, err := queryOne[calculationRecord](h.db, c,
			`SELECT `+recordColumns+` FROM calculation_history
			 WHERE user_token = @token AND calculation_type = @type
			 ORDER BY created_at DESC LIMIT 1`,
			pgx.NamedArgs{"token": token, "type": calcType})
		if errors.Is(err, pgx.ErrNoRows) {
			latest[calcType] = nil
			continue
		}
		if err != nil {
			apiError(c, http.StatusInternalServerError, "internal server error")
			return
		}
		latest[calcType] = &record
	}

	apiOK(c, latest)
}

// deleteRecord removes one record by id, but only if the request token owns
// it. A foreign-owned record is indistinguishable from a nonexistent one —
// both are 404, so record ids leak nothing across users.
// DELETE /api/history/:id.
func (h *Handler) deleteRecord(c *gin.Context) {
	token := c.GetString("user_token")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apiError(c, http.StatusNotFound, "record not found")
		return
	}

	result, err := h.db.Exec(c,
		"DELETE FROM calculation_history WHERE id = @id AND user_token = @token",
		pgx.NamedArgs{"id": id, "token": token})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "internal server error")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "record not found")
		return
	}

	apiOK(c, gin.H{"message": "record deleted"})
}

// deleteAllHistory removes every record owned by the request token and
// reports how many went. The users row itself is never deleted.
// DELETE /api/history.
func (h *Handler) deleteAllHistory(c *gin.Context) {
	token := c.GetString("user_token")

	result, err := h.db.Exec(c,
		"DELETE FROM calculation_history WHERE user_token = @token",
		pgx.NamedArgs{"token": token})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	apiOK(c, gin.H{"deleted": result.RowsAffected()})
}
