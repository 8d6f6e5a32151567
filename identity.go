package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// userTokenHeader carries the opaque client-held identity token. There is no
// authentication — possession of the token is ownership of the history.
const userTokenHeader = "X-User-Token"

// newUserToken mints a fresh identity token (UUIDv4) for clients that arrive
// without one. The token is echoed back so the client can persist it.
func newUserToken() string {
	return uuid.NewString()
}

// ensureUser resolves the request token to a users row, creating the row on
// first sight. ON CONFLICT DO NOTHING plus a follow-up SELECT makes two
// concurrent cold starts with the same token converge on one row.
// Sets user_id and user_token on the context.
func (h *Handler) ensureUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.GetHeader(userTokenHeader))
		if token == "" {
			token = newUserToken()
		}

		var userID int
		err := h.db.QueryRow(c,
			"INSERT INTO users (token) VALUES ($1) ON CONFLICT (token) DO NOTHING RETURNING id",
			token).Scan(&userID)
		if errors.Is(err, pgx.ErrNoRows) {
			// Row already existed (ours or a concurrent insert's) — fetch it.
			err = h.db.QueryRow(c, "SELECT id FROM users WHERE token = $1", token).Scan(&userID)
		}
		if err != nil {
			apiError(c, http.StatusInternalServerError, "internal server error")
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("user_token", token)
		c.Next()
	}
}

// requireToken gates the history routes: the token must be supplied by the
// client (no minting — history against a token nobody holds is useless).
// Does not touch the database; ownership is enforced per-query.
func requireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.GetHeader(userTokenHeader))
		if token == "" {
			apiError(c, http.StatusBadRequest, "user token missing")
			c.Abort()
			return
		}
		c.Set("user_token", token)
		c.Next()
	}
}
