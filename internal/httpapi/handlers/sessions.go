package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/luvvtapp/coach/internal/common"
)

// ListSessions returns the user's chat sessions, most recently active
// first, without any turn history.
func (h *Handler) ListSessions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	sessions, err := h.Sessions.ListByUser(c.Request.Context(), c.Param("user_id"), limit)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50040, "chat error: failed to list sessions")
		return
	}

	items := make([]gin.H, 0, len(sessions))
	for _, s := range sessions {
		items = append(items, gin.H{
			"session_id":        s.SessionID,
			"relationship_type": s.RelationshipType,
			"context_type":      s.ContextType,
			"created_at":        s.CreatedAt,
			"updated_at":        s.UpdatedAt,
		})
	}
	common.OK(c, gin.H{
		"sessions": items,
		"count":    len(items),
	})
}

// SessionHistory returns the full ordered transcript of one session.
func (h *Handler) SessionHistory(c *gin.Context) {
	sessionID := c.Param("session_id")

	s, err := h.Sessions.GetBySessionID(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.Fail(c, http.StatusNotFound, 40440, "chat error: session not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 50040, "chat error: failed to load session")
		return
	}

	turns, err := h.Sessions.ListTurnsAsc(c.Request.Context(), sessionID)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50040, "chat error: failed to load history")
		return
	}

	msgs := make([]gin.H, 0, len(turns))
	for _, t := range turns {
		msgs = append(msgs, gin.H{
			"role":      t.Role,
			"content":   t.Content,
			"timestamp": t.CreatedAt,
		})
	}
	common.OK(c, gin.H{
		"session_id":        s.SessionID,
		"user_id":           s.UserID,
		"relationship_type": s.RelationshipType,
		"context_type":      s.ContextType,
		"messages":          msgs,
		"count":             len(msgs),
	})
}

func (h *Handler) DeleteSession(c *gin.Context) {
	err := h.Sessions.DeleteBySessionID(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.Fail(c, http.StatusNotFound, 40440, "chat error: session not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 50040, "chat error: failed to delete session")
		return
	}
	common.OK(c, gin.H{"message": "Session deleted successfully"})
}
