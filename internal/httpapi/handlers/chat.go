package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luvvtapp/coach/internal/chat"
	"github.com/luvvtapp/coach/internal/common"
	"github.com/luvvtapp/coach/internal/models"
)

type chatReq struct {
	UserID           string                 `json:"user_id" binding:"required"`
	Message          string                 `json:"message" binding:"required"`
	RelationshipType string                 `json:"relationship_type"`
	PartnerProfile   *models.PartnerProfile `json:"partner_profile"`
	SelfAssessment   *models.SelfAssessment `json:"self_assessment"`
	SessionID        string                 `json:"session_id"`
}

// Chat runs one exchange with the coach. Body binding goes through the
// cached-body variant because the rate limiter already peeked at the JSON.
func (h *Handler) Chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindBodyWithJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "chat error: invalid json (user_id and message required)")
		return
	}

	res, err := h.ChatSvc.Send(c.Request.Context(), chat.SendRequest{
		UserID:           req.UserID,
		Message:          req.Message,
		RelationshipType: req.RelationshipType,
		PartnerProfile:   req.PartnerProfile,
		SelfAssessment:   req.SelfAssessment,
		SessionID:        req.SessionID,
	})
	if err != nil {
		if errors.Is(err, chat.ErrSessionBusy) {
			common.Fail(c, http.StatusConflict, 40910, "chat error: another message is being processed for this session, retry shortly")
			return
		}
		failUpstream(c, "chat", err)
		return
	}

	common.OK(c, gin.H{
		"session_id":  res.SessionID,
		"response":    res.Reply,
		"timestamp":   res.Timestamp,
		"tokens_used": res.TokensUsed,
	})
}
