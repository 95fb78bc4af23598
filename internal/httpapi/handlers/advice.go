package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/luvvtapp/coach/internal/advice"
	"github.com/luvvtapp/coach/internal/common"
	"github.com/luvvtapp/coach/internal/models"
)

type adviceReq struct {
	UserID         string                 `json:"user_id" binding:"required"`
	Topic          string                 `json:"topic" binding:"required"`
	Situation      string                 `json:"situation" binding:"required"`
	PartnerProfile *models.PartnerProfile `json:"partner_profile"`
	SelfAssessment *models.SelfAssessment `json:"self_assessment"`
}

// CreateAdvice generates one structured advice plan. Binding goes through
// the cached-body variant because the rate limiter already peeked at the
// JSON.
func (h *Handler) CreateAdvice(c *gin.Context) {
	var req adviceReq
	if err := c.ShouldBindBodyWithJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "advice error: invalid json (user_id, topic and situation required)")
		return
	}

	rec, err := h.AdviceSvc.Generate(c.Request.Context(), advice.GenerateRequest{
		UserID:         req.UserID,
		Topic:          req.Topic,
		Situation:      req.Situation,
		PartnerProfile: req.PartnerProfile,
		SelfAssessment: req.SelfAssessment,
	})
	if err != nil {
		failUpstream(c, "advice", err)
		return
	}

	common.Created(c, gin.H{
		"message":    "Advice generated successfully",
		"advice_id":  rec.ID,
		"topic":      rec.Topic,
		"advice":     rec.Content,
		"created_at": rec.CreatedAt,
	})
}

// ListAdvice returns the user's saved advice newest-first, with content
// truncated to a preview. Fetch an item by id for the full text.
func (h *Handler) ListAdvice(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	recs, err := h.AdviceSvc.ListByUser(c.Request.Context(), c.Param("user_id"), limit)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50050, "advice error: failed to list advice")
		return
	}

	items := make([]gin.H, 0, len(recs))
	for _, r := range recs {
		items = append(items, gin.H{
			"advice_id":  r.ID,
			"topic":      r.Topic,
			"situation":  r.Situation,
			"preview":    r.Preview(),
			"created_at": r.CreatedAt,
		})
	}
	common.OK(c, gin.H{
		"advice": items,
		"count":  len(items),
	})
}

func (h *Handler) GetAdvice(c *gin.Context) {
	rec, err := h.AdviceSvc.GetByID(c.Request.Context(), c.Param("advice_id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.Fail(c, http.StatusNotFound, 40450, "advice error: advice not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 50050, "advice error: failed to load advice")
		return
	}
	common.OK(c, rec)
}

func (h *Handler) DeleteAdvice(c *gin.Context) {
	err := h.AdviceSvc.Delete(c.Request.Context(), c.Param("advice_id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.Fail(c, http.StatusNotFound, 40450, "advice error: advice not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 50050, "advice error: failed to delete advice")
		return
	}
	common.OK(c, gin.H{"message": "Advice deleted successfully"})
}
