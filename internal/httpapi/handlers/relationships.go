package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/luvvtapp/coach/internal/common"
	"github.com/luvvtapp/coach/internal/models"
)

type relationshipReq struct {
	UserID           string                `json:"user_id" binding:"required"`
	RelationshipType string                `json:"relationship_type" binding:"required"`
	PartnerProfile   models.PartnerProfile `json:"partner_profile"`
}

// CreateRelationship always inserts; posting the same payload twice yields
// two records with distinct ids.
func (h *Handler) CreateRelationship(c *gin.Context) {
	var req relationshipReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "relationship error: invalid json (user_id and relationship_type required)")
		return
	}

	rel, err := h.Relationships.Create(c.Request.Context(), req.UserID, req.RelationshipType, req.PartnerProfile)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50030, "relationship error: failed to create relationship")
		return
	}

	common.Created(c, gin.H{
		"message":         "Relationship created successfully",
		"relationship_id": rel.ID,
		"relationship":    rel,
	})
}

type relationshipUpdateReq struct {
	RelationshipType string                `json:"relationship_type" binding:"required"`
	PartnerProfile   models.PartnerProfile `json:"partner_profile"`
}

// UpdateRelationship replaces the type and partner profile wholesale. The
// owning user_id rides in the query string so a stolen id alone cannot
// mutate someone else's record.
func (h *Handler) UpdateRelationship(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		common.Fail(c, http.StatusBadRequest, 10002, "relationship error: user_id query parameter required")
		return
	}

	var req relationshipUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "relationship error: invalid json (relationship_type required)")
		return
	}

	err := h.Relationships.Update(c.Request.Context(), c.Param("relationship_id"), userID, req.RelationshipType, req.PartnerProfile)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.Fail(c, http.StatusNotFound, 40430, "relationship error: relationship not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 50030, "relationship error: failed to update relationship")
		return
	}
	common.OK(c, gin.H{"message": "Relationship updated successfully"})
}

func (h *Handler) DeleteRelationship(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		common.Fail(c, http.StatusBadRequest, 10002, "relationship error: user_id query parameter required")
		return
	}

	err := h.Relationships.Delete(c.Request.Context(), c.Param("relationship_id"), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.Fail(c, http.StatusNotFound, 40430, "relationship error: relationship not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 50030, "relationship error: failed to delete relationship")
		return
	}
	common.OK(c, gin.H{"message": "Relationship deleted successfully"})
}

// ListRelationships returns the user's relationships newest-first. An
// unknown user simply has an empty list.
func (h *Handler) ListRelationships(c *gin.Context) {
	rels, err := h.Relationships.ListByUser(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50030, "relationship error: failed to list relationships")
		return
	}
	common.OK(c, gin.H{
		"relationships": rels,
		"count":         len(rels),
	})
}
