package advice

import (
	"context"
	"log"

	"github.com/luvvtapp/coach/internal/ai"
	"github.com/luvvtapp/coach/internal/analytics"
	"github.com/luvvtapp/coach/internal/common"
	"github.com/luvvtapp/coach/internal/models"
	"github.com/luvvtapp/coach/internal/prompt"
	"github.com/luvvtapp/coach/internal/session"
	"github.com/luvvtapp/coach/internal/store/rabbitmq"
)

const (
	adviceTemperature = 0.7
	adviceMaxTokens   = 600
)

// adviceInstruction is the fixed user message asking for a structured plan.
const adviceInstruction = "Provide a concise, step-by-step, actionable plan the user can apply now. " +
	"Structure the response with short sections: Summary, Why it helps, 3-6 Action Steps, Gentle Check-ins, and Conversation Prompts. " +
	"Keep it supportive and specific."

type Service struct {
	repo     *Repo
	registry *ai.Registry
	events   *rabbitmq.Publisher

	providerName string
	model        string
}

func NewService(repo *Repo, registry *ai.Registry, providerName, model string, events *rabbitmq.Publisher) *Service {
	return &Service{
		repo:         repo,
		registry:     registry,
		events:       events,
		providerName: providerName,
		model:        model,
	}
}

type GenerateRequest struct {
	UserID         string
	Topic          string
	Situation      string
	PartnerProfile *models.PartnerProfile
	SelfAssessment *models.SelfAssessment
}

// Generate runs exactly one exchange and persists exactly one record on
// success. On failure nothing is written; no conversation state is touched.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*Record, error) {
	relationshipType := session.TypeGeneral
	if req.PartnerProfile != nil {
		relationshipType = session.ContextPartner
	}

	msgs := []ai.Message{
		{Role: "system", Content: prompt.Build(relationshipType, req.PartnerProfile, req.SelfAssessment)},
		{Role: "user", Content: "Topic: " + req.Topic + "\n\nSituation: " + req.Situation + "\n\n" + adviceInstruction},
	}

	provider, err := s.registry.Get(ctx, s.providerName, s.model)
	if err != nil {
		return nil, err
	}
	reply, err := provider.Chat(ctx, msgs, ai.GenParams{
		Temperature: adviceTemperature,
		MaxTokens:   adviceMaxTokens,
	})
	if err != nil {
		return nil, err
	}

	id, err := common.NewULID()
	if err != nil {
		return nil, err
	}
	rec := &Record{
		ID:             id,
		UserID:         req.UserID,
		Topic:          req.Topic,
		Situation:      req.Situation,
		Content:        reply.Content,
		PartnerProfile: req.PartnerProfile,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}

	if perr := s.events.Publish(ctx, rabbitmq.EventMessage{
		Kind:     analytics.KindAdviceCreated,
		UserID:   req.UserID,
		EntityID: rec.ID,
		Tokens:   reply.TotalTokens,
		At:       rec.CreatedAt,
	}); perr != nil {
		log.Printf("advice: publish event failed advice_id=%s err=%v", rec.ID, perr)
	}

	return rec, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Record, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID string, limit int) ([]Record, error) {
	return s.repo.ListByUser(ctx, userID, limit)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
