package chat

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/luvvtapp/coach/internal/ai"
	"github.com/luvvtapp/coach/internal/analytics"
	"github.com/luvvtapp/coach/internal/common"
	"github.com/luvvtapp/coach/internal/models"
	"github.com/luvvtapp/coach/internal/prompt"
	"github.com/luvvtapp/coach/internal/session"
	"github.com/luvvtapp/coach/internal/store/rabbitmq"
	"github.com/luvvtapp/coach/internal/store/redisstore"
)

// Generation parameters for coaching replies.
const (
	chatTemperature      = 0.8
	chatMaxTokens        = 500
	chatPresencePenalty  = 0.6
	chatFrequencyPenalty = 0.3
)

// sessionLockTTL bounds how long a crashed request can hold a session.
const sessionLockTTL = 90 * time.Second

// ErrSessionBusy: another chat call holds this session's lock. The caller
// retries with the same session id.
var ErrSessionBusy = errors.New("chat: session busy")

type Service struct {
	sessions *session.Repo
	registry *ai.Registry
	locks    *redisstore.Store
	events   *rabbitmq.Publisher

	providerName string
	model        string
	window       int
}

func NewService(sessions *session.Repo, registry *ai.Registry, providerName, model string, window int, locks *redisstore.Store, events *rabbitmq.Publisher) *Service {
	if window <= 0 || window > 100 {
		window = 10
	}
	return &Service{
		sessions:     sessions,
		registry:     registry,
		locks:        locks,
		events:       events,
		providerName: providerName,
		model:        model,
		window:       window,
	}
}

type SendRequest struct {
	UserID           string
	Message          string
	RelationshipType string
	PartnerProfile   *models.PartnerProfile
	SelfAssessment   *models.SelfAssessment
	SessionID        string
}

type SendResult struct {
	SessionID  string
	Reply      string
	Timestamp  time.Time
	TokensUsed int
}

// Send runs one chat exchange. The user turn is persisted before the
// provider call, so an upstream failure never loses the user's input; on
// failure no assistant turn is written and the caller may retry with the
// same session id. No automatic retry happens here.
func (s *Service) Send(ctx context.Context, req SendRequest) (*SendResult, error) {
	if req.RelationshipType == "" {
		req.RelationshipType = session.TypeGeneral
	}

	sess, err := s.resolveSession(ctx, req)
	if err != nil {
		return nil, err
	}

	// Serialize concurrent appends on one session when redis is around.
	// A lock-store outage degrades to the documented unlocked behavior
	// rather than failing the chat.
	release, ok, lockErr := s.locks.AcquireSessionLock(ctx, sess.SessionID, sessionLockTTL)
	if lockErr != nil {
		log.Printf("chat: session lock unavailable session_id=%s err=%v", sess.SessionID, lockErr)
	} else if !ok {
		return nil, ErrSessionBusy
	} else {
		defer release()
	}

	contextType := session.DeriveContextType(req.RelationshipType, req.PartnerProfile)
	if err := s.sessions.UpdateContext(ctx, sess.SessionID, req.RelationshipType, contextType, req.PartnerProfile); err != nil {
		return nil, err
	}

	// Crisis messages get the fixed referral response; no model call.
	if prompt.DetectCrisis(req.Message) {
		return s.respondFixed(ctx, sess, req, prompt.CrisisResponse)
	}

	// Window is read before the user turn lands, so the provider sees the
	// last N stored turns plus exactly one new user message.
	recentDesc, err := s.sessions.ListRecentTurnsDesc(ctx, sess.SessionID, s.window)
	if err != nil {
		return nil, err
	}

	userTurn := &session.Turn{
		SessionID: sess.SessionID,
		Role:      "user",
		Content:   req.Message,
	}
	if err := s.sessions.AppendTurn(ctx, userTurn); err != nil {
		return nil, err
	}

	msgs := make([]ai.Message, 0, len(recentDesc)+2)
	msgs = append(msgs, ai.Message{
		Role:    "system",
		Content: prompt.Build(req.RelationshipType, req.PartnerProfile, req.SelfAssessment),
	})
	for i := len(recentDesc) - 1; i >= 0; i-- {
		msgs = append(msgs, ai.Message{Role: recentDesc[i].Role, Content: recentDesc[i].Content})
	}
	msgs = append(msgs, ai.Message{Role: "user", Content: req.Message})

	provider, err := s.registry.Get(ctx, s.providerName, s.model)
	if err != nil {
		return nil, err
	}
	reply, err := provider.Chat(ctx, msgs, ai.GenParams{
		Temperature:      chatTemperature,
		MaxTokens:        chatMaxTokens,
		PresencePenalty:  chatPresencePenalty,
		FrequencyPenalty: chatFrequencyPenalty,
	})
	if err != nil {
		return nil, err
	}

	assistantTurn := &session.Turn{
		SessionID: sess.SessionID,
		Role:      "assistant",
		Content:   reply.Content,
	}
	if err := s.sessions.AppendTurn(ctx, assistantTurn); err != nil {
		return nil, err
	}

	if perr := s.events.Publish(ctx, rabbitmq.EventMessage{
		Kind:     analytics.KindChatTurn,
		UserID:   req.UserID,
		EntityID: sess.SessionID,
		Tokens:   reply.TotalTokens,
		At:       assistantTurn.CreatedAt,
	}); perr != nil {
		log.Printf("chat: publish event failed session_id=%s err=%v", sess.SessionID, perr)
	}

	return &SendResult{
		SessionID:  sess.SessionID,
		Reply:      reply.Content,
		Timestamp:  assistantTurn.CreatedAt,
		TokensUsed: reply.TotalTokens,
	}, nil
}

// respondFixed persists the exchange like a normal turn pair but with a
// canned assistant reply, so the transcript stays coherent.
func (s *Service) respondFixed(ctx context.Context, sess *session.Session, req SendRequest, reply string) (*SendResult, error) {
	userTurn := &session.Turn{
		SessionID: sess.SessionID,
		Role:      "user",
		Content:   req.Message,
	}
	if err := s.sessions.AppendTurn(ctx, userTurn); err != nil {
		return nil, err
	}
	assistantTurn := &session.Turn{
		SessionID: sess.SessionID,
		Role:      "assistant",
		Content:   reply,
	}
	if err := s.sessions.AppendTurn(ctx, assistantTurn); err != nil {
		return nil, err
	}

	if perr := s.events.Publish(ctx, rabbitmq.EventMessage{
		Kind:     analytics.KindChatTurn,
		UserID:   req.UserID,
		EntityID: sess.SessionID,
		At:       assistantTurn.CreatedAt,
	}); perr != nil {
		log.Printf("chat: publish event failed session_id=%s err=%v", sess.SessionID, perr)
	}

	return &SendResult{
		SessionID: sess.SessionID,
		Reply:     reply,
		Timestamp: assistantTurn.CreatedAt,
	}, nil
}

// resolveSession treats a caller-supplied id purely as a lookup key: when
// it resolves, that session is reused; when it doesn't (or none was given),
// a new session with a server-generated id is created.
func (s *Service) resolveSession(ctx context.Context, req SendRequest) (*session.Session, error) {
	if req.SessionID != "" {
		sess, err := s.sessions.GetBySessionID(ctx, req.SessionID)
		if err == nil {
			return sess, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	sid, err := common.NewULID()
	if err != nil {
		return nil, err
	}
	sess := &session.Session{
		SessionID:        sid,
		UserID:           req.UserID,
		RelationshipType: req.RelationshipType,
		ContextType:      session.DeriveContextType(req.RelationshipType, req.PartnerProfile),
		PartnerProfile:   req.PartnerProfile,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}
