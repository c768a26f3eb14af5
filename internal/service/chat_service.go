package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"doctor-ai/internal/domain"
	"doctor-ai/internal/llm"
	"doctor-ai/internal/repository"
)

var (
	ErrInvalidChatInput = errors.New("chat invalid input")

	// ErrUpstreamDegraded señala que el LLM falló y se respondió con el
	// mensaje degradado. Es recuperable: la sesión queda intacta.
	ErrUpstreamDegraded = errors.New("llm upstream degraded")
)

// ChatResult es la salida de un turno procesado.
type ChatResult struct {
	Reply        string
	Conversation []llm.Message
	Stage        Stage
}

// ChatService orquesta un turno completo: emergencia, consentimiento,
// delegación al LLM y persistencia del intercambio.
type ChatService struct {
	logger     *zap.Logger
	turns      repository.TurnRepository
	matcher    *DoctorMatcher
	tracker    ConversationTracker
	llm        llm.Client
	cache      *repository.RedisSessionCache
	llmTimeout time.Duration
	matchLimit int
}

func NewChatService(
	logger *zap.Logger,
	turns repository.TurnRepository,
	matcher *DoctorMatcher,
	llmClient llm.Client,
	cache *repository.RedisSessionCache,
	llmTimeout time.Duration,
	matchLimit int,
) *ChatService {
	if llmTimeout <= 0 {
		llmTimeout = 30 * time.Second
	}
	if matchLimit <= 0 {
		matchLimit = 3
	}
	return &ChatService{
		logger:     logger,
		turns:      turns,
		matcher:    matcher,
		llm:        llmClient,
		cache:      cache,
		llmTimeout: llmTimeout,
		matchLimit: matchLimit,
	}
}

// Handle procesa un mensaje de usuario. Las reglas se evalúan en orden de
// prioridad: emergencia, consentimiento pendiente, delegación al LLM.
func (s *ChatService) Handle(ctx context.Context, sessionID, message string, loc domain.Location) (ChatResult, error) {
	sessionID = strings.TrimSpace(sessionID)
	message = strings.TrimSpace(message)
	if sessionID == "" || message == "" {
		return ChatResult{}, ErrInvalidChatInput
	}

	history, err := s.turns.ListBySessionID(ctx, sessionID)
	if err != nil {
		return ChatResult{}, fmt.Errorf("load history: %w", err)
	}

	// 1. Cortocircuito de emergencia: responde urgente y recomienda doctores
	// sin pedir consentimiento, desde cualquier etapa.
	if s.tracker.IsEmergency(message, history) {
		reply := emergencyReply
		signalText := message
		if last, ok := lastAssistantTurn(history); ok {
			signalText += " " + last.Text
		}
		specs := EmergencySpecializationsFor(signalText)
		matches := s.matcher.MatchSpecializations(specs, loc, s.matchLimit)
		if len(matches) > 0 {
			reply += "\n\n" + formatSuggestion(emergencySuggestionHeader, matches)
		}
		if err := s.persistExchange(ctx, sessionID, message, reply, domain.TagEmergency); err != nil {
			return ChatResult{}, err
		}
		return s.result(ctx, sessionID, reply, StageDone)
	}

	stage := s.tracker.StageOf(history)

	// 2. Consentimiento pendiente: sin LLM, la decisión es local.
	if stage == StageAwaitingConsent {
		reply := closeOutReply
		tag := domain.TagNormal
		if s.tracker.IsAffirmative(message) {
			hint := s.tracker.DiagnosisHint(history)
			matches := s.matcher.Match(hint, loc, s.matchLimit)
			if len(matches) > 0 {
				reply = formatSuggestion(suggestionHeader, matches)
				tag = domain.TagDoctorSuggestion
			} else {
				reply = noDoctorsReply
			}
		}
		if err := s.persistExchange(ctx, sessionID, message, reply, tag); err != nil {
			return ChatResult{}, err
		}
		return s.result(ctx, sessionID, reply, StageDone)
	}

	// 3. Delegación al LLM con timeout; un solo intento por turno.
	prompt := s.tracker.BuildPrompt(stage, history, message)
	llmCtx, cancel := context.WithTimeout(ctx, s.llmTimeout)
	reply, err := s.llm.Generate(llmCtx, prompt)
	cancel()
	if err != nil {
		s.logger.Warn("llm call failed", zap.Error(err), zap.String("session_id", sessionID))
		if perr := s.persistExchange(ctx, sessionID, message, degradedReply, domain.TagNormal); perr != nil {
			return ChatResult{}, perr
		}
		res, rerr := s.result(ctx, sessionID, degradedReply, stage)
		if rerr != nil {
			return ChatResult{}, rerr
		}
		return res, ErrUpstreamDegraded
	}

	next := s.tracker.ClassifyReply(reply)
	if next == StageAwaitingConsent && !strings.Contains(strings.ToLower(reply), strings.ToLower(recommendationOffer)) {
		reply = reply + " " + recommendationOffer
	}

	if err := s.persistExchange(ctx, sessionID, message, reply, domain.TagNormal); err != nil {
		return ChatResult{}, err
	}
	return s.result(ctx, sessionID, reply, next)
}

// persistExchange agrega el turno del usuario y el del asistente al log y
// invalida el índice de sesiones cacheado.
func (s *ChatService) persistExchange(ctx context.Context, sessionID, userText, reply string, tag domain.TurnTag) error {
	now := time.Now().UTC()
	userTurn := domain.ConversationTurn{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Sender:    domain.SenderUser,
		Text:      userText,
		Tag:       domain.TagNormal,
		CreatedAt: now,
	}
	if err := s.turns.Append(ctx, userTurn); err != nil {
		return fmt.Errorf("append user turn: %w", err)
	}
	assistantTurn := domain.ConversationTurn{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Sender:    domain.SenderAssistant,
		Text:      reply,
		Tag:       tag,
		CreatedAt: now,
	}
	if err := s.turns.Append(ctx, assistantTurn); err != nil {
		return fmt.Errorf("append assistant turn: %w", err)
	}
	s.cache.Invalidate(ctx)
	return nil
}

func (s *ChatService) result(ctx context.Context, sessionID, reply string, stage Stage) (ChatResult, error) {
	history, err := s.turns.ListBySessionID(ctx, sessionID)
	if err != nil {
		return ChatResult{}, fmt.Errorf("reload history: %w", err)
	}
	conv := make([]llm.Message, 0, len(history))
	for _, t := range history {
		conv = append(conv, llm.Message{Role: roleFor(t.Sender), Content: t.Text})
	}
	return ChatResult{Reply: reply, Conversation: conv, Stage: stage}, nil
}

func formatSuggestion(header string, matches []DoctorMatch) string {
	var b strings.Builder
	b.WriteString(header)
	for i, m := range matches {
		name := m.Doctor.Name
		if !strings.HasPrefix(strings.ToLower(name), "dr.") {
			name = "Dr. " + name
		}
		fmt.Fprintf(&b, "\n%d. %s - %s, %s (%.2f km away)", i+1, name, m.Doctor.Specialization, m.Doctor.Hospital, m.DistanceKm)
	}
	return b.String()
}
