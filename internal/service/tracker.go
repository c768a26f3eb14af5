package service

import (
	"strings"

	"doctor-ai/internal/domain"
	"doctor-ai/internal/llm"
)

// Stage identifica la etapa de la conversación.
type Stage string

const (
	StageCollecting      Stage = "collecting_symptoms"
	StageClarifying      Stage = "clarifying"
	StageDiagnosisReady  Stage = "diagnosis_ready"
	StageAwaitingConsent Stage = "awaiting_recommendation_consent"
	StageDone            Stage = "done"
)

// ConversationTracker deriva la etapa actual del historial persistido y arma
// el contexto que se envía al LLM. No guarda estado propio: el log de turnos
// del servidor es la única fuente de verdad.
type ConversationTracker struct{}

// IsEmergency evalúa el mensaje entrante y el último contexto del asistente
// contra la tabla de emergencias. Tiene prioridad sobre cualquier etapa.
func (ConversationTracker) IsEmergency(message string, history []domain.ConversationTurn) bool {
	if containsAny(message, emergencyKeywords) {
		return true
	}
	if last, ok := lastAssistantTurn(history); ok && containsAny(last.Text, emergencyKeywords) {
		return true
	}
	return false
}

// StageOf clasifica el historial en una etapa. Un historial vacío, o uno que
// terminó (sugerencia de doctores, emergencia o cierre), arranca de nuevo en
// recolección de síntomas con el siguiente mensaje.
func (ConversationTracker) StageOf(history []domain.ConversationTurn) Stage {
	last, ok := lastAssistantTurn(history)
	if !ok {
		return StageCollecting
	}

	switch last.Tag {
	case domain.TagDoctorSuggestion, domain.TagEmergency:
		return StageDone
	}
	if last.Text == closeOutReply {
		return StageDone
	}

	lower := strings.ToLower(last.Text)
	if containsAny(lower, diagnosisMarkers) || strings.Contains(lower, strings.ToLower(recommendationOffer)) {
		return StageAwaitingConsent
	}
	if countFollowUps(history) >= 2 {
		return StageDiagnosisReady
	}
	if strings.Contains(last.Text, "?") {
		return StageClarifying
	}
	return StageCollecting
}

// IsAffirmative indica si la respuesta del usuario acepta la recomendación.
// Compara palabras completas para que "ok" no matchee dentro de "broke".
func (ConversationTracker) IsAffirmative(message string) bool {
	for _, word := range strings.FieldsFunc(strings.ToLower(message), func(r rune) bool {
		return !('a' <= r && r <= 'z')
	}) {
		if _, ok := affirmativeKeywords[word]; ok {
			return true
		}
	}
	return false
}

// DiagnosisHint extrae el fragmento de diagnóstico del último turno del
// asistente que contenga un marcador: lo que sigue al marcador hasta el fin
// de la oración, en minúsculas.
func (ConversationTracker) DiagnosisHint(history []domain.ConversationTurn) string {
	for i := len(history) - 1; i >= 0; i-- {
		t := history[i]
		if t.Sender != domain.SenderAssistant {
			continue
		}
		lower := strings.ToLower(t.Text)
		for _, marker := range diagnosisMarkers {
			idx := strings.Index(lower, marker)
			if idx < 0 {
				continue
			}
			rest := lower[idx+len(marker):]
			if end := strings.IndexAny(rest, ".!?\n"); end >= 0 {
				rest = rest[:end]
			}
			return strings.TrimSpace(strings.TrimLeft(rest, " ,:"))
		}
	}
	return ""
}

// BuildPrompt arma los mensajes para el LLM: system prompt según la etapa,
// historial completo con roles mapeados y el mensaje entrante al final.
func (ConversationTracker) BuildPrompt(stage Stage, history []domain.ConversationTurn, message string) []llm.Message {
	system := systemPrompt
	if stage == StageDiagnosisReady {
		system = diagnosisSystemPrompt
	}

	msgs := make([]llm.Message, 0, len(history)+2)
	msgs = append(msgs, llm.Message{Role: llm.RoleSystem, Content: system})
	for _, t := range history {
		msgs = append(msgs, llm.Message{Role: roleFor(t.Sender), Content: t.Text})
	}
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: message})
	return msgs
}

// ClassifyReply decide la etapa resultante a partir de la respuesta del LLM:
// marcador de diagnóstico pasa a esperar consentimiento, una pregunta sigue
// clarificando, cualquier otra cosa vuelve a recolección.
func (ConversationTracker) ClassifyReply(reply string) Stage {
	if containsAny(reply, diagnosisMarkers) {
		return StageAwaitingConsent
	}
	if strings.Contains(reply, "?") {
		return StageClarifying
	}
	return StageCollecting
}

func countFollowUps(history []domain.ConversationTurn) int {
	count := 0
	for _, t := range history {
		if t.Sender == domain.SenderAssistant && containsAny(t.Text, followUpPhrases) {
			count++
		}
	}
	return count
}

func lastAssistantTurn(history []domain.ConversationTurn) (domain.ConversationTurn, bool) {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Sender == domain.SenderAssistant {
			return history[i], true
		}
	}
	return domain.ConversationTurn{}, false
}

func roleFor(s domain.Sender) string {
	if s == domain.SenderUser {
		return llm.RoleUser
	}
	return llm.RoleAssistant
}
