package service

import (
	"strings"
	"testing"

	"doctor-ai/internal/domain"
	"doctor-ai/internal/llm"
)

func userTurn(text string) domain.ConversationTurn {
	return domain.ConversationTurn{Sender: domain.SenderUser, Text: text, Tag: domain.TagNormal}
}

func assistantTurn(text string, tag domain.TurnTag) domain.ConversationTurn {
	return domain.ConversationTurn{Sender: domain.SenderAssistant, Text: text, Tag: tag}
}

func TestStageOfEmptyHistory(t *testing.T) {
	var tracker ConversationTracker
	if got := tracker.StageOf(nil); got != StageCollecting {
		t.Fatalf("expected collecting for empty history, got %s", got)
	}
}

func TestIsEmergencyFromMessageInAnyStage(t *testing.T) {
	var tracker ConversationTracker
	histories := [][]domain.ConversationTurn{
		nil,
		{userTurn("hello"), assistantTurn("How long have you had the fever?", domain.TagNormal)},
		{userTurn("hi"), assistantTurn("Based on your symptoms, you may be experiencing flu. Would you like me to recommend a specialized doctor?", domain.TagNormal)},
	}
	for i, h := range histories {
		if !tracker.IsEmergency("I have severe chest pain", h) {
			t.Fatalf("case %d: expected emergency detection", i)
		}
	}
	if tracker.IsEmergency("my throat hurts a little", nil) {
		t.Fatalf("expected no emergency for benign message")
	}
}

func TestIsEmergencyFromPriorDiagnosisContext(t *testing.T) {
	var tracker ConversationTracker
	history := []domain.ConversationTurn{
		userTurn("my chest feels tight"),
		assistantTurn("This sounds like it could be chest pain related to your heart.", domain.TagNormal),
	}
	if !tracker.IsEmergency("what should i do", history) {
		t.Fatalf("expected emergency from prior assistant context")
	}
}

func TestStageOfAwaitingConsent(t *testing.T) {
	var tracker ConversationTracker
	history := []domain.ConversationTurn{
		userTurn("i have a fever and a cough"),
		assistantTurn("Based on your symptoms, you may be experiencing flu. Would you like me to recommend a specialized doctor?", domain.TagNormal),
	}
	if got := tracker.StageOf(history); got != StageAwaitingConsent {
		t.Fatalf("expected awaiting consent, got %s", got)
	}
}

func TestStageOfClarifying(t *testing.T) {
	var tracker ConversationTracker
	history := []domain.ConversationTurn{
		userTurn("i feel sick"),
		assistantTurn("How long have you been feeling this way?", domain.TagNormal),
	}
	if got := tracker.StageOf(history); got != StageClarifying {
		t.Fatalf("expected clarifying, got %s", got)
	}
}

func TestStageOfDiagnosisReadyAfterTwoFollowUps(t *testing.T) {
	var tracker ConversationTracker
	history := []domain.ConversationTurn{
		userTurn("i feel sick"),
		assistantTurn("How long have you been feeling this way?", domain.TagNormal),
		userTurn("about three days"),
		assistantTurn("Are you experiencing any other symptoms?", domain.TagNormal),
	}
	if got := tracker.StageOf(history); got != StageDiagnosisReady {
		t.Fatalf("expected diagnosis ready after two follow-ups, got %s", got)
	}
}

func TestStageOfDoneAfterSuggestionOrCloseOut(t *testing.T) {
	var tracker ConversationTracker

	suggested := []domain.ConversationTurn{
		userTurn("yes"),
		assistantTurn("Here are the nearest doctors specialized for your condition:\n1. Dr. A", domain.TagDoctorSuggestion),
	}
	if got := tracker.StageOf(suggested); got != StageDone {
		t.Fatalf("expected done after suggestion, got %s", got)
	}

	closed := []domain.ConversationTurn{
		userTurn("no thanks"),
		assistantTurn(closeOutReply, domain.TagNormal),
	}
	if got := tracker.StageOf(closed); got != StageDone {
		t.Fatalf("expected done after close-out, got %s", got)
	}
}

func TestIsAffirmative(t *testing.T) {
	var tracker ConversationTracker
	cases := map[string]bool{
		"Yes, please":       true,
		"sure":              true,
		"OKAY":              true,
		"yep go ahead":      true,
		"no thanks":         false,
		"I broke my toe":    false, // "ok" no debe matchear dentro de "broke"
		"not really":        false,
		"maybe another day": false,
	}
	for msg, want := range cases {
		if got := tracker.IsAffirmative(msg); got != want {
			t.Fatalf("IsAffirmative(%q) = %v, want %v", msg, got, want)
		}
	}
}

func TestDiagnosisHintExtraction(t *testing.T) {
	var tracker ConversationTracker
	history := []domain.ConversationTurn{
		userTurn("i have a runny nose and fever"),
		assistantTurn("Based on your symptoms, you may be experiencing the flu. Would you like me to recommend a specialized doctor?", domain.TagNormal),
	}
	hint := tracker.DiagnosisHint(history)
	if !strings.Contains(hint, "flu") {
		t.Fatalf("expected hint containing flu, got %q", hint)
	}

	if hint := tracker.DiagnosisHint(nil); hint != "" {
		t.Fatalf("expected empty hint for empty history, got %q", hint)
	}
}

func TestBuildPromptFraming(t *testing.T) {
	var tracker ConversationTracker
	history := []domain.ConversationTurn{
		userTurn("i feel sick"),
		assistantTurn("How long have you been feeling this way?", domain.TagNormal),
	}

	msgs := tracker.BuildPrompt(StageCollecting, history, "three days")
	if len(msgs) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(msgs))
	}
	if msgs[0].Role != llm.RoleSystem || msgs[0].Content != systemPrompt {
		t.Fatalf("expected default system prompt first")
	}
	if msgs[1].Role != llm.RoleUser || msgs[2].Role != llm.RoleAssistant {
		t.Fatalf("expected history roles mapped, got %s %s", msgs[1].Role, msgs[2].Role)
	}
	if msgs[3].Role != llm.RoleUser || msgs[3].Content != "three days" {
		t.Fatalf("expected incoming message last")
	}

	diag := tracker.BuildPrompt(StageDiagnosisReady, history, "three days")
	if diag[0].Content != diagnosisSystemPrompt {
		t.Fatalf("expected diagnosis system prompt for diagnosis-ready stage")
	}
}

func TestClassifyReply(t *testing.T) {
	var tracker ConversationTracker
	cases := map[string]Stage{
		"Based on your symptoms, you may be experiencing flu.": StageAwaitingConsent,
		"How long have you had the cough?":                     StageClarifying,
		"Drink plenty of fluids and rest.":                     StageCollecting,
	}
	for reply, want := range cases {
		if got := tracker.ClassifyReply(reply); got != want {
			t.Fatalf("ClassifyReply(%q) = %s, want %s", reply, got, want)
		}
	}
}
