package domain

import "time"

// Sender identifica quién escribió un turno.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// TurnTag clasifica el contenido de un turno del asistente.
type TurnTag string

const (
	TagNormal           TurnTag = "text"
	TagDoctorSuggestion TurnTag = "doctor-suggestion"
	TagEmergency        TurnTag = "emergency"
)

// ConversationTurn es un mensaje inmutable dentro de una sesión.
// Los turnos solo se agregan al final; nunca se editan ni se borran.
type ConversationTurn struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Tag       TurnTag   `json:"tag"`
	CreatedAt time.Time `json:"created_at"`
}
