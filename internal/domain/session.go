package domain

import "time"

// SessionInfo resume una sesión de chat para el listado de sesiones.
// CreatedAt corresponde al primer turno persistido con ese id.
type SessionInfo struct {
	SessionID string    `json:"sessionId"`
	CreatedAt time.Time `json:"createdAt"`
}
