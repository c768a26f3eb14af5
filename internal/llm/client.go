package llm

import "context"

// Roles de mensaje estilo chat-completions.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message es un mensaje de chat con rol y contenido.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client define la interfaz para generar respuestas con un LLM.
// La capacidad es una caja negra: contexto adentro, texto afuera, puede fallar.
type Client interface {
	Generate(ctx context.Context, messages []Message) (string, error)
}
