package llm

import "context"

// MockClient permite tests sin llamar a un LLM real.
type MockClient struct {
	Response     string
	Err          error
	Calls        int
	LastMessages []Message
}

func (m *MockClient) Generate(_ context.Context, messages []Message) (string, error) {
	m.Calls++
	m.LastMessages = messages
	return m.Response, m.Err
}
