package llm

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single turn in a conversation (role + content).
type Message struct {
	Role    string
	Content string
}

// ChatRequest is the input for a non-streaming completion.
type ChatRequest struct {
	// Model overrides the provider default when non-empty.
	Model       string
	Messages    []Message
	Temperature float32
	MaxTokens   int
}

// UserPrompt builds a request holding a single user message.
func UserPrompt(prompt string) ChatRequest {
	return ChatRequest{Messages: []Message{{Role: RoleUser, Content: prompt}}}
}

// ChatResponse is the output from a non-streaming completion.
type ChatResponse struct {
	Content    string // Raw model text, untouched.
	Model      string // Model that produced Content.
	StopReason string
	Tokens     int // Total tokens consumed (prompt + completion), 0 if unknown.
}

// ModelMeta describes the model / provider identity.
type ModelMeta struct {
	ID       string // e.g. "gemini-2.0-flash", "llama3.2:3b"
	Provider string // e.g. "gemini", "ollama"
}
