package entities

// ChatRole identifies the author of a chat message
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one entry in a session's conversation transcript
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}
