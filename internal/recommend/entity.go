package recommend

// Role tags a transcript turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "ai"
)

// Turn is one entry in the chat transcript.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}
