// Package notification carries user-facing notices produced by store operations.
package notification

// Notice is a short toast-style message surfaced to the caller alongside a result.
type Notice struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// New builds a notice.
func New(title, description string) *Notice {
	return &Notice{Title: title, Description: description}
}
