package view

type FlashKind string

const (
	FlashInfo    FlashKind = "info"
	FlashSuccess FlashKind = "success"
	FlashWarning FlashKind = "warning"
	FlashError   FlashKind = "error"
)

// FlashAction is an optional follow-up the toast offers (e.g. Undo).
// Method "POST" renders as a one-button form, anything else as a link.
type FlashAction struct {
	Label  string `json:"label"`
	URL    string `json:"url"`
	Method string `json:"method,omitempty"`
}

type Flash struct {
	Kind    FlashKind    `json:"kind"`
	Title   string       `json:"title,omitempty"`
	Message string       `json:"message"`
	Action  *FlashAction `json:"action,omitempty"`
}
