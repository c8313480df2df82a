package constant

const (
	// ChatFallbackReply is stored and returned when the model could not answer a turn.
	ChatFallbackReply = "I'm sorry, I encountered an error while processing your message. Please try again."

	// EventsAuditDurable is the JetStream consumer that writes the event audit log.
	EventsAuditDurable = "ai-summarizer-audit"
)
