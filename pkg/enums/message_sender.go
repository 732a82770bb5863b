package enums

import "fmt"

// MessageSender identifies who authored a conversation message.
type MessageSender string

const (
	MessageSenderSystem MessageSender = "system"
	MessageSenderAI     MessageSender = "ai"
	MessageSenderUser   MessageSender = "user"
)

var validMessageSenders = []MessageSender{
	MessageSenderSystem,
	MessageSenderAI,
	MessageSenderUser,
}

// String implements fmt.Stringer.
func (s MessageSender) String() string {
	return string(s)
}

// IsValid reports whether the value matches a known MessageSender.
func (s MessageSender) IsValid() bool {
	for _, candidate := range validMessageSenders {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseMessageSender converts raw input into a MessageSender.
func ParseMessageSender(value string) (MessageSender, error) {
	for _, candidate := range validMessageSenders {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid message sender %q", value)
}
