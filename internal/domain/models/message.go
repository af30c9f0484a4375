package models

// Sender identifies which side of the decoy conversation authored a message.
type Sender string

const (
	SenderScammer Sender = "scammer"
	SenderUser    Sender = "user"
)

// Message is one inbound or historical message in a conversation.
type Message struct {
	Sender    Sender `json:"sender"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// Metadata carries optional channel hints supplied by the transport layer.
type Metadata struct {
	Channel  string `json:"channel,omitempty"`
	Language string `json:"language,omitempty"`
	Locale   string `json:"locale,omitempty"`
}
