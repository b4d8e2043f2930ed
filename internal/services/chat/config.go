// File: internal/services/chat/config.go
package chat

import "fmt"

type Config struct {
	ConversationPageSize int // default page size when listing conversations
	MessagePageSize      int // default page size when listing messages
	TitleMaxRunes        int // derived titles longer than this are cut and suffixed
}

func (c *Config) Validate() error {
	if c.ConversationPageSize <= 0 {
		return fmt.Errorf("conversation_page_size must be positive")
	}
	if c.MessagePageSize <= 0 {
		return fmt.Errorf("message_page_size must be positive")
	}
	if c.TitleMaxRunes <= 0 {
		return fmt.Errorf("title_max_runes must be positive")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		ConversationPageSize: 20,
		MessagePageSize:      50,
		TitleMaxRunes:        50,
	}
}
