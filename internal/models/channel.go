package models

import "fmt"

// Channel - канал связи пользователя (закрытый набор).
// Строковое значение используется в URL, в ответах API и в ключах OTP-хранилища.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelDiia  Channel = "diia"
	ChannelInbox Channel = "inbox"
)

func (c Channel) String() string {
	return string(c)
}

// IsValid проверяет, что значение входит в закрытый набор каналов.
func (c Channel) IsValid() bool {
	switch c {
	case ChannelEmail, ChannelDiia, ChannelInbox:
		return true
	}
	return false
}

// ParseChannel преобразует строку из пути запроса в Channel.
func ParseChannel(value string) (Channel, error) {
	c := Channel(value)
	if !c.IsValid() {
		return "", fmt.Errorf("unknown channel: %q", value)
	}
	return c, nil
}
