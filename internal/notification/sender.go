package notification

import (
	"context"
	"fmt"

	"settings_backend/internal/auth"
	"settings_backend/internal/models"
)

// TemplateChannelConfirmation - шаблон письма/сообщения с кодом подтверждения.
const TemplateChannelConfirmation = "channel-confirmation"

// Темы сообщений по каналам.
var subjects = map[models.Channel]string{
	models.ChannelEmail: "Підтвердження електронної пошти",
	models.ChannelDiia:  "Підтвердження каналу зв'язку реєстру",
	models.ChannelInbox: "Підтвердження каналу зв'язку",
}

// Message - уведомление с кодом подтверждения для одного получателя.
type Message struct {
	Channel     models.Channel
	Address     string
	RecipientID string // username получателя
	Realm       auth.Realm
	Template    string
	Parameters  map[string]string // {"verificationCode": "..."}
}

// Sender доставляет сообщение по каналу. Ошибка доставки пробрасывается
// вызывающему как есть; сохраненный challenge при этом остается валидным.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Dispatcher маршрутизирует сообщение к провайдеру своего канала.
type Dispatcher struct {
	providers map[models.Channel]Sender
}

func NewDispatcher(providers map[models.Channel]Sender) *Dispatcher {
	return &Dispatcher{providers: providers}
}

func (d *Dispatcher) Send(ctx context.Context, msg Message) error {
	provider, ok := d.providers[msg.Channel]
	if !ok {
		return fmt.Errorf("no notification provider for channel %q", msg.Channel)
	}
	return provider.Send(ctx, msg)
}

// SubjectFor возвращает тему сообщения для канала.
func SubjectFor(channel models.Channel) string {
	return subjects[channel]
}
