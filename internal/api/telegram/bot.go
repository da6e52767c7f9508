package telegram

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"laser-trainer/internal/domain/entity"
	"laser-trainer/internal/domain/port"
	"laser-trainer/internal/infrastructure/logging"
)

const shotQueue = 32

const (
	msgStart = `👋 Привет! Я бот лазерного тира.

🎯 Я присылаю результат каждого выстрела по мишени.

📋 Команды:
/status — текущий счёт
/help — справка`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Наведите лазер на мишень и нажмите на спуск
2️⃣ Бот пришлёт номер кольца или промах
3️⃣ /status покажет сумму очков за сессию

📋 Команды:
/status — текущий счёт`

	msgUnknownCommand = "❓ Неизвестная команда. Используйте /help для справки."
	msgNoShots        = "🎯 Выстрелов пока не было."
)

// sender часть BotAPI для отправки сообщений
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot представляет Telegram-бота: отвечает на команды и сообщает о выстрелах в чат
type Bot struct {
	api    *tgbotapi.BotAPI
	send   sender
	store  port.SnapshotStore
	chatID int64
	shots  chan entity.ShotEvent
	logger *zap.Logger
}

// NewBot создаёт нового бота
func NewBot(token string, chatID int64, store port.SnapshotStore, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	logger = logging.OrNop(logger)
	logger.Info("telegram authorized", zap.String("account", api.Self.UserName))

	b := newBot(api, store, chatID, logger)
	b.api = api
	return b, nil
}

func newBot(s sender, store port.SnapshotStore, chatID int64, logger *zap.Logger) *Bot {
	return &Bot{
		send:   s,
		store:  store,
		chatID: chatID,
		shots:  make(chan entity.ShotEvent, shotQueue),
		logger: logging.OrNop(logger),
	}
}

// PublishShot ставит выстрел в очередь на отправку. Цикл обработки кадров не ждёт сеть.
func (b *Bot) PublishShot(ctx context.Context, shot entity.ShotEvent) error {
	if b.chatID == 0 {
		return nil
	}
	select {
	case b.shots <- shot:
	default:
		b.logger.Warn("telegram shot queue full, dropping", zap.Int("number", shot.Number))
	}
	return nil
}

// Run запускает обработку команд и отправку выстрелов до отмены ctx
func (b *Bot) Run(ctx context.Context) error {
	var updates tgbotapi.UpdatesChannel
	if b.api != nil {
		u := tgbotapi.NewUpdate(0)
		u.Timeout = 60
		updates = b.api.GetUpdatesChan(u)
		defer b.api.StopReceivingUpdates()
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case shot := <-b.shots:
			b.sendMessage(b.chatID, FormatShot(shot))

		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	if !msg.IsCommand() {
		b.sendMessage(msg.Chat.ID, msgHelp)
		return
	}
	b.sendMessage(msg.Chat.ID, b.reply(msg.Command()))
}

// reply текст ответа на команду
func (b *Bot) reply(command string) string {
	switch command {
	case "start":
		return msgStart
	case "help":
		return msgHelp
	case "status":
		return FormatStatus(b.store.Latest())
	default:
		return msgUnknownCommand
	}
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.send.Send(msg); err != nil {
		b.logger.Warn("telegram send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// FormatShot текст уведомления о выстреле
func FormatShot(shot entity.ShotEvent) string {
	result := fmt.Sprintf("🎯 Кольцо %d", shot.Score)
	if shot.Miss {
		result = "❌ Промах"
	}
	return fmt.Sprintf("Выстрел #%d: %s\n📍 (%.0f, %.0f)\nСумма: %d",
		shot.Number, result, shot.Position.X, shot.Position.Y, shot.TotalScore)
}

// FormatStatus текст текущего состояния сессии
func FormatStatus(s entity.Snapshot) string {
	if s.Shots == 0 {
		return msgNoShots
	}
	last := "промах"
	if !s.LastScore.IsMiss() {
		last = fmt.Sprintf("кольцо %d", s.LastScore.Value())
	}
	return fmt.Sprintf("📊 Выстрелов: %d\nСумма: %d\nПоследний: %s, %s назад",
		s.Shots, s.TotalScore, last, time.Since(s.LastHitAt).Truncate(time.Second))
}

// Проверка реализации интерфейса
var _ port.ShotPublisher = (*Bot)(nil)
