package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"laser-trainer/internal/domain/entity"
	"laser-trainer/internal/domain/port"
	"laser-trainer/internal/infrastructure/logging"
)

const connectTimeout = 5 * time.Second

// Options параметры подключения к брокеру
type Options struct {
	Broker   string // host:port
	Topic    string
	ClientID string
	QoS      byte
}

// MQTTPublisher публикует выстрелы в MQTT
type MQTTPublisher struct {
	client mqtt.Client
	topic  string
	qos    byte
	logger *zap.Logger

	mu        sync.RWMutex
	published uint64
	errors    uint64
}

// Connect подключается к брокеру с автоматическим переподключением
func Connect(ctx context.Context, opts Options, logger *zap.Logger) (*MQTTPublisher, error) {
	logger = logging.OrNop(logger)

	co := mqtt.NewClientOptions()
	co.AddBroker(fmt.Sprintf("tcp://%s", opts.Broker))
	co.SetClientID(opts.ClientID)
	co.SetAutoReconnect(true)
	co.SetConnectRetryInterval(2 * time.Second)
	co.SetMaxReconnectInterval(30 * time.Second)
	co.OnConnect = func(mqtt.Client) {
		logger.Info("mqtt connection established", zap.String("broker", opts.Broker), zap.String("client_id", opts.ClientID))
	}
	co.OnConnectionLost = func(_ mqtt.Client, err error) {
		logger.Warn("mqtt connection lost, will auto-reconnect", zap.String("broker", opts.Broker), zap.Error(err))
	}

	client := mqtt.NewClient(co)
	token := client.Connect()

	select {
	case <-token.Done():
	case <-time.After(connectTimeout):
		return nil, fmt.Errorf("mqtt connection timeout")
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connection failed: %w", err)
	}
	return newPublisher(client, opts.Topic, opts.QoS, logger), nil
}

func newPublisher(client mqtt.Client, topic string, qos byte, logger *zap.Logger) *MQTTPublisher {
	return &MQTTPublisher{client: client, topic: topic, qos: qos, logger: logging.OrNop(logger)}
}

// PublishShot отправляет событие и не ждёт подтверждения брокера.
// Результат доставки только логируется.
func (p *MQTTPublisher) PublishShot(ctx context.Context, shot entity.ShotEvent) error {
	_ = ctx
	payload, err := json.Marshal(shot)
	if err != nil {
		return fmt.Errorf("marshal shot: %w", err)
	}

	token := p.client.Publish(p.topic, p.qos, false, payload)
	go func() {
		<-token.Done()
		p.mu.Lock()
		defer p.mu.Unlock()
		if err := token.Error(); err != nil {
			p.errors++
			p.logger.Warn("mqtt publish failed", zap.String("topic", p.topic), zap.Error(err))
			return
		}
		p.published++
	}()
	return nil
}

// Stats возвращает количество опубликованных и неудачных сообщений
func (p *MQTTPublisher) Stats() (published, failed uint64) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.published, p.errors
}

// Close отключается от брокера
func (p *MQTTPublisher) Close() error {
	p.client.Disconnect(250)
	return nil
}

// Проверка реализации интерфейса
var _ port.ShotPublisher = (*MQTTPublisher)(nil)
