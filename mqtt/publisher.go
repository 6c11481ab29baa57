package mqtt

import (
	"FocusLock/interfaces"
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

const publishTimeout = 5 * time.Second

// LockStateTopic is where the agent of a device listens for lock state.
func LockStateTopic(deviceID uint) string {
	return fmt.Sprintf("focuslock/devices/%d/lock_state", deviceID)
}

var connectHandler paho.OnConnectHandler = func(client paho.Client) {
	log.Info().Msg("[MQTT] connected to broker")
}

var connectLostHandler paho.ConnectionLostHandler = func(client paho.Client, err error) {
	log.Warn().Err(err).Msg("[MQTT] connection lost")
}

// Publisher sends lock state updates as retained messages, so an agent
// that reconnects gets the latest state at once.
type Publisher struct {
	client paho.Client
}

// NewPublisher connects to the broker.
func NewPublisher(brokerURL, clientID string) (*Publisher, error) {
	opts := paho.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := paho.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	log.Info().Str("broker", brokerURL).Msg("[MQTT] publisher initialized")
	return NewPublisherWithClient(client), nil
}

func NewPublisherWithClient(client paho.Client) *Publisher {
	return &Publisher{client: client}
}

func (p *Publisher) NotifyLockState(update interfaces.LockStateUpdate) error {
	payload, err := json.Marshal(update)
	if err != nil {
		return err
	}

	topic := LockStateTopic(update.DeviceID)
	token := p.client.Publish(topic, 1, true, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish to %s timed out", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}

func (p *Publisher) Close() {
	p.client.Disconnect(250)
	log.Info().Msg("[MQTT] publisher disconnected")
}
