package mocks

import (
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/mock"
)

// MockMQTTClient records publishes made through pkg/mqtt.MQTTClient.
type MockMQTTClient struct {
	mock.Mock
	Payloads [][]byte
}

// ExpectPublish accepts one publish on topic, keeps its payload and completes with err.
func (m *MockMQTTClient) ExpectPublish(topic string, qos byte, retained bool, err error) *MockToken {
	token := NewFinishedToken(err)
	m.On("Publish", topic, qos, retained, mock.Anything).Return(token).Once()
	return token
}

func (m *MockMQTTClient) Connect() mqtt.Token {
	return m.Called().Get(0).(mqtt.Token)
}

func (m *MockMQTTClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	if b, ok := payload.([]byte); ok {
		m.Payloads = append(m.Payloads, b)
	}
	return m.Called(topic, qos, retained, payload).Get(0).(mqtt.Token)
}

func (m *MockMQTTClient) Disconnect(quiesce uint) {
	m.Called(quiesce)
}
