package mqtt

import (
	"errors"
	"testing"

	"github.com/benmeehan/trailmap/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMqttService_Initialize_MissingCACertificate(t *testing.T) {
	fileClient := new(mocks.MockFileOperations)
	fileClient.On("ReadFileRaw", "/etc/trailmap/ca.pem").Return(nil, errors.New("no such file"))

	service := NewMqttService(fileClient)
	err := service.Initialize(Options{
		Broker:        "ssl://broker.local:8883",
		ClientID:      "trailmap-test",
		CACertificate: "/etc/trailmap/ca.pem",
	})

	assert.ErrorContains(t, err, "failed to read CA certificate")
	fileClient.AssertExpectations(t)
}

func TestMqttService_Initialize_InvalidCACertificate(t *testing.T) {
	fileClient := new(mocks.MockFileOperations)
	fileClient.On("ReadFileRaw", "ca.pem").Return([]byte("not a certificate"), nil)

	service := NewMqttService(fileClient)
	err := service.Initialize(Options{Broker: "ssl://broker.local:8883", ClientID: "trailmap-test", CACertificate: "ca.pem"})

	assert.EqualError(t, err, "failed to append CA certificate")
}

func TestMqttService_PublishDelegates(t *testing.T) {
	client := new(mocks.MockMQTTClient)
	token := new(mocks.MockToken)
	client.On("Publish", "trailmap/rendered", byte(1), false, mock.Anything).Return(token)
	client.On("Disconnect", uint(250)).Return()

	service := &MqttService{client: client}
	assert.Equal(t, token, service.Publish("trailmap/rendered", 1, false, []byte("{}")))
	service.Disconnect(250)

	client.AssertExpectations(t)
}

func TestMqttService_DisconnectWithoutClient(t *testing.T) {
	service := NewMqttService(nil)
	assert.NotPanics(t, func() { service.Disconnect(250) })
}
