package events

import "errors"

var (
	// ErrConnect не удалось подключиться к брокеру или объявить exchange
	ErrConnect = errors.New("events publisher: failed to connect to broker")

	// ErrMarshal не удалось сериализовать событие
	ErrMarshal = errors.New("events publisher: failed to marshal event")

	// ErrPublish брокер не принял сообщение
	ErrPublish = errors.New("events publisher: failed to publish event")
)
