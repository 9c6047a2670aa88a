package queues

import (
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// CredentialIssuedMessage announces a freshly persisted issuance to the
// minting pipeline and any downstream listeners.
type CredentialIssuedMessage struct {
	Uuid            string `json:"uuid"`
	UniversityId    int    `json:"university_id"`
	StudentId       string `json:"student_id"`
	NftAssetName    string `json:"nft_asset_name"`
	TransactionHash string `json:"transaction_hash,omitempty"`
	Status          string `json:"status"`
}

// MintStatusMessage is the confirmation the minting pipeline sends back once
// a transaction lands on chain.
type MintStatusMessage struct {
	Uuid            string `json:"uuid"`
	TransactionHash string `json:"transaction_hash"`
	Status          string `json:"status"`
}

type RabbitPublisher struct {
	Conn       *amqp.Connection
	Channel    *amqp.Channel
	Exchange   string
	Queue      string
	RoutingKey string
}

func NewRabbitPublisher(amqpURL, exchange, queue, routingKey string) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	// Exchange/queue setup (must match the minting pipeline)
	_ = ch.ExchangeDeclare(exchange, "direct", true, false, false, false, nil)
	_, _ = ch.QueueDeclare(queue, false, false, false, false, nil)
	_ = ch.QueueBind(queue, routingKey, exchange, false, nil)

	return &RabbitPublisher{
		Conn:       conn,
		Channel:    ch,
		Exchange:   exchange,
		Queue:      queue,
		RoutingKey: routingKey,
	}, nil
}

func (r *RabbitPublisher) PublishCredentialIssued(msg CredentialIssuedMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return r.Channel.Publish(
		r.Exchange,
		r.RoutingKey,
		false, false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
			DeliveryMode: amqp.Persistent,
		},
	)
}

func (r *RabbitPublisher) Close() {
	r.Channel.Close()
	r.Conn.Close()
}
