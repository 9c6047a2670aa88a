package credential

import (
	"encoding/json"

	"credchain/src/logger"
	"credchain/src/queues"

	amqp "github.com/rabbitmq/amqp091-go"
)

// MintStatusHandler decodes mint confirmations from the status queue and
// applies them through the same transition the internal HTTP endpoint uses.
func MintStatusHandler(service *Service) func(amqp.Delivery) {
	log := logger.Default()
	return func(d amqp.Delivery) {
		var msg queues.MintStatusMessage
		if err := json.Unmarshal(d.Body, &msg); err != nil {
			log.Error(err, "Discarding malformed mint status message")
			return
		}

		if err := service.UpdateStatus(msg.Uuid, msg.TransactionHash, msg.Status); err != nil {
			log.Errorf(err, "Failed to apply mint status for credential %s", msg.Uuid)
			return
		}
		log.Infof("Credential %s marked %s from queue", msg.Uuid, msg.Status)
	}
}
