// setup.go
package rabbit

import (
	"log"

	"delivery-track/internal/service"

	"github.com/rabbitmq/amqp091-go"
)

func SetupConsumers(ch *amqp091.Channel, svc *service.OrderService) {
	consumer := NewPaymentConfirmedConsumer(svc)

	// 1. Declarar a queue
	q, err := ch.QueueDeclare(
		"delivery_track_payments", // fila exclusiva deste serviço
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Println("Erro ao declarar queue:", err)
		return
	}

	// 2. Bind no exchange topic pela chave de pagamento
	err = ch.QueueBind(
		q.Name,
		"payment.confirmed",
		Exchange,
		false,
		nil,
	)
	if err != nil {
		log.Println("Erro no binding do exchange:", err)
		return
	}

	// 3. Consumir
	msgs, err := ch.Consume(
		q.Name,
		"",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Println("Erro ao consumir queue:", err)
		return
	}

	go func() {
		for m := range msgs {
			consumer.Handle(m.Body)
		}
	}()

	log.Println("Inscrito em payment.confirmed no exchange", Exchange)
}
