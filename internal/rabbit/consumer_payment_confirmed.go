package rabbit

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"delivery-track/internal/repository"
	"delivery-track/internal/service"
)

// PaymentConfirmedConsumer marca pedidos como pagos quando o gateway de
// pagamento publica a confirmação.
type PaymentConfirmedConsumer struct {
	Service *service.OrderService
}

func NewPaymentConfirmedConsumer(s *service.OrderService) *PaymentConfirmedConsumer {
	return &PaymentConfirmedConsumer{Service: s}
}

type PaymentConfirmedMessage struct {
	OrderID string `json:"orderId"`
}

func (c *PaymentConfirmedConsumer) Handle(msg []byte) error {
	log.Println("[Rabbit] Evento recebido: payment.confirmed")

	var event PaymentConfirmedMessage
	if err := json.Unmarshal(msg, &event); err != nil {
		log.Println("Erro ao interpretar mensagem:", err)
		return err
	}
	if event.OrderID == "" {
		log.Println("Mensagem de pagamento sem orderId, descartada")
		return nil
	}

	err := c.Service.ConfirmPayment(context.Background(), event.OrderID)
	if err != nil {
		// Pedido inexistente não é motivo para reprocessar a mensagem
		if errors.Is(err, repository.ErrNotFound) {
			log.Println("Pagamento confirmado para pedido desconhecido:", event.OrderID)
			return nil
		}
		log.Println("Erro ao confirmar pagamento:", err)
		return err
	}

	log.Println("Pagamento confirmado para pedido:", event.OrderID)
	return nil
}
