package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"delivery-track/internal/model"
	"delivery-track/internal/repository"
)

// Recibo em texto plano para impressora térmica de 80mm (32 colunas).
const receiptWidth = 32

var receiptTmpl = template.Must(template.New("receipt").Parse(`{{.Header}}
Cliente: {{.ClientName}}
{{if .ClientAddress}}Endereço: {{.ClientAddress}}
{{end}}{{if .ClientPhone}}Telefone: {{.ClientPhone}}
{{end}}Data: {{.Date}}
Pedido ID: {{.OrderID}}
{{.Divider}}
{{range .Lines}}{{.}}
{{end}}{{.Divider}}
{{.TotalLine}}
{{if .PaymentMethod}}Método de pagamento: {{.PaymentMethod}}
{{end}}Status: {{.PaymentStatus}}

Obrigado pela preferência!
--------------------
`))

type receiptData struct {
	Header        string
	ClientName    string
	ClientAddress string
	ClientPhone   string
	Date          string
	OrderID       string
	Divider       string
	Lines         []string
	TotalLine     string
	PaymentMethod model.PaymentMethod
	PaymentStatus model.PaymentStatus
}

// Receipt monta o recibo imprimível de um pedido. Produtos removidos do
// catálogo aparecem como "Produto desconhecido"; o preço gravado na linha
// permanece o da época do pedido.
func (s *OrderService) Receipt(ctx context.Context, orderID string) (string, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return "", err
	}

	clientName := "Cliente não encontrado"
	clientAddress := ""
	clientPhone := ""
	if client, err := s.clientRepo.FindByID(ctx, order.ClientID); err == nil {
		clientName = client.Name
		clientAddress = client.Address
		clientPhone = client.Phone
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}

	// Cabeçalho com o nome da conta dona do pedido
	header := "*** Delivery Track ***"
	if order.UserID != "" {
		if user, err := s.userRepo.FindByID(ctx, order.UserID); err == nil {
			header = fmt.Sprintf("*** %s ***", user.Name)
		}
	}

	lines := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		name := "Produto desconhecido"
		if product, err := s.productRepo.FindByID(ctx, item.ProductID); err == nil {
			name = product.Name
		}
		lines = append(lines, receiptLine(fmt.Sprintf("%dx %s", item.Quantity, name), item.Price))
	}

	data := receiptData{
		Header:        header,
		ClientName:    clientName,
		ClientAddress: clientAddress,
		ClientPhone:   clientPhone,
		Date:          order.CreatedAt.Format("02/01/2006 15:04"),
		OrderID:       order.ID.Hex(),
		Divider:       strings.Repeat("-", receiptWidth),
		Lines:         lines,
		TotalLine:     receiptLine("Total:", order.TotalPrice),
		PaymentMethod: order.PaymentMethod,
		PaymentStatus: order.PaymentStatus,
	}

	var buf strings.Builder
	if err := receiptTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("falha ao montar recibo: %w", err)
	}
	return buf.String(), nil
}

// receiptLine alinha a descrição à esquerda e o valor à direita.
func receiptLine(label string, value float64) string {
	amount := fmt.Sprintf("R$ %.2f", value)
	pad := receiptWidth - len([]rune(label)) - len(amount)
	if pad < 1 {
		pad = 1
	}
	return label + strings.Repeat(" ", pad) + amount
}
