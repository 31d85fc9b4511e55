package service

import (
	"context"
	"sort"
	"time"

	"delivery-track/internal/dto"
	"delivery-track/internal/model"
)

// ReportService agrega os números de venda exibidos no painel e no
// relatório diário imprimível.
type ReportService struct {
	orderRepo   OrderRepository
	clientRepo  ClientRepository
	productRepo ProductRepository
}

func NewReportService(orderRepo OrderRepository, clientRepo ClientRepository, productRepo ProductRepository) *ReportService {
	return &ReportService{
		orderRepo:   orderRepo,
		clientRepo:  clientRepo,
		productRepo: productRepo,
	}
}

// Daily resume as vendas do dia civil de `day`: faturamento, quantidade de
// pedidos e itens, e o ranking de produtos por quantidade vendida.
func (s *ReportService) Daily(ctx context.Context, day time.Time) (*dto.DailyReport, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	orders, _, err := s.orderRepo.FindByDay(ctx, start, end, 0, 0)
	if err != nil {
		return nil, err
	}

	names, err := s.productNames(ctx)
	if err != nil {
		return nil, err
	}

	report := &dto.DailyReport{
		Date:     start.Format("2006-01-02"),
		Products: []dto.ProductSales{},
	}
	report.OrderCount = len(orders)

	sales := map[string]*dto.ProductSales{}
	for _, order := range orders {
		report.Revenue += order.TotalPrice
		for _, item := range order.Items {
			report.ItemCount += item.Quantity

			entry, ok := sales[item.ProductID]
			if !ok {
				entry = &dto.ProductSales{
					ProductID: item.ProductID,
					Name:      productName(names, item.ProductID),
				}
				sales[item.ProductID] = entry
			}
			entry.Quantity += item.Quantity
			entry.Revenue += item.Price
		}
	}

	report.Products = rankSales(sales, 0)
	return report, nil
}

// Summary devolve os totais históricos do painel: faturamento, contagens,
// os cinco pedidos mais recentes e os três produtos mais vendidos.
func (s *ReportService) Summary(ctx context.Context) (*dto.SummaryReport, error) {
	orders, err := s.orderRepo.FindAll(ctx, "")
	if err != nil {
		return nil, err
	}
	clients, err := s.clientRepo.FindAll(ctx, "")
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.FindAll(ctx, "")
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID.Hex()] = p.Name
	}

	report := &dto.SummaryReport{
		TotalOrders:   len(orders),
		TotalClients:  len(clients),
		TotalProducts: len(products),
		RecentOrders:  []model.Order{},
	}

	sales := map[string]*dto.ProductSales{}
	for _, order := range orders {
		report.TotalRevenue += order.TotalPrice
		for _, item := range order.Items {
			entry, ok := sales[item.ProductID]
			if !ok {
				entry = &dto.ProductSales{
					ProductID: item.ProductID,
					Name:      productName(names, item.ProductID),
				}
				sales[item.ProductID] = entry
			}
			entry.Quantity += item.Quantity
			entry.Revenue += item.Price
		}
	}

	// FindAll já devolve do mais recente para o mais antigo
	recent := orders
	if len(recent) > 5 {
		recent = recent[:5]
	}
	report.RecentOrders = recent

	report.TopProducts = rankSales(sales, 3)
	return report, nil
}

func (s *ReportService) productNames(ctx context.Context) (map[string]string, error) {
	products, err := s.productRepo.FindAll(ctx, "")
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID.Hex()] = p.Name
	}
	return names, nil
}

func productName(names map[string]string, id string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return "Produto desconhecido"
}

// rankSales ordena por quantidade vendida, desempatando pelo nome para a
// saída ser estável. limit <= 0 devolve o ranking completo.
func rankSales(sales map[string]*dto.ProductSales, limit int) []dto.ProductSales {
	ranked := make([]dto.ProductSales, 0, len(sales))
	for _, entry := range sales {
		ranked = append(ranked, *entry)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Quantity != ranked[j].Quantity {
			return ranked[i].Quantity > ranked[j].Quantity
		}
		return ranked[i].Name < ranked[j].Name
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
