package service_test

import (
	"context"
	"testing"
	"time"

	"delivery-track/internal/model"
	"delivery-track/internal/repository"
	"delivery-track/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reportFixture struct {
	orders   *repository.MockOrderRepository
	clients  *repository.MockClientRepository
	products *repository.MockProductRepository
	service  *service.ReportService
}

func newReportFixture() *reportFixture {
	f := &reportFixture{
		orders:   repository.NewMockOrderRepository(),
		clients:  repository.NewMockClientRepository(),
		products: repository.NewMockProductRepository(),
	}
	f.service = service.NewReportService(f.orders, f.clients, f.products)
	return f
}

func TestDailyReportAggregatesDay(t *testing.T) {
	f := newReportFixture()
	ctx := context.Background()

	marmita := &model.Product{Name: "Marmita G", Description: "g", Price: 10}
	require.NoError(t, f.products.Create(ctx, marmita))
	suco := &model.Product{Name: "Suco", Description: "s", Price: 6}
	require.NoError(t, f.products.Create(ctx, suco))

	day := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

	orders := []*model.Order{
		{
			ClientID:   "c1",
			TotalPrice: 26,
			Items: []model.OrderItem{
				{ProductID: marmita.ID.Hex(), Quantity: 2, Price: 20},
				{ProductID: suco.ID.Hex(), Quantity: 1, Price: 6},
			},
			CreatedAt: day.Add(10 * time.Hour),
			UpdatedAt: day,
		},
		{
			ClientID:   "c2",
			TotalPrice: 10,
			Items: []model.OrderItem{
				{ProductID: marmita.ID.Hex(), Quantity: 1, Price: 10},
			},
			CreatedAt: day.Add(12 * time.Hour),
			UpdatedAt: day,
		},
		// Pedido de outro dia: fica de fora
		{
			ClientID:   "c3",
			TotalPrice: 99,
			Items: []model.OrderItem{
				{ProductID: suco.ID.Hex(), Quantity: 9, Price: 99},
			},
			CreatedAt: day.AddDate(0, 0, 1),
			UpdatedAt: day,
		},
	}
	for _, o := range orders {
		require.NoError(t, f.orders.Create(ctx, o))
	}

	report, err := f.service.Daily(ctx, day)
	require.NoError(t, err)

	assert.Equal(t, "2026-08-20", report.Date)
	assert.Equal(t, 36.0, report.Revenue)
	assert.Equal(t, 2, report.OrderCount)
	assert.Equal(t, 4, report.ItemCount)

	require.Len(t, report.Products, 2)
	assert.Equal(t, "Marmita G", report.Products[0].Name)
	assert.Equal(t, 3, report.Products[0].Quantity)
	assert.Equal(t, 30.0, report.Products[0].Revenue)
	assert.Equal(t, "Suco", report.Products[1].Name)
}

func TestDailyReportUnknownProductLabel(t *testing.T) {
	f := newReportFixture()
	ctx := context.Background()

	day := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	order := &model.Order{
		ClientID:   "c1",
		TotalPrice: 12,
		Items: []model.OrderItem{
			{ProductID: "ffffffffffffffffffffffff", Quantity: 1, Price: 12},
		},
		CreatedAt: day,
		UpdatedAt: day,
	}
	require.NoError(t, f.orders.Create(ctx, order))

	report, err := f.service.Daily(ctx, day)
	require.NoError(t, err)
	require.Len(t, report.Products, 1)
	assert.Equal(t, "Produto desconhecido", report.Products[0].Name)
}

func TestSummaryReport(t *testing.T) {
	f := newReportFixture()
	ctx := context.Background()

	require.NoError(t, f.clients.Create(ctx, &model.Client{Name: "Maria", Phone: "1"}))
	require.NoError(t, f.clients.Create(ctx, &model.Client{Name: "João", Phone: "2"}))

	marmita := &model.Product{Name: "Marmita G", Description: "g", Price: 10}
	require.NoError(t, f.products.Create(ctx, marmita))

	for i := 0; i < 7; i++ {
		order := &model.Order{
			ClientID:   "c1",
			TotalPrice: 10,
			Items: []model.OrderItem{
				{ProductID: marmita.ID.Hex(), Quantity: 1, Price: 10},
			},
		}
		require.NoError(t, f.orders.Create(ctx, order))
	}

	report, err := f.service.Summary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 70.0, report.TotalRevenue)
	assert.Equal(t, 7, report.TotalOrders)
	assert.Equal(t, 2, report.TotalClients)
	assert.Equal(t, 1, report.TotalProducts)
	assert.Len(t, report.RecentOrders, 5)
	require.Len(t, report.TopProducts, 1)
	assert.Equal(t, 7, report.TopProducts[0].Quantity)
}
