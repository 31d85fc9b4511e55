// dto.go
package dto

import "delivery-track/internal/model"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginUser struct {
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
}

type LoginResponse struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

type ClientRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type ProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Image       string  `json:"image"`
}

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
}

type UpdateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password"` // opcional: troca a senha quando presente
	Role     string `json:"role"`
}

// OrderItemRequest aceita um preço enviado pelo cliente por compatibilidade
// com o formulário, mas o servidor sempre recalcula a partir do catálogo.
type OrderItemRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,gte=1"`
	Price     float64 `json:"price"`
}

type OrderRequest struct {
	ClientID          string             `json:"clientId" binding:"required"`
	Items             []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	AdditionalAddress string             `json:"additionalAddress"`
	PaymentMethod     string             `json:"paymentMethod"`
	PaymentStatus     string             `json:"paymentStatus"`
	Status            string             `json:"status"`
	TotalPrice        float64            `json:"totalPrice"` // ignorado: recalculado no servidor
}

type OrdersPage struct {
	Orders []model.Order `json:"orders"`
	Total  int64         `json:"total"`
}

type ProductSales struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Revenue   float64 `json:"revenue"`
}

type DailyReport struct {
	Date       string         `json:"date"`
	Revenue    float64        `json:"revenue"`
	OrderCount int            `json:"orderCount"`
	ItemCount  int            `json:"itemCount"`
	Products   []ProductSales `json:"products"`
}

type SummaryReport struct {
	TotalRevenue  float64        `json:"totalRevenue"`
	TotalOrders   int            `json:"totalOrders"`
	TotalClients  int            `json:"totalClients"`
	TotalProducts int            `json:"totalProducts"`
	RecentOrders  []model.Order  `json:"recentOrders"`
	TopProducts   []ProductSales `json:"topProducts"`
}
