package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"delivery-track/internal/controller"
	"delivery-track/internal/middleware"
	"delivery-track/internal/model"
	"delivery-track/internal/repository"
	"delivery-track/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testApp struct {
	router   *gin.Engine
	users    *repository.MockUserRepository
	clients  *repository.MockClientRepository
	products *repository.MockProductRepository
	orders   *repository.MockOrderRepository
	auth     *service.AuthService
}

// newTestApp monta o router com as mesmas rotas do main, sobre os
// repositórios em memória e sem mensageria.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := &testApp{
		users:    repository.NewMockUserRepository(),
		clients:  repository.NewMockClientRepository(),
		products: repository.NewMockProductRepository(),
		orders:   repository.NewMockOrderRepository(),
	}

	app.auth = service.NewAuthService(app.users, "segredo-de-teste", time.Hour)
	userService := service.NewUserService(app.users)
	clientService := service.NewClientService(app.clients)
	productService := service.NewProductService(app.products)
	orderService := service.NewOrderService(app.orders, app.products, app.clients, app.users, nil)
	reportService := service.NewReportService(app.orders, app.clients, app.products)

	authCtl := controller.NewAuthController(app.auth)
	userCtl := controller.NewUserController(userService)
	clientCtl := controller.NewClientController(clientService)
	productCtl := controller.NewProductController(productService)
	orderCtl := controller.NewOrderController(orderService)
	reportCtl := controller.NewReportController(reportService)

	r := gin.New()
	r.POST("/login", authCtl.Login)

	auth := r.Group("/")
	auth.Use(middleware.AuthRequired(app.auth))

	auth.GET("/clients", clientCtl.List)
	auth.POST("/clients", clientCtl.Create)
	auth.PUT("/clients/:id", clientCtl.Update)
	auth.DELETE("/clients/:id", clientCtl.Delete)

	auth.GET("/products", productCtl.List)
	auth.POST("/products", productCtl.Create)
	auth.PUT("/products/:id", productCtl.Update)
	auth.DELETE("/products/:id", productCtl.Delete)

	auth.GET("/orders", orderCtl.List)
	auth.POST("/orders", orderCtl.Create)
	auth.PUT("/orders/:id", orderCtl.Update)
	auth.DELETE("/orders/:id", orderCtl.Delete)
	auth.GET("/orders/:id/receipt", orderCtl.Receipt)

	auth.GET("/reports/daily", reportCtl.Daily)
	auth.GET("/reports/summary", reportCtl.Summary)

	admin := auth.Group("/users")
	admin.Use(middleware.AdminOnly())
	admin.GET("", userCtl.List)
	admin.POST("", userCtl.Create)
	admin.PUT("/:id", userCtl.Update)
	admin.DELETE("/:id", userCtl.Delete)

	app.router = r
	return app
}

func (a *testApp) seedUser(t *testing.T, email, password string, role model.Role) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{Name: "Dona Rosa", Email: email, PasswordHash: string(hash), Role: role}
	require.NoError(t, a.users.Create(context.Background(), user))
	return user
}

func (a *testApp) tokenFor(t *testing.T, role model.Role) string {
	t.Helper()

	user := a.seedUser(t, fmt.Sprintf("%s@exemplo.com", role), "senha123", role)
	token, err := a.auth.GenerateToken(user)
	require.NoError(t, err)
	return token
}

func (a *testApp) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func TestRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/clients", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token não fornecido")
}

func TestLoginReturnsTokenAndCookie(t *testing.T) {
	app := newTestApp(t)
	app.seedUser(t, "rosa@exemplo.com", "senha123", model.RoleAdmin)

	w := app.do(t, http.MethodPost, "/login", "", gin.H{
		"email":    "rosa@exemplo.com",
		"password": "senha123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Name string `json:"name"`
			Role string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "admin", resp.User.Role)

	var sessionCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "token" {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie, "login deve gravar o cookie de sessão")
	assert.Equal(t, resp.Token, sessionCookie.Value)

	// O cookie sozinho autentica, sem header Authorization
	req := httptest.NewRequest(http.MethodGet, "/clients", nil)
	req.AddCookie(sessionCookie)
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginFailures(t *testing.T) {
	app := newTestApp(t)
	app.seedUser(t, "rosa@exemplo.com", "senha123", model.RoleUser)

	w := app.do(t, http.MethodPost, "/login", "", gin.H{"email": "x@exemplo.com", "password": "senha123"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(t, http.MethodPost, "/login", "", gin.H{"email": "rosa@exemplo.com", "password": "errada"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodPost, "/login", "", gin.H{"email": "rosa@exemplo.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserRoutesAreAdminOnly(t *testing.T) {
	app := newTestApp(t)

	userToken := app.tokenFor(t, model.RoleUser)
	w := app.do(t, http.MethodGet, "/users", userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Acesso restrito ao administrador")

	w = app.do(t, http.MethodPost, "/users", userToken, gin.H{
		"name": "Novo", "email": "novo@exemplo.com", "password": "senha123",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminToken := app.tokenFor(t, model.RoleAdmin)
	w = app.do(t, http.MethodGet, "/users", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	// O hash de senha nunca sai na resposta
	assert.NotContains(t, w.Body.String(), "password_hash")
}

func TestCreateUserConflictNamesEmailField(t *testing.T) {
	app := newTestApp(t)
	adminToken := app.tokenFor(t, model.RoleAdmin)

	payload := gin.H{"name": "Novo", "email": "novo@exemplo.com", "password": "senha123", "role": "gerente"}
	w := app.do(t, http.MethodPost, "/users", adminToken, payload)
	require.Equal(t, http.StatusCreated, w.Code)
	// Papel desconhecido vira usuário comum
	assert.Contains(t, w.Body.String(), `"role":"user"`)

	w = app.do(t, http.MethodPost, "/users", adminToken, payload)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"email"`)
}

func TestCreateClientConflictNamesPhoneField(t *testing.T) {
	app := newTestApp(t)
	token := app.tokenFor(t, model.RoleUser)

	w := app.do(t, http.MethodPost, "/clients", token, gin.H{"name": "Maria", "phone": "11999990000"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = app.do(t, http.MethodPost, "/clients", token, gin.H{"name": "Outra Maria", "phone": "11999990000"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"phone"`)

	w = app.do(t, http.MethodPost, "/clients", token, gin.H{"name": "Sem Telefone"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteMissingResourcesReturnNotFound(t *testing.T) {
	app := newTestApp(t)
	token := app.tokenFor(t, model.RoleUser)

	w := app.do(t, http.MethodDelete, "/clients/ffffffffffffffffffffffff", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(t, http.MethodDelete, "/products/ffffffffffffffffffffffff", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(t, http.MethodDelete, "/orders/ffffffffffffffffffffffff", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Id malformado também é "não encontrado", nunca erro de servidor
	w = app.do(t, http.MethodDelete, "/clients/nao-e-um-id", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateOrderComputesTotalServerSide(t *testing.T) {
	app := newTestApp(t)
	token := app.tokenFor(t, model.RoleUser)
	ctx := context.Background()

	productA := &model.Product{Name: "Marmita G", Description: "g", Price: 10}
	require.NoError(t, app.products.Create(ctx, productA))
	productB := &model.Product{Name: "Suco", Description: "s", Price: 5}
	require.NoError(t, app.products.Create(ctx, productB))
	client := &model.Client{Name: "Maria", Phone: "11999990000"}
	require.NoError(t, app.clients.Create(ctx, client))

	w := app.do(t, http.MethodPost, "/orders", token, gin.H{
		"clientId": client.ID.Hex(),
		"items": []gin.H{
			{"productId": productA.ID.Hex(), "quantity": 2, "price": 1},
			{"productId": productB.ID.Hex(), "quantity": 1, "price": 1},
		},
		"totalPrice":    3,
		"paymentMethod": "pix",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var order model.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, 25.0, order.TotalPrice)
	assert.Equal(t, model.StatusPending, order.Status)
}

func TestCreateOrderValidation(t *testing.T) {
	app := newTestApp(t)
	token := app.tokenFor(t, model.RoleUser)

	// Sem itens
	w := app.do(t, http.MethodPost, "/orders", token, gin.H{"clientId": "c1", "items": []gin.H{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Produto inexistente
	w = app.do(t, http.MethodPost, "/orders", token, gin.H{
		"clientId": "c1",
		"items":    []gin.H{{"productId": "ffffffffffffffffffffffff", "quantity": 1}},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListOrdersByDate(t *testing.T) {
	app := newTestApp(t)
	token := app.tokenFor(t, model.RoleUser)
	ctx := context.Background()

	day := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	inDay := &model.Order{ClientID: "c1", TotalPrice: 10, CreatedAt: day.Add(8 * time.Hour), UpdatedAt: day}
	require.NoError(t, app.orders.Create(ctx, inDay))
	outOfDay := &model.Order{ClientID: "c1", TotalPrice: 99, CreatedAt: day.AddDate(0, 0, 2), UpdatedAt: day}
	require.NoError(t, app.orders.Create(ctx, outOfDay))

	w := app.do(t, http.MethodGet, "/orders?date=2026-08-20&page=1&limit=10", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Orders []model.Order `json:"orders"`
		Total  int64         `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Orders, 1)
	assert.Equal(t, 10.0, page.Orders[0].TotalPrice)

	w = app.do(t, http.MethodGet, "/orders?date=20-08-2026", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderReceiptEndpoint(t *testing.T) {
	app := newTestApp(t)
	token := app.tokenFor(t, model.RoleUser)
	ctx := context.Background()

	product := &model.Product{Name: "Marmita G", Description: "g", Price: 15}
	require.NoError(t, app.products.Create(ctx, product))
	client := &model.Client{Name: "Maria", Phone: "11999990000", Address: "Rua A, 123"}
	require.NoError(t, app.clients.Create(ctx, client))

	w := app.do(t, http.MethodPost, "/orders", token, gin.H{
		"clientId":      client.ID.Hex(),
		"items":         []gin.H{{"productId": product.ID.Hex(), "quantity": 2}},
		"paymentMethod": "dinheiro",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var order model.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))

	w = app.do(t, http.MethodGet, "/orders/"+order.ID.Hex()+"/receipt", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Cliente: Maria")
	assert.Contains(t, w.Body.String(), "2x Marmita G")
	assert.Contains(t, w.Body.String(), "R$ 30.00")

	w = app.do(t, http.MethodGet, "/orders/ffffffffffffffffffffffff/receipt", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDailyReportEndpoint(t *testing.T) {
	app := newTestApp(t)
	token := app.tokenFor(t, model.RoleUser)
	ctx := context.Background()

	day := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	order := &model.Order{
		ClientID:   "c1",
		TotalPrice: 30,
		Items:      []model.OrderItem{{ProductID: "p1", Quantity: 2, Price: 30}},
		CreatedAt:  day.Add(9 * time.Hour),
		UpdatedAt:  day,
	}
	require.NoError(t, app.orders.Create(ctx, order))

	w := app.do(t, http.MethodGet, "/reports/daily?date=2026-08-20", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"revenue":30`)
	assert.Contains(t, w.Body.String(), `"orderCount":1`)
}
