package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rabbitmq/amqp091-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"delivery-track/internal/config"
	"delivery-track/internal/controller"
	"delivery-track/internal/middleware"
	"delivery-track/internal/rabbit"
	"delivery-track/internal/repository"
	"delivery-track/internal/service"
)

func main() {
	cfg := config.Load()

	// Conexão com o MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal(err)
	}
	db := client.Database(cfg.MongoDBName)

	if err := repository.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Erro ao criar índices: %v", err)
	}

	// Repositórios
	userRepo := repository.NewMongoUserRepository(db)
	clientRepo := repository.NewMongoClientRepository(db)
	productRepo := repository.NewMongoProductRepository(db)
	orderRepo := repository.NewMongoOrderRepository(db)

	// Conexão com o RabbitMQ. Mensageria fora do ar não derruba o serviço:
	// eventos deixam de ser publicados até o próximo restart.
	var publisher *rabbit.Publisher
	var rabbitCh *amqp091.Channel
	conn, err := amqp091.Dial(cfg.RabbitURL)
	if err != nil {
		log.Printf("Aviso: RabbitMQ indisponível, eventos desativados: %v", err)
	} else {
		rabbitCh, err = conn.Channel()
		if err != nil {
			log.Printf("Aviso: erro ao abrir canal no RabbitMQ: %v", err)
		} else if publisher, err = rabbit.NewPublisher(rabbitCh); err != nil {
			log.Printf("Aviso: erro ao declarar exchange no RabbitMQ: %v", err)
			publisher = nil
		}
	}

	// Serviços
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	userService := service.NewUserService(userRepo)
	clientService := service.NewClientService(clientRepo)
	productService := service.NewProductService(productRepo)
	var eventPublisher service.EventPublisher
	if publisher != nil {
		eventPublisher = publisher
	}
	orderService := service.NewOrderService(orderRepo, productRepo, clientRepo, userRepo, eventPublisher)
	reportService := service.NewReportService(orderRepo, clientRepo, productRepo)

	// Handlers
	authCtl := controller.NewAuthController(authService)
	userCtl := controller.NewUserController(userService)
	clientCtl := controller.NewClientController(clientService)
	productCtl := controller.NewProductController(productService)
	orderCtl := controller.NewOrderController(orderService)
	reportCtl := controller.NewReportController(reportService)

	// Router
	r := gin.Default()

	// Rotas públicas
	r.POST("/login", authCtl.Login)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Rotas protegidas (requerem token)
	auth := r.Group("/")
	auth.Use(middleware.AuthRequired(authService))

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

	// Rotas admin
	admin := auth.Group("/users")
	admin.Use(middleware.AdminOnly())
	admin.GET("", userCtl.List)
	admin.POST("", userCtl.Create)
	admin.PUT("/:id", userCtl.Update)
	admin.DELETE("/:id", userCtl.Delete)

	// Consumidor de confirmações de pagamento
	if rabbitCh != nil && publisher != nil {
		rabbit.SetupConsumers(rabbitCh, orderService)
	}

	// Executar servidor
	log.Printf("Delivery Track executando na porta %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
