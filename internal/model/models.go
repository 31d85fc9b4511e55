// models.go
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pendente"
	StatusInDelivery OrderStatus = "à caminho"
	StatusDelivered  OrderStatus = "entregue"
	StatusCancelled  OrderStatus = "cancelado"
)

type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "pago"
	PaymentPending PaymentStatus = "pendente"
)

type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "cartão de crédito"
	PaymentDebitCard  PaymentMethod = "cartão de débito"
	PaymentCash       PaymentMethod = "dinheiro"
	PaymentPix        PaymentMethod = "pix"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         Role               `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}

type Client struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID    string             `bson:"user_id,omitempty" json:"userId,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Phone     string             `bson:"phone" json:"phone"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	Address   string             `bson:"address,omitempty" json:"address,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID      string             `bson:"user_id,omitempty" json:"userId,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

// OrderItem guarda o preço da linha no momento da inclusão. O preço é
// copiado do catálogo, nunca referenciado: mudanças posteriores no produto
// não alteram pedidos já gravados.
type OrderItem struct {
	ProductID string  `bson:"product_id" json:"productId"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Price     float64 `bson:"price" json:"price"`
}

type Order struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID            string             `bson:"user_id,omitempty" json:"userId,omitempty"`
	ClientID          string             `bson:"client_id" json:"clientId"`
	Items             []OrderItem        `bson:"items" json:"items"`
	TotalPrice        float64            `bson:"total_price" json:"totalPrice"`
	Status            OrderStatus        `bson:"status" json:"status"`
	PaymentStatus     PaymentStatus      `bson:"payment_status" json:"paymentStatus"`
	PaymentMethod     PaymentMethod      `bson:"payment_method,omitempty" json:"paymentMethod,omitempty"`
	AdditionalAddress string             `bson:"additional_address,omitempty" json:"additionalAddress,omitempty"`
	CreatedAt         time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updatedAt"`
}
