package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Order struct {
	ID            primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	User          primitive.ObjectID `json:"user" bson:"user"`
	OrderItems    []OrderItem        `json:"orderItems" bson:"orderItems"`
	TotalPrice    float64            `json:"totalPrice" bson:"totalPrice"`
	PaymentMethod string             `json:"paymentMethod,omitempty" bson:"paymentMethod,omitempty"`
	IsPaid        bool               `json:"isPaid" bson:"isPaid"`
	PaidAt        *time.Time         `json:"paidAt,omitempty" bson:"paidAt,omitempty"`
	PaymentResult bson.M             `json:"paymentResult,omitempty" bson:"paymentResult,omitempty"`
	Status        string             `json:"status" bson:"status"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
}

// OrderItem snapshots quantity and price at checkout time; the product
// reference is not re-validated against current product state.
type OrderItem struct {
	Product primitive.ObjectID `json:"product" bson:"product"`
	Name    string             `json:"name,omitempty" bson:"name,omitempty"`
	Qty     int                `json:"qty" bson:"qty"`
	Price   float64            `json:"price" bson:"price"`
}

// OrderItemView is an order item with its product populated for
// responses. The product never carries raw PDF paths, only the
// access-controlled streaming URL.
type OrderItemView struct {
	Product SafeOrderProduct `json:"product"`
	Name    string           `json:"name,omitempty"`
	Qty     int              `json:"qty"`
	Price   float64          `json:"price"`
}

type SafeOrderProduct struct {
	ID           primitive.ObjectID `json:"_id"`
	Name         string             `json:"name"`
	SubjectName  string             `json:"subjectName,omitempty"`
	SubjectCode  string             `json:"subjectCode,omitempty"`
	Price        float64            `json:"price"`
	PdfSecureUrl string             `json:"pdfSecureUrl"`
}

// OrderView is the wire shape of an order with populated items.
type OrderView struct {
	ID            primitive.ObjectID `json:"_id"`
	User          primitive.ObjectID `json:"user"`
	OrderItems    []OrderItemView    `json:"orderItems"`
	TotalPrice    float64            `json:"totalPrice"`
	PaymentMethod string             `json:"paymentMethod,omitempty"`
	IsPaid        bool               `json:"isPaid"`
	PaidAt        *time.Time         `json:"paidAt,omitempty"`
	PaymentResult bson.M             `json:"paymentResult,omitempty"`
	Status        string             `json:"status"`
	CreatedAt     time.Time          `json:"createdAt"`
}
