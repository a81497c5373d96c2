package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"omitempty,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=user admin"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type OrderItemInput struct {
	Product string  `json:"product" binding:"required"`
	Name    string  `json:"name"`
	Qty     int     `json:"qty"`
	Price   float64 `json:"price"`
}

type CreateOrderRequest struct {
	OrderItems    []OrderItemInput `json:"orderItems"`
	TotalPrice    float64          `json:"totalPrice"`
	PaymentMethod string           `json:"paymentMethod"`
	IsPaid        bool             `json:"isPaid"`
	PaidAt        *time.Time       `json:"paidAt"`
	PaymentResult bson.M           `json:"paymentResult"`
}

type PaymentIntentRequest struct {
	OrderItems []OrderItemInput `json:"orderItems"`
	TotalPrice int64            `json:"totalPrice"`
}
