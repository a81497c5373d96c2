package controllers

import (
	"encoding/json"
	"testing"
	"time"

	"exam-store/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildOrderViewHidesPDFLocation(t *testing.T) {
	productID := primitive.NewObjectID()
	order := &models.Order{
		ID:         primitive.NewObjectID(),
		User:       primitive.NewObjectID(),
		TotalPrice: 25,
		IsPaid:     true,
		Status:     "completed",
		CreatedAt:  time.Now(),
		OrderItems: []models.OrderItem{
			{Product: productID, Name: "Calculus Final", Qty: 1, Price: 25},
		},
	}
	products := map[primitive.ObjectID]*models.Product{
		productID: {
			ID:           productID,
			Name:         "Calculus Final 2024",
			SubjectName:  "Calculus",
			SubjectCode:  "MATH201",
			Price:        25,
			PdfLocalPath: "/uploads/pdfs/1700000000000-calc.pdf",
			PdfFullUrl:   "http://internal-host/uploads/pdfs/1700000000000-calc.pdf",
		},
	}

	view := buildOrderView(order, products)
	require.Len(t, view.OrderItems, 1)

	item := view.OrderItems[0]
	assert.Equal(t, "Calculus Final 2024", item.Product.Name)
	assert.Equal(t, "MATH201", item.Product.SubjectCode)
	assert.Equal(t, "/api/products/stream-pdf/"+productID.Hex(), item.Product.PdfSecureUrl)

	raw, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "pdfLocalPath")
	assert.NotContains(t, string(raw), "pdfFullUrl")
	assert.NotContains(t, string(raw), "1700000000000-calc.pdf")
}

func TestBuildOrderViewMissingProductKeepsSnapshot(t *testing.T) {
	productID := primitive.NewObjectID()
	order := &models.Order{
		ID:   primitive.NewObjectID(),
		User: primitive.NewObjectID(),
		OrderItems: []models.OrderItem{
			{Product: productID, Name: "Deleted Exam", Qty: 1, Price: 10},
		},
	}

	view := buildOrderView(order, map[primitive.ObjectID]*models.Product{})
	require.Len(t, view.OrderItems, 1)

	item := view.OrderItems[0]
	assert.Equal(t, "Deleted Exam", item.Product.Name)
	assert.Equal(t, float64(10), item.Product.Price)
	assert.Equal(t, "/api/products/stream-pdf/"+productID.Hex(), item.Product.PdfSecureUrl)
}
