package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a purchasable PDF exam. The image lives on Cloudinary, the
// PDF on local disk under the uploads directory.
type Product struct {
	ID           primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	SubjectName  string             `json:"subjectName,omitempty" bson:"subjectName,omitempty"`
	SubjectCode  string             `json:"subjectCode,omitempty" bson:"subjectCode,omitempty"`
	Price        float64            `json:"price" bson:"price"`
	Description  string             `json:"description,omitempty" bson:"description,omitempty"`
	Type         string             `json:"type,omitempty" bson:"type,omitempty"`
	SaleEnabled  bool               `json:"saleEnabled" bson:"saleEnabled"`
	SalePrice    float64            `json:"salePrice,omitempty" bson:"salePrice,omitempty"`
	Image        AssetRef           `json:"image,omitempty" bson:"image,omitempty"`
	PdfLocalPath string             `json:"pdfLocalPath,omitempty" bson:"pdfLocalPath,omitempty"`
	PdfFullUrl   string             `json:"pdfFullUrl,omitempty" bson:"pdfFullUrl,omitempty"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}
