package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"exam-store/models"
	"exam-store/repositories"
	"exam-store/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProductController struct {
	products *repositories.ProductRepository
	orders   *repositories.OrderRepository
	assets   *models.CloudinaryService
}

func NewProductController(db *mongo.Database, assets *models.CloudinaryService) *ProductController {
	return &ProductController{
		products: repositories.NewProductRepository(db),
		orders:   repositories.NewOrderRepository(db),
		assets:   assets,
	}
}

const productCacheKey = "products_list"

func invalidateProductCache() {
	if models.RedisClient == nil {
		return
	}
	models.RedisClient.Del(context.Background(), productCacheKey)
}

// @Summary List products
// @Description Get all products/exams
// @Tags Products
// @Produce json
// @Success 200 {object} models.Response
// @Router /api/products [get]
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	ctx := c.Request.Context()

	if models.RedisClient != nil {
		cached, err := models.RedisClient.Get(ctx, productCacheKey).Result()
		if err == nil {
			c.Data(http.StatusOK, "application/json", []byte(cached))
			return
		}
	}

	products, err := ctrl.products.FindAll(ctx)
	if err != nil {
		logrus.Errorf("Failed to fetch products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch products"})
		return
	}

	response := gin.H{"success": true, "count": len(products), "data": products}

	if models.RedisClient != nil {
		if jsonData, err := json.Marshal(response); err == nil {
			models.RedisClient.Set(ctx, productCacheKey, string(jsonData), 5*time.Minute)
		}
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get product by ID
// @Description Get one product/exam
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /api/products/{id} [get]
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}

	product, err := ctrl.products.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": product})
}

// @Summary Create product
// @Description Create a new product/exam (Admin). Image goes to Cloudinary, PDF to local disk.
// @Tags Products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Product name"
// @Param subjectName formData string false "Subject name"
// @Param subjectCode formData string false "Subject code"
// @Param price formData number true "Price"
// @Param description formData string false "Description"
// @Param type formData string false "Product type"
// @Param saleEnabled formData bool false "Sale enabled"
// @Param salePrice formData number false "Sale price"
// @Param image formData file false "Product image"
// @Param pdf formData file false "Exam PDF"
// @Success 201 {object} models.Response
// @Router /api/products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	ctx := c.Request.Context()

	name := c.PostForm("name")
	priceStr := c.PostForm("price")
	if name == "" || priceStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Name and price are required"})
		return
	}

	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid price"})
		return
	}

	salePrice, _ := strconv.ParseFloat(c.PostForm("salePrice"), 64)

	product := models.Product{
		Name:        name,
		SubjectName: c.PostForm("subjectName"),
		SubjectCode: c.PostForm("subjectCode"),
		Price:       price,
		Description: c.PostForm("description"),
		Type:        c.PostForm("type"),
		SaleEnabled: c.PostForm("saleEnabled") == "true",
		SalePrice:   salePrice,
	}

	if file, err := c.FormFile("image"); err == nil {
		if err := ctrl.assets.ValidateImageFile(file); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		ref, err := ctrl.assets.UploadImage(ctx, file, models.FolderProductImages)
		if err != nil {
			logrus.Errorf("Cloudinary upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to upload image"})
			return
		}
		product.Image = ref
	}

	if file, err := c.FormFile("pdf"); err == nil {
		relPath, err := utils.SavePDF(c, file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		product.PdfLocalPath = relPath
		product.PdfFullUrl = utils.PDFFullURL(c, relPath)
	}

	if err := ctrl.products.Insert(ctx, &product); err != nil {
		logrus.Errorf("Failed to create product: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create product"})
		return
	}

	invalidateProductCache()
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": product})
}

// @Summary Update product
// @Description Update a product/exam (Admin). A new image or PDF replaces the stored asset.
// @Tags Products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /api/products/{id} [put]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product/Exam not found"})
		return
	}

	product, err := ctrl.products.FindByID(ctx, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product/Exam not found"})
		return
	}

	if v, ok := c.GetPostForm("name"); ok {
		product.Name = v
	}
	if v, ok := c.GetPostForm("subjectName"); ok {
		product.SubjectName = v
	}
	if v, ok := c.GetPostForm("subjectCode"); ok {
		product.SubjectCode = v
	}
	if v, ok := c.GetPostForm("price"); ok {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			product.Price = price
		}
	}
	if v, ok := c.GetPostForm("description"); ok {
		product.Description = v
	}
	if v, ok := c.GetPostForm("type"); ok {
		product.Type = v
	}
	if v, ok := c.GetPostForm("saleEnabled"); ok {
		product.SaleEnabled = v == "true"
	}
	if v, ok := c.GetPostForm("salePrice"); ok {
		if salePrice, err := strconv.ParseFloat(v, 64); err == nil {
			product.SalePrice = salePrice
		}
	}

	if file, err := c.FormFile("image"); err == nil {
		if err := ctrl.assets.ValidateImageFile(file); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		if !product.Image.IsZero() {
			if err := ctrl.assets.DeleteImage(ctx, product.Image.PublicID); err != nil {
				logrus.Errorf("Cloudinary delete failed: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to replace image"})
				return
			}
		}
		ref, err := ctrl.assets.UploadImage(ctx, file, models.FolderProductImages)
		if err != nil {
			logrus.Errorf("Cloudinary upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to upload image"})
			return
		}
		product.Image = ref
	}

	if file, err := c.FormFile("pdf"); err == nil {
		if err := utils.DeletePDF(product.PdfLocalPath); err != nil {
			logrus.Errorf("Failed to remove old PDF: %v", err)
		}
		relPath, err := utils.SavePDF(c, file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		product.PdfLocalPath = relPath
		product.PdfFullUrl = utils.PDFFullURL(c, relPath)
	}

	if err := ctrl.products.Update(ctx, product); err != nil {
		logrus.Errorf("Failed to update product: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update product"})
		return
	}

	invalidateProductCache()
	c.JSON(http.StatusOK, gin.H{"success": true, "data": product})
}

// @Summary Delete product
// @Description Delete a product/exam (Admin), removing its image and PDF.
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /api/products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product/Exam not found"})
		return
	}

	product, err := ctrl.products.FindByID(ctx, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product/Exam not found"})
		return
	}

	if !product.Image.IsZero() {
		if err := ctrl.assets.DeleteImage(ctx, product.Image.PublicID); err != nil {
			logrus.Errorf("Cloudinary delete failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete product assets"})
			return
		}
	}

	if err := utils.DeletePDF(product.PdfLocalPath); err != nil {
		logrus.Errorf("Failed to remove PDF from disk: %v", err)
	}

	if err := ctrl.products.Delete(ctx, id); err != nil {
		logrus.Errorf("Failed to delete product: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete product"})
		return
	}

	invalidateProductCache()
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product/Exam removed", "data": gin.H{"_id": id.Hex()}})
}

// @Summary Stream a purchased PDF
// @Description Streams the exam PDF after verifying the requesting user purchased it.
// @Tags Products
// @Security BearerAuth
// @Produce application/pdf
// @Param productId path string true "Product ID"
// @Success 200
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/products/stream-pdf/{productId} [get]
func (ctrl *ProductController) StreamPDF(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}

	product, err := ctrl.products.FindByID(ctx, productID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}

	if product.PdfLocalPath == "" {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "No PDF available for this product"})
		return
	}

	if c.GetString("user_role") != "admin" {
		userID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied"})
			return
		}
		purchased, err := ctrl.orders.HasUserPurchased(ctx, userID, productID)
		if err != nil {
			logrus.Errorf("Entitlement check failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to verify purchase"})
			return
		}
		if !purchased {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "You have not purchased this exam"})
			return
		}
	}

	c.Header("Content-Type", "application/pdf")
	c.File(utils.PDFDiskPath(product.PdfLocalPath))
}
