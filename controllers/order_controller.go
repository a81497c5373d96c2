package controllers

import (
	"net/http"
	"time"

	"exam-store/models"
	"exam-store/repositories"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type OrderController struct {
	orders   *repositories.OrderRepository
	products *repositories.ProductRepository
	users    *repositories.UserRepository
	settings *repositories.SettingRepository
	email    *models.EmailService
}

func NewOrderController(db *mongo.Database, email *models.EmailService) *OrderController {
	return &OrderController{
		orders:   repositories.NewOrderRepository(db),
		products: repositories.NewProductRepository(db),
		users:    repositories.NewUserRepository(db),
		settings: repositories.NewSettingRepository(db),
		email:    email,
	}
}

// @Summary Create Stripe payment intent
// @Description Creates a payment intent using the Stripe key stored in settings
// @Description and returns its client secret.
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body models.PaymentIntentRequest true "Payment intent payload"
// @Success 200 {object} map[string]string
// @Failure 404 {object} models.ErrorResponse
// @Router /api/orders/create-payment-intent [post]
func (ctrl *OrderController) CreatePaymentIntent(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.PaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload"})
		return
	}
	if req.TotalPrice <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order total"})
		return
	}

	setting, err := ctrl.settings.FindByKey(ctx, "stripePrivateKey")
	if err != nil || setting.Value == "" {
		c.JSON(http.StatusNotFound, gin.H{"message": "Stripe configuration not found"})
		return
	}

	sc := &client.API{}
	sc.Init(setting.Value, nil)

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(req.TotalPrice),
		Currency:           stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.AddMetadata("userId", c.GetString("user_id"))

	intent, err := sc.PaymentIntents.New(params)
	if err != nil {
		logrus.Errorf("Stripe payment intent failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create payment intent"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"clientSecret": intent.ClientSecret})
}

// @Summary Create order
// @Description Records a paid order, bumps the buyer's purchase counter and
// @Description sends a receipt email. PDF products are only exposed through the
// @Description secure streaming URL.
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body models.CreateOrderRequest true "Order payload"
// @Success 201 {object} models.OrderView
// @Router /api/orders [post]
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.OrderItems) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No order items"})
		return
	}

	userID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid user"})
		return
	}

	items := make([]models.OrderItem, 0, len(req.OrderItems))
	for _, in := range req.OrderItems {
		productID, err := primitive.ObjectIDFromHex(in.Product)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product id in order items"})
			return
		}
		qty := in.Qty
		if qty < 1 {
			qty = 1
		}
		items = append(items, models.OrderItem{
			Product: productID,
			Name:    in.Name,
			Qty:     qty,
			Price:   in.Price,
		})
	}

	paidAt := req.PaidAt
	if req.IsPaid && paidAt == nil {
		now := time.Now()
		paidAt = &now
	}

	order := models.Order{
		User:          userID,
		OrderItems:    items,
		TotalPrice:    req.TotalPrice,
		PaymentMethod: req.PaymentMethod,
		IsPaid:        req.IsPaid,
		PaidAt:        paidAt,
		PaymentResult: req.PaymentResult,
		Status:        "completed",
	}

	if err := ctrl.orders.Insert(ctx, &order); err != nil {
		logrus.Errorf("Failed to create order: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create order"})
		return
	}

	if err := ctrl.users.IncrementPurchases(ctx, userID); err != nil {
		logrus.Errorf("Failed to increment purchase counter: %v", err)
	}

	if ctrl.email != nil {
		if user, err := ctrl.users.FindByID(ctx, userID); err == nil {
			if err := ctrl.email.SendOrderReceiptEmail(user.Email, order.ID.Hex(), order.TotalPrice); err != nil {
				logrus.Errorf("Failed to send order receipt: %v", err)
			}
		}
	}

	view, err := ctrl.sanitize(c, &order)
	if err != nil {
		logrus.Errorf("Failed to build order response: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create order"})
		return
	}

	c.JSON(http.StatusCreated, view)
}

// @Summary List my orders
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.OrderView
// @Router /api/orders/myorders [get]
func (ctrl *OrderController) GetMyOrders(c *gin.Context) {
	ctx := c.Request.Context()

	userID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid user"})
		return
	}

	orders, err := ctrl.orders.FindByUser(ctx, userID)
	if err != nil {
		logrus.Errorf("Failed to fetch orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders"})
		return
	}

	views, err := ctrl.sanitizeAll(c, orders)
	if err != nil {
		logrus.Errorf("Failed to build order responses: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, views)
}

// @Summary List all orders (Admin)
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.OrderView
// @Router /api/orders [get]
func (ctrl *OrderController) GetAllOrders(c *gin.Context) {
	orders, err := ctrl.orders.FindAll(c.Request.Context())
	if err != nil {
		logrus.Errorf("Failed to fetch orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders"})
		return
	}

	views, err := ctrl.sanitizeAll(c, orders)
	if err != nil {
		logrus.Errorf("Failed to build order responses: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, views)
}

// @Summary Delete order (Admin)
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /api/orders/{id} [delete]
func (ctrl *OrderController) DeleteOrder(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		return
	}

	if _, err := ctrl.orders.FindByID(ctx, id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		return
	}

	if err := ctrl.orders.Delete(ctx, id); err != nil {
		logrus.Errorf("Failed to delete order: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}

// sanitize populates order items with product snapshots that never leak
// the raw PDF location. Every consumer of an order response goes
// through here, including admin listings.
func (ctrl *OrderController) sanitize(c *gin.Context, order *models.Order) (*models.OrderView, error) {
	ids := make([]primitive.ObjectID, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		ids = append(ids, item.Product)
	}

	products, err := ctrl.products.FindByIDs(c.Request.Context(), ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	return buildOrderView(order, byID), nil
}

// buildOrderView maps an order onto its wire shape. Products are
// reduced to a snapshot that points at the streaming endpoint instead
// of the stored PDF location.
func buildOrderView(order *models.Order, byID map[primitive.ObjectID]*models.Product) *models.OrderView {
	view := &models.OrderView{
		ID:            order.ID,
		User:          order.User,
		OrderItems:    make([]models.OrderItemView, 0, len(order.OrderItems)),
		TotalPrice:    order.TotalPrice,
		PaymentMethod: order.PaymentMethod,
		IsPaid:        order.IsPaid,
		PaidAt:        order.PaidAt,
		PaymentResult: order.PaymentResult,
		Status:        order.Status,
		CreatedAt:     order.CreatedAt,
	}

	for _, item := range order.OrderItems {
		safe := models.SafeOrderProduct{
			ID:           item.Product,
			Name:         item.Name,
			Price:        item.Price,
			PdfSecureUrl: "/api/products/stream-pdf/" + item.Product.Hex(),
		}
		if p, ok := byID[item.Product]; ok {
			safe.Name = p.Name
			safe.SubjectName = p.SubjectName
			safe.SubjectCode = p.SubjectCode
			safe.Price = p.Price
		}
		view.OrderItems = append(view.OrderItems, models.OrderItemView{
			Product: safe,
			Name:    item.Name,
			Qty:     item.Qty,
			Price:   item.Price,
		})
	}

	return view
}

func (ctrl *OrderController) sanitizeAll(c *gin.Context, orders []models.Order) ([]models.OrderView, error) {
	views := make([]models.OrderView, 0, len(orders))
	for i := range orders {
		view, err := ctrl.sanitize(c, &orders[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}
