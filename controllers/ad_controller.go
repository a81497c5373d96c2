package controllers

import (
	"net/http"
	"strconv"
	"time"

	"exam-store/models"
	"exam-store/repositories"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AdController struct {
	ads    *repositories.AdRepository
	assets *models.CloudinaryService
}

func NewAdController(db *mongo.Database, assets *models.CloudinaryService) *AdController {
	return &AdController{
		ads:    repositories.NewAdRepository(db),
		assets: assets,
	}
}

func parseAdDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

// @Summary List ads
// @Tags Ads
// @Produce json
// @Success 200 {array} models.Ad
// @Router /api/ads [get]
func (ctrl *AdController) GetAllAds(c *gin.Context) {
	ads, err := ctrl.ads.FindAll(c.Request.Context())
	if err != nil {
		logrus.Errorf("Failed to fetch ads: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch ads"})
		return
	}
	c.JSON(http.StatusOK, ads)
}

// @Summary Get ad by ID
// @Tags Ads
// @Produce json
// @Param id path string true "Ad ID"
// @Success 200 {object} models.Ad
// @Failure 404 {object} models.ErrorResponse
// @Router /api/ads/{id} [get]
func (ctrl *AdController) GetAdByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Ad not found"})
		return
	}

	ad, err := ctrl.ads.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Ad not found"})
		return
	}

	c.JSON(http.StatusOK, ad)
}

// @Summary Create ad
// @Description Create a promotional ad card (Admin). Title, subtitle and image are required.
// @Tags Ads
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} models.Ad
// @Router /api/ads [post]
func (ctrl *AdController) CreateAd(c *gin.Context) {
	ctx := c.Request.Context()

	title := c.PostForm("title")
	subtitle := c.PostForm("subtitle")
	if title == "" || subtitle == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Title and subtitle are required"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Ad image is required"})
		return
	}
	if err := ctrl.assets.ValidateImageFile(file); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	priority, _ := strconv.Atoi(c.PostForm("priority"))

	ad := models.Ad{
		Title:              title,
		Subtitle:           subtitle,
		Description:        c.PostForm("description"),
		Link:               c.PostForm("link"),
		Category:           c.PostForm("category"),
		TemplateID:         c.PostForm("templateId"),
		Price:              c.PostForm("price"),
		StartDate:          parseAdDate(c.PostForm("startDate")),
		EndDate:            parseAdDate(c.PostForm("endDate")),
		TargetAudience:     c.PostForm("targetAudience"),
		CtaText:            c.PostForm("ctaText"),
		Priority:           priority,
		CardDesign:         c.PostForm("cardDesign"),
		PromoCode:          c.PostForm("promoCode"),
		LimitedOffer:       c.PostForm("limitedOffer"),
		Instructor:         c.PostForm("instructor"),
		CourseInfo:         c.PostForm("courseInfo"),
		Rating:             c.PostForm("rating"),
		OriginalPrice:      c.PostForm("originalPrice"),
		SalePrice:          c.PostForm("salePrice"),
		DiscountPercentage: c.PostForm("discountPercentage"),
		SaleEnds:           c.PostForm("saleEnds"),
		EventDate:          c.PostForm("eventDate"),
		EventLocation:      c.PostForm("eventLocation"),
		CustomStyles:       c.PostForm("customStyles"),
		AdProdType:         c.PostForm("adProdtype"),
		AdProdID:           c.PostForm("adProdId"),
	}
	ad.ApplyDefaults()

	ref, err := ctrl.assets.UploadImage(ctx, file, models.FolderAdImages)
	if err != nil {
		logrus.Errorf("Cloudinary upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to upload ad image"})
		return
	}
	ad.Image = ref

	if err := ctrl.ads.Insert(ctx, &ad); err != nil {
		logrus.Errorf("Failed to create ad: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create ad"})
		return
	}

	c.JSON(http.StatusCreated, ad)
}

// @Summary Update ad
// @Tags Ads
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Ad ID"
// @Success 200 {object} models.Ad
// @Failure 404 {object} models.ErrorResponse
// @Router /api/ads/{id} [put]
func (ctrl *AdController) UpdateAd(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Ad not found"})
		return
	}

	ad, err := ctrl.ads.FindByID(ctx, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Ad not found"})
		return
	}

	if v, ok := c.GetPostForm("title"); ok {
		ad.Title = v
	}
	if v, ok := c.GetPostForm("subtitle"); ok {
		ad.Subtitle = v
	}
	if v, ok := c.GetPostForm("description"); ok {
		ad.Description = v
	}
	if v, ok := c.GetPostForm("link"); ok {
		ad.Link = v
	}
	if v, ok := c.GetPostForm("category"); ok {
		ad.Category = v
	}
	if v, ok := c.GetPostForm("templateId"); ok {
		ad.TemplateID = v
	}
	if v, ok := c.GetPostForm("price"); ok {
		ad.Price = v
	}
	if v, ok := c.GetPostForm("startDate"); ok {
		ad.StartDate = parseAdDate(v)
	}
	if v, ok := c.GetPostForm("endDate"); ok {
		ad.EndDate = parseAdDate(v)
	}
	if v, ok := c.GetPostForm("targetAudience"); ok {
		ad.TargetAudience = v
	}
	if v, ok := c.GetPostForm("ctaText"); ok {
		ad.CtaText = v
	}
	if v, ok := c.GetPostForm("priority"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			ad.Priority = n
		}
	}
	if v, ok := c.GetPostForm("cardDesign"); ok {
		ad.CardDesign = v
	}
	if v, ok := c.GetPostForm("promoCode"); ok {
		ad.PromoCode = v
	}
	if v, ok := c.GetPostForm("limitedOffer"); ok {
		ad.LimitedOffer = v
	}
	if v, ok := c.GetPostForm("instructor"); ok {
		ad.Instructor = v
	}
	if v, ok := c.GetPostForm("courseInfo"); ok {
		ad.CourseInfo = v
	}
	if v, ok := c.GetPostForm("rating"); ok {
		ad.Rating = v
	}
	if v, ok := c.GetPostForm("originalPrice"); ok {
		ad.OriginalPrice = v
	}
	if v, ok := c.GetPostForm("salePrice"); ok {
		ad.SalePrice = v
	}
	if v, ok := c.GetPostForm("discountPercentage"); ok {
		ad.DiscountPercentage = v
	}
	if v, ok := c.GetPostForm("saleEnds"); ok {
		ad.SaleEnds = v
	}
	if v, ok := c.GetPostForm("eventDate"); ok {
		ad.EventDate = v
	}
	if v, ok := c.GetPostForm("eventLocation"); ok {
		ad.EventLocation = v
	}
	if v, ok := c.GetPostForm("customStyles"); ok {
		ad.CustomStyles = v
	}
	if v, ok := c.GetPostForm("adProdtype"); ok {
		ad.AdProdType = v
	}
	if v, ok := c.GetPostForm("adProdId"); ok {
		ad.AdProdID = v
	}

	if file, err := c.FormFile("image"); err == nil {
		if err := ctrl.assets.ValidateImageFile(file); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		if !ad.Image.IsZero() {
			if err := ctrl.assets.DeleteImage(ctx, ad.Image.PublicID); err != nil {
				logrus.Errorf("Cloudinary delete failed: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to replace ad image"})
				return
			}
		}
		ref, err := ctrl.assets.UploadImage(ctx, file, models.FolderAdImages)
		if err != nil {
			logrus.Errorf("Cloudinary upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to upload ad image"})
			return
		}
		ad.Image = ref
	}

	if err := ctrl.ads.Update(ctx, ad); err != nil {
		logrus.Errorf("Failed to update ad: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update ad"})
		return
	}

	c.JSON(http.StatusOK, ad)
}

// @Summary Delete ad
// @Tags Ads
// @Security BearerAuth
// @Produce json
// @Param id path string true "Ad ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /api/ads/{id} [delete]
func (ctrl *AdController) DeleteAd(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Ad not found"})
		return
	}

	ad, err := ctrl.ads.FindByID(ctx, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Ad not found"})
		return
	}

	if !ad.Image.IsZero() {
		if err := ctrl.assets.DeleteImage(ctx, ad.Image.PublicID); err != nil {
			logrus.Errorf("Cloudinary delete failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete ad image"})
			return
		}
	}

	if err := ctrl.ads.Delete(ctx, id); err != nil {
		logrus.Errorf("Failed to delete ad: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete ad"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Ad removed successfully"})
}
