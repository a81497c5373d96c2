package controllers

import (
	"net/http"
	"sort"
	"strconv"

	"exam-store/models"
	"exam-store/repositories"
	"exam-store/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CourseController struct {
	courses *repositories.CourseRepository
	videos  *repositories.VideoRepository
	assets  *models.CloudinaryService
	svc     *services.CourseService
}

func NewCourseController(db *mongo.Database, assets *models.CloudinaryService) *CourseController {
	videos := repositories.NewVideoRepository(db)
	return &CourseController{
		courses: repositories.NewCourseRepository(db),
		videos:  videos,
		assets:  assets,
		svc:     services.NewCourseService(videos, assets),
	}
}

// populate loads the owned videos onto the course, sorted by priority,
// and exposes the first video's URL as a convenience field.
func (ctrl *CourseController) populate(c *gin.Context, course *models.Course) error {
	videos, err := ctrl.videos.FindByIDs(c.Request.Context(), course.VideoIDs)
	if err != nil {
		return err
	}
	sort.SliceStable(videos, func(i, j int) bool { return videos[i].Priority < videos[j].Priority })
	course.Videos = videos
	if len(videos) > 0 {
		course.FirstVideoURL = videos[0].VideoFile.URL
	}
	return nil
}

func pageParams(c *gin.Context, defaultLimit int) (int, int) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}

// @Summary List courses
// @Tags Courses
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {array} models.Course
// @Router /api/courses [get]
func (ctrl *CourseController) GetAllCourses(c *gin.Context) {
	page, limit := pageParams(c, 10)

	courses, err := ctrl.courses.FindPage(c.Request.Context(), page, limit)
	if err != nil {
		logrus.Errorf("Failed to fetch courses: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch courses"})
		return
	}

	for i := range courses {
		if err := ctrl.populate(c, &courses[i]); err != nil {
			logrus.Errorf("Failed to populate course videos: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch courses"})
			return
		}
	}

	c.JSON(http.StatusOK, courses)
}

// @Summary List every course (Admin)
// @Tags Courses
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Course
// @Router /api/courses/admin [get]
func (ctrl *CourseController) GetAllCoursesAdmin(c *gin.Context) {
	courses, err := ctrl.courses.FindAll(c.Request.Context())
	if err != nil {
		logrus.Errorf("Failed to fetch courses: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch courses"})
		return
	}

	for i := range courses {
		if err := ctrl.populate(c, &courses[i]); err != nil {
			logrus.Errorf("Failed to populate course videos: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch courses"})
			return
		}
	}

	c.JSON(http.StatusOK, courses)
}

// @Summary List featured course reels
// @Tags Courses
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {array} models.Course
// @Router /api/courses/featuredreels [get]
func (ctrl *CourseController) GetFeaturedReels(c *gin.Context) {
	page, limit := pageParams(c, 5)

	courses, err := ctrl.courses.FindFeatured(c.Request.Context(), page, limit)
	if err != nil {
		logrus.Errorf("Failed to fetch featured courses: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch featured courses"})
		return
	}

	for i := range courses {
		if err := ctrl.populate(c, &courses[i]); err != nil {
			logrus.Errorf("Failed to populate course videos: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch featured courses"})
			return
		}
	}

	c.JSON(http.StatusOK, courses)
}

// @Summary Search courses
// @Tags Courses
// @Produce json
// @Param query query string false "Search query"
// @Success 200 {array} models.Course
// @Router /api/courses/search [get]
func (ctrl *CourseController) SearchCourses(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusOK, []models.Course{})
		return
	}

	courses, err := ctrl.courses.Search(c.Request.Context(), query)
	if err != nil {
		logrus.Errorf("Course search failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, courses)
}

// @Summary Get course by ID
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} models.Course
// @Failure 404 {object} models.ErrorResponse
// @Router /api/courses/{id} [get]
func (ctrl *CourseController) GetCourseByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Course not found"})
		return
	}

	course, err := ctrl.courses.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Course not found"})
		return
	}

	if err := ctrl.populate(c, course); err != nil {
		logrus.Errorf("Failed to populate course videos: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch course"})
		return
	}

	c.JSON(http.StatusOK, course)
}

// @Summary Create course
// @Description Create a course with its image, optional short video and any
// @Description number of owned videos sent as videosData plus videoFile_/coverFile_ parts.
// @Tags Courses
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} models.Course
// @Router /api/courses [post]
func (ctrl *CourseController) CreateCourse(c *gin.Context) {
	ctrl.createCourse(c, false)
}

// @Summary Create featured course
// @Tags Courses
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} models.Course
// @Router /api/courses/featured [post]
func (ctrl *CourseController) CreateFeaturedCourse(c *gin.Context) {
	ctrl.createCourse(c, true)
}

func (ctrl *CourseController) createCourse(c *gin.Context, forceFeatured bool) {
	ctx := c.Request.Context()

	title := c.PostForm("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Title is required"})
		return
	}

	price, _ := strconv.ParseFloat(c.PostForm("price"), 64)
	rating, _ := strconv.ParseFloat(c.PostForm("rating"), 64)
	reviews, _ := strconv.Atoi(c.PostForm("reviews"))
	totalDuration, _ := strconv.ParseFloat(c.PostForm("totalDuration"), 64)
	lectures, _ := strconv.Atoi(c.PostForm("numberOfLectures"))
	salePrice, _ := strconv.ParseFloat(c.PostForm("salePrice"), 64)

	course := models.Course{
		Title:            title,
		Description:      c.PostForm("description"),
		Instructor:       c.PostForm("instructor"),
		Price:            price,
		Rating:           rating,
		Reviews:          reviews,
		IsFeatured:       forceFeatured || c.PostForm("isFeatured") == "true",
		DifficultyLevel:  c.PostForm("difficultyLevel"),
		Language:         c.PostForm("language"),
		Topics:           models.SplitList(c.PostForm("topics")),
		TotalDuration:    totalDuration,
		NumberOfLectures: lectures,
		Category:         c.PostForm("category"),
		Tags:             models.SplitList(c.PostForm("tags")),
		Requirements:     models.SplitList(c.PostForm("requirements")),
		WhatYouWillLearn: models.SplitList(c.PostForm("whatYouWillLearn")),
		SaleEnabled:      c.PostForm("saleEnabled") == "true",
		SalePrice:        salePrice,
	}
	course.ApplyDefaults()

	if file, err := c.FormFile("image"); err == nil {
		if err := ctrl.assets.ValidateImageFile(file); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		ref, err := ctrl.assets.UploadImage(ctx, file, models.FolderCourseImages)
		if err != nil {
			logrus.Errorf("Cloudinary upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to upload course image"})
			return
		}
		course.Image = ref
	}

	if file, err := c.FormFile("shortVideo"); err == nil {
		if err := ctrl.svc.AttachShortVideo(ctx, &course, file); err != nil {
			logrus.Errorf("Cloudinary upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to upload short video"})
			return
		}
	}

	if err := ctrl.courses.Insert(ctx, &course); err != nil {
		logrus.Errorf("Failed to create course: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create course"})
		return
	}

	descriptors := models.ParseVideoDescriptors(c.PostForm("videosData"))
	form, _ := c.MultipartForm()
	parts := services.ResolveVideoParts(form)

	videos, err := ctrl.svc.ReconcileVideos(ctx, course.ID, nil, descriptors, parts)
	if err != nil {
		logrus.Errorf("Failed to create course videos: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create course videos"})
		return
	}

	course.VideoIDs = videoIDs(videos)
	if err := ctrl.courses.Update(ctx, &course); err != nil {
		logrus.Errorf("Failed to attach course videos: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create course"})
		return
	}

	course.Videos = videos
	if len(videos) > 0 {
		course.FirstVideoURL = videos[0].VideoFile.URL
	}

	c.JSON(http.StatusCreated, course)
}

// @Summary Update course
// @Description Update course fields and reconcile the owned videos against
// @Description the submitted videosData list. Videos absent from the list are removed.
// @Tags Courses
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} models.Course
// @Failure 404 {object} models.ErrorResponse
// @Router /api/courses/{id} [put]
func (ctrl *CourseController) UpdateCourse(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Course not found"})
		return
	}

	course, err := ctrl.courses.FindByID(ctx, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Course not found"})
		return
	}

	if v, ok := c.GetPostForm("title"); ok {
		course.Title = v
	}
	if v, ok := c.GetPostForm("description"); ok {
		course.Description = v
	}
	if v, ok := c.GetPostForm("instructor"); ok {
		course.Instructor = v
	}
	if v, ok := c.GetPostForm("price"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			course.Price = f
		}
	}
	if v, ok := c.GetPostForm("rating"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			course.Rating = f
		}
	}
	if v, ok := c.GetPostForm("reviews"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			course.Reviews = n
		}
	}
	if v, ok := c.GetPostForm("isFeatured"); ok {
		course.IsFeatured = v == "true"
	}
	if v, ok := c.GetPostForm("difficultyLevel"); ok {
		course.DifficultyLevel = v
	}
	if v, ok := c.GetPostForm("language"); ok {
		course.Language = v
	}
	if v, ok := c.GetPostForm("topics"); ok {
		course.Topics = models.SplitList(v)
	}
	if v, ok := c.GetPostForm("totalDuration"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			course.TotalDuration = f
		}
	}
	if v, ok := c.GetPostForm("numberOfLectures"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			course.NumberOfLectures = n
		}
	}
	if v, ok := c.GetPostForm("category"); ok {
		course.Category = v
	}
	if v, ok := c.GetPostForm("tags"); ok {
		course.Tags = models.SplitList(v)
	}
	if v, ok := c.GetPostForm("requirements"); ok {
		course.Requirements = models.SplitList(v)
	}
	if v, ok := c.GetPostForm("whatYouWillLearn"); ok {
		course.WhatYouWillLearn = models.SplitList(v)
	}
	if v, ok := c.GetPostForm("saleEnabled"); ok {
		course.SaleEnabled = v == "true"
	}
	if v, ok := c.GetPostForm("salePrice"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			course.SalePrice = f
		}
	}

	if file, err := c.FormFile("image"); err == nil {
		if err := ctrl.assets.ValidateImageFile(file); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		if !course.Image.IsZero() {
			if err := ctrl.assets.DeleteImage(ctx, course.Image.PublicID); err != nil {
				logrus.Errorf("Cloudinary delete failed: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to replace course image"})
				return
			}
		}
		ref, err := ctrl.assets.UploadImage(ctx, file, models.FolderCourseImages)
		if err != nil {
			logrus.Errorf("Cloudinary upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to upload course image"})
			return
		}
		course.Image = ref
	}

	if file, err := c.FormFile("shortVideo"); err == nil {
		if err := ctrl.svc.AttachShortVideo(ctx, course, file); err != nil {
			logrus.Errorf("Cloudinary upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to replace short video"})
			return
		}
	}

	// Only reconcile videos when the client actually sent a list; an
	// update that omits videosData leaves the owned videos untouched.
	if raw, ok := c.GetPostForm("videosData"); ok {
		descriptors := models.ParseVideoDescriptors(raw)
		form, _ := c.MultipartForm()
		parts := services.ResolveVideoParts(form)

		videos, err := ctrl.svc.ReconcileVideos(ctx, course.ID, course.VideoIDs, descriptors, parts)
		if err != nil {
			logrus.Errorf("Failed to reconcile course videos: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update course videos"})
			return
		}
		course.VideoIDs = videoIDs(videos)
		course.Videos = videos
		if len(videos) > 0 {
			course.FirstVideoURL = videos[0].VideoFile.URL
		}
	}

	if err := ctrl.courses.Update(ctx, course); err != nil {
		logrus.Errorf("Failed to update course: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update course"})
		return
	}

	if course.Videos == nil {
		if err := ctrl.populate(c, course); err != nil {
			logrus.Errorf("Failed to populate course videos: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update course"})
			return
		}
	}

	c.JSON(http.StatusOK, course)
}

// @Summary Delete course
// @Description Delete a course together with its image, short video and owned videos.
// @Tags Courses
// @Security BearerAuth
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /api/courses/{id} [delete]
func (ctrl *CourseController) DeleteCourse(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Course not found"})
		return
	}

	course, err := ctrl.courses.FindByID(ctx, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Course not found"})
		return
	}

	if !course.Image.IsZero() {
		if err := ctrl.assets.DeleteImage(ctx, course.Image.PublicID); err != nil {
			logrus.Errorf("Cloudinary delete failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete course assets"})
			return
		}
	}
	if !course.ShortVideoLink.IsZero() {
		if err := ctrl.assets.DeleteVideo(ctx, course.ShortVideoLink.PublicID); err != nil {
			logrus.Errorf("Cloudinary delete failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete course assets"})
			return
		}
	}

	if err := ctrl.svc.DeleteCourseVideos(ctx, course.VideoIDs); err != nil {
		logrus.Errorf("Failed to delete course videos: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete course videos"})
		return
	}

	if err := ctrl.courses.Delete(ctx, id); err != nil {
		logrus.Errorf("Failed to delete course: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete course"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Course removed successfully."})
}

func videoIDs(videos []models.Video) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(videos))
	for _, v := range videos {
		ids = append(ids, v.ID)
	}
	return ids
}
