package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/levelup-gaming/levelup-api/cart"
	"github.com/levelup-gaming/levelup-api/catalog"
	"github.com/levelup-gaming/levelup-api/models"
	"github.com/levelup-gaming/levelup-api/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Common error response helper
func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	ctx.JSON(statusCode, gin.H{
		"message": message,
		"error":   errMsg,
	})
}

type ProductController struct {
	db      *gorm.DB
	catalog *catalog.Repository
}

func NewProductController(db *gorm.DB, catalogRepo *catalog.Repository) *ProductController {
	return &ProductController{db: db, catalog: catalogRepo}
}

func (c *ProductController) GetProducts(ctx *gin.Context) {
	var products []models.Product

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "12"))
	offset := (page - 1) * limit

	query := c.db.Session(&gorm.Session{})

	if search := ctx.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if category := ctx.Query("categoryId"); category != "" {
		query = query.Where("category_id = ?", category)
	}

	result := query.Limit(limit).Offset(offset).Find(&products)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch products", result.Error)
		return
	}

	var count int64
	c.db.Model(&models.Product{}).Count(&count)

	ctx.JSON(http.StatusOK, gin.H{
		"products": products,
		"metadata": gin.H{
			"total": count,
			"page":  page,
			"limit": limit,
		},
	})
}

func (c *ProductController) GetProduct(ctx *gin.Context) {
	productId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	product, err := c.catalog.GetByID(ctx.Request.Context(), productId)
	if err != nil {
		if errors.Is(err, cart.ErrProductNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve product", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, product)
}

func (c *ProductController) CreateProduct(ctx *gin.Context) {
	var product models.Product
	if err := ctx.ShouldBindJSON(&product); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := c.db.Create(&product).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create product", err)
		return
	}

	ctx.JSON(http.StatusCreated, product)
}

// SyncProducts forces a refresh from the remote catalog API.
func (c *ProductController) SyncProducts(ctx *gin.Context) {
	count, err := c.catalog.Sync(ctx.Request.Context())
	if err != nil {
		respondWithError(ctx, http.StatusBadGateway, "Failed to sync products from remote API", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Products synced successfully",
		"count":   count,
	})
}

// getAWSUploader returns a configured AWS S3 uploader
func getAWSUploader() (*manager.Uploader, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return manager.NewUploader(client), nil
}

func (c *ProductController) UploadProductImage(ctx *gin.Context) {
	file, err := ctx.FormFile("image")
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid form data", err)
		return
	}

	productIdStr := ctx.PostForm("productId")
	if productIdStr == "" {
		respondWithError(ctx, http.StatusBadRequest, "Missing productId", nil)
		return
	}

	productId, err := strconv.Atoi(productIdStr)
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid productId", err)
		return
	}

	var product models.Product
	if err := c.db.First(&product, productId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to validate product", err)
		}
		return
	}

	uploader, err := getAWSUploader()
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to configure AWS", err)
		return
	}

	f, err := file.Open()
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Unable to open uploaded file", err)
		return
	}
	defer f.Close()

	// Unique key so re-uploads never overwrite each other
	token, err := utils.GenerateCode(8)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to generate upload key", err)
		return
	}
	key := fmt.Sprintf("%d-%s-%s", productId, token, file.Filename)

	result, err := uploader.Upload(ctx.Request.Context(), &s3.PutObjectInput{
		Bucket:      aws.String("levelup-gaming"),
		Key:         aws.String(key),
		Body:        f,
		ACL:         "public-read",
		ContentType: aws.String(file.Header.Get("Content-Type")),
	})
	if err != nil {
		logrus.Errorf("Error uploading file %s: %v", file.Filename, err)
		respondWithError(ctx, http.StatusInternalServerError, "Failed to upload image", err)
		return
	}

	if err := c.db.Model(&product).Update("image_url", result.Location).Error; err != nil {
		logrus.Errorf("Error saving image url to database: %v", err)
		respondWithError(ctx, http.StatusInternalServerError, "Image uploaded but not saved", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Image uploaded successfully",
		"url":     result.Location,
	})
}
