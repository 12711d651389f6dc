package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/pubqr/app/models"
	"github.com/shashiranjanraj/pubqr/app/repositories"
	"github.com/shashiranjanraj/pubqr/config"
	"github.com/shashiranjanraj/pubqr/pkg/cache"
	"github.com/shashiranjanraj/pubqr/pkg/logger"
	"github.com/shashiranjanraj/pubqr/pkg/metrics"
	"github.com/shashiranjanraj/pubqr/pkg/storage"
	"github.com/shashiranjanraj/pubqr/pkg/validate"
)

// ProductsCacheKey holds the full product list.
const ProductsCacheKey = "catalog:products"

// CreateProductInput is the body of POST /products.
type CreateProductInput struct {
	Name       string `json:"name"       validate:"required,max=120"`
	Price      int64  `json:"price"      validate:"gt=0"`
	CategoryID string `json:"categoryId" validate:"required"`
	Img        string `json:"img"        validate:"nullable,url"`
}

// CreateCategoryInput is the body of POST /categories.
type CreateCategoryInput struct {
	Name string `json:"name" validate:"required,max=60"`
}

var allowedImageTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type CatalogService struct {
	repo  repositories.CatalogRepository
	cache cache.Cache
	disk  storage.Disk
	ttl   time.Duration
	now   func() time.Time
}

// NewCatalogService wires the repository with an optional cache and disk;
// nil disables either.
func NewCatalogService(repo repositories.CatalogRepository, c cache.Cache, disk storage.Disk) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: c,
		disk:  disk,
		ttl:   config.CatalogCacheTTL(),
		now:   time.Now,
	}
}

// Products returns the menu filtered by category and a case-insensitive name
// query. Empty filters return everything.
func (s *CatalogService) Products(ctx context.Context, category, query string) ([]models.Product, error) {
	all, err := s.allProducts(ctx)
	if err != nil {
		return nil, err
	}
	if category == "" && query == "" {
		return all, nil
	}
	return models.FilterProducts(all, category, query), nil
}

func (s *CatalogService) allProducts(ctx context.Context) ([]models.Product, error) {
	if s.cache != nil {
		var cached []models.Product
		if s.cache.Get(ctx, ProductsCacheKey, &cached) {
			metrics.CacheHits.WithLabelValues(s.cache.Driver()).Inc()
			return cached, nil
		}
		metrics.CacheMisses.WithLabelValues(s.cache.Driver()).Inc()
	}

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, ProductsCacheKey, products, s.ttl); err != nil {
			logger.WithCtx(ctx).Warn("catalog cache set failed", "error", err)
		}
	}
	return products, nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, ProductsCacheKey); err != nil {
		logger.WithCtx(ctx).Warn("catalog cache invalidate failed", "error", err)
	}
}

func (s *CatalogService) Product(ctx context.Context, id string) (models.Product, error) {
	oid, err := models.ParseID(id)
	if err != nil {
		return models.Product{}, fmt.Errorf("%w: %q", models.ErrProductNotFound, id)
	}
	return s.repo.FindProduct(ctx, oid)
}

func (s *CatalogService) CreateProduct(ctx context.Context, in CreateProductInput) (models.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.Product{}, invalidFields(errs)
	}
	catID, err := models.ParseID(in.CategoryID)
	if err != nil {
		return models.Product{}, invalidFields(map[string]string{"categoryId": "The categoryId must be a valid identifier."})
	}
	if _, err := s.repo.FindCategory(ctx, catID); err != nil {
		if errors.Is(err, models.ErrCategoryNotFound) {
			return models.Product{}, invalidFields(map[string]string{"categoryId": "The selected categoryId is invalid."})
		}
		return models.Product{}, err
	}

	p := models.Product{
		Name:       in.Name,
		Price:      in.Price,
		CategoryID: catID.Hex(),
		ImageURL:   in.Img,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.repo.CreateProduct(ctx, &p); err != nil {
		return models.Product{}, err
	}
	s.invalidate(ctx)
	logger.WithCtx(ctx).Info("product created", "product_id", p.ID.Hex(), "name", p.Name)
	return p, nil
}

// SetProductImage stores an uploaded image on the disk and points the
// product's img at it.
func (s *CatalogService) SetProductImage(ctx context.Context, id string, r io.Reader, contentType string) (models.Product, error) {
	if s.disk == nil {
		return models.Product{}, errors.New("image storage is not configured")
	}
	p, err := s.Product(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return models.Product{}, invalidFields(map[string]string{"image": "The image must be a png, jpeg, webp or gif file."})
	}

	key := path.Join("products", p.ID.Hex()+"-"+primitive.NewObjectID().Hex()+ext)
	if err := s.disk.Put(ctx, key, r, contentType); err != nil {
		return models.Product{}, err
	}
	updated, err := s.repo.SetProductImage(ctx, p.ID, s.disk.URL(key))
	if err != nil {
		_ = s.disk.Delete(ctx, key)
		return models.Product{}, err
	}
	s.invalidate(ctx)
	logger.WithCtx(ctx).Info("product image stored", "product_id", p.ID.Hex(), "disk", s.disk.Name(), "key", key)
	return updated, nil
}

func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, in CreateCategoryInput) (models.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.Category{}, invalidFields(errs)
	}
	c := models.Category{Name: in.Name}
	if err := s.repo.CreateCategory(ctx, &c); err != nil {
		return models.Category{}, err
	}
	return c, nil
}
