package service

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"workspacebcn/internal/apierror"
	"workspacebcn/internal/dto"
	"workspacebcn/internal/infra"
	"workspacebcn/internal/model"
	"workspacebcn/internal/repository"
)

// ProductService defines the business logic contract for the catalog.
type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context) ([]dto.ProductResponse, error)
	Search(ctx context.Context, q string) ([]dto.ProductResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UploadImage(ctx context.Context, filename string, content io.Reader) (*dto.UploadImageResponse, error)
}

type productService struct {
	repo     repository.ProductRepository
	notifier infra.CatalogNotifier
	assets   *infra.AssetClient
}

func NewProductService(repo repository.ProductRepository, notifier infra.CatalogNotifier, assets *infra.AssetClient) ProductService {
	return &productService{repo: repo, notifier: notifier, assets: assets}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if req.Name == "" {
		return nil, apierror.BadRequest("El nombre del producto es obligatorio")
	}
	if !model.ValidCategory(req.Category) {
		return nil, apierror.BadRequest("La categoría no es válida")
	}
	if req.Price == nil || req.Price.LessThanOrEqual(decimal.Zero) {
		return nil, apierror.BadRequest("El precio debe ser un número mayor que 0")
	}

	p := &model.Product{
		Category:    req.Category,
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Stock:       2,
		MinStock:    2,
		MaxStock:    10,
		Image:       req.Image,
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, apierror.BadRequest("El stock no puede ser negativo")
		}
		p.Stock = *req.Stock
	}
	if req.MinStock != nil {
		p.MinStock = *req.MinStock
	}
	if req.MaxStock != nil {
		p.MaxStock = *req.MaxStock
	}
	if p.MinStock < 0 || p.MaxStock < 0 {
		return nil, apierror.BadRequest("El stock mínimo y máximo no pueden ser negativos")
	}
	if p.MinStock > p.MaxStock {
		return nil, apierror.BadRequest("El stock mínimo no puede ser mayor que el stock máximo")
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.notifier.ProductsUpdated(ctx, p.ID.String(), "created")
	return productToResponse(p), nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Producto no encontrado")
	}
	return productToResponse(p), nil
}

func (s *productService) List(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return productsToResponse(products), nil
}

func (s *productService) Search(ctx context.Context, q string) ([]dto.ProductResponse, error) {
	if q == "" {
		return []dto.ProductResponse{}, nil
	}
	products, err := s.repo.SearchByName(ctx, q)
	if err != nil {
		return nil, err
	}
	return productsToResponse(products), nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Producto no encontrado")
	}

	if req.Category != nil {
		if !model.ValidCategory(*req.Category) {
			return nil, apierror.BadRequest("La categoría no es válida")
		}
		p.Category = *req.Category
	}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, apierror.BadRequest("El nombre del producto es obligatorio")
		}
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.Price != nil {
		if req.Price.LessThanOrEqual(decimal.Zero) {
			return nil, apierror.BadRequest("El precio debe ser un número mayor que 0")
		}
		p.Price = *req.Price
	}
	// Stock edits through this endpoint are intentionally rejected: stock only
	// moves through the inventory ledger.
	if req.Stock != nil && *req.Stock != p.Stock {
		return nil, apierror.BadRequest("El stock se modifica únicamente mediante movimientos de inventario")
	}
	if req.MinStock != nil {
		p.MinStock = *req.MinStock
	}
	if req.MaxStock != nil {
		p.MaxStock = *req.MaxStock
	}
	if p.MinStock < 0 || p.MaxStock < 0 {
		return nil, apierror.BadRequest("El stock mínimo y máximo no pueden ser negativos")
	}
	if p.MinStock > p.MaxStock {
		return nil, apierror.BadRequest("El stock mínimo no puede ser mayor que el stock máximo")
	}
	if req.Image != nil {
		p.Image = *req.Image
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.notifier.ProductsUpdated(ctx, p.ID.String(), "updated")
	return productToResponse(p), nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apierror.NotFound("Producto no encontrado")
	}
	s.notifier.ProductsUpdated(ctx, id.String(), "deleted")
	return nil
}

// UploadImage pushes the file to the asset store and returns the opaque URL.
func (s *productService) UploadImage(ctx context.Context, filename string, content io.Reader) (*dto.UploadImageResponse, error) {
	result, err := s.assets.Upload(ctx, "products", filename, content)
	if err != nil {
		return nil, err
	}
	return &dto.UploadImageResponse{
		URL:     result.URL,
		Mensaje: "Imagen subida correctamente",
	}, nil
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID.String(),
		Category:    p.Category,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		MinStock:    p.MinStock,
		MaxStock:    p.MaxStock,
		Image:       p.Image,
		CreatedAt:   p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func productsToResponse(products []model.Product) []dto.ProductResponse {
	resp := make([]dto.ProductResponse, len(products))
	for i := range products {
		resp[i] = *productToResponse(&products[i])
	}
	return resp
}
