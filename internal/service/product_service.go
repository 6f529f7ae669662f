package service

import (
	"context"
	"errors"
	"strings"

	"unimarket/internal/domain"
	"unimarket/internal/repository"
)

// ProductInput holds the client-supplied product fields.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Image       string
	CategoryID  uint
}

// ProductService manages the product catalog. Mutations are restricted to
// the owning seller.
type ProductService struct {
	products   repository.ProductRepository
	users      repository.UserRepository
	categories repository.CategoryRepository
}

func NewProductService(products repository.ProductRepository, users repository.UserRepository, categories repository.CategoryRepository) *ProductService {
	return &ProductService{products: products, users: users, categories: categories}
}

func (s *ProductService) validate(in ProductInput) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Description) == "" {
		return ErrInvalidInput
	}
	if in.Price <= 0 {
		return ErrInvalidInput
	}
	return nil
}

// Create registers a product owned by sellerID. The seller must exist and
// hold the seller role; the category must exist.
func (s *ProductService) Create(ctx context.Context, sellerID uint, in ProductInput) (*domain.Product, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	seller, err := s.users.GetByID(ctx, sellerID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if seller.Role != domain.RoleSeller && seller.Role != domain.RoleAdmin {
		return nil, ErrNotSeller
	}
	if _, err := s.categories.GetByID(ctx, in.CategoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	product := domain.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Image:       in.Image,
		SellerID:    sellerID,
		CategoryID:  in.CategoryID,
	}
	if err := s.products.Create(ctx, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Update modifies a product, owner only.
func (s *ProductService) Update(ctx context.Context, productID, callerID uint, in ProductInput) (*domain.Product, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	product, err := s.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.SellerID != callerID {
		return nil, ErrNotOwner
	}
	if in.CategoryID != product.CategoryID {
		if _, err := s.categories.GetByID(ctx, in.CategoryID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
	}
	product.Name = in.Name
	product.Description = in.Description
	product.Price = in.Price
	product.Image = in.Image
	product.CategoryID = in.CategoryID
	if err := s.products.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// Delete removes a product, owner only.
func (s *ProductService) Delete(ctx context.Context, productID, callerID uint) error {
	product, err := s.Get(ctx, productID)
	if err != nil {
		return err
	}
	if product.SellerID != callerID {
		return ErrNotOwner
	}
	return s.products.Delete(ctx, productID)
}

// Get returns one product.
func (s *ProductService) Get(ctx context.Context, productID uint) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, productID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return product, nil
}

// List returns the whole catalog.
func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

// ListByCategory returns the catalog filtered by category.
func (s *ProductService) ListByCategory(ctx context.Context, categoryID uint) ([]domain.Product, error) {
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return s.products.ListByCategory(ctx, categoryID)
}

// ListBySeller returns the catalog filtered by seller.
func (s *ProductService) ListBySeller(ctx context.Context, sellerID uint) ([]domain.Product, error) {
	if _, err := s.users.GetByID(ctx, sellerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.products.ListBySeller(ctx, sellerID)
}
