package service

import (
	"context"
	"errors"
	"time"

	"unimarket/internal/domain"
	"unimarket/internal/repository"
)

// ReviewService enforces the one-review-per-(user, product) invariant.
type ReviewService struct {
	reviews  repository.ReviewRepository
	users    repository.UserRepository
	products repository.ProductRepository
}

func NewReviewService(reviews repository.ReviewRepository, users repository.UserRepository, products repository.ProductRepository) *ReviewService {
	return &ReviewService{reviews: reviews, users: users, products: products}
}

// Create validates the rating, verifies both references exist and rejects a
// second review for the same (user, product) pair.
func (s *ReviewService) Create(ctx context.Context, userID, productID uint, rating int, comment string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if _, err := s.reviews.GetByUserAndProduct(ctx, userID, productID); err == nil {
		return nil, ErrDuplicateReview
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	review := domain.Review{
		UserID:    userID,
		ProductID: productID,
		Rating:    rating,
		Comment:   comment,
		Date:      time.Now().UTC(),
	}
	if err := s.reviews.Create(ctx, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// Update replaces rating and comment of the caller's review. The uniqueness
// invariant is not re-checked here: the pair cannot change on update.
func (s *ReviewService) Update(ctx context.Context, reviewID, callerID uint, rating int, comment string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	review, err := s.reviews.GetByID(ctx, reviewID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, err
	}
	if review.UserID != callerID {
		return nil, ErrNotOwner
	}
	review.Rating = rating
	review.Comment = comment
	if err := s.reviews.Update(ctx, review); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}

// Get returns one review by ID.
func (s *ReviewService) Get(ctx context.Context, reviewID uint) (*domain.Review, error) {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, err
	}
	return review, nil
}

// Delete removes the caller's review.
func (s *ReviewService) Delete(ctx context.Context, reviewID, callerID uint) error {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrReviewNotFound
	}
	if err != nil {
		return err
	}
	if review.UserID != callerID {
		return ErrNotOwner
	}
	return s.reviews.Delete(ctx, reviewID)
}

// ListByUser returns the user's reviews with display fields resolved.
func (s *ReviewService) ListByUser(ctx context.Context, userID uint) ([]domain.Review, error) {
	return s.reviews.ListByUser(ctx, userID)
}

// ListByProduct returns a product's reviews with display fields resolved.
func (s *ReviewService) ListByProduct(ctx context.Context, productID uint) ([]domain.Review, error) {
	return s.reviews.ListByProduct(ctx, productID)
}
