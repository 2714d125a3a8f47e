package repository

import (
	"context"
	"fmt"

	"github.com/C4ndyFl4mes/dt207g-project/internal/data/entity"
	"github.com/C4ndyFl4mes/dt207g-project/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	FindByProductID(ctx context.Context, productID uuid.UUID, limit, offset int) ([]*entity.Review, error)
	FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*entity.Review, error)
	CountByProductID(ctx context.Context, productID uuid.UUID) (int64, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByProductIDs(ctx context.Context, productIDs []uuid.UUID) (int64, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error)

	// AverageRating computes the mean rating at read time; zero when
	// the product has no reviews.
	AverageRating(ctx context.Context, productID uuid.UUID) (float64, error)
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

// Create inserts a review. The unique (created_by, product_id) index is
// the final arbiter against double posting; a violation surfaces as
// ErrDuplicate.
func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, product_id, rating, message, created_by, updated_by,
		                     created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.ProductID,
		review.Rating,
		review.Message,
		review.CreatedBy,
		review.UpdatedBy,
		review.CreatedAt,
		review.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("user_id", review.CreatedBy.String()),
			zap.String("product_id", review.ProductID.String()),
		)
		return fmt.Errorf("create review for product %s by user %s: %w",
			review.ProductID.String(), review.CreatedBy.String(), err)
	}

	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	query := `
		SELECT id, product_id, rating, message, created_by, updated_by, created_at, updated_at
		FROM reviews
		WHERE id = $1
	`

	var review entity.Review
	err := r.db.QueryRow(ctx, query, id).Scan(
		&review.ID,
		&review.ProductID,
		&review.Rating,
		&review.Message,
		&review.CreatedBy,
		&review.UpdatedBy,
		&review.CreatedAt,
		&review.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return nil, fmt.Errorf("find review by ID %s: %w", id.String(), err)
	}

	return &review, nil
}

func (r *reviewRepository) FindByProductID(ctx context.Context, productID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	query := `
		SELECT id, product_id, rating, message, created_by, updated_by, created_at, updated_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, productID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reviews by product",
			zap.Error(err),
			zap.String("product_id", productID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find reviews by product %s: %w", productID.String(), err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		var review entity.Review
		err := rows.Scan(
			&review.ID,
			&review.ProductID,
			&review.Rating,
			&review.Message,
			&review.CreatedBy,
			&review.UpdatedBy,
			&review.CreatedAt,
			&review.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &review)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate reviews rows: %w", err)
	}

	return reviews, nil
}

func (r *reviewRepository) FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*entity.Review, error) {
	query := `
		SELECT id, product_id, rating, message, created_by, updated_by, created_at, updated_at
		FROM reviews
		WHERE created_by = $1 AND product_id = $2
		LIMIT 1
	`

	var review entity.Review
	err := r.db.QueryRow(ctx, query, userID, productID).Scan(
		&review.ID,
		&review.ProductID,
		&review.Rating,
		&review.Message,
		&review.CreatedBy,
		&review.UpdatedBy,
		&review.CreatedAt,
		&review.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by user and product",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("product_id", productID.String()),
		)
		return nil, fmt.Errorf("find review by user %s and product %s: %w",
			userID.String(), productID.String(), err)
	}

	return &review, nil
}

func (r *reviewRepository) CountByProductID(ctx context.Context, productID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM reviews WHERE product_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, productID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count reviews by product",
			zap.Error(err),
			zap.String("product_id", productID.String()),
		)
		return 0, fmt.Errorf("count reviews by product %s: %w", productID.String(), err)
	}

	return count, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	query := `
		UPDATE reviews
		SET rating = $2, message = $3, updated_by = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		review.ID,
		review.Rating,
		review.Message,
		review.UpdatedBy,
		review.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update review",
			zap.Error(err),
			zap.String("review_id", review.ID.String()),
		)
		return fmt.Errorf("update review %s: %w", review.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %s not found", review.ID.String())
	}

	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM reviews WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return fmt.Errorf("delete review %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %s not found", id.String())
	}

	r.log.Info("Review deleted", zap.String("review_id", id.String()))
	return nil
}

// DeleteByProductIDs removes all reviews on the given products in one
// statement; used by the cascade engine.
func (r *reviewRepository) DeleteByProductIDs(ctx context.Context, productIDs []uuid.UUID) (int64, error) {
	if len(productIDs) == 0 {
		return 0, nil
	}

	query := `DELETE FROM reviews WHERE product_id = ANY($1)`

	result, err := r.db.Exec(ctx, query, productIDs)
	if err != nil {
		r.log.Error("Failed to delete reviews by products",
			zap.Error(err),
			zap.Int("product_count", len(productIDs)),
		)
		return 0, fmt.Errorf("delete reviews for %d products: %w", len(productIDs), err)
	}

	return result.RowsAffected(), nil
}

// DeleteByUserID removes all reviews authored by a user; used when the
// account is deleted.
func (r *reviewRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `DELETE FROM reviews WHERE created_by = $1`

	result, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to delete reviews by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("delete reviews by user %s: %w", userID.String(), err)
	}

	return result.RowsAffected(), nil
}

func (r *reviewRepository) AverageRating(ctx context.Context, productID uuid.UUID) (float64, error) {
	query := `SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE product_id = $1`

	var avgRating float64
	err := r.db.QueryRow(ctx, query, productID).Scan(&avgRating)
	if err != nil {
		r.log.Error("Failed to get product average rating",
			zap.Error(err),
			zap.String("product_id", productID.String()),
		)
		return 0, fmt.Errorf("get average rating for product %s: %w", productID.String(), err)
	}

	return avgRating, nil
}
