package repository

import (
	"context"

	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RatingRepository struct {
	DB *pgxpool.Pool
}

func NewRatingRepository(db *pgxpool.Pool) *RatingRepository {
	return &RatingRepository{DB: db}
}

func (r *RatingRepository) Create(ctx context.Context, rt *model.Rating) (int64, error) {
	var id int64
	query := `INSERT INTO ratings (customerid, productid, rating, comment)
		VALUES ($1, $2, $3, $4) RETURNING ratingid`
	if err := r.DB.QueryRow(ctx, query, rt.CustomerID, rt.ProductID, rt.Rating, rt.Comment).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *RatingRepository) GetByID(ctx context.Context, ratingID int64) (*model.Rating, error) {
	query := `SELECT ratingid, customerid, productid, rating, comment, ratingdate
		FROM ratings WHERE ratingid=$1`
	return scanRating(r.DB.QueryRow(ctx, query, ratingID))
}

func (r *RatingRepository) ListByProduct(ctx context.Context, productID int64) ([]model.Rating, error) {
	query := `SELECT ratingid, customerid, productid, rating, comment, ratingdate
		FROM ratings WHERE productid=$1 ORDER BY ratingid`
	rows, err := r.DB.Query(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Rating
	for rows.Next() {
		var rt model.Rating
		if err := rows.Scan(&rt.RatingID, &rt.CustomerID, &rt.ProductID, &rt.Rating, &rt.Comment, &rt.RatingDate); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

func scanRating(row pgx.Row) (*model.Rating, error) {
	var rt model.Rating
	if err := row.Scan(&rt.RatingID, &rt.CustomerID, &rt.ProductID, &rt.Rating, &rt.Comment, &rt.RatingDate); err != nil {
		return nil, err
	}
	return &rt, nil
}
