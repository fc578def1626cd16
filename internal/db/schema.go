package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		customerid   BIGSERIAL PRIMARY KEY,
		firstname    TEXT NOT NULL,
		lastname     TEXT NOT NULL,
		email        TEXT NOT NULL UNIQUE,
		passwordhash TEXT NOT NULL,
		roles        TEXT[] NOT NULL DEFAULT '{basic}',
		customertype TEXT NOT NULL,
		active       BOOLEAN NOT NULL DEFAULT FALSE,
		confirmed    BOOLEAN NOT NULL DEFAULT FALSE,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		deleted_at   TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS confirmation_tokens (
		id           BIGSERIAL PRIMARY KEY,
		customerid   BIGINT NOT NULL REFERENCES customers(customerid),
		token        TEXT NOT NULL UNIQUE,
		expires_at   TIMESTAMPTZ NOT NULL,
		confirmed_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS total_spending (
		customerid BIGINT PRIMARY KEY REFERENCES customers(customerid),
		total      DOUBLE PRECISION NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS addresses (
		addressid   BIGSERIAL PRIMARY KEY,
		customerid  BIGINT NOT NULL REFERENCES customers(customerid),
		city        TEXT NOT NULL,
		street      TEXT NOT NULL,
		zip         TEXT NOT NULL,
		addresstype TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		productid       BIGSERIAL PRIMARY KEY,
		name            TEXT NOT NULL,
		vendor          TEXT NOT NULL,
		price           DOUBLE PRECISION NOT NULL CHECK (price > 0),
		instock         INTEGER NOT NULL DEFAULT 0 CHECK (instock >= 0),
		category        TEXT NOT NULL DEFAULT 'Other',
		customertype    TEXT NOT NULL,
		promotionstatus TEXT NOT NULL DEFAULT 'NOT_ON_PROMOTION',
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
		deleted_at      TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		orderid        BIGSERIAL PRIMARY KEY,
		customerid     BIGINT NOT NULL REFERENCES customers(customerid),
		orderdate      TIMESTAMPTZ,
		totalprice     DOUBLE PRECISION NOT NULL DEFAULT 0,
		comments       TEXT,
		orderstatus    TEXT NOT NULL DEFAULT 'NEW',
		shippingmethod TEXT,
		paymentstatus  TEXT NOT NULL DEFAULT 'PENDING'
	)`,
	`CREATE TABLE IF NOT EXISTS orderitems (
		orderitemid   BIGSERIAL PRIMARY KEY,
		orderid       BIGINT NOT NULL REFERENCES orders(orderid),
		productid     BIGINT NOT NULL REFERENCES products(productid),
		piecesordered INTEGER NOT NULL CHECK (piecesordered > 0),
		totalprice    DOUBLE PRECISION NOT NULL,
		UNIQUE (orderid, productid)
	)`,
	`CREATE TABLE IF NOT EXISTS emporium_listings (
		listingid  BIGSERIAL PRIMARY KEY,
		productid  BIGINT NOT NULL UNIQUE REFERENCES products(productid),
		customerid BIGINT NOT NULL REFERENCES customers(customerid),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS ratings (
		ratingid   BIGSERIAL PRIMARY KEY,
		customerid BIGINT NOT NULL REFERENCES customers(customerid),
		productid  BIGINT NOT NULL REFERENCES products(productid),
		rating     INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
		comment    TEXT NOT NULL,
		ratingdate TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS webshop_balance (
		balanceid BIGINT PRIMARY KEY,
		total     DOUBLE PRECISION NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		paymentid     BIGSERIAL PRIMARY KEY,
		orderid       BIGINT NOT NULL REFERENCES orders(orderid),
		amount        DOUBLE PRECISION NOT NULL,
		paymentstatus TEXT NOT NULL DEFAULT 'PENDING',
		provider      TEXT NOT NULL,
		providerref   TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		paid_at       TIMESTAMPTZ
	)`,
}

// EnsureSchema creates the tables on a fresh database.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
