package db

import (
	"database/sql"
	"log"

	_ "github.com/go-sql-driver/mysql"
)

func InitDB(dbURL string) *sql.DB {
	db, err := sql.Open("mysql", dbURL)
	if err != nil {
		log.Fatal("failed to open database:", err)
	}

	err = db.Ping()
	if err != nil {
		log.Fatal("database is not responding:", err)
	}

	log.Println("connected to database")
	return db
}

func RunMigrations(db *sql.DB) {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id CHAR(36) PRIMARY KEY,
			username VARCHAR(100) NOT NULL,
			email VARCHAR(100) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			admin BOOLEAN NOT NULL DEFAULT FALSE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uq_email (email),
			UNIQUE KEY uq_username (username)
		);`,
		`CREATE TABLE IF NOT EXISTS products (
			id CHAR(36) PRIMARY KEY,
			seq BIGINT AUTO_INCREMENT,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL,
			category VARCHAR(100) NOT NULL,
			original_price DOUBLE NOT NULL,
			picture_url VARCHAR(2048) NOT NULL,
			end_date DATETIME NOT NULL,
			seller_id CHAR(36) NOT NULL,
			UNIQUE KEY uq_products_seq (seq),
			INDEX idx_products_seller (seller_id),
			FOREIGN KEY (seller_id) REFERENCES users(id)
		);`,
		`CREATE TABLE IF NOT EXISTS bids (
			id CHAR(36) PRIMARY KEY,
			seq BIGINT AUTO_INCREMENT,
			product_id CHAR(36) NOT NULL,
			bidder_id CHAR(36) NOT NULL,
			price DOUBLE NOT NULL,
			date DATETIME NOT NULL,
			UNIQUE KEY uq_bids_seq (seq),
			INDEX idx_bids_product (product_id),
			INDEX idx_bids_bidder (bidder_id),
			FOREIGN KEY (product_id) REFERENCES products(id),
			FOREIGN KEY (bidder_id) REFERENCES users(id)
		);`,
	}

	for _, q := range queries {
		_, err := db.Exec(q)
		if err != nil {
			log.Fatal("migration failed:", err)
		}
	}
	log.Println("migrations completed")
}
