package database

import (
	"context"
	"database/sql"
)

// Migrate creates the schema if it does not exist. The composite unique
// keys on bookings and conversations are load-bearing: they close the
// read-then-write races on duplicate applications and on concurrent
// conversation creation for the same user pair.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
			username VARCHAR(64) NOT NULL,
			credential VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			first_name VARCHAR(64) NOT NULL DEFAULT '',
			last_name VARCHAR(64) NOT NULL DEFAULT '',
			phone VARCHAR(32) NOT NULL DEFAULT '',
			user_type ENUM('trucker','broker','admin') NOT NULL,
			status ENUM('pending','verified','approved','rejected') NOT NULL DEFAULT 'pending',
			verification_token VARCHAR(128) NULL,
			token_expiry DATETIME NULL,
			verification_notes TEXT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE KEY uq_users_username (username),
			UNIQUE KEY uq_users_email (email),
			KEY idx_users_token (verification_token)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS sessions (
			id BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
			user_id BIGINT UNSIGNED NOT NULL,
			token_hash CHAR(64) NOT NULL,
			expires_at DATETIME NOT NULL,
			revoked_at DATETIME NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uq_sessions_token (token_hash),
			KEY idx_sessions_user (user_id),
			CONSTRAINT fk_sessions_user FOREIGN KEY (user_id) REFERENCES users(id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS trucker_profiles (
			user_id BIGINT UNSIGNED PRIMARY KEY,
			address VARCHAR(255) NOT NULL DEFAULT '',
			city VARCHAR(64) NOT NULL DEFAULT '',
			state VARCHAR(32) NOT NULL DEFAULT '',
			zip VARCHAR(16) NOT NULL DEFAULT '',
			license_number VARCHAR(64) NOT NULL DEFAULT '',
			license_class VARCHAR(16) NOT NULL DEFAULT '',
			truck_type VARCHAR(64) NOT NULL DEFAULT '',
			service_areas JSON NULL,
			available TINYINT(1) NOT NULL DEFAULT 1,
			certificate_ref VARCHAR(255) NOT NULL DEFAULT '',
			permit_ref VARCHAR(255) NOT NULL DEFAULT '',
			vehicles JSON NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			CONSTRAINT fk_trucker_profiles_user FOREIGN KEY (user_id) REFERENCES users(id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS broker_profiles (
			user_id BIGINT UNSIGNED PRIMARY KEY,
			company_name VARCHAR(128) NOT NULL,
			company_address VARCHAR(255) NOT NULL,
			company_city VARCHAR(64) NOT NULL,
			company_state VARCHAR(32) NOT NULL,
			company_zip VARCHAR(16) NOT NULL,
			business_type VARCHAR(64) NOT NULL DEFAULT '',
			tax_id VARCHAR(64) NOT NULL DEFAULT '',
			registration_ref VARCHAR(255) NOT NULL DEFAULT '',
			permit_ref VARCHAR(255) NOT NULL DEFAULT '',
			contact_name VARCHAR(128) NOT NULL DEFAULT '',
			contact_position VARCHAR(64) NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			CONSTRAINT fk_broker_profiles_user FOREIGN KEY (user_id) REFERENCES users(id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS jobs (
			id BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
			broker_id BIGINT UNSIGNED NOT NULL,
			title VARCHAR(255) NOT NULL,
			description TEXT NOT NULL,
			origin_city VARCHAR(64) NOT NULL,
			origin_state VARCHAR(32) NOT NULL,
			destination_city VARCHAR(64) NOT NULL,
			destination_state VARCHAR(32) NOT NULL,
			distance INT UNSIGNED NULL,
			price BIGINT UNSIGNED NOT NULL,
			cargo_type VARCHAR(64) NOT NULL,
			weight INT UNSIGNED NULL,
			load_type VARCHAR(64) NOT NULL,
			pickup_date DATETIME NOT NULL,
			company_name VARCHAR(128) NOT NULL DEFAULT '',
			status ENUM('active','pending','completed','cancelled') NOT NULL DEFAULT 'active',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			KEY idx_jobs_broker (broker_id),
			KEY idx_jobs_status_created (status, created_at),
			CONSTRAINT fk_jobs_broker FOREIGN KEY (broker_id) REFERENCES users(id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS bookings (
			id BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
			job_id BIGINT UNSIGNED NOT NULL,
			trucker_id BIGINT UNSIGNED NOT NULL,
			status ENUM('pending','accepted','rejected','completed') NOT NULL DEFAULT 'pending',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uq_bookings_job_trucker (job_id, trucker_id),
			KEY idx_bookings_trucker (trucker_id),
			CONSTRAINT fk_bookings_job FOREIGN KEY (job_id) REFERENCES jobs(id),
			CONSTRAINT fk_bookings_trucker FOREIGN KEY (trucker_id) REFERENCES users(id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS conversations (
			id BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
			user1_id BIGINT UNSIGNED NOT NULL,
			user2_id BIGINT UNSIGNED NOT NULL,
			last_message_time DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uq_conversations_pair (user1_id, user2_id),
			KEY idx_conversations_user2 (user2_id),
			CONSTRAINT fk_conversations_user1 FOREIGN KEY (user1_id) REFERENCES users(id),
			CONSTRAINT fk_conversations_user2 FOREIGN KEY (user2_id) REFERENCES users(id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS messages (
			id BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
			sender_id BIGINT UNSIGNED NOT NULL,
			receiver_id BIGINT UNSIGNED NOT NULL,
			content TEXT NOT NULL,
			is_read TINYINT(1) NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			KEY idx_messages_pair (sender_id, receiver_id, created_at),
			KEY idx_messages_receiver_unread (receiver_id, is_read),
			CONSTRAINT fk_messages_sender FOREIGN KEY (sender_id) REFERENCES users(id),
			CONSTRAINT fk_messages_receiver FOREIGN KEY (receiver_id) REFERENCES users(id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS admin_actions (
			id BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
			admin_id BIGINT UNSIGNED NOT NULL,
			user_id BIGINT UNSIGNED NOT NULL,
			action ENUM('approve','reject') NOT NULL,
			reason TEXT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			KEY idx_admin_actions_admin (admin_id, created_at),
			CONSTRAINT fk_admin_actions_admin FOREIGN KEY (admin_id) REFERENCES users(id),
			CONSTRAINT fk_admin_actions_user FOREIGN KEY (user_id) REFERENCES users(id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}
