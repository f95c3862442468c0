package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/apex/log"
	"github.com/google/uuid"

	_ "github.com/go-sql-driver/mysql"

	"citybuddy/config"
	"citybuddy/models"
)

// Store persists completed workflow results. It is an optional collaborator:
// the orchestrator returns results to the caller whether or not a store is
// configured, just without a report identifier.
type Store struct {
	db *sql.DB
}

// New opens a database connection from configuration. Returns (nil, nil)
// when no DB host is configured, which callers must treat as "no store".
func New(cfg *config.Config) (*Store, error) {
	if cfg.DBHost == "" {
		return nil, nil
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &Store{db: db}, nil
}

// NewWithDB wraps an existing connection, for tests.
func NewWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateReportsTable creates the workflow_reports table if it doesn't exist
func (s *Store) CreateReportsTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS workflow_reports (
		id VARCHAR(36) PRIMARY KEY,
		success BOOLEAN NOT NULL,
		agent_type VARCHAR(32),
		intent VARCHAR(32),
		area VARCHAR(255),
		latitude DOUBLE,
		longitude DOUBLE,
		analysis TEXT,
		email_to VARCHAR(255),
		email_subject VARCHAR(512),
		error_text TEXT,
		payload JSON,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_agent_type (agent_type),
		INDEX idx_created_at (created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create workflow_reports table: %w", err)
	}
	log.Info("workflow_reports table verified/created")
	return nil
}

// Save persists one workflow result and returns its generated identifier.
func (s *Store) Save(result *models.WorkflowResult) (string, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to marshal workflow result: %w", err)
	}

	id := uuid.New().String()

	var lat, lon sql.NullFloat64
	if result.Location != nil {
		lat = sql.NullFloat64{Float64: result.Location.Latitude, Valid: true}
		lon = sql.NullFloat64{Float64: result.Location.Longitude, Valid: true}
	}

	emailTo, emailSubject := "", ""
	if result.Email != nil {
		emailTo = result.Email.To
		emailSubject = result.Email.Subject
	}

	query := `
	INSERT INTO workflow_reports (
		id, success, agent_type, intent, area,
		latitude, longitude, analysis, email_to, email_subject,
		error_text, payload
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = s.db.Exec(query,
		id,
		result.Success,
		result.AgentType,
		result.Intent,
		result.Area,
		lat,
		lon,
		result.Analysis,
		emailTo,
		emailSubject,
		result.Error,
		string(payload),
	)
	if err != nil {
		return "", fmt.Errorf("failed to save workflow result: %w", err)
	}
	return id, nil
}

// Get retrieves a stored workflow result by identifier.
func (s *Store) Get(id string) (*models.WorkflowResult, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM workflow_reports WHERE id = ?`, id).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query workflow result %s: %w", id, err)
	}

	var result models.WorkflowResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal workflow result %s: %w", id, err)
	}
	result.ReportID = id
	return &result, nil
}
