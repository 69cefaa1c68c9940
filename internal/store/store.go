// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists generated content and user profiles in SQLite and
// enforces the monthly generation quota of each plan.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/pdiddy/contentforge/pkg/types"
)

var (
	// ErrNotFound is returned when a content record does not exist for the user.
	ErrNotFound = errors.New("content not found")

	// ErrQuotaExceeded is returned by CheckQuota when the monthly limit is used up.
	ErrQuotaExceeded = errors.New("monthly quota exceeded")
)

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const defaultListLimit = 10

// Store manages the content database.
type Store struct {
	db        *sql.DB
	freeLimit int
	proLimit  int
	logger    *zap.SugaredLogger
}

// Open opens or creates the database at cfg.Path and creates the schema if
// it does not exist.
func Open(cfg types.StoreConfig, logger *zap.SugaredLogger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "creating database directory")
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}

	s := &Store{
		db:        db,
		freeLimit: cfg.FreeMonthlyLimit,
		proLimit:  cfg.ProMonthlyLimit,
		logger:    logger,
	}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating schema")
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL DEFAULT '',
			plan TEXT NOT NULL DEFAULT 'free',
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS contents (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES profiles(id),
			topic TEXT NOT NULL,
			content TEXT NOT NULL,
			quality_json TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_contents_user_created ON contents(user_id, created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return errors.Wrap(err, "executing schema statement")
		}
	}
	return nil
}

// ensureProfile creates a free profile for userID unless one exists.
func ensureProfile(ctx context.Context, q interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
}, userID string, now time.Time) error {
	_, err := q.ExecContext(ctx,
		`INSERT OR IGNORE INTO profiles (id, email, plan, created_at) VALUES (?, '', ?, ?)`,
		userID, string(types.PlanFree), formatTime(now))
	return err
}

// Plan returns the plan of userID, creating a free profile on first use.
func (s *Store) Plan(ctx context.Context, userID string) (types.Plan, error) {
	if err := ensureProfile(ctx, s.db, userID, time.Now()); err != nil {
		return "", errors.Wrap(err, "creating profile")
	}
	var plan string
	if err := s.db.QueryRowContext(ctx, `SELECT plan FROM profiles WHERE id = ?`, userID).Scan(&plan); err != nil {
		return "", errors.Wrap(err, "reading plan")
	}
	if types.Plan(plan) == types.PlanPro {
		return types.PlanPro, nil
	}
	return types.PlanFree, nil
}

// SetPlan sets the plan of userID, creating the profile if needed.
func (s *Store) SetPlan(ctx context.Context, userID string, plan types.Plan) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO profiles (id, email, plan, created_at) VALUES (?, '', ?, ?)
		ON CONFLICT(id) DO UPDATE SET plan = excluded.plan`,
		userID, string(plan), formatTime(time.Now()))
	if err != nil {
		return errors.Wrapf(err, "setting plan of %s", userID)
	}
	return nil
}

// MonthlyUsage counts the records userID created in the calendar month
// (UTC) containing now.
func (s *Store) MonthlyUsage(ctx context.Context, userID string, now time.Time) (int, error) {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM contents WHERE user_id = ? AND created_at >= ? AND created_at < ?`,
		userID, formatTime(start), formatTime(end)).Scan(&n)
	if err != nil {
		return 0, errors.Wrap(err, "counting monthly usage")
	}
	return n, nil
}

// Usage is a user's consumption of the monthly quota.
type Usage struct {
	Plan  types.Plan `json:"plan"`
	Used  int        `json:"used"`
	Limit int        `json:"limit"`
}

// Exceeded reports whether no generation is left this month.
func (u Usage) Exceeded() bool { return u.Used >= u.Limit }

// CheckQuota returns the usage of userID for the month containing now. When
// the limit is reached it returns the usage together with ErrQuotaExceeded.
func (s *Store) CheckQuota(ctx context.Context, userID string, now time.Time) (Usage, error) {
	plan, err := s.Plan(ctx, userID)
	if err != nil {
		return Usage{}, err
	}
	used, err := s.MonthlyUsage(ctx, userID, now)
	if err != nil {
		return Usage{}, err
	}
	u := Usage{Plan: plan, Used: used, Limit: s.freeLimit}
	if plan == types.PlanPro {
		u.Limit = s.proLimit
	}
	if u.Exceeded() {
		return u, errors.Wrapf(ErrQuotaExceeded, "%d/%d used", u.Used, u.Limit)
	}
	return u, nil
}

// SaveContent stores rec and returns it with its ID and creation time set.
// A missing ID is generated; a zero CreatedAt becomes the current time.
func (s *Store) SaveContent(ctx context.Context, rec types.ContentRecord) (types.ContentRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	rec.CreatedAt = rec.CreatedAt.UTC()

	var quality sql.NullString
	if rec.Quality != nil {
		data, err := json.Marshal(rec.Quality)
		if err != nil {
			return types.ContentRecord{}, errors.Wrap(err, "encoding quality report")
		}
		quality = sql.NullString{String: string(data), Valid: true}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return types.ContentRecord{}, errors.Wrap(err, "beginning transaction")
	}
	defer tx.Rollback()

	if err := ensureProfile(ctx, tx, rec.UserID, rec.CreatedAt); err != nil {
		return types.ContentRecord{}, errors.Wrap(err, "creating profile")
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO contents (id, user_id, topic, content, quality_json, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.Topic, rec.Content, quality, formatTime(rec.CreatedAt),
	); err != nil {
		return types.ContentRecord{}, errors.Wrap(err, "inserting content")
	}
	if err := tx.Commit(); err != nil {
		return types.ContentRecord{}, errors.Wrap(err, "committing content")
	}
	s.logger.Infow("content saved", "id", rec.ID, "user_id", rec.UserID)
	return rec, nil
}

const selectContent = `SELECT id, user_id, topic, content, quality_json, created_at FROM contents`

// GetContent returns record id owned by userID.
func (s *Store) GetContent(ctx context.Context, userID, id string) (types.ContentRecord, error) {
	row := s.db.QueryRowContext(ctx, selectContent+` WHERE id = ? AND user_id = ?`, id, userID)
	rec, err := scanContent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.ContentRecord{}, ErrNotFound
	}
	if err != nil {
		return types.ContentRecord{}, errors.Wrapf(err, "reading content %s", id)
	}
	return rec, nil
}

// ListContents returns a page of userID's records, newest first, and the
// total number of records the user has. A limit of zero or less uses 10.
func (s *Store) ListContents(ctx context.Context, userID string, limit, offset int) ([]types.ContentRecord, int, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	offset = max(offset, 0)

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM contents WHERE user_id = ?`, userID).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "counting contents")
	}

	rows, err := s.db.QueryContext(ctx,
		selectContent+` WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, errors.Wrap(err, "listing contents")
	}
	defer rows.Close()

	out := []types.ContentRecord{}
	for rows.Next() {
		rec, err := scanContent(rows)
		if err != nil {
			return nil, 0, errors.Wrap(err, "scanning content")
		}
		out = append(out, rec)
	}
	return out, total, errors.Wrap(rows.Err(), "iterating contents")
}

// DeleteContent removes record id owned by userID.
func (s *Store) DeleteContent(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM contents WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return errors.Wrapf(err, "deleting content %s", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "deleting content")
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanContent(row scanner) (types.ContentRecord, error) {
	var (
		rec       types.ContentRecord
		quality   sql.NullString
		createdAt string
	)
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.Topic, &rec.Content, &quality, &createdAt); err != nil {
		return types.ContentRecord{}, err
	}
	t, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return types.ContentRecord{}, errors.Wrapf(err, "parsing created_at of %s", rec.ID)
	}
	rec.CreatedAt = t
	if quality.Valid && quality.String != "" {
		var q types.QualityReport
		if err := json.Unmarshal([]byte(quality.String), &q); err != nil {
			return types.ContentRecord{}, errors.Wrapf(err, "decoding quality of %s", rec.ID)
		}
		rec.Quality = &q
	}
	return rec, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
