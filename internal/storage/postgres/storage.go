package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/lunorise/platform/internal/domain/errors"
	"github.com/lunorise/platform/internal/domain/model"
	"github.com/lunorise/platform/internal/domain/repository"
)

// Pool is the subset of pgxpool.Pool the storage depends on. Tests
// substitute a pgxmock pool.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   Pool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type withdrawalRepository struct {
	storage *Storage
}

type payoutMethodRepository struct {
	storage *Storage
}

type transactionRepository struct {
	storage *Storage
}

type rateRepository struct {
	storage *Storage
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (Pool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Withdrawals() repository.WithdrawalRepository {
	return &withdrawalRepository{storage: s}
}

func (s *Storage) PayoutMethods() repository.PayoutMethodRepository {
	return &payoutMethodRepository{storage: s}
}

func (s *Storage) Transactions() repository.TransactionRepository {
	return &transactionRepository{storage: s}
}

func (s *Storage) Rates() repository.RateRepository {
	return &rateRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            phone TEXT UNIQUE NOT NULL,
            login TEXT UNIQUE NOT NULL,
            country TEXT NOT NULL,
            password_hash TEXT NOT NULL,
            balance_cents BIGINT NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS withdrawals (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            gross_cents BIGINT NOT NULL,
            fee_cents BIGINT NOT NULL,
            net_cents BIGINT NOT NULL,
            currency TEXT NOT NULL,
            status TEXT NOT NULL,
            idempotency_key UUID UNIQUE NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS payout_methods (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            type TEXT NOT NULL,
            bank_name TEXT NOT NULL DEFAULT '',
            account_name TEXT NOT NULL DEFAULT '',
            account_number TEXT NOT NULL DEFAULT '',
            network TEXT NOT NULL DEFAULT '',
            wallet_address TEXT NOT NULL DEFAULT '',
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            UNIQUE (user_id, type)
        )`,
		`CREATE TABLE IF NOT EXISTS transactions (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            type TEXT NOT NULL,
            amount_usd_cents BIGINT,
            amount_cents BIGINT,
            crypto_amount DOUBLE PRECISION,
            crypto_currency TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL,
            note TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS usdt_rates (
            currency TEXT PRIMARY KEY,
            rate DOUBLE PRECISION NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_withdrawals_user ON withdrawals(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_user ON transactions(user_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, phone, login, country, passwordHash string, bonusCents int64) (*model.User, error) {
	const query = `INSERT INTO users (phone, login, country, password_hash, balance_cents)
                   VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, phone, login, country, passwordHash, bonusCents).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Phone = phone
	u.Login = login
	u.Country = country
	u.PasswordHash = passwordHash
	u.BalanceCents = bonusCents
	return &u, nil
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*model.User, error) {
	const query = `SELECT id, phone, login, country, password_hash, balance_cents, created_at FROM users WHERE phone=$1`
	return r.scanUser(r.storage.pool.QueryRow(ctx, query, phone))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, phone, login, country, password_hash, balance_cents, created_at FROM users WHERE id=$1`
	return r.scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Phone, &u.Login, &u.Country, &u.PasswordHash, &u.BalanceCents, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// --- WithdrawalRepository implementation ---

// Submit reserves the gross amount and records the withdrawal in one
// transaction. The balance row is locked first so the check-and-
// decrement is atomic; the insert is keyed on the idempotency key, so
// a replay returns the stored withdrawal without reserving again.
func (r *withdrawalRepository) Submit(ctx context.Context, w *model.Withdrawal) (*model.Withdrawal, bool, error) {
	out := *w
	created := false

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const lockBalance = `SELECT balance_cents FROM users WHERE id=$1 FOR UPDATE`
		var balance int64
		if err := tx.QueryRow(ctx, lockBalance, w.UserID).Scan(&balance); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		const insert = `INSERT INTO withdrawals (user_id, gross_cents, fee_cents, net_cents, currency, status, idempotency_key)
                        VALUES ($1, $2, $3, $4, $5, $6, $7)
                        ON CONFLICT (idempotency_key) DO NOTHING
                        RETURNING id, created_at`
		err := tx.QueryRow(ctx, insert, w.UserID, w.GrossCents, w.FeeCents, w.NetCents, w.Currency, w.Status, w.IdempotencyKey).
			Scan(&out.ID, &out.CreatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				// Replay: return the stored request, leave the balance alone.
				const existing = `SELECT id, user_id, gross_cents, fee_cents, net_cents, currency, status, created_at
                                  FROM withdrawals WHERE idempotency_key=$1`
				return tx.QueryRow(ctx, existing, w.IdempotencyKey).
					Scan(&out.ID, &out.UserID, &out.GrossCents, &out.FeeCents, &out.NetCents, &out.Currency, &out.Status, &out.CreatedAt)
			}
			return err
		}
		created = true

		if balance < w.GrossCents {
			return fmt.Errorf("%w: available %d", domainErrors.ErrInsufficientFunds, balance)
		}

		const reserve = `UPDATE users SET balance_cents = balance_cents - $2 WHERE id=$1`
		if _, err := tx.Exec(ctx, reserve, w.UserID, w.GrossCents); err != nil {
			return err
		}

		const mirror = `INSERT INTO transactions (user_id, type, amount_cents, status, note)
                        VALUES ($1, $2, $3, $4, $5)`
		_, err = tx.Exec(ctx, mirror, w.UserID, model.TransactionTypeWithdrawal, w.GrossCents, model.TransactionStatusPending, "withdrawal request")
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return &out, created, nil
}

func (r *withdrawalRepository) ListByUser(ctx context.Context, userID int64) ([]model.Withdrawal, error) {
	const query = `SELECT id, user_id, gross_cents, fee_cents, net_cents, currency, status, idempotency_key, created_at
                   FROM withdrawals WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Withdrawal
	for rows.Next() {
		var w model.Withdrawal
		if err := rows.Scan(&w.ID, &w.UserID, &w.GrossCents, &w.FeeCents, &w.NetCents, &w.Currency, &w.Status, &w.IdempotencyKey, &w.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- PayoutMethodRepository implementation ---

func (r *payoutMethodRepository) Upsert(ctx context.Context, m *model.PayoutMethod) error {
	const query = `INSERT INTO payout_methods (user_id, type, bank_name, account_name, account_number, network, wallet_address, updated_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
                   ON CONFLICT (user_id, type) DO UPDATE
                   SET bank_name = EXCLUDED.bank_name,
                       account_name = EXCLUDED.account_name,
                       account_number = EXCLUDED.account_number,
                       network = EXCLUDED.network,
                       wallet_address = EXCLUDED.wallet_address,
                       updated_at = NOW()`
	_, err := r.storage.pool.Exec(ctx, query, m.UserID, m.Type, m.BankName, m.AccountName, m.AccountNumber, m.Network, m.WalletAddress)
	return err
}

func (r *payoutMethodRepository) Get(ctx context.Context, userID int64, typ model.PayoutMethodType) (*model.PayoutMethod, error) {
	const query = `SELECT id, user_id, type, bank_name, account_name, account_number, network, wallet_address, updated_at
                   FROM payout_methods WHERE user_id=$1 AND type=$2`
	var m model.PayoutMethod
	err := r.storage.pool.QueryRow(ctx, query, userID, typ).
		Scan(&m.ID, &m.UserID, &m.Type, &m.BankName, &m.AccountName, &m.AccountNumber, &m.Network, &m.WalletAddress, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// --- TransactionRepository implementation ---

func (r *transactionRepository) Create(ctx context.Context, t *model.Transaction) (*model.Transaction, error) {
	const query = `INSERT INTO transactions (user_id, type, amount_usd_cents, amount_cents, crypto_amount, crypto_currency, status, note)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
                   RETURNING id, created_at`
	out := *t
	err := r.storage.pool.QueryRow(ctx, query, t.UserID, t.Type, t.AmountUSDCents, t.AmountCents, t.CryptoAmount, t.CryptoCurrency, t.Status, t.Note).
		Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *transactionRepository) ListByUser(ctx context.Context, userID int64) ([]model.Transaction, error) {
	const query = `SELECT id, user_id, type, amount_usd_cents, amount_cents, crypto_amount, crypto_currency, status, note, created_at
                   FROM transactions WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Transaction
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.AmountUSDCents, &t.AmountCents, &t.CryptoAmount, &t.CryptoCurrency, &t.Status, &t.Note, &t.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- RateRepository implementation ---

func (r *rateRepository) Get(ctx context.Context, currency string) (*model.ExchangeRate, error) {
	const query = `SELECT currency, rate, updated_at FROM usdt_rates WHERE currency=$1`
	var rate model.ExchangeRate
	err := r.storage.pool.QueryRow(ctx, query, currency).Scan(&rate.Currency, &rate.Rate, &rate.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &rate, nil
}

func (r *rateRepository) Upsert(ctx context.Context, currency string, rate float64) error {
	const query = `INSERT INTO usdt_rates (currency, rate, updated_at)
                   VALUES ($1, $2, NOW())
                   ON CONFLICT (currency) DO UPDATE SET rate = EXCLUDED.rate, updated_at = NOW()`
	_, err := r.storage.pool.Exec(ctx, query, currency, rate)
	return err
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
