// AngelaMos | 2026
// repository.go

package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/talenthub/internal/core"
)

// ResetRepository stores recovery-code records. Supersede is the only write
// path for new codes: it removes every prior record for the email and
// inserts the fresh one as a single transaction, so two concurrent
// forgot-password calls resolve to exactly one surviving code.
type ResetRepository interface {
	Supersede(ctx context.Context, reset *PasswordReset) error
	FindValid(
		ctx context.Context,
		email, otpHash string,
	) (*PasswordReset, error)
	DeleteForEmail(ctx context.Context, email string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type resetRepository struct {
	db *sqlx.DB
}

func NewResetRepository(db *sqlx.DB) ResetRepository {
	return &resetRepository{db: db}
}

func (r *resetRepository) Supersede(
	ctx context.Context,
	reset *PasswordReset,
) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		deleteQuery := `DELETE FROM password_resets WHERE email = $1`
		if _, err := tx.ExecContext(ctx, deleteQuery, reset.Email); err != nil {
			return fmt.Errorf("delete prior resets: %w", err)
		}

		insertQuery := `
			INSERT INTO password_resets (id, email, otp_hash, expires_at)
			VALUES ($1, $2, $3, $4)
			RETURNING created_at`

		err := tx.GetContext(ctx, &reset.CreatedAt, insertQuery,
			reset.ID,
			reset.Email,
			reset.OTPHash,
			reset.ExpiresAt,
		)
		if err != nil {
			return fmt.Errorf("insert reset: %w", err)
		}

		return nil
	})
}

func (r *resetRepository) FindValid(
	ctx context.Context,
	email, otpHash string,
) (*PasswordReset, error) {
	query := `
		SELECT id, email, otp_hash, expires_at, created_at
		FROM password_resets
		WHERE email = $1 AND otp_hash = $2 AND expires_at > NOW()`

	var reset PasswordReset
	err := r.db.GetContext(ctx, &reset, query, email, otpHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find reset: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find reset: %w", err)
	}

	return &reset, nil
}

func (r *resetRepository) DeleteForEmail(
	ctx context.Context,
	email string,
) error {
	query := `DELETE FROM password_resets WHERE email = $1`

	if _, err := r.db.ExecContext(ctx, query, email); err != nil {
		return fmt.Errorf("delete resets: %w", err)
	}

	return nil
}

// DeleteExpired is the garbage collector behind the sweeper goroutine. It
// stands in for a document-store TTL index: expired codes become
// unverifiable immediately via the expires_at predicate, and this reclaims
// the rows.
func (r *resetRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM password_resets WHERE expires_at < NOW()`

	result, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("delete expired resets: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete expired resets: %w", err)
	}

	return rows, nil
}
