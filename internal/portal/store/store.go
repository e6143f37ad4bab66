package store

import (
	"context"
	"errors"

	"github.com/greensoulit/portal-auth/internal/portal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today,
// postgres later) implement this. Sub-repositories keep concerns separate
// and make transaction scoping explicit.
type Store interface {
	Clients() Clients
	Credentials() Credentials
	Sessions() Sessions
	Staff() Staff

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing on nil and rolling
	// back on error. Prefer this over Tx directly.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos plus Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Clients interface {
	// GetClientByID returns a client by id.
	GetClientByID(ctx context.Context, id string) (domain.Client, error)

	// GetClientByCode looks up a client by its upper-cased code.
	GetClientByCode(ctx context.Context, code string) (domain.Client, error)

	// CreateClient inserts a new client record (id is a ULID; code is stored
	// upper-cased). Used by console-side seeding and tests.
	CreateClient(ctx context.Context, c domain.Client) error
}

type Credentials interface {
	// UpsertCredential inserts the credential or, when one already exists
	// for the client, overwrites password_hash and forces active on. This is
	// a single atomic insert-or-update keyed on client_id.
	UpsertCredential(ctx context.Context, c domain.Credential) error

	// GetCredentialByClientID returns the credential for a client.
	GetCredentialByClientID(ctx context.Context, clientID string) (domain.Credential, error)

	// GetCredentialByCode returns the credential by its client code.
	GetCredentialByCode(ctx context.Context, clientCode string) (domain.Credential, error)

	// SetActive flips the active flag. Returns ErrNotFound when no
	// credential exists for the client.
	SetActive(ctx context.Context, clientID string, active bool) error
}

type Sessions interface {
	// CreateSession persists a new session row.
	CreateSession(ctx context.Context, s domain.Session) error

	// GetSessionByTokenHash returns the live session for a token
	// fingerprint. Expiry is enforced by the lookup predicate; expired rows
	// are invisible here and removed by housekeeping.
	GetSessionByTokenHash(ctx context.Context, tokenHash string) (domain.Session, error)

	// DeleteSessionByTokenHash removes one session. Deleting a session that
	// is already gone is not an error.
	DeleteSessionByTokenHash(ctx context.Context, tokenHash string) error

	// DeleteSessionsByClientID removes every session owned by a client.
	DeleteSessionsByClientID(ctx context.Context, clientID string) error

	// DeleteExpiredSessions is housekeeping.
	DeleteExpiredSessions(ctx context.Context) error
}

type Staff interface {
	// GetStaffByID resolves a staff identity for admin authorization.
	GetStaffByID(ctx context.Context, id string) (domain.StaffUser, error)

	// CreateStaffUser inserts a staff user. The console owns staff
	// management; this exists for bootstrap tooling and tests.
	CreateStaffUser(ctx context.Context, u domain.StaffUser) error
}
