package ledger

import (
	"errors"
	"fmt"
	"sync"

	dbm "github.com/tendermint/tm-db"
	"go.uber.org/zap"
)

var (
	ErrNotFound      = errors.New("asset not found")
	ErrAlreadyExists = errors.New("asset already exists")
	ErrReadOnly      = errors.New("write in read-only transaction")
)

// Options selects the tm-db backend the ledger lives in.
type Options struct {
	Backend string // "goleveldb" or "memdb"
	Dir     string
	Name    string
}

// Store is the ledger accessor. Every invocation runs inside Update or View;
// Update stages writes in a tm-db batch that is flushed atomically on success
// and discarded on error, so no partially applied invocation is ever visible.
//
// Safe for concurrent use: writers are serialized and readers never observe a
// batch mid-flush.
type Store struct {
	db     dbm.DB
	logger *zap.Logger

	mtx sync.RWMutex
}

func Open(opts Options, logger *zap.Logger) (*Store, error) {
	backend := dbm.BackendType(opts.Backend)
	if backend == "" {
		backend = dbm.GoLevelDBBackend
	}
	name := opts.Name
	if name == "" {
		name = "energy"
	}
	db, err := dbm.NewDB(name, backend, opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("open %s ledger %q in %q: %w", backend, name, opts.Dir, err)
	}
	return New(db, logger), nil
}

// NewMemStore returns a ledger backed by an in-memory tm-db.
func NewMemStore(logger *zap.Logger) *Store {
	return New(dbm.NewMemDB(), logger)
}

func New(db dbm.DB, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: db, logger: logger.Named("ledger")}
}

// Update runs fn in a read-write transaction.
func (s *Store) Update(fn func(tx *Tx) error) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	tx := newTx(s.db, true)
	if err := fn(tx); err != nil {
		tx.discard()
		return err
	}
	n := tx.pendingWrites()
	if err := tx.commit(); err != nil {
		s.logger.Error("commit failed", zap.Int("writes", n), zap.Error(err))
		return fmt.Errorf("commit ledger batch: %w", err)
	}
	if n > 0 {
		s.logger.Debug("committed", zap.Int("writes", n))
	}
	return nil
}

// View runs fn in a read-only transaction.
func (s *Store) View(fn func(tx *Tx) error) error {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	tx := newTx(s.db, false)
	defer tx.discard()
	return fn(tx)
}

func (s *Store) Close() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.db.Close()
}
