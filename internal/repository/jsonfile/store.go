package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"vendordesk/internal/model"
	"vendordesk/internal/repository"
)

// File names of the four collections inside the data directory.
const (
	UsersFile       = "users.json"
	TeamMembersFile = "team_members.json"
	VendorsFile     = "vendors.json"
	DocumentsFile   = "documents.json"
)

// Store is the flat-file implementation of repository.Store.
// A mutex serializes read-modify-write cycles within this process only;
// several processes sharing one data directory still race (last writer wins).
type Store struct {
	dir  string
	mu   *sync.Mutex
	inTx bool

	users       collection[model.User]
	teamMembers collection[model.TeamMember]
	vendors     collection[model.Vendor]
	documents   collection[model.Document]
}

var _ repository.Store = (*Store)(nil)

// Open prepares dir and creates any missing collection file as an empty array.
func Open(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("data directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	s := &Store{
		dir: dir,
		mu:  &sync.Mutex{},
		users: collection[model.User]{
			path:  filepath.Join(dir, UsersFile),
			getID: func(u *model.User) int64 { return u.ID },
			setID: func(u *model.User, id int64) { u.ID = id },
		},
		teamMembers: collection[model.TeamMember]{
			path:  filepath.Join(dir, TeamMembersFile),
			getID: func(m *model.TeamMember) int64 { return m.ID },
			setID: func(m *model.TeamMember, id int64) { m.ID = id },
		},
		vendors: collection[model.Vendor]{
			path:  filepath.Join(dir, VendorsFile),
			getID: func(v *model.Vendor) int64 { return v.ID },
			setID: func(v *model.Vendor, id int64) { v.ID = id },
		},
		documents: collection[model.Document]{
			path:  filepath.Join(dir, DocumentsFile),
			getID: func(d *model.Document) int64 { return d.ID },
			setID: func(d *model.Document, id int64) { d.ID = id },
		},
	}

	for _, p := range s.paths() {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			if err := writeFileAtomic(p, []byte("[]")); err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, fmt.Errorf("stat %s: %w", filepath.Base(p), err)
		}
	}
	return s, nil
}

func (s *Store) paths() []string {
	return []string{s.users.path, s.teamMembers.path, s.vendors.path, s.documents.path}
}

// lock acquires the store mutex unless the caller already holds it through WithinTx.
func (s *Store) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) Users() repository.UserRepository             { return userRepo{s} }
func (s *Store) TeamMembers() repository.TeamMemberRepository { return teamMemberRepo{s} }
func (s *Store) Vendors() repository.VendorRepository         { return vendorRepo{s} }
func (s *Store) Documents() repository.DocumentRepository     { return documentRepo{s} }

// WithinTx holds the store lock for the whole of fn. The four files are
// snapshotted first and written back if fn fails.
func (s *Store) WithinTx(ctx context.Context, fn func(tx repository.Store) error) error {
	if s.inTx {
		return fn(s)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.snapshot()
	if err != nil {
		return err
	}

	tx := *s
	tx.inTx = true
	if err := fn(&tx); err != nil {
		if rerr := s.restore(snap); rerr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rerr)
		}
		return err
	}
	return nil
}

// Ping checks the data directory is still there.
func (s *Store) Ping(ctx context.Context) error {
	fi, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("stat data dir: %w", err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("data dir %s is not a directory", s.dir)
	}
	return nil
}

func (s *Store) snapshot() (map[string][]byte, error) {
	snap := make(map[string][]byte, 4)
	for _, p := range s.paths() {
		b, err := os.ReadFile(p)
		if errors.Is(err, fs.ErrNotExist) {
			b = []byte("[]")
		} else if err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", filepath.Base(p), err)
		}
		snap[p] = b
	}
	return snap, nil
}

func (s *Store) restore(snap map[string][]byte) error {
	var errs []error
	for p, b := range snap {
		if err := writeFileAtomic(p, b); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
