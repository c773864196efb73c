package state

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/taskdeck/taskdeck/domain"
)

// ErrNoSession is returned when no credentials have been stored.
var ErrNoSession = errors.New("no stored session")

var (
	bucketName = []byte("session")
	keyToken   = []byte("token")
	keyUser    = []byte("user")
)

// Vault persists the signed-in session on disk so the client stays logged
// in between invocations.
type Vault struct {
	db *bolt.DB
}

// Open initializes the vault file and ensures the session bucket exists.
func Open(path string) (*Vault, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Vault{db: db}, nil
}

// DefaultPath places the vault under the user's config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "taskdeck", "session.db")
}

// Save stores the bearer token and user identity.
func (v *Vault) Save(token string, user *domain.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return v.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		if err := b.Put(keyToken, []byte(token)); err != nil {
			return err
		}
		return b.Put(keyUser, payload)
	})
}

// Load returns the stored token and user, or ErrNoSession.
func (v *Vault) Load() (string, *domain.User, error) {
	var token string
	var user domain.User
	err := v.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		raw := b.Get(keyToken)
		if len(raw) == 0 {
			return ErrNoSession
		}
		token = string(raw)
		if payload := b.Get(keyUser); len(payload) > 0 {
			return json.Unmarshal(payload, &user)
		}
		return nil
	})
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// Clear removes any stored session.
func (v *Vault) Clear() error {
	return v.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		if err := b.Delete(keyToken); err != nil {
			return err
		}
		return b.Delete(keyUser)
	})
}

// Close releases the underlying database file.
func (v *Vault) Close() error {
	if v == nil || v.db == nil {
		return nil
	}
	return v.db.Close()
}
