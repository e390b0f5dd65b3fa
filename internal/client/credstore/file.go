package credstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/estatekeeper/internal/client/models"
	"github.com/dmitrijs2005/estatekeeper/internal/common"
	"github.com/dmitrijs2005/estatekeeper/internal/cryptox"
	"github.com/dmitrijs2005/estatekeeper/internal/filex"
)

const (
	appDirName      = "estatekeeper"
	deviceKeyFile   = "device.key"
	credentialsFile = "credentials.dat"

	deviceKeySize = 32
	saltSize      = 16
)

// record is the plaintext credential payload.
type record struct {
	Token  string       `json:"token,omitempty"`
	User   *models.User `json:"user,omitempty"`
	UserID string       `json:"userId,omitempty"`
}

// envelope is what actually lands on disk: the sealed record plus the
// argon2 salt and AES-GCM nonce needed to open it again.
type envelope struct {
	Salt  []byte `json:"salt"`
	Nonce []byte `json:"nonce"`
	Data  []byte `json:"data"`
}

// FileStore keeps credentials in a single encrypted file under the user
// config directory. The sealing key is derived from a random per-device
// secret created on first use, so the file is unreadable when copied off
// the machine without its key file.
type FileStore struct {
	dir string
}

// NewFileStore resolves (and creates if needed) the storage directory.
// An empty dir selects <user-config-dir>/estatekeeper.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		d, err := filex.EnsureUserDir(appDirName)
		if err != nil {
			return nil, err
		}
		dir = d
	} else {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) deviceKey() ([]byte, error) {
	path := filepath.Join(s.dir, deviceKeyFile)

	key, err := os.ReadFile(path)
	if err == nil && len(key) == deviceKeySize {
		return key, nil
	}
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read device key: %w", err)
	}

	key = common.GenerateRandByteArray(deviceKeySize)
	if err := os.WriteFile(path, key, 0o600); err != nil {
		return nil, fmt.Errorf("write device key: %w", err)
	}
	return key, nil
}

// load reads and opens the credentials file. A missing, corrupt, or
// undecryptable file yields an empty record: the session bootstrap must
// fail open to logged-out, never crash on bad bytes.
func (s *FileStore) load(_ context.Context) (record, error) {
	var rec record

	raw, err := os.ReadFile(filepath.Join(s.dir, credentialsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return rec, nil
		}
		return rec, fmt.Errorf("read credentials: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return record{}, nil
	}

	key, err := s.deviceKey()
	if err != nil {
		return rec, err
	}

	sealKey := cryptox.DeriveKey(key, env.Salt)
	if err := cryptox.OpenRecord(env.Data, env.Nonce, sealKey, &rec); err != nil {
		return record{}, nil
	}
	return rec, nil
}

func (s *FileStore) save(_ context.Context, rec record) error {
	key, err := s.deviceKey()
	if err != nil {
		return err
	}

	salt := common.GenerateRandByteArray(saltSize)
	sealKey := cryptox.DeriveKey(key, salt)

	data, nonce, err := cryptox.SealRecord(rec, sealKey)
	if err != nil {
		return fmt.Errorf("seal credentials: %w", err)
	}

	raw, err := json.Marshal(envelope{Salt: salt, Nonce: nonce, Data: data})
	if err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(s.dir, credentialsFile), raw, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

func (s *FileStore) update(ctx context.Context, fn func(*record)) error {
	rec, err := s.load(ctx)
	if err != nil {
		return err
	}
	fn(&rec)
	return s.save(ctx, rec)
}

func (s *FileStore) SetToken(ctx context.Context, token string) error {
	return s.update(ctx, func(r *record) { r.Token = token })
}

func (s *FileStore) Token(ctx context.Context) (string, error) {
	rec, err := s.load(ctx)
	if err != nil {
		return "", err
	}
	if rec.Token == "" {
		return "", common.ErrorNotFound
	}
	return rec.Token, nil
}

func (s *FileStore) DeleteToken(ctx context.Context) error {
	return s.update(ctx, func(r *record) { r.Token = "" })
}

func (s *FileStore) SetUser(ctx context.Context, u *models.User) error {
	return s.update(ctx, func(r *record) { r.User = u })
}

func (s *FileStore) User(ctx context.Context) (*models.User, error) {
	rec, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if rec.User == nil {
		return nil, common.ErrorNotFound
	}
	return rec.User, nil
}

func (s *FileStore) DeleteUser(ctx context.Context) error {
	return s.update(ctx, func(r *record) { r.User = nil })
}

func (s *FileStore) SetUserID(ctx context.Context, id string) error {
	return s.update(ctx, func(r *record) { r.UserID = id })
}

func (s *FileStore) UserID(ctx context.Context) (string, error) {
	rec, err := s.load(ctx)
	if err != nil {
		return "", err
	}
	if rec.UserID == "" {
		return "", common.ErrorNotFound
	}
	return rec.UserID, nil
}

func (s *FileStore) Clear(ctx context.Context) error {
	err := os.Remove(filepath.Join(s.dir, credentialsFile))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}
