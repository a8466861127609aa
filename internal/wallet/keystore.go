package wallet

import (
	"crypto/ecdsa"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/99designs/keyring"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
)

const keychainService = "tokencli"

// ErrKeyNotFound is returned when a keystore holds no key for an address.
var ErrKeyNotFound = errors.New("key not found")

// Keystore signs digests on behalf of the accounts it holds. Private key
// material never leaves the implementation.
type Keystore interface {
	Has(addr common.Address) bool
	SignHash(addr common.Address, hash []byte) ([]byte, error)
}

// ---------------------------------------------------------------------------
// In-memory
// ---------------------------------------------------------------------------

// MemKeystore holds raw keys in memory. Intended for tests and devnets.
type MemKeystore struct {
	mu   sync.RWMutex
	keys map[common.Address]*ecdsa.PrivateKey
}

// NewMemKeystore creates an empty in-memory keystore.
func NewMemKeystore() *MemKeystore {
	return &MemKeystore{keys: make(map[common.Address]*ecdsa.PrivateKey)}
}

// Import adds a hex-encoded private key and returns its address.
func (k *MemKeystore) Import(hexKey string) (common.Address, error) {
	priv, err := crypto.HexToECDSA(normaliseHexKey(hexKey))
	if err != nil {
		return common.Address{}, fmt.Errorf("parsing private key: %w", err)
	}
	addr := crypto.PubkeyToAddress(priv.PublicKey)
	k.mu.Lock()
	k.keys[addr] = priv
	k.mu.Unlock()
	return addr, nil
}

func (k *MemKeystore) Has(addr common.Address) bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	_, ok := k.keys[addr]
	return ok
}

func (k *MemKeystore) SignHash(addr common.Address, hash []byte) ([]byte, error) {
	k.mu.RLock()
	priv, ok := k.keys[addr]
	k.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, addr.Hex())
	}
	return crypto.Sign(hash, priv)
}

// ---------------------------------------------------------------------------
// Encrypted key file
// ---------------------------------------------------------------------------

// FileKeystore holds a single account loaded from a key file. Both
// go-ethereum encrypted JSON key files and plain hex key files are accepted.
type FileKeystore struct {
	addr common.Address
	key  *ecdsa.PrivateKey
}

// OpenFileKeystore reads and, when encrypted, decrypts the key file at path.
func OpenFileKeystore(path, passphrase string) (*FileKeystore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading key file: %w", err)
	}

	if json.Valid(data) {
		key, err := keystore.DecryptKey(data, passphrase)
		if err != nil {
			return nil, fmt.Errorf("decrypting key file %s: %w", path, err)
		}
		return &FileKeystore{addr: key.Address, key: key.PrivateKey}, nil
	}

	priv, err := crypto.HexToECDSA(normaliseHexKey(string(data)))
	if err != nil {
		return nil, fmt.Errorf("parsing key file %s: %w", path, err)
	}
	return &FileKeystore{addr: crypto.PubkeyToAddress(priv.PublicKey), key: priv}, nil
}

// Address returns the account held by the file.
func (k *FileKeystore) Address() common.Address { return k.addr }

func (k *FileKeystore) Has(addr common.Address) bool { return addr == k.addr }

func (k *FileKeystore) SignHash(addr common.Address, hash []byte) ([]byte, error) {
	if addr != k.addr {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, addr.Hex())
	}
	return crypto.Sign(hash, k.key)
}

// Scrypt cost used when writing key files.
var (
	scryptN = keystore.StandardScryptN
	scryptP = keystore.StandardScryptP
)

// WriteKeyFile encrypts a key with passphrase and writes it to path in the
// go-ethereum key file format. An empty hexKey generates a new key. An
// existing file is never overwritten.
func WriteKeyFile(path, hexKey, passphrase string) (common.Address, error) {
	var (
		priv *ecdsa.PrivateKey
		err  error
	)
	if hexKey == "" {
		priv, err = crypto.GenerateKey()
	} else {
		priv, err = crypto.HexToECDSA(normaliseHexKey(hexKey))
	}
	if err != nil {
		return common.Address{}, fmt.Errorf("preparing key: %w", err)
	}

	key := &keystore.Key{
		Id:         uuid.New(),
		Address:    crypto.PubkeyToAddress(priv.PublicKey),
		PrivateKey: priv,
	}
	data, err := keystore.EncryptKey(key, passphrase, scryptN, scryptP)
	if err != nil {
		return common.Address{}, fmt.Errorf("encrypting key: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return common.Address{}, fmt.Errorf("creating key file: %w", err)
	}
	if err := writeAndClose(f, data); err != nil {
		return common.Address{}, err
	}
	return key.Address, nil
}

// writeAndClose writes data and closes w, returning the first error.
func writeAndClose(w io.WriteCloser, data []byte) error {
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("writing key file: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing key file: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// OS keychain
// ---------------------------------------------------------------------------

// KeyringKeystore keeps hex keys in the OS keychain, indexed by address.
type KeyringKeystore struct {
	ring keyring.Keyring
}

// NewKeyringKeystore wraps an already opened keyring.
func NewKeyringKeystore(ring keyring.Keyring) *KeyringKeystore {
	return &KeyringKeystore{ring: ring}
}

// DefaultKeyring opens the OS keychain, falling back to the encrypted file
// backend where no keychain service is available.
func DefaultKeyring() (*KeyringKeystore, error) {
	cfg := keyring.Config{
		ServiceName:              keychainService,
		KeychainTrustApplication: true,
	}

	// On Linux without a GUI, fall back to file-based storage.
	if runtime.GOOS == "linux" {
		cfg.AllowedBackends = []keyring.BackendType{
			keyring.SecretServiceBackend,
			keyring.KWalletBackend,
			keyring.FileBackend,
		}
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		ring, err = keyring.Open(keyring.Config{
			ServiceName:     keychainService,
			AllowedBackends: []keyring.BackendType{keyring.FileBackend},
		})
		if err != nil {
			return nil, fmt.Errorf("opening keychain: %w", err)
		}
	}
	return &KeyringKeystore{ring: ring}, nil
}

// Store saves a hex private key and returns the address it controls.
func (k *KeyringKeystore) Store(hexKey string) (common.Address, error) {
	priv, err := crypto.HexToECDSA(normaliseHexKey(hexKey))
	if err != nil {
		return common.Address{}, fmt.Errorf("parsing private key: %w", err)
	}
	addr := crypto.PubkeyToAddress(priv.PublicKey)
	err = k.ring.Set(keyring.Item{
		Key:   keyRef(addr),
		Data:  []byte(normaliseHexKey(hexKey)),
		Label: keychainService + " " + addr.Hex(),
	})
	if err != nil {
		return common.Address{}, fmt.Errorf("keychain store: %w", err)
	}
	return addr, nil
}

// Delete removes the key of addr.
func (k *KeyringKeystore) Delete(addr common.Address) error {
	return k.ring.Remove(keyRef(addr))
}

func (k *KeyringKeystore) Has(addr common.Address) bool {
	_, err := k.ring.Get(keyRef(addr))
	return err == nil
}

func (k *KeyringKeystore) SignHash(addr common.Address, hash []byte) ([]byte, error) {
	item, err := k.ring.Get(keyRef(addr))
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, addr.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("keychain retrieve: %w", err)
	}
	priv, err := crypto.HexToECDSA(string(item.Data))
	if err != nil {
		return nil, fmt.Errorf("parsing stored key: %w", err)
	}
	return crypto.Sign(hash, priv)
}

func keyRef(addr common.Address) string {
	return keychainService + "." + strings.ToLower(addr.Hex())
}

// normaliseHexKey strips whitespace and an optional 0x prefix.
func normaliseHexKey(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
	}
	return s
}
