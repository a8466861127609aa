package wallet

import (
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/99designs/keyring"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDigest = crypto.Keccak256([]byte("tokencli"))

// ---------------------------------------------------------------------------
// normaliseHexKey
// ---------------------------------------------------------------------------

func TestNormaliseHexKey(t *testing.T) {
	assert.Equal(t, "abc123", normaliseHexKey("0xabc123"))
	assert.Equal(t, "abc123", normaliseHexKey("0Xabc123"))
	assert.Equal(t, "abc123", normaliseHexKey("abc123"))
	assert.Equal(t, "abc", normaliseHexKey("  0xabc \n"))
	assert.Equal(t, "", normaliseHexKey("0x"))
}

// ---------------------------------------------------------------------------
// MemKeystore
// ---------------------------------------------------------------------------

func TestMemKeystore(t *testing.T) {
	ks := NewMemKeystore()
	addr, err := ks.Import("0x" + testPrivKeyHex)
	require.NoError(t, err)
	assert.True(t, ks.Has(addr))
	assert.False(t, ks.Has(common.Address{}))

	sig, err := ks.SignHash(addr, testDigest)
	require.NoError(t, err)
	pub, err := crypto.SigToPub(testDigest, sig)
	require.NoError(t, err)
	assert.Equal(t, addr, crypto.PubkeyToAddress(*pub))

	_, err = ks.SignHash(common.Address{}, testDigest)
	assert.True(t, errors.Is(err, ErrKeyNotFound))
}

func TestMemKeystoreBadKey(t *testing.T) {
	_, err := NewMemKeystore().Import("zz")
	require.Error(t, err)
}

// ---------------------------------------------------------------------------
// FileKeystore
// ---------------------------------------------------------------------------

func writeEncryptedKey(t *testing.T, passphrase string) string {
	t.Helper()
	priv, err := crypto.HexToECDSA(testPrivKeyHex)
	require.NoError(t, err)
	key := &keystore.Key{
		Id:         uuid.New(),
		Address:    crypto.PubkeyToAddress(priv.PublicKey),
		PrivateKey: priv,
	}
	data, err := keystore.EncryptKey(key, passphrase, keystore.LightScryptN, keystore.LightScryptP)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "key.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestFileKeystoreEncrypted(t *testing.T) {
	path := writeEncryptedKey(t, "hunter2")

	ks, err := OpenFileKeystore(path, "hunter2")
	require.NoError(t, err)
	assert.Equal(t, testSignerAddr, ks.Address().Hex())
	assert.True(t, ks.Has(ks.Address()))

	sig, err := ks.SignHash(ks.Address(), testDigest)
	require.NoError(t, err)
	assert.Len(t, sig, 65)
}

func TestFileKeystoreWrongPassphrase(t *testing.T) {
	path := writeEncryptedKey(t, "hunter2")
	_, err := OpenFileKeystore(path, "wrong")
	require.Error(t, err)
	assert.True(t, errors.Is(err, keystore.ErrDecrypt))
}

func TestFileKeystorePlainHex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key.hex")
	require.NoError(t, os.WriteFile(path, []byte("0x"+testPrivKeyHex+"\n"), 0o600))

	ks, err := OpenFileKeystore(path, "")
	require.NoError(t, err)
	assert.Equal(t, testSignerAddr, ks.Address().Hex())

	_, err = ks.SignHash(common.Address{}, testDigest)
	assert.True(t, errors.Is(err, ErrKeyNotFound))
}

func TestFileKeystoreMissing(t *testing.T) {
	_, err := OpenFileKeystore(filepath.Join(t.TempDir(), "nope"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading key file")
}

func TestWriteKeyFileRoundTrip(t *testing.T) {
	scryptN, scryptP = keystore.LightScryptN, keystore.LightScryptP
	path := filepath.Join(t.TempDir(), "key.json")

	addr, err := WriteKeyFile(path, "0x"+testPrivKeyHex, "pw")
	require.NoError(t, err)
	assert.Equal(t, testSignerAddr, addr.Hex())

	ks, err := OpenFileKeystore(path, "pw")
	require.NoError(t, err)
	assert.Equal(t, addr, ks.Address())

	_, err = WriteKeyFile(path, "", "pw")
	require.Error(t, err, "existing file must not be overwritten")
}

type closeFails struct {
	written []byte
	closed  bool
}

func (c *closeFails) Write(p []byte) (int, error) {
	c.written = append(c.written, p...)
	return len(p), nil
}

func (c *closeFails) Close() error {
	c.closed = true
	return errors.New("disk full")
}

func TestWriteAndCloseReportsCloseError(t *testing.T) {
	w := &closeFails{}
	err := writeAndClose(w, []byte("{}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closing key file")
	assert.Contains(t, err.Error(), "disk full")
	assert.True(t, w.closed)
	assert.Equal(t, "{}", string(w.written))
}

func TestWriteKeyFileGenerates(t *testing.T) {
	scryptN, scryptP = keystore.LightScryptN, keystore.LightScryptP
	path := filepath.Join(t.TempDir(), "new.json")

	addr, err := WriteKeyFile(path, "", "pw")
	require.NoError(t, err)
	assert.NotEqual(t, common.Address{}, addr)

	ks, err := OpenFileKeystore(path, "pw")
	require.NoError(t, err)
	assert.Equal(t, addr, ks.Address())
}

// ---------------------------------------------------------------------------
// KeyringKeystore
// ---------------------------------------------------------------------------

// testKeyring returns a file-backed keyring isolated to a temp directory.
// Using the FileBackend avoids OS keychain prompts in CI.
func testKeyring(t *testing.T) *KeyringKeystore {
	t.Helper()
	ring, err := keyring.Open(keyring.Config{
		ServiceName:      "tokencli-test",
		AllowedBackends:  []keyring.BackendType{keyring.FileBackend},
		FileDir:          t.TempDir(),
		FilePasswordFunc: func(string) (string, error) { return "testpass", nil },
	})
	require.NoError(t, err)
	return NewKeyringKeystore(ring)
}

func TestKeyringStoreAndSign(t *testing.T) {
	ks := testKeyring(t)
	addr, err := ks.Store("0x" + testPrivKeyHex)
	require.NoError(t, err)
	assert.Equal(t, testSignerAddr, addr.Hex())
	assert.True(t, ks.Has(addr))

	sig, err := ks.SignHash(addr, testDigest)
	require.NoError(t, err)
	pub, err := crypto.SigToPub(testDigest, sig)
	require.NoError(t, err)
	assert.Equal(t, addr, crypto.PubkeyToAddress(*pub))
}

func TestKeyringMissingKey(t *testing.T) {
	ks := testKeyring(t)
	assert.False(t, ks.Has(common.HexToAddress(testSignerAddr)))
	_, err := ks.SignHash(common.HexToAddress(testSignerAddr), testDigest)
	assert.True(t, errors.Is(err, ErrKeyNotFound))
}

func TestKeyringDelete(t *testing.T) {
	ks := testKeyring(t)
	addr, err := ks.Store(testPrivKeyHex)
	require.NoError(t, err)
	require.NoError(t, ks.Delete(addr))
	assert.False(t, ks.Has(addr))
}

func TestSignerWithKeyring(t *testing.T) {
	ks := testKeyring(t)
	addr, err := ks.Store(testPrivKeyHex)
	require.NoError(t, err)

	signed, err := NewSigner(ks).SignTx(addr, testTx(), big.NewInt(1))
	require.NoError(t, err)
	assert.NotNil(t, signed)
}
