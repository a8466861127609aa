package token

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Mohsinsiddi/tokencli/internal/abi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBytecode = "0x6080604052348015600f57600080fd5b50"

func writeArtifact(t *testing.T, dir, version, name, bin string) {
	t.Helper()
	vdir := filepath.Join(dir, version)
	require.NoError(t, os.MkdirAll(vdir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(vdir, name+".json"), []byte(StandardABI), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(vdir, name+".bin"), []byte(bin), 0o644))
}

func TestLoadArtifact(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "v0.1.0", "GiftableToken", testBytecode+"\n")

	a, err := LoadArtifact(dir, "GiftableToken", "v0.1.0")
	require.NoError(t, err)
	assert.Equal(t, "GiftableToken", a.Name)
	assert.Equal(t, "v0.1.0", a.Version)
	assert.Equal(t, testBytecode, abi.ToHex(a.Code))

	name, ok := a.MethodName(SelTransfer)
	assert.True(t, ok)
	assert.Equal(t, "transfer(address,uint256)", name)
}

func TestLoadArtifactRequiresVersion(t *testing.T) {
	_, err := LoadArtifact(t.TempDir(), "GiftableToken", "")
	assert.True(t, errors.Is(err, ErrVersionRequired))
}

func TestLoadArtifactMissingVersionDir(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "v1", "GiftableToken", testBytecode)
	_, err := LoadArtifact(dir, "GiftableToken", "v2")
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestNewArtifactErrors(t *testing.T) {
	_, err := NewArtifact("X", []byte("not json"), "", "")
	require.Error(t, err)

	_, err = NewArtifact("X", []byte(StandardABI), testBytecode, "")
	assert.True(t, errors.Is(err, ErrVersionRequired))

	_, err = NewArtifact("X", []byte(StandardABI), "0xnothex", "v1")
	require.Error(t, err)
}

func TestStandardArtifact(t *testing.T) {
	a := Standard()
	assert.Empty(t, a.Code)
	for sel, want := range methodNames {
		got, ok := a.MethodName(sel)
		assert.True(t, ok, want)
		assert.Equal(t, want, got)
	}
	_, ok := a.MethodName(abi.SelectorFor("nope()"))
	assert.False(t, ok)

	_, err := a.DeployData()
	assert.True(t, errors.Is(err, ErrNoBytecode))
}

func TestDeployData(t *testing.T) {
	a, err := NewArtifact("GiftableToken", []byte(StandardABI), testBytecode, "v1")
	require.NoError(t, err)

	data, err := a.DeployData(GiftableConstructorArgs("Foo", "FOO", 6)...)
	require.NoError(t, err)
	assert.Equal(t, a.Code, data[:len(a.Code)])

	args, err := abi.Decode([]abi.Type{abi.String, abi.String, abi.Uint256}, data[len(a.Code):])
	require.NoError(t, err)
	assert.Equal(t, "Foo", args[0].Str)
	assert.Equal(t, "FOO", args[1].Str)
	assert.Equal(t, int64(6), args[2].Int.Int64())

	// the artifact's code is not aliased by deploy data
	data[0] = 0xff
	assert.Equal(t, byte(0x60), a.Code[0])
}
