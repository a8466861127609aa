package token

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Mohsinsiddi/tokencli/internal/abi"
	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrVersionRequired is returned when bytecode is loaded without an
	// explicit version.
	ErrVersionRequired = errors.New("bytecode version is required")
	// ErrNoBytecode is returned when deploying from an ABI-only artifact.
	ErrNoBytecode = errors.New("artifact has no bytecode")
)

// Artifact is a contract's ABI and bytecode, loaded once and shared
// read-only.
type Artifact struct {
	Name    string
	Version string
	ABI     gethabi.ABI
	Code    []byte
}

// LoadArtifact reads <dir>/<version>/<name>.json (ABI) and
// <dir>/<version>/<name>.bin (hex bytecode).
func LoadArtifact(dir, name, version string) (*Artifact, error) {
	if version == "" {
		return nil, ErrVersionRequired
	}
	base := filepath.Join(dir, version, name)

	abiJSON, err := os.ReadFile(base + ".json")
	if err != nil {
		return nil, fmt.Errorf("reading ABI for %s@%s: %w", name, version, err)
	}
	bin, err := os.ReadFile(base + ".bin")
	if err != nil {
		return nil, fmt.Errorf("reading bytecode for %s@%s: %w", name, version, err)
	}
	return NewArtifact(name, abiJSON, string(bin), version)
}

// NewArtifact builds an artifact from in-memory data. bytecodeHex may be
// empty for interface-only artifacts; a non-empty one requires a version.
func NewArtifact(name string, abiJSON []byte, bytecodeHex, version string) (*Artifact, error) {
	parsed, err := gethabi.JSON(bytes.NewReader(abiJSON))
	if err != nil {
		return nil, fmt.Errorf("parsing ABI for %s: %w", name, err)
	}

	a := &Artifact{Name: name, Version: version, ABI: parsed}
	bytecodeHex = strings.TrimSpace(bytecodeHex)
	if bytecodeHex != "" {
		if version == "" {
			return nil, ErrVersionRequired
		}
		code, err := abi.FromHex(bytecodeHex)
		if err != nil {
			return nil, fmt.Errorf("parsing bytecode for %s: %w", name, err)
		}
		a.Code = code
	}
	return a, nil
}

// MethodName returns the signature of the method with selector sel.
func (a *Artifact) MethodName(sel abi.Selector) (string, bool) {
	m, err := a.ABI.MethodById(sel[:])
	if err != nil {
		return "", false
	}
	return m.Sig, true
}

// DeployData returns the bytecode followed by the encoded constructor
// arguments.
func (a *Artifact) DeployData(args ...abi.Value) ([]byte, error) {
	if a == nil {
		return nil, ErrNoBytecode
	}
	if len(a.Code) == 0 {
		return nil, fmt.Errorf("%s: %w", a.Name, ErrNoBytecode)
	}
	enc, err := abi.Encode(args...)
	if err != nil {
		return nil, fmt.Errorf("encoding constructor arguments: %w", err)
	}
	return append(common.CopyBytes(a.Code), enc...), nil
}

// StandardABI is the ERC20 interface plus the minter extension.
const StandardABI = `[
 {"type":"function","name":"name","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
 {"type":"function","name":"symbol","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
 {"type":"function","name":"decimals","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]},
 {"type":"function","name":"totalSupply","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
 {"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
 {"type":"function","name":"allowance","stateMutability":"view","inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
 {"type":"function","name":"transfer","stateMutability":"nonpayable","inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
 {"type":"function","name":"approve","stateMutability":"nonpayable","inputs":[{"name":"spender","type":"address"},{"name":"value","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
 {"type":"function","name":"transferFrom","stateMutability":"nonpayable","inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"value","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
 {"type":"function","name":"mintTo","stateMutability":"nonpayable","inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
 {"type":"function","name":"addMinter","stateMutability":"nonpayable","inputs":[{"name":"minter","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
 {"type":"function","name":"removeMinter","stateMutability":"nonpayable","inputs":[{"name":"minter","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
 {"type":"event","name":"Transfer","anonymous":false,"inputs":[{"name":"from","type":"address","indexed":true},{"name":"to","type":"address","indexed":true},{"name":"value","type":"uint256","indexed":false}]},
 {"type":"event","name":"Approval","anonymous":false,"inputs":[{"name":"owner","type":"address","indexed":true},{"name":"spender","type":"address","indexed":true},{"name":"value","type":"uint256","indexed":false}]}
]`

// Standard returns the interface-only artifact for StandardABI.
func Standard() *Artifact {
	a, err := NewArtifact("ERC20", []byte(StandardABI), "", "")
	if err != nil {
		panic(err)
	}
	return a
}
