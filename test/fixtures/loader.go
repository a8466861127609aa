package fixtures

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/Mohsinsiddi/tokencli/internal/token"
	"github.com/stretchr/testify/require"
)

// ArtifactVersion is the only version shipped under artifacts/.
const ArtifactVersion = "0.1.0"

// fixturesDir returns the absolute path to the fixtures directory.
func fixturesDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Dir(file)
}

// ArtifactDir is the fixture artifact root, laid out as
// <dir>/<version>/<Name>.json and .bin.
func ArtifactDir() string {
	return filepath.Join(fixturesDir(), "artifacts")
}

// LoadArtifact loads a fixture contract artifact.
func LoadArtifact(t *testing.T, name string) *token.Artifact {
	t.Helper()
	art, err := token.LoadArtifact(ArtifactDir(), name, ArtifactVersion)
	require.NoError(t, err, "failed to load fixture artifact: %s", name)
	return art
}
