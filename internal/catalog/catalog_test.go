package catalog

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/gravsim/internal/physics"
)

func TestParseValidLines(t *testing.T) {
	input := `sun 1.0 0 0 0 0 0 0
earth 3e-6 1 0 0 0 1 0
`
	bodies, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, bodies, 2)

	assert.Equal(t, 1.0, bodies[0].Mass)
	assert.Equal(t, physics.Vec3{}, bodies[0].Pos)
	assert.Equal(t, 3e-6, bodies[1].Mass)
	assert.Equal(t, physics.Vec3{X: 1}, bodies[1].Pos)
	assert.Equal(t, physics.Vec3{Y: 1}, bodies[1].Vel)
	assert.Equal(t, physics.Vec3{}, bodies[1].Acc, "accelerations start at zero")
}

func TestParseSkipsMalformedLines(t *testing.T) {
	input := `a 1.0 0 0 0 0 0 0
short 1.0 0 0
toolong 1.0 0 0 0 0 0 0 99
notnum 1.0 x 0 0 0 0 0

# comment-ish garbage line
b 2.0 1 1 1 0 0 0
`
	bodies, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, bodies, 2, "only the two well-formed lines should survive")
	assert.Equal(t, 1.0, bodies[0].Mass)
	assert.Equal(t, 2.0, bodies[1].Mass)
}

func TestParseLabelIgnored(t *testing.T) {
	bodies, err := Parse(strings.NewReader("42 1.0 0 0 0 0 0 0\n"))
	require.NoError(t, err)
	require.Len(t, bodies, 1)
	assert.Equal(t, 1.0, bodies[0].Mass)
}

func TestParseEmpty(t *testing.T) {
	bodies, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, bodies)
}

func TestWriteParseRoundTrip(t *testing.T) {
	orig := []physics.Particle{
		physics.NewParticle(1.5, physics.Vec3{X: 0.25, Y: -3, Z: 1e-7}, physics.Vec3{X: -0.5, Y: 2}),
		physics.NewParticle(2e-4, physics.Vec3{Z: 42}, physics.Vec3{Z: -1}),
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, orig))

	parsed, err := Parse(&buf)
	require.NoError(t, err)
	require.Len(t, parsed, len(orig))
	for i := range orig {
		assert.Equal(t, orig[i].Mass, parsed[i].Mass)
		assert.Equal(t, orig[i].Pos, parsed[i].Pos)
		assert.Equal(t, orig[i].Vel, parsed[i].Vel)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cluster.txt")
	orig := []physics.Particle{
		physics.NewParticle(1.0, physics.Vec3{X: 1}, physics.Vec3{Y: 0.5}),
	}

	require.NoError(t, Save(path, orig))
	loaded, err := Load(path)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, orig[0], loaded[0])
}

func TestLoadMissingFileIsFatal(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
