package display

import (
	"testing"

	"github.com/stretchr/testify/require"

	"laser-trainer/internal/domain/scene"
)

func TestCommandForKey(t *testing.T) {
	require.Equal(t, scene.CommandQuit, commandForKey(27))
	require.Equal(t, scene.CommandTogglePreview, commandForKey('c'))
	require.Equal(t, scene.CommandTogglePreview, commandForKey('C'))
	require.Equal(t, scene.CommandNone, commandForKey('x'))
	require.Equal(t, scene.CommandNone, commandForKey(-1))
}
