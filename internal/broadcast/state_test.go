package broadcast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstDiffIncludesEveryKey(t *testing.T) {
	s := NewSession()
	out := s.Diff(State{"volume": 100, "speed": 100})
	assert.Equal(t, State{"volume": 100, "speed": 100}, out)
}

func TestSecondDiffOnlyIncludesChangedKeys(t *testing.T) {
	s := NewSession()
	s.Diff(State{"volume": 100, "speed": 100})

	out := s.Diff(State{"volume": 100, "speed": 100})
	assert.Empty(t, out, "nothing changed, so the second diff carries no keys")

	out = s.Diff(State{"volume": 80, "speed": 100})
	assert.Equal(t, State{"volume": 80}, out)
}
