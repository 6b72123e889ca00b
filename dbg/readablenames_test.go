package dbg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	t.Run("is stable for the same value", func(t *testing.T) {
		assert.Equal(t, Name(3), Name(3))
		x := 5
		assert.Equal(t, Name(&x), Name(&x))
	})

	t.Run("nil values", func(t *testing.T) {
		var p *int
		assert.Equal(t, "Ø", Name(nil))
		assert.Equal(t, "Ø", Name(p))
	})

	t.Run("non-empty names", func(t *testing.T) {
		assert.NotEmpty(t, Name("cell"))
	})
}
