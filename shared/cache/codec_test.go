package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cartLine struct {
	ItemID string `json:"item_id"`
	Qty    int    `json:"qty"`
}

func TestEncodeDecode(t *testing.T) {
	t.Run("string stays raw", func(t *testing.T) {
		raw, err := encode("booking-1")
		require.NoError(t, err)
		assert.Equal(t, "booking-1", string(raw))

		var out string
		require.NoError(t, decode(string(raw), &out))
		assert.Equal(t, "booking-1", out)
	})

	t.Run("struct goes through json", func(t *testing.T) {
		raw, err := encode(cartLine{ItemID: "i1", Qty: 2})
		require.NoError(t, err)
		assert.JSONEq(t, `{"item_id":"i1","qty":2}`, string(raw))

		var out cartLine
		require.NoError(t, decode(string(raw), &out))
		assert.Equal(t, cartLine{ItemID: "i1", Qty: 2}, out)
	})

	t.Run("bytes stay raw", func(t *testing.T) {
		raw, err := encode([]byte{0x89, 'P', 'N', 'G'})
		require.NoError(t, err)

		var out []byte
		require.NoError(t, decode(string(raw), &out))
		assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, out)
	})

	t.Run("corrupt json", func(t *testing.T) {
		var out cartLine
		assert.Error(t, decode("{", &out))
	})
}
