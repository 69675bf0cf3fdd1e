package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/hifz-revision-bot/internal/domain/entities"
)

func TestCallbackEncoding(t *testing.T) {
	assert.Equal(t, "rate:2:255:4", buildRateCallback(2, 255, entities.QualityHesitant))
	assert.Equal(t, "next:67", buildNextCallback(67))
	assert.Equal(t, "status:1", buildStatusCallback(1))
	assert.Equal(t, "next", callbackData{Action: actionNext}.encode())
}

func TestDecodeCallback(t *testing.T) {
	cd := decodeCallback(buildRateCallback(18, 110, entities.QualityBlackout))
	assert.Equal(t, actionRate, cd.Action)

	vals, err := cd.ints(3)
	require.NoError(t, err)
	assert.Equal(t, []int{18, 110, 0}, vals)

	t.Run("wrong arity", func(t *testing.T) {
		_, err := decodeCallback("rate:18:110").ints(3)
		assert.ErrorIs(t, err, errBadCallback)
	})

	t.Run("not a number", func(t *testing.T) {
		_, err := decodeCallback("next:abc").ints(1)
		assert.ErrorIs(t, err, errBadCallback)
	})

	t.Run("no params", func(t *testing.T) {
		cd := decodeCallback("status")
		assert.Equal(t, "status", cd.Action)
		assert.Empty(t, cd.Params)
	})
}

func TestCallbackFitsTelegramLimit(t *testing.T) {
	// Telegram rejects callback data longer than 64 bytes.
	assert.LessOrEqual(t, len(buildRateCallback(114, 286, entities.QualityPerfect)), 64)
}
