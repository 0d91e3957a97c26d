package rohc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cedricde/rohc/types"
)

func TestNewCodecUnknownEngine(t *testing.T) {
	_, err := NewCodec("no-such-engine", &types.CodecOptions{})
	assert.Error(t, err)
}

func TestRegisterCodecAndConstruct(t *testing.T) {
	var got *types.CodecOptions
	RegisterCodec("fake-engine", func(options *types.CodecOptions) (types.Codec, error) {
		got = options
		return &fakeCodec{}, nil
	})

	options := &types.CodecOptions{
		LargeCID:    true,
		MaxContexts: 64,
		Random:      func() uint32 { return 0 },
	}
	codec, err := NewCodec("fake-engine", options)
	require.NoError(t, err)
	require.NotNil(t, codec)

	// the factory received the injected capabilities, not a copy
	assert.Same(t, options, got)
	assert.True(t, got.LargeCID)
	assert.Equal(t, 64, got.MaxContexts)
}

func TestRegisterCodecRejectsDuplicates(t *testing.T) {
	RegisterCodec("dup-engine", func(*types.CodecOptions) (types.Codec, error) {
		return &fakeCodec{}, nil
	})
	assert.Panics(t, func() {
		RegisterCodec("dup-engine", func(*types.CodecOptions) (types.Codec, error) {
			return &fakeCodec{}, nil
		})
	})
}

func TestRegisterCodecRejectsNilFactory(t *testing.T) {
	assert.Panics(t, func() { RegisterCodec("nil-engine", nil) })
}
