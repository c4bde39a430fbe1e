package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
)

type sample struct {
	ID    string  `json:"id"`
	Price float64 `json:"price"`
}

func TestCodecRegistered(t *testing.T) {
	c := encoding.GetCodec(Name)
	require.NotNil(t, c)
	assert.Equal(t, "json", c.Name())
}

func TestUnmarshalEmptyPayloadLeavesZeroValue(t *testing.T) {
	var s sample
	require.NoError(t, JSON{}.Unmarshal(nil, &s))
	assert.Equal(t, sample{}, s)
}

func TestUnmarshalRejectsGarbage(t *testing.T) {
	var s sample
	err := JSON{}.Unmarshal([]byte("{not json"), &s)
	assert.Error(t, err)
}
