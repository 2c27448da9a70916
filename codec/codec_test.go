package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Valid   bool   `json:"is_valid"`
	Count   uint64 `json:"nonzero_count"`
	Payload []byte `json:"compressed_values"`
}

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "go-json"} {
		c, ok := ByName(name)
		require.True(t, ok)
		assert.Equal(t, name, c.Name())
	}

	_, ok := ByName("msgpack")
	assert.False(t, ok)
}

func TestCodecs_Interchangeable(t *testing.T) {
	in := record{Valid: true, Count: 3, Payload: []byte{0, 1, 254}}

	for _, enc := range []Codec{JSON{}, GoJSON{}} {
		for _, dec := range []Codec{JSON{}, GoJSON{}} {
			t.Run(enc.Name()+"->"+dec.Name(), func(t *testing.T) {
				data, err := enc.Marshal(in)
				require.NoError(t, err)

				var out record
				require.NoError(t, dec.Unmarshal(data, &out))
				assert.Equal(t, in, out)
			})
		}
	}
}

func TestMustMarshal(t *testing.T) {
	assert.JSONEq(t, `{"is_valid":false,"nonzero_count":0,"compressed_values":null}`, string(MustMarshal(nil, record{})))
	assert.Panics(t, func() { MustMarshal(JSON{}, make(chan int)) })
}
