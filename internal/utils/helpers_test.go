// internal/utils/helpers_test.go

package utils

import (
	"encoding/hex"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGenerateUUID(t *testing.T) {
	id := GenerateUUID()
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.NotEqual(t, id, GenerateUUID())
}

func TestGenerateRequestID(t *testing.T) {
	id := GenerateRequestID()
	assert.Regexp(t, `^req_[0-9a-f-]{36}$`, id)
}

func TestGenerateRefreshToken(t *testing.T) {
	token, err := GenerateRefreshToken()
	assert.NoError(t, err)
	decoded, err := hex.DecodeString(token)
	assert.NoError(t, err)
	assert.Len(t, decoded, 32)
}

func TestGenerateSecureToken(t *testing.T) {
	token := GenerateSecureToken()
	decoded, err := hex.DecodeString(token)
	assert.NoError(t, err)
	assert.Len(t, decoded, 16)
}

func TestRandomInt(t *testing.T) {
	for i := 0; i < 50; i++ {
		n := RandomInt(10)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 10)
	}
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "&lt;script&gt;", SanitizeString("  <script>  "))
	assert.Equal(t, "plain", SanitizeString("plain"))
}

func TestMinMaxInt(t *testing.T) {
	assert.Equal(t, 2, MinInt(2, 5))
	assert.Equal(t, 2, MinInt(5, 2))
	assert.Equal(t, 5, MaxInt(2, 5))
	assert.Equal(t, 5, MaxInt(5, 2))
}

func TestPtrHelpers(t *testing.T) {
	s := StringPtr("hi")
	assert.Equal(t, "hi", *s)

	i := IntPtr(7)
	assert.Equal(t, 7, *i)

	b := BoolPtr(true)
	assert.True(t, *b)
}

func TestMustMarshalJSON(t *testing.T) {
	raw := MustMarshalJSON(map[string]int{"a": 1})
	assert.JSONEq(t, `{"a":1}`, string(raw))

	assert.Panics(t, func() {
		MustMarshalJSON(make(chan int))
	})
}
