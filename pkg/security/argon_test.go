package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerify(t *testing.T) {
	a := New()

	encoded, err := a.GenerateFromPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$"))

	ok, err := a.VerifyPasswd("correct horse battery staple", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.VerifyPasswd("wrong password", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGenerateIsSalted(t *testing.T) {
	a := New()

	first, err := a.GenerateFromPassword("same input")
	require.NoError(t, err)

	second, err := a.GenerateFromPassword("same input")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyReadsParamsFromHash(t *testing.T) {
	weak := &ArgonHash{
		Memory:      8 * 1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}

	encoded, err := weak.GenerateFromPassword("some password")
	require.NoError(t, err)

	// A verifier configured differently must still match, the
	// parameters travel inside the encoded hash
	ok, err := New().VerifyPasswd("some password", encoded)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	a := New()

	for _, e := range []string{"", "not-a-hash", "$argon2id$v=19$m=65536,t=3,p=2$onlyonepart"} {
		_, err := a.VerifyPasswd("whatever", e)
		assert.Error(t, err)
	}
}
