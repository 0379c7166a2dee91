package cryptox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "cryptox-test")
	if err != nil {
		panic(err)
	}
	SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	require.NoError(t, VerifyPassword("hunter2hunter2", hash))
	require.ErrorIs(t, VerifyPassword("wrong", hash), ErrPasswordMismatch)
}

func TestHashIsSalted(t *testing.T) {
	a, err := HashPassword("same password")
	require.NoError(t, err)
	b, err := HashPassword("same password")
	require.NoError(t, err)

	// Same input, fresh salt, different output; both still verify.
	require.NotEqual(t, a, b)
	require.NoError(t, VerifyPassword("same password", a))
	require.NoError(t, VerifyPassword("same password", b))
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	require.Error(t, VerifyPassword("x", "not a phc string"))
	require.Error(t, VerifyPassword("x", "$bcrypt$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"))
	require.Error(t, VerifyPassword("x", "$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA"))
	require.Error(t, VerifyPassword("x", "$argon2id$v=19$m=19456,t=2,p=1$!!!$aGFzaA"))
}

func TestPepperIsStableAcrossLoads(t *testing.T) {
	p := GetPepper()
	require.NotEmpty(t, p)
	require.Equal(t, p, GetPepper())
}
