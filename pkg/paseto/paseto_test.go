package paseto

import (
	"crypto/rand"
	"encoding/base64"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Sistem-Administrasi-Rehabilitasi/models"
)

func init() {
	// Key sekali pakai untuk seluruh test di paket ini; loadKey di-cache
	// lewat sync.Once sehingga harus di-set sebelum pemakaian pertama.
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		panic(err)
	}
	if err := os.Setenv("PASETO_SECRET", base64.URLEncoding.EncodeToString(raw)); err != nil {
		panic(err)
	}
}

func TestTokenRoundtrip(t *testing.T) {
	user := &models.User{
		ID:          primitive.NewObjectID(),
		Username:    "akuntan01",
		Role:        "accountant",
		Permissions: []string{"view_finance", "manage_finance"},
	}

	token, err := GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "akuntan01", claims.Username)
	assert.Equal(t, "accountant", claims.Role)
	assert.Equal(t, []string{"view_finance", "manage_finance"}, claims.Permissions)
}

func TestTokenWithoutPermissions(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), Username: "perawat01", Role: "nurse"}

	token, err := GenerateToken(user)
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Empty(t, claims.Permissions)
}

func TestTamperedTokenRejected(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), Username: "dokter01", Role: "doctor"}

	token, err := GenerateToken(user)
	require.NoError(t, err)

	tampered := token[:len(token)-4] + "xxxx"
	_, err = ValidateToken(tampered)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	_, err := ValidateToken("bukan-token-paseto")
	assert.Error(t, err)
}
