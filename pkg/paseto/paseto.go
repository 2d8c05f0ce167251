package paseto

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/o1egl/paseto"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Sistem-Administrasi-Rehabilitasi/models"
)

var (
	pasetoInstance = paseto.NewV2()

	keyOnce      sync.Once
	symmetricKey []byte
	keyErr       error
)

// loadKey mendecode PASETO_SECRET dari env. Dicoba beberapa varian base64
// karena format secret di deployment lama tidak seragam.
func loadKey() ([]byte, error) {
	keyOnce.Do(func() {
		secret := os.Getenv("PASETO_SECRET")
		if secret == "" {
			keyErr = fmt.Errorf("PASETO_SECRET belum di setting di env")
			return
		}

		decodedKey, err := base64.URLEncoding.DecodeString(secret)
		if err != nil {
			decodedKey, err = base64.RawURLEncoding.DecodeString(secret)
			if err != nil {
				decodedKey, err = base64.StdEncoding.DecodeString(secret)
				if err != nil {
					keyErr = fmt.Errorf("gagal decode PASETO_SECRET: %w", err)
					return
				}
			}
		}

		if len(decodedKey) != 32 {
			keyErr = fmt.Errorf("PASETO_SECRET harus tepat 32 byte setelah decode, dapat %d byte", len(decodedKey))
			return
		}

		symmetricKey = decodedKey
	})
	return symmetricKey, keyErr
}

func GenerateToken(user *models.User) (string, error) {
	key, err := loadKey()
	if err != nil {
		return "", err
	}

	now := time.Now()
	exp := now.Add(24 * time.Hour)

	token := paseto.JSONToken{
		IssuedAt:   now,
		Expiration: exp,
		NotBefore:  now,
	}

	// Custom claims disimpan sebagai string
	token.Set("user_id", user.ID.Hex())
	token.Set("username", user.Username)
	token.Set("role", user.Role)
	token.Set("permissions", strings.Join(user.Permissions, ","))

	return pasetoInstance.Encrypt(key, token, "")
}

func ValidateToken(tokenString string) (*models.Claims, error) {
	key, err := loadKey()
	if err != nil {
		return nil, err
	}

	var token paseto.JSONToken
	var footer string

	err = pasetoInstance.Decrypt(tokenString, key, &token, &footer)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt paseto token: %w", err)
	}

	if err := token.Validate(); err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	var claims models.Claims

	userIDStr := token.Get("user_id")
	objectID, err := primitive.ObjectIDFromHex(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid user_id format: %v", err)
	}
	claims.UserID = objectID
	claims.Username = token.Get("username")
	claims.Role = token.Get("role")
	if raw := token.Get("permissions"); raw != "" {
		claims.Permissions = strings.Split(raw, ",")
	}

	return &claims, nil
}
