package helpers

import "golang.org/x/crypto/bcrypt"

// bcryptCost is the fixed work factor; bcrypt salts each call itself.
const bcryptCost = 10

// HashPassword hashes a plaintext password with bcrypt. Callers must hash
// exactly once per password change, never on unrelated saves.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword reports whether plain matches the stored hash.
func CompareHashAndPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
