// ABOUTME: Password hashing primitives built on bcrypt
// ABOUTME: Includes a dummy comparison to keep login timing uniform

package auth

import "golang.org/x/crypto/bcrypt"

// dummyHash is a well-formed bcrypt hash used only for timing. Comparing
// against it when the username is unknown keeps login timing uniform, so the
// response time doesn't reveal whether the username exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// HashPassword hashes a plaintext password with bcrypt at the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword verifies a plaintext password against a stored bcrypt hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// compareDummy burns the same bcrypt work as a real comparison.
func compareDummy(password string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
}
