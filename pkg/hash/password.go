package hash

import "golang.org/x/crypto/bcrypt"

// Cost is the bcrypt work factor used for new password hashes.
var Cost = bcrypt.DefaultCost

// Password returns the bcrypt hash of a plaintext password.
func Password(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Matches reports whether plain is the password behind hashed.
func Matches(hashed, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
