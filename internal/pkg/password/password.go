// Package password wraps bcrypt behind the two operations the auth core
// needs: one-way hashing with a per-call random salt, and verification.
package password

import "golang.org/x/crypto/bcrypt"

// Hash produces a self-describing bcrypt hash (algorithm, cost, salt, and
// digest are all embedded). Two calls with the same input yield different
// strings because of the random salt.
func Hash(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify reports whether plain matches the stored hash. A wrong password or
// a malformed hash both yield false; Verify never returns an error to the
// caller because the distinction must not leak into login behavior.
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
