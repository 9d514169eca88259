package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword bcrypt-hashes a plain password.  The cost comes from
// BCRYPT_COST so environments can trade hashing time for login latency;
// bcrypt embeds it in the hash, so changing the setting only affects
// passwords hashed afterwards.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches the stored bcrypt hash.
// The comparison is constant time.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
