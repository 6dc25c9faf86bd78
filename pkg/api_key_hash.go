package pkg

import "golang.org/x/crypto/bcrypt"

const apiKeyHashCost = 12

// HashAPIKey returns the bcrypt hash stored in config for an issued key.
func HashAPIKey(key string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(key), apiKeyHashCost)
	return BytesToString(bytes), err
}

func CheckAPIKeyHash(key, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil
}
