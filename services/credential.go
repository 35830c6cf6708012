package services

import "golang.org/x/crypto/bcrypt"

const defaultBcryptCost = 10

type CredentialService struct {
	cost int
}

func NewCredentialService(cost int) *CredentialService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = defaultBcryptCost
	}
	return &CredentialService{cost: cost}
}

func (c *CredentialService) HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), c.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ComparePassword is false for a mismatch and for a malformed hash.
func (c *CredentialService) ComparePassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
