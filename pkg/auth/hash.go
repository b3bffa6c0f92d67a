// -----------------------------------------------------------------------------
// Password Hashing
// -----------------------------------------------------------------------------
// bcrypt tabanlı şifre hash'leme. Repository katmanı kullanıcı şifrelerini
// veritabanına yazmadan önce Hasher ile hash'ler.
// -----------------------------------------------------------------------------

package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost, production için önerilen bcrypt maliyeti.
const DefaultCost = 12

// ErrEmptyPassword, boş şifre hash'lenemez.
var ErrEmptyPassword = errors.New("password cannot be empty")

// Hasher, sabit bir bcrypt maliyeti ile şifre hash'ler.
type Hasher struct {
	cost int
}

// NewHasher, yeni bir Hasher oluşturur. Geçersiz maliyet DefaultCost olur.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash, şifreyi bcrypt ile hash'ler.
func (h *Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Check, şifrenin hash ile eşleşip eşleşmediğini kontrol eder.
func (h *Hasher) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// NeedsRehash, hash'in mevcut maliyetten düşük olup olmadığını kontrol eder.
func (h *Hasher) NeedsRehash(hash string) bool {
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return false
	}
	return cost < h.cost
}
