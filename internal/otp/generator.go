package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const codeDigits = 6

// Generator выдает одноразовый код подтверждения.
type Generator interface {
	Generate() string
}

// SecureGenerator - генератор на crypto/rand, равномерный на [0, 999999],
// с дополнением нулями до фиксированной ширины.
type SecureGenerator struct{}

func NewSecureGenerator() *SecureGenerator {
	return &SecureGenerator{}
}

func (g *SecureGenerator) Generate() string {
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(codeDigits), nil) // 10^6
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		// crypto/rand отказывает только при сломанном источнике энтропии ОС
		panic(err)
	}
	return fmt.Sprintf("%0*d", codeDigits, n)
}
