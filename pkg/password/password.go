// Package password genera credenciales aleatorias para altas y restablecimientos.
package password

import (
	"crypto/rand"
	"math/big"
)

const (
	numbers      = "0123456789"
	upperLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	specialChars = "!@#$%^&*()_+{}[]<>?"
	lowerLetters = "abcdefghijklmnopqrstuvwxyz"
)

// Alphabet conjunto de caracteres del que se extrae cada posición.
const Alphabet = numbers + upperLetters + specialChars + lowerLetters

// DefaultLength longitud usada por los formularios del panel.
const DefaultLength = 12

// Generate devuelve una contraseña de length caracteres tomados uniformemente de Alphabet.
// length <= 0 devuelve cadena vacía.
func Generate(length int) string {
	if length <= 0 {
		return ""
	}
	max := big.NewInt(int64(len(Alphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand sólo falla si el SO no tiene fuente de entropía
			panic("password: fuente aleatoria no disponible: " + err.Error())
		}
		out[i] = Alphabet[n.Int64()]
	}
	return string(out)
}
