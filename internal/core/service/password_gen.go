package service

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
	"unicode"
)

const generatedSuffixAlphabet = "abcdefghjkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const generatedSuffixLength = 6

// generatePassword derives a password from name, surname and age fragments
// followed by a random suffix, e.g. "anaper20Xk7qMn".
func generatePassword(name, surname string, age int) (string, error) {
	var b strings.Builder
	b.WriteString(fragment(name, 3))
	b.WriteString(fragment(surname, 3))
	b.WriteString(strconv.Itoa(age))

	max := big.NewInt(int64(len(generatedSuffixAlphabet)))
	for i := 0; i < generatedSuffixLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(generatedSuffixAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// fragment returns up to n lower-cased letters or digits from s.
func fragment(s string, n int) string {
	out := make([]rune, 0, n)
	for _, r := range strings.ToLower(s) {
		if len(out) == n {
			break
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			out = append(out, r)
		}
	}
	return string(out)
}
