package parser

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"unicode"
)

// GenerateArticle derives a short article code from a product name. The code
// is a pure function of the name: up to three 3-rune word prefixes, upper
// case, plus the first 4 hex chars of the name's MD5. Names without a usable
// word prefix fall back to the first 8 hex chars of the digest. Articles are
// stable across runs but only unique within one supplier's namespace.
func GenerateArticle(name string) string {
	sum := md5.Sum([]byte(name))
	digest := strings.ToUpper(hex.EncodeToString(sum[:]))

	var parts []string
	for i, word := range strings.Fields(name) {
		if i == 3 {
			break
		}
		runes := []rune(word)
		if len(runes) == 0 || (!unicode.IsLetter(runes[0]) && !unicode.IsDigit(runes[0])) {
			continue
		}
		n := 3
		if len(runes) < n {
			n = len(runes)
		}
		parts = append(parts, strings.ToUpper(string(runes[:n])))
	}

	if len(parts) == 0 {
		return digest[:8]
	}
	return strings.Join(parts, "") + "-" + digest[:4]
}
