package id

import (
	"strconv"
	"strings"
	"unicode/utf16"
)

// FieldSeparator joins identifying fields before hashing. Absent optional
// fields still contribute an empty segment so positions never shift.
const FieldSeparator = "|"

const (
	KindTeam = "team"
	KindGame = "game"
)

// Generator derives stable content-based IDs for canonical records.
type Generator interface {
	Canonical(kind string, fields ...string) string
}

type HashGenerator struct{}

func NewHashGenerator() *HashGenerator {
	return &HashGenerator{}
}

func (g *HashGenerator) Canonical(kind string, fields ...string) string {
	return Canonical(kind, fields...)
}

// Canonical returns "{kind}_{abs(hash)}" where hash is the 32-bit signed
// rolling hash (h = h*31 + c) over the UTF-16 code units of the joined fields.
func Canonical(kind string, fields ...string) string {
	h := int64(rollingHash(strings.Join(fields, FieldSeparator)))
	if h < 0 {
		h = -h
	}

	return kind + "_" + strconv.FormatInt(h, 10)
}

func rollingHash(s string) int32 {
	var h int32
	for _, unit := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(unit)
	}
	return h
}
