package utils

import (
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const nanoIdAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

func GenerateNanoID() string {
	id, _ := gonanoid.Generate(nanoIdAlphabet, 21)
	return id
}

func GenerateNanoIDWithPrefix(prefix string, length int) string {
	id, _ := gonanoid.Generate(nanoIdAlphabet, length)
	return prefix + "_" + id
}

func Now() time.Time {
	return time.Now().UTC()
}
