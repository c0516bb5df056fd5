package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

func GenerateID() string {
	id, err := gonanoid.Generate(idAlphabet, 7)
	if err != nil {
		return ""
	}
	return id
}

// GenerateShareCode produces the short code embedded in a post's share link.
func GenerateShareCode() string {
	code, err := gonanoid.Generate(idAlphabet, 10)
	if err != nil {
		return ""
	}
	return code
}
