package model

import (
	"encoding/base64"
	"errors"
	"strings"
)

// ErrInvalidDataURI возвращается для строки, не являющейся base64 data URI
var ErrInvalidDataURI = errors.New("invalid data uri")

// DecodeDataURI разбирает data:<mime>;base64,<payload> и возвращает mime и байты
func DecodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, ErrInvalidDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrInvalidDataURI
	}
	mime, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, ErrInvalidDataURI
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, errors.Join(ErrInvalidDataURI, err)
	}
	return mime, data, nil
}

// EncodeDataURI собирает base64 data URI
func EncodeDataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
