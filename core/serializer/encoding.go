package serializer

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/ChordSheet/core/errors"
	"github.com/FocuswithJustin/ChordSheet/core/song"
)

// Encoding names a byte encoding of the plain form.
type Encoding string

// Supported encodings.
const (
	JSON    Encoding = "json"
	YAML    Encoding = "yaml"
	Msgpack Encoding = "msgpack"
)

// Encodings lists the supported encodings.
var Encodings = []Encoding{JSON, YAML, Msgpack}

// Encode serializes s and encodes the plain form. Map keys are written in
// sorted order by every encoding, so equal songs encode to equal bytes.
func Encode(s *song.Song, enc Encoding) ([]byte, error) {
	node := Serialize(s)
	switch enc {
	case JSON:
		data, err := json.MarshalIndent(node, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode json: %w", err)
		}
		return data, nil
	case YAML:
		data, err := yaml.Marshal(node)
		if err != nil {
			return nil, fmt.Errorf("failed to encode yaml: %w", err)
		}
		return data, nil
	case Msgpack:
		var buf bytes.Buffer
		e := msgpack.NewEncoder(&buf)
		e.SetSortMapKeys(true)
		if err := e.Encode(node); err != nil {
			return nil, fmt.Errorf("failed to encode msgpack: %w", err)
		}
		return buf.Bytes(), nil
	}
	return nil, errors.NewUnsupported("encoding "+string(enc), "supported encodings are json, yaml and msgpack")
}

// Decode decodes data and deserializes the plain form.
func Decode(data []byte, enc Encoding) (*song.Song, error) {
	var node map[string]any
	var err error
	switch enc {
	case JSON:
		err = json.Unmarshal(data, &node)
	case YAML:
		err = yaml.Unmarshal(data, &node)
	case Msgpack:
		err = msgpack.Unmarshal(data, &node)
	default:
		return nil, errors.NewUnsupported("encoding "+string(enc), "supported encodings are json, yaml and msgpack")
	}
	if err != nil {
		return nil, &errors.ParseError{Kind: string(enc) + " document", Input: preview(data), Err: err}
	}
	return Deserialize(node)
}

// Fingerprint returns the hex BLAKE3 hash of the compact JSON form of s.
// Songs with the same lines, items and source positions share a
// fingerprint.
func Fingerprint(s *song.Song) (string, error) {
	data, err := json.Marshal(Serialize(s))
	if err != nil {
		return "", fmt.Errorf("failed to encode json: %w", err)
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func preview(data []byte) string {
	const limit = 40
	if len(data) > limit {
		return string(data[:limit]) + "..."
	}
	return string(data)
}
