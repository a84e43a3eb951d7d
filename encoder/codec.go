// Package encoder converts records to and from self-describing container bytes.
package encoder

// Codec encodes a single record into a container and decodes it back.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, out any) error
}

const (
	ErrMissingRecord  = EncoderError("encoder: container holds no record")
	ErrSchemaMismatch = EncoderError("encoder: container schema does not match record schema")
)

type EncoderError string

func (e EncoderError) Error() string { return string(e) }
