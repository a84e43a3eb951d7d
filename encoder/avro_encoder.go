package encoder

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/linkedin/goavro/v2"
)

const (
	CompressionNull    = goavro.CompressionNullLabel
	CompressionDeflate = goavro.CompressionDeflateLabel
	CompressionSnappy  = goavro.CompressionSnappyLabel
)

// AvroMarshaler is the interface implemented by records that can describe themselves
// as an Avro schema and a native Avro datum.
type AvroMarshaler interface {
	Schema() string
	MarshalAvro() (map[string]any, error)
}

// AvroUnmarshaler is the interface implemented by records that can populate themselves
// from a native Avro datum.
type AvroUnmarshaler interface {
	Schema() string
	UnmarshalAvro(map[string]any) error
}

var codecs sync.Map // Schema text -> *goavro.Codec.

// codecFor returns the parsed codec of a schema, parsing it once per schema text.
func codecFor(schema string) (*goavro.Codec, error) {
	if c, ok := codecs.Load(schema); ok {
		return c.(*goavro.Codec), nil
	}
	c, err := goavro.NewCodec(schema)
	if err != nil {
		return nil, fmt.Errorf("encoder: invalid schema: %w", err)
	}
	actual, _ := codecs.LoadOrStore(schema, c)
	return actual.(*goavro.Codec), nil
}

// AvroMarshal returns an uncompressed Avro container holding v as its only record.
func AvroMarshal(v AvroMarshaler) ([]byte, error) {
	return OCFEncoder{}.marshal(v)
}

// AvroUnmarshal parses an Avro container and stores its first record in v.
// ErrMissingRecord is returned if the container is empty or holds no record.
func AvroUnmarshal(data []byte, v AvroUnmarshaler) error {
	return OCFEncoder{}.unmarshal(data, v)
}

// OCFEncoder encodes records as Avro Object Container Files.
// The container header, including the schema text, is never compressed.
//
// Implements Codec interface.
type OCFEncoder struct {
	Compression string // Block compression; defaults to CompressionNull.
}

func (e OCFEncoder) Marshal(v any) ([]byte, error) {
	m, ok := v.(AvroMarshaler)
	if !ok {
		return nil, fmt.Errorf("encoder: value does not implement AvroMarshaler")
	}
	return e.marshal(m)
}

func (e OCFEncoder) Unmarshal(data []byte, out any) error {
	u, ok := out.(AvroUnmarshaler)
	if !ok {
		return fmt.Errorf("encoder: target does not implement AvroUnmarshaler")
	}
	return e.unmarshal(data, u)
}

func (e OCFEncoder) marshal(v AvroMarshaler) ([]byte, error) {
	codec, err := codecFor(v.Schema())
	if err != nil {
		return nil, err
	}
	datum, err := v.MarshalAvro()
	if err != nil {
		return nil, fmt.Errorf("encoder: failed to marshal record: %w", err)
	}
	compression := e.Compression
	if compression == "" {
		compression = CompressionNull
	}

	var buf bytes.Buffer
	w, err := goavro.NewOCFWriter(goavro.OCFConfig{
		W:               &buf,
		Codec:           codec,
		CompressionName: compression,
	})
	if err != nil {
		return nil, fmt.Errorf("encoder: failed to create container writer: %w", err)
	}
	if err := w.Append([]any{datum}); err != nil {
		return nil, fmt.Errorf("encoder: failed to append record: %w", err)
	}
	return buf.Bytes(), nil
}

func (e OCFEncoder) unmarshal(data []byte, v AvroUnmarshaler) error {
	if len(data) == 0 {
		return ErrMissingRecord
	}
	codec, err := codecFor(v.Schema())
	if err != nil {
		return err
	}
	r, err := goavro.NewOCFReader(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("encoder: failed to read container header: %w", err)
	}
	if r.Codec().CanonicalSchema() != codec.CanonicalSchema() {
		return ErrSchemaMismatch
	}
	if !r.Scan() {
		if err := r.Err(); err != nil {
			return fmt.Errorf("encoder: failed to read container block: %w", err)
		}
		return ErrMissingRecord
	}
	datum, err := r.Read()
	if err != nil {
		return fmt.Errorf("encoder: failed to decode record: %w", err)
	}
	native, ok := datum.(map[string]any)
	if !ok {
		return fmt.Errorf("encoder: unexpected datum type %T", datum)
	}
	if err := v.UnmarshalAvro(native); err != nil {
		return fmt.Errorf("encoder: failed to unmarshal record: %w", err)
	}
	return nil
}

// EmptyContainer returns a valid container for the schema holding zero records.
func EmptyContainer(schema string) ([]byte, error) {
	codec, err := codecFor(schema)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := goavro.NewOCFWriter(goavro.OCFConfig{W: &buf, Codec: codec}); err != nil {
		return nil, fmt.Errorf("encoder: failed to create container writer: %w", err)
	}
	return buf.Bytes(), nil
}
