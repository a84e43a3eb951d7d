package filekey

import (
	"fmt"
	"io/fs"
	"strings"
	"syscall"
)

const (
	FragmentDelimiter = "-"     // Separator placed between name fragments.
	Extension         = ".avro" // Suffix of every artifact file name.
	nameMaxLength     = 255     // Common filesystem limit for a single path element.
)

// Characters that would split or truncate a path element.
const forbiddenChars = "/\\\x00"

type InvalidFileKeyError string

func (e InvalidFileKeyError) Error() string { return "invalid file key: " + string(e) }

// New constructs a valid artifact file name from the provided name fragments.
//
// Names follow a structured format: <fragment1>-<fragment2>-...-<fragmentN>.avro
//   - Empty fragments are ignored.
//   - Fragment case is preserved.
//   - A fragment may itself contain the delimiter (e.g. a UUID), so the structure is not reversible
//     by splitting alone.
//
// Example:
//
//	name, err := New("Order", "c1", "o1", "order")
//	fmt.Println(name) // "Order-c1-o1-order.avro"
func New(fragments ...string) (string, error) {
	parts := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		if fragment == "" {
			continue // Skip empty fragments.
		}
		if err := ValidateFragment(fragment); err != nil {
			return "", err
		}
		parts = append(parts, fragment)
	}
	name := Build(parts...) + Extension
	if err := Validate(name); err != nil {
		return "", err
	}
	return name, nil
}

// ValidateFragment validates a single name fragment.
func ValidateFragment(fragment string) error {
	if fragment == "" {
		return InvalidFileKeyError("fragment must not be empty")
	}
	if strings.ContainsAny(fragment, forbiddenChars) {
		return InvalidFileKeyError(fmt.Sprintf("fragment %q must not contain a path separator or NUL", fragment))
	}
	if fragment == "." || fragment == ".." {
		return InvalidFileKeyError(fmt.Sprintf("fragment %q is a relative path element", fragment))
	}
	return nil
}

// Validate validates the provided artifact file name.
// A name longer than the path element limit is reported as a *fs.PathError wrapping
// syscall.ENAMETOOLONG, the error the filesystem itself would return.
func Validate(name string) error {
	if name == "" {
		return InvalidFileKeyError("name must not be empty")
	}
	if len(name) > nameMaxLength {
		return &fs.PathError{Op: "create", Path: name, Err: syscall.ENAMETOOLONG}
	}
	if strings.ContainsAny(name, forbiddenChars) {
		return InvalidFileKeyError(fmt.Sprintf("name %q must not contain a path separator or NUL", name))
	}
	if !strings.HasSuffix(name, Extension) || name == Extension {
		return InvalidFileKeyError(fmt.Sprintf("name '%s' must end with '%s'", name, Extension))
	}
	stem := strings.TrimSuffix(name, Extension)
	if strings.HasPrefix(stem, ".") || strings.HasPrefix(stem, FragmentDelimiter) ||
		strings.HasSuffix(stem, FragmentDelimiter) {
		return InvalidFileKeyError(
			fmt.Sprintf("name '%s' must not start with '.' or start or end with '%s'", name, FragmentDelimiter),
		)
	}
	return nil
}

// Build joins name fragments with the fragment delimiter.
// It skips any empty fragments and does not append the extension.
func Build(fragments ...string) string {
	var b strings.Builder
	first := true
	for _, f := range fragments {
		if f == "" {
			continue
		}
		if !first {
			b.WriteString(FragmentDelimiter)
		}
		b.WriteString(f)
		first = false
	}
	return b.String()
}

// Stem returns the name without its extension.
func Stem(name string) string {
	return strings.TrimSuffix(name, Extension)
}
