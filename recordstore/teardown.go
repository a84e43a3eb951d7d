package recordstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/sirupsen/logrus"
)

// Teardown closes the datastore client and removes the root directory recursively.
// Calling Teardown on a closed store is a no-op.
//
// Missing entries are ignored. Other failures do not stop the removal of remaining
// entries and are returned together.
func (s *Store[T, PT]) Teardown() error {
	switch s.state {
	case StateClosed:
		return nil
	case StateUninitialized:
		s.state = StateClosed
		return nil
	}

	var errs []error
	if err := s.client.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := removeTree(s.root); err != nil {
		errs = append(errs, err)
	}
	s.state = StateClosed

	log := s.log.WithFields(logrus.Fields{"root": s.root})
	if err := errors.Join(errs...); err != nil {
		log.WithError(err).Warn("store teardown incomplete")
		return fmt.Errorf("recordstore: teardown: %w", err)
	}
	log.Debug("store torn down")
	s.emit(s.onTornDown, Event{Kind: StoreTornDown, Root: s.root})
	return nil
}

// removeTree removes root and every entry below it, children before parents.
func removeTree(root string) error {
	var errs []error
	var paths []string
	_ = filepath.WalkDir(root, func(path string, _ fs.DirEntry, err error) error {
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				errs = append(errs, err)
			}
			return nil
		}
		paths = append(paths, path)
		return nil
	})

	// WalkDir visits parents before children.
	slices.Reverse(paths)
	for _, path := range paths {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
