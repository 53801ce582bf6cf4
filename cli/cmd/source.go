package cmd

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"
)

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// source is one named input of expressions, one per line.
type source struct {
	name string
	io.Reader
}

// sources is an ordered list of opened inputs.
type sources []source

// Close closes every opened file.
func (s sources) Close() error {
	var errs []error

	for _, src := range s {
		if c, ok := src.Reader.(io.Closer); ok && src.name != stdinSource {
			errs = append(errs, c.Close())
		}
	}

	return errors.Join(errs...)
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// openSources opens the named source files in order.
//
// Files are deduplicated by resolving symlinks and comparing device/inode
// pairs. All occurrences of "-" (and any path naming the file behind stdin)
// collapse into a single stdin source placed last, so it reads after all
// regular files.
func openSources(paths []string, stdin io.Reader) (srcs sources, err error) {
	defer func() {
		if err != nil {
			_ = srcs.Close()
			srcs = nil
		}
	}()

	seen := make(map[fileKey]struct{})

	var stdinKey fileKey

	stdinKeyOK := false
	if f, ok := stdin.(*os.File); ok {
		if info, err := f.Stat(); err == nil {
			stdinKey, stdinKeyOK = makeFileKey(info)
		}
	}

	hasStdin := false

	for _, path := range paths {
		if path == stdinSource {
			hasStdin = true

			continue
		}

		key, ok, err := statUnique(path, seen)
		if err != nil {
			return srcs, ErrOpenSource.Wrap(err).With(slog.String("file", path))
		}

		if !ok {
			continue
		}

		if stdinKeyOK && key == stdinKey {
			hasStdin = true

			continue
		}

		file, err := os.Open(path)
		if err != nil {
			return srcs, ErrOpenSource.Wrap(err).With(slog.String("file", path))
		}

		srcs = append(srcs, source{name: path, Reader: file})
	}

	if hasStdin {
		srcs = append(srcs, source{name: stdinSource, Reader: stdin})
	}

	return srcs, nil
}

// statUnique resolves path and reports whether it names a file not yet in
// seen, recording it if so.
func statUnique(path string, seen map[fileKey]struct{}) (fileKey, bool, error) {
	// Resolve to absolute path to handle relative path duplicates.
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fileKey{}, false, err
	}

	// Resolve symlinks to their target.
	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return fileKey{}, false, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return fileKey{}, false, err
	}

	key, ok := makeFileKey(info)
	if !ok {
		// No identity available; never treat as a duplicate.
		return key, true, nil
	}

	if _, exists := seen[key]; exists {
		return key, false, nil
	}

	seen[key] = struct{}{}

	return key, true, nil
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: uint64(stat.Ino)}, true
}
