/*
Package batch extracts every CTE texture found under a directory, converting
each one to a common image format alongside the original file and optionally
recording it in a catalog.
*/
package batch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/cte"
	"github.com/bodgit/cte/catalog"
	"github.com/bodgit/cte/raster"
	"github.com/cespare/xxhash/v2"
	"github.com/sirupsen/logrus"
)

const (
	defaultWorkers   = 10
	defaultExtension = ".png"
)

// Scanner walks a directory tree converting CTE textures.
type Scanner struct {
	catalog   *catalog.Catalog
	logger    logrus.FieldLogger
	workers   int
	extension string
	overwrite bool
}

// Option configures a Scanner.
type Option func(*Scanner) error

// Workers sets the number of files converted concurrently.
func Workers(n int) Option {
	return func(s *Scanner) error {
		if n < 1 {
			return fmt.Errorf("batch: invalid number of workers %d", n)
		}
		s.workers = n
		return nil
	}
}

// Extension sets the extension, and therefore the format, of the extracted
// images. The leading dot is optional.
func Extension(ext string) Option {
	return func(s *Scanner) error {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if !raster.Supported(ext) {
			return fmt.Errorf("batch: unsupported extension %q", ext)
		}
		s.extension = ext
		return nil
	}
}

// Overwrite controls whether existing extracted images are replaced.
func Overwrite(overwrite bool) Option {
	return func(s *Scanner) error {
		s.overwrite = overwrite
		return nil
	}
}

// New returns a Scanner that records textures in c, which may be nil.
func New(c *catalog.Catalog, logger logrus.FieldLogger, options ...Option) (*Scanner, error) {
	s := &Scanner{
		catalog:   c,
		logger:    logger,
		workers:   defaultWorkers,
		extension: defaultExtension,
	}
	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func isTexture(file string) bool {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".img", ".cte":
		return true
	}
	return false
}

func (s *Scanner) findFiles(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() || !isTexture(file) {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (s *Scanner) convert(file string) error {
	logger := s.logger.WithField("file", file)

	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	h := xxhash.New()
	r := bufio.NewReader(io.TeeReader(f, h))

	b, err := r.Peek(len(cte.Magic))
	if err != nil && err != io.EOF {
		return fmt.Errorf("%s: %w", file, err)
	}
	if string(b) != cte.Magic {
		logger.Debug("Not a CTE texture, skipping")
		return nil
	}

	m, err := cte.DecodeImage(r)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	// Hash any trailing data too
	if _, err := io.Copy(io.Discard, r); err != nil {
		return err
	}

	logger = logger.WithFields(logrus.Fields{
		"format": m.Format,
		"width":  m.Bounds().Dx(),
		"height": m.Bounds().Dy(),
		"hash":   fmt.Sprintf("%016X", h.Sum64()),
	})

	output := strings.TrimSuffix(file, filepath.Ext(file)) + s.extension
	if _, err := os.Stat(output); err == nil && !s.overwrite {
		logger.WithField("output", output).Info("Output exists, skipping")
	} else {
		if err := raster.Save(output, m); err != nil {
			return fmt.Errorf("%s: %w", output, err)
		}
		logger.WithField("output", output).Debug("Extracted texture")
	}

	if s.catalog != nil {
		if _, err := s.catalog.Add(catalog.Texture{
			Path:   file,
			Hash:   h.Sum64(),
			Format: m.Format,
			Width:  m.Bounds().Dx(),
			Height: m.Bounds().Dy(),
		}); err != nil {
			return err
		}
	}

	return nil
}

func (s *Scanner) fileWorker(ctx context.Context, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			if err := ctx.Err(); err != nil {
				errc <- err
				return
			}
			if err := s.convert(file); err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan converts every CTE texture found under path. The first error stops
// the scan and is returned.
func (s *Scanner) Scan(ctx context.Context, path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	s.logger.WithFields(logrus.Fields{
		"directory": dir,
		"workers":   s.workers,
	}).Debug("Scanning")

	var errcList []<-chan error

	files, errc, err := s.findFiles(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < s.workers; i++ {
		errc, err := s.fileWorker(ctx, files)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
