package ehex

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

// Extension is the file name suffix Index looks for.
const Extension = ".ehex"

// Largest file Index will read.
const maxFileSize = 1 << 20

// Library indexes directories of images into a Catalog.
type Library struct {
	db     *Catalog
	logger logrus.FieldLogger
}

// New returns a Library storing into db. A nil logger discards all output.
func New(db *Catalog, logger logrus.FieldLogger) *Library {
	if logger == nil {
		logger = discardLogger()
	}
	return &Library{
		db:     db,
		logger: logger,
	}
}

type indexed struct {
	name   string
	body   []byte
	format string
	width  int
	height int
}

func (l *Library) findFiles(ctx context.Context, base string) (<-chan string, <-chan error, error) {
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
			if file != base && info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() || filepath.Ext(file) != Extension {
				return nil
			}

			if info.Size() > maxFileSize {
				l.logger.WithField("path", file).Warn("Skipping oversized file")
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

func (l *Library) decodeWorker(ctx context.Context, wg *sync.WaitGroup, base string, in <-chan string, out chan<- indexed) (<-chan error, error) {
	errc := make(chan error, 1)
	wg.Add(1)
	go func() {
		defer close(errc)
		defer wg.Done()
		for file := range in {
			logger := l.logger.WithField("path", file)

			b, err := os.ReadFile(file)
			if err != nil {
				logger.WithError(err).Warn("Unable to read file")
				continue
			}

			m, format, err := Decode(b)
			if err != nil {
				logger.WithError(err).Warn("Skipping invalid image")
				continue
			}

			rel, err := filepath.Rel(base, file)
			if err != nil {
				errc <- err
				return
			}

			select {
			case out <- indexed{filepath.ToSlash(rel), b, format, m.Width(), m.Height()}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return errc, nil
}

func (l *Library) writer(in <-chan indexed, n *int) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for i := range in {
			e, err := l.db.put(i.name, i.body, i.format, i.width, i.height)
			if err != nil {
				errc <- err
				return
			}
			l.logger.WithFields(logrus.Fields{
				"name":   e.Name,
				"format": e.Format,
				"sha1":   e.SHA1,
			}).Debug("Indexed image")
			*n++
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

// Index walks path and adds every valid image file it finds to the
// catalog, using workers goroutines to read and decode them. Hidden files
// and directories are skipped as are files that fail to decode. It returns
// the number of images stored.
func (l *Library) Index(path string, workers int) (int, error) {
	dir, err := filepath.Abs(path)
	if err != nil {
		return 0, err
	}

	if workers < 1 {
		workers = 1
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := l.findFiles(ctx, dir)
	if err != nil {
		return 0, err
	}
	errcList = append(errcList, errc)

	images := make(chan indexed)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		errc, err := l.decodeWorker(ctx, &wg, dir, files, images)
		if err != nil {
			return 0, err
		}
		errcList = append(errcList, errc)
	}

	go func() {
		wg.Wait()
		close(images)
	}()

	var n int
	errc, err = l.writer(images, &n)
	if err != nil {
		return 0, err
	}
	errcList = append(errcList, errc)

	if err := waitForPipeline(errcList...); err != nil {
		return 0, err
	}

	l.logger.WithFields(logrus.Fields{
		"path":   dir,
		"images": n,
	}).Info("Indexed directory")

	return n, nil
}
