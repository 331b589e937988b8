package report

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/user"
	"strings"
	"time"

	"github.com/oakmund/dirtrail/models"
)

// BannerLines is the fixed number of lines preceding the entry list: the
// title, five metadata fields, the skipped count, and a blank separator.
const BannerLines = 8

const (
	title      = "DIRECTORY TRAVERSAL LOG"
	timeLayout = time.RFC3339

	typeDir  = "dir"
	typeFile = "file"
)

var ErrMalformed = errors.New("malformed report")

// NewHeader collects the host metadata stamped onto every report.
func NewHeader(root string, now time.Time) (models.Header, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return models.Header{}, fmt.Errorf("resolving hostname: %w", err)
	}
	u, err := user.Current()
	if err != nil {
		return models.Header{}, fmt.Errorf("resolving current user: %w", err)
	}
	return models.Header{
		Hostname:    hostname,
		Username:    u.Username,
		GeneratedAt: now,
		Root:        root,
	}, nil
}

// Write serializes the banner and one "<type> <path>" line per entry to
// path. An existing file at that path is overwritten.
func Write(path string, header models.Header, entries []models.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, title)
	fmt.Fprintf(w, "generated-at: %s\n", header.GeneratedAt.Format(timeLayout))
	fmt.Fprintf(w, "day: %s\n", header.GeneratedAt.Weekday())
	fmt.Fprintf(w, "host: %s\n", header.Hostname)
	fmt.Fprintf(w, "user: %s\n", header.Username)
	fmt.Fprintf(w, "root: %s\n", header.Root)
	// comma-joined so paths containing spaces survive a round-trip
	fmt.Fprintf(w, "skipped: %s\n", strings.Join(header.Skipped, ","))
	fmt.Fprintln(w)

	for _, e := range entries {
		kind := typeFile
		if e.IsDir {
			kind = typeDir
		}
		fmt.Fprintf(w, "%s %s\n", kind, e.RelPath)
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing report: %w", err)
	}
	return nil
}

// Parse reads a report back into its header and entries. It is the inverse
// of Write for any report this package produced.
func Parse(path string) (models.Header, []models.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.Header{}, nil, fmt.Errorf("opening report: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	var header models.Header

	if !sc.Scan() || sc.Text() != title {
		return models.Header{}, nil, fmt.Errorf("%w: missing title", ErrMalformed)
	}

	fields := map[string]*string{}
	var generatedAt, skipped string
	fields["generated-at"] = &generatedAt
	fields["day"] = new(string)
	fields["host"] = &header.Hostname
	fields["user"] = &header.Username
	fields["root"] = &header.Root
	fields["skipped"] = &skipped

	for i := 0; i < BannerLines-2; i++ {
		if !sc.Scan() {
			return models.Header{}, nil, fmt.Errorf("%w: truncated banner", ErrMalformed)
		}
		key, value, ok := strings.Cut(sc.Text(), ": ")
		if !ok {
			key, value, _ = strings.Cut(sc.Text(), ":")
		}
		dst, known := fields[key]
		if !known {
			return models.Header{}, nil, fmt.Errorf("%w: unexpected banner field %q", ErrMalformed, key)
		}
		*dst = value
	}

	header.GeneratedAt, err = time.Parse(timeLayout, generatedAt)
	if err != nil {
		return models.Header{}, nil, fmt.Errorf("%w: bad generated-at: %v", ErrMalformed, err)
	}
	if skipped != "" {
		header.Skipped = strings.Split(skipped, ",")
	}

	// blank separator
	if sc.Scan() && sc.Text() != "" {
		return models.Header{}, nil, fmt.Errorf("%w: missing separator", ErrMalformed)
	}

	var entries []models.Entry
	for sc.Scan() {
		kind, rel, ok := strings.Cut(sc.Text(), " ")
		if !ok {
			return models.Header{}, nil, fmt.Errorf("%w: bad entry line %q", ErrMalformed, sc.Text())
		}
		switch kind {
		case typeDir:
			entries = append(entries, models.Entry{RelPath: rel, IsDir: true})
		case typeFile:
			entries = append(entries, models.Entry{RelPath: rel})
		default:
			return models.Header{}, nil, fmt.Errorf("%w: unknown entry type %q", ErrMalformed, kind)
		}
	}
	if err := sc.Err(); err != nil {
		return models.Header{}, nil, fmt.Errorf("reading report: %w", err)
	}
	return header, entries, nil
}
