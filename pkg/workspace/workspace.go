// Package workspace keeps the current image and its derived views on disk.
//
// A Workspace is rooted at a data directory holding one session directory per
// uploaded image, named by the content id of the upload. The file "current"
// in the root names the active session. Each image kind is stored as
// <root>/<session>/<kind>.png.
package workspace

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpfielding/fourier.go/pkg/imageio"
	"github.com/google/uuid"
	"github.com/jpfielding/fourier.go/pkg/util"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrNoImage     = errors.New("no image uploaded")
	ErrUnknownKind = errors.New("unknown image kind")
)

// Kind names a stored image
type Kind string

const (
	Origin     Kind = "origin"
	FFT        Kind = "fft"
	FFTReal    Kind = "fft-real"
	FFTImag    Kind = "fft-imag"
	Filtered   Kind = "filtered"
	Compressed Kind = "compressed"
)

// Kinds lists every stored image kind
var Kinds = []Kind{Origin, FFT, FFTReal, FFTImag, Filtered, Compressed}

// ParseKind resolves one of Kinds by name
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

const currentFile = "current"

// Workspace is a data directory of sessions
type Workspace struct {
	Root string
}

// Open creates root if needed
func Open(root string) (*Workspace, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}
	return &Workspace{Root: root}, nil
}

// Session is the explicit context for one uploaded image
type Session struct {
	ID  string
	Dir string
}

// Upload decodes r as the image called name, scales it to fit maxSize (when
// positive), stores its luminance as the origin of a new session and makes
// that session current. Previous sessions are removed.
func (w *Workspace) Upload(ctx context.Context, name string, r io.Reader, maxSize int) (*Session, error) {
	if err := imageio.CheckExt(name); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	img, err := imageio.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	img = imageio.Fit(img, maxSize)

	if err := w.Clear(); err != nil {
		return nil, err
	}
	s := &Session{ID: util.ContentID(data)}
	s.Dir = filepath.Join(w.Root, s.ID)
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	if err := s.SaveImage(Origin, imageio.Gray(imageio.Matrix(img))); err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(w.Root, currentFile), []byte(s.ID), 0o644); err != nil {
		return nil, fmt.Errorf("failed to record session: %w", err)
	}
	b := img.Bounds()
	slog.InfoContext(ctx, "uploaded image", "name", name, "session", s.ID,
		"md5", util.Md5ThenHex(data), "width", b.Dx(), "height", b.Dy())
	return s, nil
}

// Current returns the active session
func (w *Workspace) Current() (*Session, error) {
	raw, err := os.ReadFile(filepath.Join(w.Root, currentFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoImage
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	id := strings.TrimSpace(string(raw))
	s := &Session{ID: id, Dir: filepath.Join(w.Root, id)}
	if _, err := os.Stat(s.Path(Origin)); err != nil {
		return nil, fmt.Errorf("%w: session %s has no origin", ErrNoImage, id)
	}
	return s, nil
}

// Clear removes every session and the current pointer. Entries not named by a
// session id are left in place.
func (w *Workspace) Clear() error {
	entries, err := os.ReadDir(w.Root)
	if err != nil {
		return fmt.Errorf("failed to list workspace: %w", err)
	}
	for _, e := range entries {
		if !isSession(e) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(w.Root, e.Name())); err != nil {
			return fmt.Errorf("failed to clear workspace: %w", err)
		}
	}
	return nil
}

func isSession(e os.DirEntry) bool {
	if !e.IsDir() {
		return e.Name() == currentFile
	}
	id, err := uuid.Parse(e.Name())
	return err == nil && id.String() == e.Name()
}

// Path of the stored image of kind k
func (s *Session) Path(k Kind) string {
	return filepath.Join(s.Dir, string(k)+".png")
}

// Load reads the stored image of kind k as a luminance matrix
func (s *Session) Load(k Kind) (*mat.Dense, error) {
	img, err := imageio.Load(s.Path(k))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", k, err)
	}
	return imageio.Matrix(img), nil
}

// Save clamps and rounds m and stores it as kind k
func (s *Session) Save(k Kind, m mat.Matrix) error {
	return s.SaveImage(k, imageio.Gray(m))
}

// SaveImage stores img as kind k
func (s *Session) SaveImage(k Kind, img image.Image) error {
	if err := imageio.SaveImage(s.Path(k), img); err != nil {
		return fmt.Errorf("failed to store %s: %w", k, err)
	}
	return nil
}
