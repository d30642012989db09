// Package fontpath maps typeface indices to regular and italic font files.
//
// The table is built once from a font directory and a fixed per-platform
// list of five typefaces. Missing files can optionally be located among the
// system fonts with github.com/flopp/go-findfont.
package fontpath

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"

	"github.com/flopp/go-findfont"
)

// Face is one typeface of the table.
type Face struct {
	Name    string
	Regular string
	Italic  string
}

// Path returns the italic or regular file of the face.
func (f Face) Path(italic bool) string {
	if italic {
		return f.Italic
	}
	return f.Regular
}

type pair struct {
	name, regular, italic string
}

var linuxFaces = []pair{
	{"FreeSans", "freefont/FreeSans.ttf", "freefont/FreeSansOblique.ttf"},
	{"Kalimati", "fonts-deva-extra/kalimati.ttf", "fonts-deva-extra/kalimati.ttf"},
	{"DejaVuSans", "dejavu/DejaVuSans.ttf", "dejavu/DejaVuSans.ttf"},
	{"FreeSerif", "freefont/FreeSerif.ttf", "freefont/FreeSerifItalic.ttf"},
	{"LiberationSerif", "liberation/LiberationSerif-Regular.ttf", "liberation/LiberationSerif-Italic.ttf"},
}

var windowsFaces = []pair{
	{"Arial", "arial.ttf", "ariali.ttf"},
	{"Tahoma", "tahoma.ttf", "tahomai.ttf"},
	{"Verdana", "verdana.ttf", "verdanai.ttf"},
	{"Times", "times.ttf", "timesi.ttf"},
	{"Georgia", "georgia.ttf", "georgiai.ttf"},
}

// Default font directories.
const (
	LinuxDirectory   = "/usr/share/fonts/truetype"
	WindowsDirectory = "C:/Windows/fonts"
)

// NumFaces is the number of typefaces in every table.
const NumFaces = 5

// ErrFaceIndex is returned for typeface indices outside the table.
var ErrFaceIndex = errors.New("fontpath: typeface index out of range")

// DefaultDirectory returns the font directory for the running platform.
func DefaultDirectory() string {
	return directoryFor(runtime.GOOS)
}

func directoryFor(goos string) string {
	if goos == "windows" {
		return WindowsDirectory
	}
	return LinuxDirectory
}

// Table is the typeface list for one font directory.
type Table struct {
	dir   string
	faces []Face

	// find locates a font file by base name; findfont.Find by default.
	find func(string) (string, error)
}

// Initialize builds the table for dir with the platform's typeface list.
// An empty dir selects DefaultDirectory.
func Initialize(dir string) *Table {
	return initialize(dir, runtime.GOOS)
}

func initialize(dir, goos string) *Table {
	if dir == "" {
		dir = directoryFor(goos)
	}
	list := linuxFaces
	if goos == "windows" {
		list = windowsFaces
	}
	t := &Table{dir: dir, faces: make([]Face, len(list)), find: findfont.Find}
	for i, p := range list {
		t.faces[i] = Face{
			Name:    p.name,
			Regular: filepath.Join(dir, filepath.FromSlash(p.regular)),
			Italic:  filepath.Join(dir, filepath.FromSlash(p.italic)),
		}
	}
	return t
}

// Directory returns the font directory of the table.
func (t *Table) Directory() string { return t.dir }

// Len returns the number of typefaces.
func (t *Table) Len() int { return len(t.faces) }

// Face returns typeface i.
func (t *Table) Face(i int) (Face, error) {
	if i < 0 || i >= len(t.faces) {
		return Face{}, ErrFaceIndex
	}
	return t.faces[i], nil
}

// Faces returns a copy of all typefaces.
func (t *Table) Faces() []Face {
	return append([]Face(nil), t.faces...)
}

// Path returns the regular or italic file of typeface i.
func (t *Table) Path(i int, italic bool) (string, error) {
	f, err := t.Face(i)
	if err != nil {
		return "", err
	}
	return f.Path(italic), nil
}

// Override replaces typeface i. Used to substitute embedded fonts.
func (t *Table) Override(i int, f Face) error {
	if i < 0 || i >= len(t.faces) {
		return ErrFaceIndex
	}
	t.faces[i] = f
	return nil
}

// Resolve replaces paths whose files do not exist with system fonts of the
// same base name, when one can be found. It returns the paths still
// missing afterwards.
func (t *Table) Resolve() []string {
	var missing []string
	resolve := func(p *string) {
		if exists(*p) {
			return
		}
		if found, err := t.find(filepath.Base(*p)); err == nil && found != "" {
			*p = found
			return
		}
		missing = append(missing, *p)
	}
	for i := range t.faces {
		resolve(&t.faces[i].Regular)
		resolve(&t.faces[i].Italic)
	}
	return missing
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
