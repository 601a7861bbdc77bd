package archive

import (
	"archive/zip"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/flate"
)

// Options control how archives are written.
type Options struct {
	Method uint16
	Level  int
}

func (o Options) complete() Options {
	if o.Method != zip.Store && o.Method != zip.Deflate {
		o.Method = zip.Deflate
	}
	if o.Level < 1 || o.Level > 9 {
		o.Level = 6
	}
	return o
}

// MethodByName maps configured method names onto the methods the writer
// supports. The second return is false when the name is unknown or only
// supported by falling back to DEFLATED (BZIP2, LZMA).
func MethodByName(name string) (uint16, bool) {
	switch name {
	case "ZIP_STORED":
		return zip.Store, true
	case "", "ZIP_DEFLATED":
		return zip.Deflate, true
	}
	return zip.Deflate, false
}

// Writer adds sources to a zip stream.
type Writer struct {
	zw     *zip.Writer
	method uint16
}

func NewWriter(w io.Writer, opts Options) *Writer {
	opts = opts.complete()
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, opts.Level)
	})
	return &Writer{
		zw:     zw,
		method: opts.Method,
	}
}

// Add archives one source. Plain files are stored under their base
// name. Directories are walked and every entry is stored relative to
// the directory's parent, so the folder name itself survives the round
// trip. A missing source returns false and no error.
func (w *Writer) Add(source string) (bool, error) {
	info, err := os.Stat(source)
	if os.IsNotExist(err) {
		return false, nil
	} else if err != nil {
		return false, err
	}

	if info.IsDir() {
		return true, w.addTree(source)
	}
	return true, w.addFile(source, filepath.Base(source), info)
}

func (w *Writer) Close() error {
	return w.zw.Close()
}

// Create writes a zip archive of sources to out and returns how many
// sources were actually archived.
func Create(out io.Writer, sources []string, opts Options) (int, error) {
	w := NewWriter(out, opts)

	var added int
	for _, source := range sources {
		ok, err := w.Add(source)
		if err != nil {
			_ = w.Close()
			return added, err
		}
		if ok {
			added++
		}
	}

	return added, w.Close()
}

func (w *Writer) addTree(dir string) error {
	parent := filepath.Dir(dir)
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == dir {
			return nil
		}

		rel, err := filepath.Rel(parent, path)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}

		if d.IsDir() {
			hdr, err := zip.FileInfoHeader(info)
			if err != nil {
				return err
			}
			hdr.Name = filepath.ToSlash(rel) + "/"
			_, err = w.zw.CreateHeader(hdr)
			return err
		}

		return w.addFile(path, filepath.ToSlash(rel), info)
	})
}

func (w *Writer) addFile(path, arcname string, info fs.FileInfo) error {
	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	hdr.Name = arcname
	hdr.Method = w.method

	entry, err := w.zw.CreateHeader(hdr)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(entry, f)
	return err
}
