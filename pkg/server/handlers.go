package server

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
	apiv1 "github.com/xyrionz/SafeArchive/pkg/apis/api.safearchive.io/v1"
	"github.com/xyrionz/SafeArchive/pkg/backup"
	"github.com/xyrionz/SafeArchive/pkg/store"
)

var (
	errMissingFileField = errors.New("file field missing")
	errNoFiles          = errors.New("no files uploaded")
)

func (s *Server) home(rw http.ResponseWriter, req *http.Request) error {
	if req.URL.Path != "/" {
		writeError(rw, http.StatusNotFound, "not_found")
		return nil
	}
	writeJSON(rw, http.StatusOK, apiv1.StatusResponse{
		Status:  "ok",
		Project: "SafeArchive",
	})
	return nil
}

func (s *Server) health(rw http.ResponseWriter, _ *http.Request) error {
	_, err := rw.Write([]byte("ok"))
	return err
}

func (s *Server) zip(rw http.ResponseWriter, req *http.Request) error {
	if req.Method != http.MethodPost {
		return methodNotAllowed(rw, http.MethodPost)
	}

	dir, sources, err := s.saveUploads(rw, req)
	if err != nil {
		if errors.Is(err, errMissingFileField) {
			writeError(rw, http.StatusBadRequest, "file field missing; send at least one 'file' in form-data")
			return nil
		}
		if errors.Is(err, errNoFiles) {
			writeError(rw, http.StatusBadRequest, "no files uploaded")
			return nil
		}
		return err
	}
	defer func() {
		_ = os.RemoveAll(dir)
	}()

	tmp, err := os.CreateTemp("", "safearchive-zip-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	password := req.FormValue("password")
	if _, err := s.engine.Zip(req.Context(), tmp, sources, password); err != nil {
		return err
	}

	downloadName := "safearchive_files" + store.SuffixPlain
	if password != "" {
		downloadName = "safearchive_files" + store.SuffixEncrypted
	}
	return sendFile(rw, tmp, downloadName)
}

func (s *Server) backup(rw http.ResponseWriter, req *http.Request) error {
	if req.Method != http.MethodPost {
		return methodNotAllowed(rw, http.MethodPost)
	}

	dir, sources, err := s.saveUploads(rw, req)
	if err != nil {
		if errors.Is(err, errMissingFileField) {
			writeError(rw, http.StatusBadRequest, "file field missing")
			return nil
		}
		if errors.Is(err, errNoFiles) {
			writeError(rw, http.StatusBadRequest, "no files uploaded")
			return nil
		}
		return err
	}
	defer func() {
		_ = os.RemoveAll(dir)
	}()

	name := req.FormValue("backup_name")
	if name == "" {
		name = backup.DefaultServiceName()
	}

	archived, err := s.engine.Backup(req.Context(), backup.BackupOptions{
		Name:     name,
		Sources:  sources,
		Password: req.FormValue("password"),
	})
	if err != nil {
		return err
	}

	writeJSON(rw, http.StatusOK, apiv1.BackupResponse{
		Status:     "ok",
		BackupFile: archived.FileName,
	})
	return nil
}

func (s *Server) download(rw http.ResponseWriter, req *http.Request) error {
	if req.Method != http.MethodGet {
		return methodNotAllowed(rw, http.MethodGet)
	}

	name := req.URL.Query().Get("backup")
	if name == "" {
		writeError(rw, http.StatusBadRequest, "backup param missing")
		return nil
	}

	f, archived, err := s.engine.Store.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	setAttachment(rw, archived.FileName, archived.Size)
	if _, err := io.Copy(rw, f); err != nil {
		logrus.Debugf("Download of %s aborted: %v", archived.FileName, err)
	}
	return nil
}

func (s *Server) restore(rw http.ResponseWriter, req *http.Request) error {
	if req.Method != http.MethodPost {
		return methodNotAllowed(rw, http.MethodPost)
	}

	name := req.FormValue("backup")
	if name == "" {
		writeError(rw, http.StatusBadRequest, "backup param missing")
		return nil
	}

	tmp, err := os.CreateTemp("", "safearchive-restore-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	archived, err := s.engine.RestoreZip(req.Context(), name, req.FormValue("password"), tmp)
	if err != nil {
		return err
	}

	return sendFile(rw, tmp, fmt.Sprintf("restored_%s.zip", store.BaseName(archived.FileName)))
}

func (s *Server) archives(rw http.ResponseWriter, req *http.Request) error {
	if req.Method != http.MethodGet {
		return methodNotAllowed(rw, http.MethodGet)
	}

	archives, err := s.engine.Store.List()
	if err != nil {
		return err
	}
	writeJSON(rw, http.StatusOK, apiv1.ArchiveList{Items: archives})
	return nil
}

// saveUploads writes every multipart "file" field into a fresh temp
// directory and returns the saved paths. The request body is capped at
// the configured upload limit.
func (s *Server) saveUploads(rw http.ResponseWriter, req *http.Request) (string, []string, error) {
	req.Body = http.MaxBytesReader(rw, req.Body, s.uploadLimit)
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		maxBytes := &http.MaxBytesError{}
		if errors.As(err, &maxBytes) {
			return "", nil, err
		}
		return "", nil, fmt.Errorf("%w: %v", errMissingFileField, err)
	}

	files, ok := req.MultipartForm.File["file"]
	if !ok {
		return "", nil, errMissingFileField
	}

	var uploads []*multipart.FileHeader
	for _, fh := range files {
		if fh.Filename != "" {
			uploads = append(uploads, fh)
		}
	}
	if len(uploads) == 0 {
		return "", nil, errNoFiles
	}

	dir, err := os.MkdirTemp("", "safearchive_upload_")
	if err != nil {
		return "", nil, err
	}

	var saved []string
	for _, fh := range uploads {
		path := filepath.Join(dir, safeFileName(fh.Filename))
		if err := saveUpload(fh.Open, path); err != nil {
			_ = os.RemoveAll(dir)
			return "", nil, err
		}
		saved = append(saved, path)
	}
	return dir, saved, nil
}

func saveUpload(open func() (io.ReadCloser, error), path string) error {
	src, err := open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return err
	}

	_, err = io.Copy(dst, src)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	return err
}

// safeFileName keeps letters, digits, dot, dash and underscore from the
// base name of an uploaded file name.
func safeFileName(name string) string {
	name = filepath.Base(filepath.Clean(filepath.FromSlash(name)))
	var b strings.Builder
	for _, r := range name {
		if r == '.' || r == '-' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	out := strings.Trim(b.String(), ".")
	if out == "" {
		return "file"
	}
	return out
}

func sendFile(rw http.ResponseWriter, f *os.File, downloadName string) error {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		return err
	}

	setAttachment(rw, downloadName, info.Size())
	if _, err := io.Copy(rw, f); err != nil {
		logrus.Debugf("Send of %s aborted: %v", downloadName, err)
	}
	return nil
}

func setAttachment(rw http.ResponseWriter, name string, size int64) {
	rw.Header().Set("Content-Type", "application/octet-stream")
	rw.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	rw.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
}

func methodNotAllowed(rw http.ResponseWriter, allowed string) error {
	rw.Header().Set("Allow", allowed)
	writeError(rw, http.StatusMethodNotAllowed, "method not allowed")
	return nil
}
