package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	apiv1 "github.com/xyrionz/SafeArchive/pkg/apis/api.safearchive.io/v1"
	"github.com/xyrionz/SafeArchive/pkg/archive"
	"github.com/xyrionz/SafeArchive/pkg/store"
)

// HTTP talks to a remote service over its REST API.
type HTTP struct {
	server string
	apiKey string
	client *http.Client
}

func NewHTTP(server, apiKey string) *HTTP {
	if !strings.Contains(server, "://") {
		server = "http://" + server
	}
	return &HTTP{
		server: strings.TrimSuffix(server, "/"),
		apiKey: apiKey,
		client: &http.Client{},
	}
}

func (c *HTTP) ArchiveList(ctx context.Context) ([]apiv1.Archive, error) {
	list := apiv1.ArchiveList{}
	if err := c.getJSON(ctx, "/archives", &list); err != nil {
		return nil, err
	}
	return list.Items, nil
}

func (c *HTTP) ArchiveGet(ctx context.Context, name string) (*apiv1.Archive, error) {
	archives, err := c.ArchiveList(ctx)
	if err != nil {
		return nil, err
	}
	for i, archived := range archives {
		if archived.Name == name || archived.FileName == name {
			return &archives[i], nil
		}
	}
	return nil, &store.ErrArchiveNotFound{Name: name}
}

func (c *HTTP) ArchiveDelete(_ context.Context, _ string) (*apiv1.Archive, error) {
	return nil, &ErrNotSupported{Op: "archive removal"}
}

func (c *HTTP) BackupCreate(ctx context.Context, sources []string, opts BackupOptions) (*apiv1.Archive, error) {
	if opts.Progress != nil {
		defer close(opts.Progress)
	}

	resp, err := c.upload(ctx, "/backup", sources, map[string]string{
		"backup_name": opts.Name,
		"password":    opts.Password,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	created := apiv1.BackupResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("can't read response %w", err)
	}

	name := store.BaseName(created.BackupFile)
	if archived, err := c.ArchiveGet(ctx, name); err == nil {
		return archived, nil
	}
	return &apiv1.Archive{
		Name:      name,
		FileName:  created.BackupFile,
		Encrypted: opts.Password != "",
	}, nil
}

func (c *HTTP) Restore(ctx context.Context, name string, opts RestoreOptions) (*apiv1.Archive, error) {
	dest := opts.Dest
	if dest == "" {
		dest = "."
	}

	tmp, err := os.CreateTemp("", "safearchive-restore-*")
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	archived, err := c.RestoreToWriter(ctx, name, opts.Password, tmp)
	if err != nil {
		return nil, err
	}

	info, err := tmp.Stat()
	if err != nil {
		return nil, err
	}
	if err := archive.Extract(tmp, info.Size(), dest); err != nil {
		return nil, err
	}
	return archived, nil
}

func (c *HTTP) RestoreToWriter(ctx context.Context, name, password string, w io.Writer) (*apiv1.Archive, error) {
	form := url.Values{"backup": {name}}
	if password != "" {
		form.Set("password", password)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.server+"/restore", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.setKey(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	if err := c.checkResponse(resp, name); err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if _, err := io.Copy(w, resp.Body); err != nil {
		return nil, err
	}

	if archived, err := c.ArchiveGet(ctx, name); err == nil {
		return archived, nil
	}
	return &apiv1.Archive{Name: name}, nil
}

func (c *HTTP) ZipCreate(ctx context.Context, w io.Writer, sources []string, password string) error {
	resp, err := c.upload(ctx, "/zip", sources, map[string]string{
		"password": password,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	_, err = io.Copy(w, resp.Body)
	return err
}

func (c *HTTP) Download(ctx context.Context, name string, w io.Writer) (*apiv1.Archive, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.server+"/download?backup="+url.QueryEscape(name), nil)
	if err != nil {
		return nil, err
	}
	c.setKey(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	if err := c.checkResponse(resp, name); err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if _, err := io.Copy(w, resp.Body); err != nil {
		return nil, err
	}

	if archived, err := c.ArchiveGet(ctx, name); err == nil {
		return archived, nil
	}
	return &apiv1.Archive{Name: name}, nil
}

func (c *HTTP) Info(ctx context.Context) (*apiv1.Info, error) {
	status := apiv1.StatusResponse{}
	if err := c.getJSON(ctx, "/", &status); err != nil {
		return nil, err
	}

	archives, err := c.ArchiveList(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, archived := range archives {
		total += archived.Size
	}

	return &apiv1.Info{
		Destination:  c.server,
		ArchiveCount: len(archives),
		TotalSize:    total,
		Protected:    c.apiKey != "",
	}, nil
}

func (c *HTTP) Prune(_ context.Context) ([]apiv1.Archive, error) {
	return nil, &ErrNotSupported{Op: "prune"}
}

func (c *HTTP) Close() error {
	return nil
}

func (c *HTTP) setKey(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}
}

func (c *HTTP) getJSON(ctx context.Context, path string, into any) error {
	logrus.Debugf("Looking up %s%s", c.server, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.server+path, nil)
	if err != nil {
		return err
	}
	c.setKey(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	if err := c.checkResponse(resp, ""); err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("can't read response %w", err)
	}
	return json.Unmarshal(body, into)
}

// upload streams the sources as multipart file fields. The server
// stores uploaded files flat, so directory sources are refused here
// instead of silently flattening them.
func (c *HTTP) upload(ctx context.Context, path string, sources []string, fields map[string]string) (*http.Response, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		err := func() error {
			for _, source := range sources {
				if err := addFilePart(mw, source); err != nil {
					return err
				}
			}
			for field, value := range fields {
				if value == "" {
					continue
				}
				if err := mw.WriteField(field, value); err != nil {
					return err
				}
			}
			return mw.Close()
		}()
		pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.server+path, pr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.setKey(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	if err := c.checkResponse(resp, ""); err != nil {
		return nil, err
	}
	return resp, nil
}

func addFilePart(mw *multipart.Writer, source string) error {
	info, err := os.Stat(source)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, the server only takes files", source)
	}

	f, err := os.Open(source)
	if err != nil {
		return err
	}
	defer f.Close()

	part, err := mw.CreateFormFile("file", filepath.Base(source))
	if err != nil {
		return err
	}
	_, err = io.Copy(part, f)
	return err
}

// checkResponse closes the body and maps the error payload when the
// status is not OK.
func (c *HTTP) checkResponse(resp *http.Response, name string) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	logrus.Debugf("Response code: %v. Response body: %s", resp.StatusCode, body)

	apiErr := apiv1.ErrorResponse{}
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Error == "" {
		apiErr.Error = strings.TrimSpace(string(body))
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return &ErrUnauthorized{Server: c.server}
	case http.StatusNotFound:
		if name != "" {
			return &store.ErrArchiveNotFound{Name: name}
		}
	case http.StatusRequestEntityTooLarge:
		return &ErrUploadTooLarge{}
	}

	if apiErr.Details != "" {
		return fmt.Errorf("%s: %s", apiErr.Error, apiErr.Details)
	}
	if apiErr.Error == "" {
		return fmt.Errorf("invalid status code: %v", resp.StatusCode)
	}
	return errors.New(apiErr.Error)
}
