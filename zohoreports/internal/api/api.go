package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/spf13/afero"

	"github.com/rudderlabs/rudder-go-kit/httputil"

	zohohttputil "github.com/peppeocchi/zohoreports-sdk/utils/httputil"
	"github.com/peppeocchi/zohoreports-sdk/zohoreports/model"
)

type requestDoer interface {
	Do(*http.Request) (*http.Response, error)
}

type API struct {
	requestDoer requestDoer
	fs          afero.Fs
}

func New(requestDoer requestDoer, fs afero.Fs) *API {
	return &API{
		requestDoer: requestDoer,
		fs:          fs,
	}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Send posts req as multipart/form-data and returns the raw response body.
// The file is streamed from disk while the request is being written, and is
// reopened if the body has to be sent again after a 307 or 308 redirect.
func (a *API) Send(ctx context.Context, req *model.ImportRequest) ([]byte, error) {
	boundary := multipart.NewWriter(io.Discard).Boundary()
	newBody := func() (io.ReadCloser, error) {
		return a.multipartBody(req, boundary)
	}

	body, err := newBody()
	if err != nil {
		return nil, err
	}
	defer func() { _ = body.Close() }()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("creating import request: %w", redactError(err))
	}
	httpReq.GetBody = newBody
	httpReq.Header.Set("Content-Type", "multipart/form-data; boundary="+boundary)

	resp, err := a.requestDoer.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sending import request: %w", redactError(err))
	}
	defer func() { httputil.CloseResponse(resp) }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading import response: %w", err)
	}
	if !zohohttputil.SuccessStatus(resp.StatusCode) {
		return nil, &model.StatusError{StatusCode: resp.StatusCode, Body: respBody}
	}
	return respBody, nil
}

// multipartBody opens the file and returns a reader producing the multipart body.
// Closing the reader stops the writing goroutine.
func (a *API) multipartBody(req *model.ImportRequest, boundary string) (io.ReadCloser, error) {
	file, err := a.fs.Open(req.File.Path)
	if err != nil {
		return nil, &model.FileNotFoundError{Path: req.File.Path, Err: err}
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	if err := mw.SetBoundary(boundary); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("setting multipart boundary: %w", err)
	}
	go func() {
		defer func() { _ = file.Close() }()
		_ = pw.CloseWithError(writeMultipart(mw, req, file))
	}()
	return pr, nil
}

// redactError hides the authtoken carried by the request URL of a *url.Error.
func redactError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = redactURL(urlErr.URL)
	}
	return err
}

func redactURL(rawURL string) string {
	base, query, found := strings.Cut(rawURL, "?")
	if !found {
		return rawURL
	}
	params := strings.Split(query, "&")
	for i, p := range params {
		if key, _, _ := strings.Cut(p, "="); key == model.QueryAuthToken {
			params[i] = model.QueryAuthToken + "=" + redacted
		}
	}
	return base + "?" + strings.Join(params, "&")
}

const redacted = "REDACTED"

func writeMultipart(mw *multipart.Writer, req *model.ImportRequest, file io.Reader) error {
	for _, f := range req.Fields {
		if err := mw.WriteField(f.Name, f.Value); err != nil {
			return fmt.Errorf("writing field %s: %w", f.Name, err)
		}
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(req.File.FieldName), quoteEscaper.Replace(req.File.FileName)))
	h.Set("Content-Type", req.File.ContentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return fmt.Errorf("creating file part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("copying file %s: %w", req.File.FileName, err)
	}
	return mw.Close()
}
