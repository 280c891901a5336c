package client

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/freakmaxi/kertish-serve/basics/errors"
	pkgerrors "github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const (
	sizeEndPoint     = "size"
	downloadEndPoint = "partialdownload"
)

type Client struct {
	baseUrl string
	http    *http.Client
}

// NewClient creates the client of the serve node. address can be host:port or a full url
func NewClient(address string, prefix string) *Client {
	if !strings.Contains(address, "://") {
		address = fmt.Sprintf("http://%s", address)
	}

	return &Client{
		baseUrl: fmt.Sprintf("%s%s", strings.TrimSuffix(address, "/"), strings.TrimSuffix(prefix, "/")),
		http:    &http.Client{},
	}
}

func (c *Client) url(endPoint string, name string) string {
	parts := strings.Split(strings.TrimPrefix(name, "/"), "/")
	for i := range parts {
		parts[i] = url.PathEscape(parts[i])
	}
	return fmt.Sprintf("%s/%s/%s", c.baseUrl, endPoint, strings.Join(parts, "/"))
}

// Size asks the serve node the length of the file
func (c *Client) Size(ctx context.Context, name string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.url(sizeEndPoint, name), nil)
	if err != nil {
		return 0, err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return 0, pkgerrors.Wrap(err, "serve node is not reachable")
	}
	defer func() { _ = res.Body.Close() }()

	switch res.StatusCode {
	case 200:
	case 404:
		return 0, pkgerrors.WithMessagef(os.ErrNotExist, "%s is not exists", name)
	case 422:
		return 0, pkgerrors.WithMessagef(os.ErrInvalid, "%s is not a valid file name", name)
	default:
		return 0, pkgerrors.Errorf("unable to get the size of %s (%d)", name, res.StatusCode)
	}

	body, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return 0, err
	}

	return strconv.ParseInt(strings.TrimSpace(string(body)), 10, 64)
}

// ReadChunk downloads the chunk and writes it to its own offset in the target
func (c *Client) ReadChunk(ctx context.Context, name string, chunk Chunk, target io.WriterAt) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.url(downloadEndPoint, name), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Range", chunk.RangeHeader())

	res, err := c.http.Do(req)
	if err != nil {
		return pkgerrors.Wrap(err, "serve node is not reachable")
	}
	defer func() { _ = res.Body.Close() }()

	switch res.StatusCode {
	case 200, 206:
	case 404:
		return pkgerrors.WithMessagef(os.ErrNotExist, "%s is not exists", name)
	case 416:
		return pkgerrors.WithMessagef(errors.ErrUnsatisfiableRange, "%s of %s", chunk.RangeHeader(), name)
	default:
		return pkgerrors.Errorf("unable to read %s of %s (%d)", chunk.RangeHeader(), name, res.StatusCode)
	}

	if res.ContentLength != chunk.Size() {
		return pkgerrors.WithMessagef(errors.ErrChunkSize, "%d bytes announced for chunk %d", res.ContentLength, chunk.Index)
	}

	written, err := io.CopyN(&offsetWriter{target: target, offset: chunk.Begins}, res.Body, chunk.Size())
	if err != nil {
		return pkgerrors.Wrapf(err, "chunk %d is interrupted after %d bytes", chunk.Index, written)
	}
	return nil
}

// Download fetches the file in count chunks concurrently. The progress handler is
// called with the completed and the total chunk counts after every completed chunk
func (c *Client) Download(ctx context.Context, name string, count int, target io.WriterAt, progressHandler func(completed int, total int)) (int64, error) {
	size, err := c.Size(ctx, name)
	if err != nil {
		return 0, err
	}

	chunks, err := SplitChunks(size, count)
	if err != nil {
		return 0, err
	}

	completed := int32(0)
	total := len(chunks)

	g, gctx := errgroup.WithContext(ctx)
	for _, chunk := range chunks {
		chunk := chunk

		g.Go(func() error {
			if err := c.ReadChunk(gctx, name, chunk, target); err != nil {
				return err
			}
			if progressHandler != nil {
				progressHandler(int(atomic.AddInt32(&completed, 1)), total)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}
	return size, nil
}

type offsetWriter struct {
	target io.WriterAt
	offset int64
}

func (o *offsetWriter) Write(p []byte) (int, error) {
	n, err := o.target.WriteAt(p, o.offset)
	o.offset += int64(n)
	return n, err
}
