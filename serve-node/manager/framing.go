package manager

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/freakmaxi/kertish-serve/basics/common"
)

const LegacyContentType = "application/octet;charset=utf-8"

// Framing decides the status code and the headers of a download response.
// Legacy framing answers every download with 200, RFC framing uses 206 for sub ranges
type Framing struct {
	RFC bool
}

func (f Framing) Status(partial bool) int {
	if f.RFC && partial {
		return http.StatusPartialContent
	}
	return http.StatusOK
}

// ContentType is the media type of the file in RFC framing and the fixed legacy type otherwise
func (f Framing) ContentType(file *common.File) string {
	if f.RFC {
		return file.Mime
	}
	return LegacyContentType
}

// Apply sets the download headers for the resolved range of the file
func (f Framing) Apply(header http.Header, file *common.File, r *common.ResolvedRange) {
	header.Set("Content-Type", f.ContentType(file))
	header.Set("Content-Length", strconv.FormatInt(r.Size, 10))
	header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", escapeQuotes(file.Name)))

	if f.RFC {
		header.Set("Accept-Ranges", "bytes")
		header.Set("Last-Modified", file.Modified.Format(http.TimeFormat))
	}

	if file.Empty() {
		return
	}

	if f.RFC {
		header.Set("Content-Range", fmt.Sprintf("bytes %s/%d", r, file.Size))
		return
	}
	header.Set("Content-Range", fmt.Sprintf("bytes %s", r))
}

// ApplyUnsatisfied sets the headers of a 416 response. Legacy framing sends none
func (f Framing) ApplyUnsatisfied(header http.Header, length int64) {
	if !f.RFC {
		return
	}
	header.Set("Content-Range", fmt.Sprintf("bytes */%d", length))
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", "\"", "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
