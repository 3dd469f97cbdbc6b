package export

import (
	"net/url"

	"github.com/pkg/errors"
	qrcode "github.com/skip2/go-qrcode"
)

// EntryURL is the daily-entry address for a sector and shift.
func EntryURL(baseURL, sector, shift string) string {
	query := url.Values{}
	query.Set("sector", sector)
	if shift != "" {
		query.Set("shift", shift)
	}
	return baseURL + "/api/v1/attendance/grid?" + query.Encode()
}

// QRCode encodes content as a PNG of size pixels.
func QRCode(content string, size int) ([]byte, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, errors.Wrap(err, "encoding qr code")
	}
	return png, nil
}
