package qr

import (
	"encoding/base64"
	"fmt"

	"github.com/skip2/go-qrcode"
)

// Encoder 把票券內容轉成可直接內嵌的圖片 token
type Encoder interface {
	Encode(content string) (string, error)
}

type DataURIEncoder struct {
	size int
}

func NewDataURIEncoder() Encoder {
	return &DataURIEncoder{size: 256}
}

// Encode 產生 PNG QR code，回傳 base64 data URI
func (e *DataURIEncoder) Encode(content string) (string, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, e.size)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("data:image/png;base64,%s", base64.StdEncoding.EncodeToString(png)), nil
}
