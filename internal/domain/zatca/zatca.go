// Package zatca encodes simplified-invoice QR data per the ZATCA (Saudi tax
// authority) TLV convention: five tagged fields (seller name, VAT registration
// number, invoice timestamp, invoice total, VAT total), each written as a
// one-byte tag, a one-byte length, and the UTF-8 value bytes, concatenated in
// tag order and base64-encoded.
//
// The package also produces a SHA-256 fingerprint over the fiscal-relevant
// fields. This fingerprint is a local change-detection digest only; it is NOT
// the ZATCA cryptographic invoice hash (no UBL XML canonicalization, no
// certified cryptographic stamp) and must never be presented as one.
package zatca

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"time"
	"unicode/utf8"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/maghsala/maghsala-api/pkg/money"
)

// TLV tag numbers defined by the ZATCA simplified-invoice QR specification.
const (
	TagSellerName = 1
	TagVATNumber  = 2
	TagTimestamp  = 3
	TagTotal      = 4
	TagVATTotal   = 5
)

// MaxValueBytes is the ceiling imposed by the single length byte of each TLV
// record. Longer values are truncated at a rune boundary so the encoder stays
// total; a seller name that long is malformed input, not a reason to fail an
// invoice read.
const MaxValueBytes = 255

// qrImageSize is the pixel width of the rendered QR PNG.
const qrImageSize = 256

// timestampLayout matches the ISO-8601 form the rest of the system stores
// (millisecond precision, UTC designator), e.g. "2024-12-01T10:30:00.000Z".
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// SellerProfile is the per-laundry fiscal identity, resolved from settings by
// the caller. Empty fields are encoded as empty values, never an error.
type SellerProfile struct {
	Name      string
	VATNumber string
}

// InvoiceData is the snapshot of invoice fields the encoder consumes.
type InvoiceData struct {
	// Number is the human-facing invoice number; ID is the fallback used in
	// the fingerprint when Number is empty.
	Number   string
	ID       string
	IssuedAt time.Time
	Total    float64
	VATTotal float64
}

// TagData is the derived fiscal tag attached back onto an invoice response.
// It is a pure function of its inputs and is recomputed on every read; the
// invoice's raw fields remain the source of truth.
type TagData struct {
	SellerName     string `json:"seller_name"`
	VATNumber      string `json:"vat_number"`
	TLVBase64      string `json:"tlv_base64"`
	QRImageDataURI string `json:"qr_image"`
	Fingerprint    string `json:"fingerprint"`
}

// Encode builds the complete fiscal tag for an invoice. It never fails:
// missing seller fields degrade to empty strings and an unusable timestamp
// falls back to the current time.
func Encode(inv InvoiceData, seller SellerProfile) TagData {
	timestamp := normalizeTimestamp(inv.IssuedAt)
	total := money.Format(inv.Total)
	vatTotal := money.Format(inv.VATTotal)

	tlv := EncodeTLV(seller.Name, seller.VATNumber, timestamp, total, vatTotal)
	tlvBase64 := base64.StdEncoding.EncodeToString(tlv)

	return TagData{
		SellerName:     seller.Name,
		VATNumber:      seller.VATNumber,
		TLVBase64:      tlvBase64,
		QRImageDataURI: renderQR(tlvBase64),
		Fingerprint:    Fingerprint(inv, timestamp, seller.VATNumber),
	}
}

// EncodeTLV serializes the five fields into the raw TLV byte sequence, tags
// 1 through 5 in order.
func EncodeTLV(sellerName, vatNumber, timestamp, total, vatTotal string) []byte {
	var buf []byte
	buf = appendTLV(buf, TagSellerName, sellerName)
	buf = appendTLV(buf, TagVATNumber, vatNumber)
	buf = appendTLV(buf, TagTimestamp, timestamp)
	buf = appendTLV(buf, TagTotal, total)
	buf = appendTLV(buf, TagVATTotal, vatTotal)
	return buf
}

func appendTLV(buf []byte, tag byte, value string) []byte {
	value = truncateUTF8(value, MaxValueBytes)
	buf = append(buf, tag, byte(len(value)))
	return append(buf, value...)
}

// Field is one decoded tag/length/value record.
type Field struct {
	Tag   byte
	Value string
}

// DecodeTLV parses a raw TLV byte sequence back into its fields by reading
// tag/length/value triples sequentially. Any consumer of the QR payload (a
// scanning app, a test) can recover the original values this way.
func DecodeTLV(data []byte) ([]Field, error) {
	var fields []Field
	for i := 0; i < len(data); {
		if len(data)-i < 2 {
			return nil, ErrTruncatedTLV
		}
		tag := data[i]
		length := int(data[i+1])
		i += 2
		if len(data)-i < length {
			return nil, ErrTruncatedTLV
		}
		fields = append(fields, Field{Tag: tag, Value: string(data[i : i+length])})
		i += length
	}
	return fields, nil
}

// Fingerprint computes the lowercase-hex SHA-256 digest of the invoice's
// fiscal-relevant fields, joined with '|' so no combination of values can
// collide through concatenation ambiguity. timestamp must already be the
// normalized ISO-8601 string that went into the TLV.
func Fingerprint(inv InvoiceData, timestamp, vatNumber string) string {
	numberOrID := inv.Number
	if numberOrID == "" {
		numberOrID = inv.ID
	}
	parts := []string{
		numberOrID,
		timestamp,
		money.Format(inv.Total),
		money.Format(inv.VATTotal),
		vatNumber,
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

// normalizeTimestamp renders the invoice creation time in ISO-8601 UTC with
// millisecond precision; a zero time means the source record had no usable
// timestamp, so the current time is substituted.
func normalizeTimestamp(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(timestampLayout)
}

// renderQR produces a data-URI PNG of the payload with medium error
// correction. An empty payload skips rendering and yields an empty string;
// render failures likewise degrade to empty rather than failing the encode.
func renderQR(payload string) string {
	if payload == "" {
		return ""
	}
	png, err := qrcode.Encode(payload, qrcode.Medium, qrImageSize)
	if err != nil {
		return ""
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}

// truncateUTF8 trims s to at most max bytes without splitting a rune.
func truncateUTF8(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
