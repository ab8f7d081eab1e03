package zatca_test

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maghsala/maghsala-api/internal/domain/zatca"
)

// Reference vector: an Arabic seller name with a known Saudi VAT number.
// If the tag order, the length bytes, or the amount formatting ever drift,
// the round-trip below breaks immediately.
const (
	testSellerName = "مغسلة النظافة"
	testVATNumber  = "300012345600003"
	testTimestamp  = "2024-12-01T10:30:00.000Z"
)

func testInvoice(t *testing.T) zatca.InvoiceData {
	t.Helper()
	issuedAt, err := time.Parse(time.RFC3339, testTimestamp)
	require.NoError(t, err)
	return zatca.InvoiceData{
		Number:   "INV-001",
		ID:       "17",
		IssuedAt: issuedAt,
		Total:    143.75,
		VATTotal: 18.75,
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	tag := zatca.Encode(testInvoice(t), zatca.SellerProfile{
		Name:      testSellerName,
		VATNumber: testVATNumber,
	})

	raw, err := base64.StdEncoding.DecodeString(tag.TLVBase64)
	require.NoError(t, err)

	fields, err := zatca.DecodeTLV(raw)
	require.NoError(t, err)
	require.Len(t, fields, 5)

	assert.Equal(t, byte(zatca.TagSellerName), fields[0].Tag)
	assert.Equal(t, testSellerName, fields[0].Value)
	assert.Equal(t, byte(zatca.TagVATNumber), fields[1].Tag)
	assert.Equal(t, testVATNumber, fields[1].Value)
	assert.Equal(t, byte(zatca.TagTimestamp), fields[2].Tag)
	assert.Equal(t, testTimestamp, fields[2].Value)
	assert.Equal(t, byte(zatca.TagTotal), fields[3].Tag)
	assert.Equal(t, "143.75", fields[3].Value)
	assert.Equal(t, byte(zatca.TagVATTotal), fields[4].Tag)
	assert.Equal(t, "18.75", fields[4].Value)
}

func TestEncode_FingerprintShape(t *testing.T) {
	tag := zatca.Encode(testInvoice(t), zatca.SellerProfile{Name: testSellerName, VATNumber: testVATNumber})

	assert.Len(t, tag.Fingerprint, 64, "SHA-256 digest is 64 hex characters")
	assert.Equal(t, strings.ToLower(tag.Fingerprint), tag.Fingerprint)
	for _, r := range tag.Fingerprint {
		assert.Contains(t, "0123456789abcdef", string(r))
	}
}

func TestEncode_Deterministic(t *testing.T) {
	inv := testInvoice(t)
	seller := zatca.SellerProfile{Name: testSellerName, VATNumber: testVATNumber}

	first := zatca.Encode(inv, seller)
	second := zatca.Encode(inv, seller)

	assert.Equal(t, first.Fingerprint, second.Fingerprint)
	assert.Equal(t, first.TLVBase64, second.TLVBase64)
	assert.Equal(t, first.QRImageDataURI, second.QRImageDataURI)
}

func TestEncode_TotalChangesFingerprint(t *testing.T) {
	seller := zatca.SellerProfile{Name: testSellerName, VATNumber: testVATNumber}

	base := zatca.Encode(testInvoice(t), seller)

	discounted := testInvoice(t)
	discounted.Total = 129.38
	changed := zatca.Encode(discounted, seller)

	assert.NotEqual(t, base.Fingerprint, changed.Fingerprint,
		"a discount edit must be visible through the fingerprint")
	assert.NotEqual(t, base.TLVBase64, changed.TLVBase64)
}

func TestFingerprint_DelimiterNoCollision(t *testing.T) {
	issuedAt := testInvoice(t).IssuedAt

	// Shifting a character between the number and VAT fields must not
	// produce the same joined string.
	a := zatca.Encode(zatca.InvoiceData{Number: "1", IssuedAt: issuedAt, Total: 1, VATTotal: 1},
		zatca.SellerProfile{VATNumber: "23"})
	b := zatca.Encode(zatca.InvoiceData{Number: "12", IssuedAt: issuedAt, Total: 1, VATTotal: 1},
		zatca.SellerProfile{VATNumber: "3"})

	assert.NotEqual(t, a.Fingerprint, b.Fingerprint)
}

func TestFingerprint_FallsBackToID(t *testing.T) {
	inv := testInvoice(t)
	inv.Number = ""
	seller := zatca.SellerProfile{Name: testSellerName, VATNumber: testVATNumber}

	withID := zatca.Encode(inv, seller)

	inv.ID = "18"
	otherID := zatca.Encode(inv, seller)

	assert.NotEqual(t, withID.Fingerprint, otherID.Fingerprint)
}

func TestEncode_EmptySellerDegrades(t *testing.T) {
	tag := zatca.Encode(testInvoice(t), zatca.SellerProfile{})

	assert.Empty(t, tag.SellerName)
	assert.Empty(t, tag.VATNumber)
	assert.NotEmpty(t, tag.TLVBase64, "payload is still produced")
	assert.Len(t, tag.Fingerprint, 64)

	raw, err := base64.StdEncoding.DecodeString(tag.TLVBase64)
	require.NoError(t, err)
	fields, err := zatca.DecodeTLV(raw)
	require.NoError(t, err)
	require.Len(t, fields, 5)
	assert.Empty(t, fields[0].Value)
	assert.Empty(t, fields[1].Value)
}

func TestEncode_ZeroTimestampUsesNow(t *testing.T) {
	inv := testInvoice(t)
	inv.IssuedAt = time.Time{}

	before := time.Now().Add(-time.Minute)
	tag := zatca.Encode(inv, zatca.SellerProfile{Name: testSellerName, VATNumber: testVATNumber})
	after := time.Now().Add(time.Minute)

	raw, err := base64.StdEncoding.DecodeString(tag.TLVBase64)
	require.NoError(t, err)
	fields, err := zatca.DecodeTLV(raw)
	require.NoError(t, err)

	got, err := time.Parse(time.RFC3339, fields[2].Value)
	require.NoError(t, err, "substituted timestamp must still be ISO-8601")
	assert.True(t, got.After(before) && got.Before(after))
}

func TestEncode_LongSellerNameTruncated(t *testing.T) {
	// 150 two-byte runes = 300 UTF-8 bytes, over the one-byte length ceiling.
	longName := strings.Repeat("م", 150)

	tag := zatca.Encode(testInvoice(t), zatca.SellerProfile{Name: longName, VATNumber: testVATNumber})

	raw, err := base64.StdEncoding.DecodeString(tag.TLVBase64)
	require.NoError(t, err)
	fields, err := zatca.DecodeTLV(raw)
	require.NoError(t, err)

	got := fields[0].Value
	assert.LessOrEqual(t, len(got), zatca.MaxValueBytes)
	assert.True(t, strings.HasPrefix(longName, got), "truncation keeps a prefix")
	assert.True(t, strings.HasSuffix(got, "م"), "no split rune at the cut point")
}

func TestEncode_QRDataURI(t *testing.T) {
	tag := zatca.Encode(testInvoice(t), zatca.SellerProfile{Name: testSellerName, VATNumber: testVATNumber})

	require.True(t, strings.HasPrefix(tag.QRImageDataURI, "data:image/png;base64,"))
	_, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(tag.QRImageDataURI, "data:image/png;base64,"))
	assert.NoError(t, err)
}

func TestDecodeTLV_Truncated(t *testing.T) {
	_, err := zatca.DecodeTLV([]byte{zatca.TagSellerName, 10, 'a'})
	assert.ErrorIs(t, err, zatca.ErrTruncatedTLV)

	_, err = zatca.DecodeTLV([]byte{zatca.TagSellerName})
	assert.ErrorIs(t, err, zatca.ErrTruncatedTLV)
}
