package zatca

import "errors"

// ErrTruncatedTLV indicates a TLV byte sequence that ends mid-record.
var ErrTruncatedTLV = errors.New("zatca: truncated TLV data")
