package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestCaptureWriterWithinLimit(t *testing.T) {
    rec := httptest.NewRecorder()
    cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 32}

    _, err := cw.Write([]byte(`{"flight_id":1}`))
    require.NoError(t, err)

    assert.False(t, cw.overflowed())
    assert.Equal(t, `{"flight_id":1}`, cw.buf.String())
    // The client still receives the full body.
    assert.Equal(t, `{"flight_id":1}`, rec.Body.String())
}

// A body past the limit is only partially captured; overflowed must
// flip so the middleware skips caching instead of storing a prefix
// that a later HIT would replay as a complete 200.
func TestCaptureWriterOverflowIsNotCacheable(t *testing.T) {
    rec := httptest.NewRecorder()
    cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 10}

    _, err := cw.Write([]byte("0123456789abcdef"))
    require.NoError(t, err)
    _, err = cw.Write([]byte("ghij"))
    require.NoError(t, err)

    assert.True(t, cw.overflowed())
    // The client got everything even though the capture stopped.
    assert.Equal(t, "0123456789abcdefghij", rec.Body.String())
}

func TestCaptureWriterUnlimited(t *testing.T) {
    rec := httptest.NewRecorder()
    cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK}

    _, err := cw.Write([]byte("0123456789abcdef"))
    require.NoError(t, err)

    assert.False(t, cw.overflowed())
    assert.Equal(t, "0123456789abcdef", cw.buf.String())
}

func TestPayloadEncodingRoundTrip(t *testing.T) {
    hdr := http.Header{"Content-Type": {"application/json"}}
    body := []byte(`{"classes":[]}`)

    bs, err := encodePayload(http.StatusOK, hdr, body)
    require.NoError(t, err)

    status, gotHdr, gotBody, ok := decodePayload(bs)
    require.True(t, ok)
    assert.Equal(t, http.StatusOK, status)
    assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
    assert.Equal(t, body, gotBody)

    _, _, _, ok = decodePayload([]byte("short"))
    assert.False(t, ok)
}
