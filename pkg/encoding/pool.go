package encoding

import (
	"bytes"
	"encoding/xml"
	"sync"
)

// maxPooledBuffer keeps outlier documents from pinning memory in the pool
const maxPooledBuffer = 64 * 1024

// BufferPool pools bytes.Buffer for request serialization
var BufferPool = sync.Pool{
	New: func() interface{} {
		return new(bytes.Buffer)
	},
}

// GetBuffer retrieves an empty bytes.Buffer from the pool
func GetBuffer() *bytes.Buffer {
	buf := BufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutBuffer returns a bytes.Buffer to the pool
func PutBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBuffer {
		return
	}
	buf.Reset()
	BufferPool.Put(buf)
}

// EncodeXML encodes v as a standalone XML document (declaration included)
// using a pooled buffer. The returned slice is owned by the caller.
func EncodeXML(v interface{}) ([]byte, error) {
	buf := GetBuffer()
	defer PutBuffer(buf)

	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(buf).Encode(v); err != nil {
		return nil, err
	}

	// Copy the buffer contents since we're returning the buffer to the pool
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}
