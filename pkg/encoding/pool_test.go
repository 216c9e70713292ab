package encoding

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	XMLName xml.Name `xml:"Note"`
	To      string   `xml:"to"`
	Body    string   `xml:"body"`
}

func TestEncodeXML(t *testing.T) {
	out, err := EncodeXML(note{To: "merchant", Body: "a < b & c"})
	require.NoError(t, err)

	assert.Equal(t, xml.Header+`<Note><to>merchant</to><body>a &lt; b &amp; c</body></Note>`, string(out))
}

func TestEncodeXML_ResultSurvivesBufferReuse(t *testing.T) {
	first, err := EncodeXML(note{To: "first"})
	require.NoError(t, err)

	_, err = EncodeXML(note{To: "second"})
	require.NoError(t, err)

	assert.Contains(t, string(first), "<to>first</to>")
}

func TestEncodeXML_Error(t *testing.T) {
	_, err := EncodeXML(make(chan int))
	assert.Error(t, err)
}

func TestPutBuffer_DropsLargeBuffers(t *testing.T) {
	buf := bytes.NewBufferString(strings.Repeat("x", maxPooledBuffer+1))
	PutBuffer(buf)

	assert.Equal(t, 0, GetBuffer().Len())
}
