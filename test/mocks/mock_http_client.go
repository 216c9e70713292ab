package mocks

import (
	"bytes"
	"io"
	"net/http"
	"sync"
)

// DefaultXMLResponse is an approved SecurePay payment reply
const DefaultXMLResponse = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<SecurePayMessage>
  <Status><statusCode>000</statusCode><statusDescription>Normal</statusDescription></Status>
  <Payment><TxnList count="1"><Txn ID="1">
    <responseCode>00</responseCode>
    <responseText>Approved</responseText>
    <approved>Yes</approved>
    <txnID>009887</txnID>
  </Txn></TxnList></Payment>
</SecurePayMessage>`

// MockHTTPClient is a mock implementation of HTTPClient for testing
type MockHTTPClient struct {
	mu     sync.Mutex
	DoFunc func(req *http.Request) (*http.Response, error)
	Calls  []*http.Request
	Bodies [][]byte
}

// NewMockHTTPClient creates a new mock HTTP client
func NewMockHTTPClient(doFunc func(req *http.Request) (*http.Response, error)) *MockHTTPClient {
	return &MockHTTPClient{
		DoFunc: doFunc,
		Calls:  []*http.Request{},
	}
}

// XMLResponse builds a response carrying body with the given status
func XMLResponse(status int, body string) *http.Response {
	header := make(http.Header)
	header.Set("Content-Type", "text/xml")
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     header,
	}
}

// Do executes the mock function and captures the call and its request body
func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewReader(body))
	}

	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	m.Bodies = append(m.Bodies, body)
	m.mu.Unlock()

	if m.DoFunc != nil {
		return m.DoFunc(req)
	}
	// Default approved response
	return XMLResponse(http.StatusOK, DefaultXMLResponse), nil
}

// CallCount returns the number of captured requests
func (m *MockHTTPClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastBody returns the body of the most recent request
func (m *MockHTTPClient) LastBody() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Bodies) == 0 {
		return ""
	}
	return string(m.Bodies[len(m.Bodies)-1])
}

// Reset clears captured calls
func (m *MockHTTPClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = []*http.Request{}
	m.Bodies = nil
}
