package securepay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnderscore(t *testing.T) {
	tests := map[string]string{
		"responseCode":      "response_code",
		"statusDescription": "status_description",
		"txnID":             "txn_id",
		"messageID":         "message_id",
		"CreditCardInfo":    "credit_card_info",
		"HTMLParser":        "html_parser",
		"settlementDate":    "settlement_date",
		"cvv":               "cvv",
		"card-type":         "card_type",
		"approved":          "approved",
	}

	for in, expected := range tests {
		assert.Equal(t, expected, Underscore(in), in)
	}
}

func TestParseResponse_FlattensLeaves(t *testing.T) {
	body := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<SecurePayMessage>
  <MessageInfo>
    <messageID>8af793f9af34bea0ecd7eff71b37ef</messageID>
    <apiVersion>xml-4.2</apiVersion>
  </MessageInfo>
  <Status>
    <statusCode>000</statusCode>
    <statusDescription>Normal</statusDescription>
  </Status>
  <Payment>
    <TxnList count="1">
      <Txn ID="1">
        <responseCode>00</responseCode>
        <responseText>Approved</responseText>
        <txnID>009887</txnID>
        <CreditCardInfo>
          <pan>444433...111</pan>
        </CreditCardInfo>
      </Txn>
    </TxnList>
  </Payment>
</SecurePayMessage>`)

	parsed := ParseResponse(body)

	require.NoError(t, parsed.Err)
	assert.Empty(t, parsed.Duplicates)
	assert.Equal(t, map[string]string{
		"message_id":         "8af793f9af34bea0ecd7eff71b37ef",
		"api_version":        "xml-4.2",
		"status_code":        "000",
		"status_description": "Normal",
		"response_code":      "00",
		"response_text":      "Approved",
		"txn_id":             "009887",
		"pan":                "444433...111",
	}, parsed.Fields)
}

func TestParseResponse_RootIsNotRecorded(t *testing.T) {
	parsed := ParseResponse([]byte(`<SecurePayMessage>text only</SecurePayMessage>`))
	require.NoError(t, parsed.Err)
	assert.Empty(t, parsed.Fields)
}

func TestParseResponse_EmptyLeaf(t *testing.T) {
	parsed := ParseResponse([]byte(`<r><responseText/><txnID></txnID></r>`))
	require.NoError(t, parsed.Err)

	value, ok := parsed.Fields["response_text"]
	assert.True(t, ok)
	assert.Equal(t, "", value)
	assert.Contains(t, parsed.Fields, "txn_id")
}

func TestParseResponse_DuplicateKeysKeepLast(t *testing.T) {
	body := []byte(`<SecurePayMessage>
  <Status><statusCode>000</statusCode></Status>
  <TxnList>
    <Txn ID="1"><responseCode>05</responseCode></Txn>
    <Txn ID="2"><responseCode>00</responseCode></Txn>
  </TxnList>
</SecurePayMessage>`)

	parsed := ParseResponse(body)

	require.NoError(t, parsed.Err)
	assert.Equal(t, "00", parsed.Fields["response_code"])
	assert.Equal(t, []string{"response_code"}, parsed.Duplicates)
}

func TestParseResponse_Malformed(t *testing.T) {
	t.Run("truncated document keeps what was read", func(t *testing.T) {
		parsed := ParseResponse([]byte(`<SecurePayMessage><Status><statusCode>000</statusCode><statusDescr`))
		assert.Error(t, parsed.Err)
		assert.Equal(t, "000", parsed.Fields["status_code"])
	})

	t.Run("unclosed root", func(t *testing.T) {
		parsed := ParseResponse([]byte(`<SecurePayMessage><responseCode>00</responseCode>`))
		assert.Error(t, parsed.Err)
		assert.Equal(t, "00", parsed.Fields["response_code"])
	})

	t.Run("not xml", func(t *testing.T) {
		parsed := ParseResponse([]byte(`<html><body>Bad Gateway</body`))
		assert.Error(t, parsed.Err)
	})

	t.Run("empty body", func(t *testing.T) {
		parsed := ParseResponse(nil)
		assert.NoError(t, parsed.Err)
		assert.Empty(t, parsed.Fields)
	})
}

func TestParseResponse_DeclaredCharset(t *testing.T) {
	body := []byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
		"<SecurePayMessage><Txn><responseCode>00</responseCode><responseText>Approuv\xe9</responseText></Txn></SecurePayMessage>")

	resp := ParseResponse(body)

	require.NoError(t, resp.Err)
	assert.Equal(t, "00", resp.Fields["response_code"])
	assert.Equal(t, "Approuvé", resp.Fields["response_text"])
}
