package xmlrpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeMethodCall(t *testing.T) {
	data, err := EncodeMethodCall("gallery.login", []Member{
		{Name: "uname", Value: "zach"},
		{Name: "password", Value: "p<ss&word"},
		{Name: "count", Value: 3},
		{Name: "force", Value: true},
		{Name: "userfile", Value: []byte{0x00, 0xFF}},
	})
	require.NoError(t, err)

	want := `<?xml version="1.0" encoding="UTF-8"?>` + "\n" +
		`<methodCall><methodName>gallery.login</methodName><params><param><value><struct>` +
		`<member><name>uname</name><value><string>zach</string></value></member>` +
		`<member><name>password</name><value><string>p&lt;ss&amp;word</string></value></member>` +
		`<member><name>count</name><value><int>3</int></value></member>` +
		`<member><name>force</name><value><boolean>1</boolean></value></member>` +
		`<member><name>userfile</name><value><base64>AP8=</base64></value></member>` +
		`</struct></value></param></params></methodCall>`
	assert.Equal(t, want, string(data))
}

func TestEncodeMethodCallRejectsUnsupportedType(t *testing.T) {
	_, err := EncodeMethodCall("gallery.login", []Member{{Name: "bad", Value: 1.5}})
	assert.Error(t, err)
}

func TestDecodeMethodResponseStruct(t *testing.T) {
	body := `<?xml version="1.0"?>
<methodResponse>
  <params>
    <param>
      <value>
        <struct>
          <member><name>status</name><value><int>0</int></value></member>
          <member><name>status_text</name><value><string>Login successful</string></value></member>
          <member><name>server_version</name><value>2.9</value></member>
          <member><name>can_create_root</name><value><boolean>1</boolean></value></member>
        </struct>
      </value>
    </param>
  </params>
</methodResponse>`

	fields, err := DecodeMethodResponse([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, "0", fields["status"])
	assert.Equal(t, "Login successful", fields["status_text"])
	assert.Equal(t, "2.9", fields["server_version"])
	assert.Equal(t, "true", fields["can_create_root"])
}

func TestDecodeMethodResponseNestedKeys(t *testing.T) {
	body := `<methodResponse><params><param><value><struct>
  <member><name>status</name><value><int>0</int></value></member>
  <member><name>albums</name><value><array><data>
    <value><struct>
      <member><name>name</name><value><string>wedding</string></value></member>
      <member><name>perms.add</name><value><boolean>1</boolean></value></member>
    </struct></value>
    <value><struct>
      <member><name>name</name><value><string>reception</string></value></member>
    </struct></value>
  </data></array></value></member>
</struct></value></param></params></methodResponse>`

	fields, err := DecodeMethodResponse([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, "wedding", fields["albums.1.name"])
	assert.Equal(t, "true", fields["albums.1.perms.add"])
	assert.Equal(t, "reception", fields["albums.2.name"])
}

func TestDecodeMethodResponseFault(t *testing.T) {
	body := `<methodResponse><fault><value><struct>
  <member><name>faultCode</name><value><int>201</int></value></member>
  <member><name>faultString</name><value><string>bad password</string></value></member>
</struct></value></fault></methodResponse>`

	_, err := DecodeMethodResponse([]byte(body))
	var fault *Fault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, 201, fault.Code)
	assert.Equal(t, "bad password", fault.Message)
	assert.Equal(t, "201", fault.Members["faultCode"])
}

func TestDecodeMethodResponseMalformed(t *testing.T) {
	type testData struct {
		description string
		body        string
	}

	tests := []testData{
		{"not xml", "status:0\n"},
		{"wrong root", "<html></html>"},
		{"no params", "<methodResponse></methodResponse>"},
		{"truncated", "<methodResponse><params><param><value><struct>"},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			_, err := DecodeMethodResponse([]byte(tt.body))
			assert.Error(t, err)
		})
	}
}
