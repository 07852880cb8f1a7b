// Package xmlrpc implements the small slice of XML-RPC the Gallery G2 remote
// interface speaks: a method call carrying one struct of named parameters, and
// a method response carrying either one value or a fault. The subset is small
// enough to sit directly on encoding/xml.
package xmlrpc

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/net/html/charset"
)

// Member is one named parameter of a method call. Value may be a string, int,
// bool, or []byte; byte slices are sent base64-encoded.
type Member struct {
	Name  string
	Value any
}

// Fault is an XML-RPC fault response, returned as an error from
// DecodeMethodResponse. Members holds the flattened fault struct so callers
// can look for protocol fields buried in the payload.
type Fault struct {
	Code    int
	Message string
	Members map[string]string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("xmlrpc fault %d: %s", f.Code, f.Message)
}

// EncodeMethodCall builds a methodCall document invoking method with a single
// struct parameter holding the given members, in order.
func EncodeMethodCall(method string, members []Member) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString(xml.Header)
	b.WriteString("<methodCall><methodName>")
	if err := escape(&b, method); err != nil {
		return nil, err
	}
	b.WriteString("</methodName><params><param><value><struct>")
	for _, m := range members {
		b.WriteString("<member><name>")
		if err := escape(&b, m.Name); err != nil {
			return nil, err
		}
		b.WriteString("</name>")
		if err := writeValue(&b, m.Value); err != nil {
			return nil, fmt.Errorf("failed to encode member %q: %w", m.Name, err)
		}
		b.WriteString("</member>")
	}
	b.WriteString("</struct></value></param></params></methodCall>")
	return b.Bytes(), nil
}

func writeValue(b *bytes.Buffer, v any) error {
	b.WriteString("<value>")
	switch v := v.(type) {
	case string:
		b.WriteString("<string>")
		if err := escape(b, v); err != nil {
			return err
		}
		b.WriteString("</string>")
	case int:
		fmt.Fprintf(b, "<int>%d</int>", v)
	case bool:
		n := 0
		if v {
			n = 1
		}
		fmt.Fprintf(b, "<boolean>%d</boolean>", n)
	case []byte:
		b.WriteString("<base64>")
		b.WriteString(base64.StdEncoding.EncodeToString(v))
		b.WriteString("</base64>")
	default:
		return fmt.Errorf("unsupported xmlrpc value type %T", v)
	}
	b.WriteString("</value>")
	return nil
}

func escape(b *bytes.Buffer, s string) error {
	return xml.EscapeText(b, []byte(s))
}

type methodResponse struct {
	XMLName xml.Name `xml:"methodResponse"`
	Params  []param  `xml:"params>param"`
	Fault   *param   `xml:"fault"`
}

type param struct {
	Value value `xml:"value"`
}

type value struct {
	Str     *string  `xml:"string"`
	Int     *string  `xml:"int"`
	I4      *string  `xml:"i4"`
	Boolean *string  `xml:"boolean"`
	Double  *string  `xml:"double"`
	Base64  *string  `xml:"base64"`
	Struct  *xstruct `xml:"struct"`
	Array   *xarray  `xml:"array"`
	Raw     string   `xml:",chardata"`
}

type xstruct struct {
	Members []structMember `xml:"member"`
}

type structMember struct {
	Name  string `xml:"name"`
	Value value  `xml:"value"`
}

type xarray struct {
	Values []value `xml:"data>value"`
}

// DecodeMethodResponse parses a methodResponse document into a flat key/value
// mapping. Struct members map under their name, nested structs with a dotted
// prefix, and array elements with a 1-based numeric suffix, mirroring the key
// shape of the form protocol. A fault response is returned as a *Fault error.
func DecodeMethodResponse(data []byte) (map[string]string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	// Old gallery servers answer in their locale's charset and say so in the
	// XML prolog; honor that instead of assuming UTF-8.
	dec.CharsetReader = charset.NewReaderLabel

	var resp methodResponse
	if err := dec.Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to parse xmlrpc response: %w", err)
	}

	if resp.Fault != nil {
		members := map[string]string{}
		flatten(resp.Fault.Value, "", members)
		fault := &Fault{Members: members, Message: members["faultString"]}
		if code, err := strconv.Atoi(members["faultCode"]); err == nil {
			fault.Code = code
		}
		return nil, fault
	}

	if len(resp.Params) != 1 {
		return nil, errors.New("xmlrpc response does not carry exactly one value")
	}

	fields := map[string]string{}
	flatten(resp.Params[0].Value, "", fields)
	return fields, nil
}

func flatten(v value, prefix string, out map[string]string) {
	switch {
	case v.Struct != nil:
		for _, m := range v.Struct.Members {
			flatten(m.Value, joinKey(prefix, m.Name), out)
		}
	case v.Array != nil:
		for i, elem := range v.Array.Values {
			flatten(elem, joinKey(prefix, strconv.Itoa(i+1)), out)
		}
	default:
		out[prefix] = scalar(v)
	}
}

func joinKey(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func scalar(v value) string {
	switch {
	case v.Str != nil:
		return *v.Str
	case v.Int != nil:
		return *v.Int
	case v.I4 != nil:
		return *v.I4
	case v.Double != nil:
		return *v.Double
	case v.Boolean != nil:
		// Normalize to the spellings the form-protocol parser accepts.
		if *v.Boolean == "1" || *v.Boolean == "true" {
			return "true"
		}
		return "false"
	case v.Base64 != nil:
		decoded, err := base64.StdEncoding.DecodeString(*v.Base64)
		if err != nil {
			return *v.Base64
		}
		return string(decoded)
	default:
		// An untyped <value> is a string per the XML-RPC spec.
		return v.Raw
	}
}
