package galleryremote

import "fmt"

// StatusCode is the outcome of a single gallery operation. Codes below 1000
// are defined by the Gallery Remote protocol and arrive verbatim from the
// server. Codes 1000 and up are synthesized locally for failures the server
// never got a chance to report.
type StatusCode int

const (
	StatusSuccess StatusCode = 0

	StatusProtoMajorVersionInvalid  StatusCode = 101
	StatusProtoMinorVersionInvalid  StatusCode = 102
	StatusProtoVersionFormatInvalid StatusCode = 103
	StatusProtoVersionMissing       StatusCode = 104

	StatusPasswordWrong StatusCode = 201
	StatusLoginMissing  StatusCode = 202

	StatusUnknownCommand StatusCode = 301

	StatusNoAddPermission   StatusCode = 401
	StatusNoFilename        StatusCode = 402
	StatusUploadItemFailed  StatusCode = 403
	StatusNoWritePermission StatusCode = 404

	StatusNoCreateAlbumPermission StatusCode = 501
	StatusCreateAlbumFailed       StatusCode = 502

	StatusCouldNotConnect    StatusCode = 1000
	StatusProtocolError      StatusCode = 1001
	StatusUnknownError       StatusCode = 1002
	StatusOperationCancelled StatusCode = 1003
)

var statusNames = map[StatusCode]string{
	StatusSuccess:                   "success",
	StatusProtoMajorVersionInvalid:  "protocol major version not supported",
	StatusProtoMinorVersionInvalid:  "protocol minor version not supported",
	StatusProtoVersionFormatInvalid: "protocol version string malformed",
	StatusProtoVersionMissing:       "protocol version missing from request",
	StatusPasswordWrong:             "username or password incorrect",
	StatusLoginMissing:              "login command missing username or password",
	StatusUnknownCommand:            "unknown command",
	StatusNoAddPermission:           "no permission to add items",
	StatusNoFilename:                "no filename specified",
	StatusUploadItemFailed:          "item received but could not be processed",
	StatusNoWritePermission:         "no write permission to destination album",
	StatusNoCreateAlbumPermission:   "no permission to create albums",
	StatusCreateAlbumFailed:         "album could not be created",
	StatusCouldNotConnect:           "could not connect to the gallery",
	StatusProtocolError:             "could not understand the gallery's response",
	StatusUnknownError:              "unknown error",
	StatusOperationCancelled:        "operation cancelled",
}

// statusFromInt maps a numeric status from a decoded response to a StatusCode.
// Numbers outside the known set collapse to StatusUnknownError so that callers
// only ever observe codes from the closed enumeration.
func statusFromInt(n int) StatusCode {
	code := StatusCode(n)
	if _, ok := statusNames[code]; !ok {
		return StatusUnknownError
	}
	return code
}

func (s StatusCode) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status %d", int(s))
}

// OK reports whether the status is the protocol success code.
func (s StatusCode) OK() bool {
	return s == StatusSuccess
}
