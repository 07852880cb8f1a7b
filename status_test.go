package galleryremote

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusFromInt(t *testing.T) {
	testCases := []struct {
		description string
		in          int
		want        StatusCode
	}{
		{
			description: "success",
			in:          0,
			want:        StatusSuccess,
		},
		{
			description: "knownServerCode",
			in:          201,
			want:        StatusPasswordWrong,
		},
		{
			description: "knownLocalCode",
			in:          1003,
			want:        StatusOperationCancelled,
		},
		{
			description: "unknownPositive",
			in:          9999,
			want:        StatusUnknownError,
		},
		{
			description: "unknownInGap",
			in:          105,
			want:        StatusUnknownError,
		},
		{
			description: "negative",
			in:          -1,
			want:        StatusUnknownError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.want, statusFromInt(tc.in))
		})
	}
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "success", StatusSuccess.String())
	assert.Equal(t, "username or password incorrect", StatusPasswordWrong.String())
	assert.Equal(t, "status 7", StatusCode(7).String())
}

func TestStatusOK(t *testing.T) {
	assert.True(t, StatusSuccess.OK())
	assert.False(t, StatusPasswordWrong.OK())
	assert.False(t, StatusOperationCancelled.OK())
}
