package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name  string `json:"name"  validate:"required"`
	Count int    `json:"count" validate:"gte=0"`
}

type selfValidating struct {
	OK bool `json:"ok"`
}

func (s selfValidating) Validate() error {
	if !s.OK {
		return errors.New("not ok")
	}
	return nil
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
		fails   bool
	}{
		{name: "valid", body: `{"name":"a","count":1}`},
		{name: "empty", body: ``, wantErr: ErrEmptyBody, fails: true},
		{name: "malformed", body: `{"name":`, fails: true},
		{name: "trailing data", body: `{"name":"a"} {"name":"b"}`, fails: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			var got sampleRequest
			err := DecodeJSON(req, &got)
			if !tc.fails {
				require.NoError(t, err)
				assert.Equal(t, "a", got.Name)
				return
			}
			require.Error(t, err)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(sampleRequest{Name: "a"}))
	assert.Error(t, ValidateRequest(sampleRequest{}))
	assert.Error(t, ValidateRequest(sampleRequest{Name: "a", Count: -1}))

	assert.NoError(t, ValidateRequest(selfValidating{OK: true}))
	assert.EqualError(t, ValidateRequest(selfValidating{}), "not ok")
}
