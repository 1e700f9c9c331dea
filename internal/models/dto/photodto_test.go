package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhotoID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    PhotoID
		wantErr bool
	}{
		{name: "string id", body: `{"photoId":"665f1c2e9b1d4a0012345678","username":"bob"}`, want: "665f1c2e9b1d4a0012345678"},
		{name: "numeric id", body: `{"photoId":1717000000000,"username":"bob"}`, want: "1717000000000"},
		{name: "boolean id", body: `{"photoId":true,"username":"bob"}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req LikeRequestDTO
			err := json.Unmarshal([]byte(tt.body), &req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, req.PhotoID)
			assert.Equal(t, "bob", req.Username)
		})
	}
}
