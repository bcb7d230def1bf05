package validator_test

import (
	"encoding/base64"
	"fmt"
	"strings"
	"testing"

	"lodge/shared/validator"

	"github.com/stretchr/testify/assert"
)

func pngDataURI(payloadBytes int) string {
	encoded := base64.StdEncoding.EncodeToString(make([]byte, payloadBytes))

	return "data:image/png;base64," + encoded
}

type idProofPayload struct {
	IDProof string `json:"id_proof" validate:"required,mimetypes=image/png image/jpg image/jpeg,maxfilesize=2"`
}

func TestValidateIDProof(t *testing.T) {
	tests := []struct {
		name    string
		idProof string
		wantErr bool
	}{
		{name: "small png passes", idProof: pngDataURI(1024)},
		{name: "pdf mime type is rejected", idProof: "data:application/pdf;base64,aGVsbG8=", wantErr: true},
		{name: "plain string without data uri is rejected", idProof: "not-a-data-uri", wantErr: true},
		{name: "payload over the size cap is rejected", idProof: pngDataURI(3 * 1024 * 1024), wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			body := fmt.Sprintf(`{"id_proof": %q}`, test.idProof)

			var payload idProofPayload

			err := validator.Validate(strings.NewReader(body), &payload)

			if test.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}

type pagination struct {
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

func TestValidateMalformedJSON(t *testing.T) {
	var payload pagination

	err := validator.Validate(strings.NewReader("{not json"), &payload)

	assert.Error(t, err)
}

func TestValidateStruct(t *testing.T) {
	assert.NoError(t, validator.ValidateStruct(&pagination{SortDir: "ASC"}))
	assert.Error(t, validator.ValidateStruct(&pagination{SortDir: "sideways"}))
}
