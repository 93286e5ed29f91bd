package validator_test

import (
	"strings"
	"testing"

	"venuebook/shared/failure"
	"venuebook/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slotRequest struct {
	Venue    string `json:"venue"     validate:"required"`
	Day      string `json:"day"       validate:"required,isodate"`
	Start    string `json:"start"     validate:"omitempty,walltime"`
	Duration int    `json:"duration"  validate:"gte=1,lte=1440"`
	Source   string `json:"source"    validate:"omitempty,oneof=web app admin"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name       string
		data       slotRequest
		wantErr    bool
		wantReason string
	}{
		{
			name: "valid request",
			data: slotRequest{Venue: "v1", Day: "2021-01-04", Start: "12:40:00", Duration: 90, Source: "web"},
		},
		{
			name:    "missing venue",
			data:    slotRequest{Day: "2021-01-04", Duration: 90},
			wantErr: true,
		},
		{
			name:       "day not a calendar date",
			data:       slotRequest{Venue: "v1", Day: "2021-02-30", Duration: 90},
			wantErr:    true,
			wantReason: failure.ReasonInvalidDate,
		},
		{
			name:       "start without seconds",
			data:       slotRequest{Venue: "v1", Day: "2021-01-04", Start: "12:40", Duration: 90},
			wantErr:    true,
			wantReason: failure.ReasonInvalidTimeFormat,
		},
		{
			name:    "duration out of range",
			data:    slotRequest{Venue: "v1", Day: "2021-01-04", Duration: 0},
			wantErr: true,
		},
		{
			name:    "unknown source",
			data:    slotRequest{Venue: "v1", Day: "2021-01-04", Duration: 60, Source: "fax"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if !tt.wantErr {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, 400, failure.GetCode(err))
			assert.Equal(t, tt.wantReason, failure.GetReason(err))
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name    string
		field   any
		tag     string
		wantErr bool
	}{
		{name: "valid required string", field: "test", tag: "required"},
		{name: "empty required string", field: "", tag: "required", wantErr: true},
		{name: "valid wall time", field: "15:59:00", tag: "walltime"},
		{name: "wall time out of range", field: "25:00:00", tag: "walltime", wantErr: true},
		{name: "valid iso date", field: "2021-01-09", tag: "isodate"},
		{name: "slashed date", field: "09/01/2021", tag: "isodate", wantErr: true},
		{name: "number in range", field: 25, tag: "gte=0,lte=100"},
		{name: "number out of range", field: 150, tag: "gte=0,lte=100", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		jsonBody string
		wantErr  bool
	}{
		{
			name:     "valid JSON",
			jsonBody: `{"venue":"v1","day":"2021-01-04","duration":90}`,
		},
		{
			name:     "invalid field",
			jsonBody: `{"venue":"v1","day":"04-01-2021","duration":90}`,
			wantErr:  true,
		},
		{
			name:     "malformed JSON",
			jsonBody: `{"venue":}`,
			wantErr:  true,
		},
		{
			name:     "empty JSON",
			jsonBody: `{}`,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data slotRequest
			err := validator.Validate(strings.NewReader(tt.jsonBody), &data)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidationMessages(t *testing.T) {
	err := validator.ValidateStruct(&slotRequest{Day: "2021-01-04", Duration: 30})

	require.Error(t, err)
	assert.Equal(t, "venue is required", err.Error())
}

func TestTimeFormatReportsJSONField(t *testing.T) {
	err := validator.ValidateStruct(&slotRequest{Venue: "v1", Day: "2021-01-04", Start: "9am", Duration: 30})

	require.Error(t, err)
	assert.Equal(t, "start must be in HH:mm:ss format", err.Error())
}
