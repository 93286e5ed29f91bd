package walltime_test

import (
	"encoding/json"
	"testing"
	"time"

	"venuebook/shared/failure"
	"venuebook/shared/walltime"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    walltime.WallTime
		wantErr bool
	}{
		{name: "morning", value: "06:00:00", want: walltime.New(6, 0, 0)},
		{name: "seconds kept", value: "15:59:59", want: walltime.New(15, 59, 59)},
		{name: "missing seconds", value: "06:00", wantErr: true},
		{name: "hour out of range", value: "25:00:00", wantErr: true},
		{name: "garbage", value: "noon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := walltime.Parse("start_time", tt.value)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, failure.ReasonInvalidTimeFormat, failure.GetReason(err))
				assert.Equal(t, "start_time must be in HH:mm:ss format", err.Error())

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.value, got.String())
		})
	}
}

func TestFloorTo(t *testing.T) {
	assert.Equal(t, walltime.MustParse("12:30:00"), walltime.MustParse("12:40:00").FloorTo(15))
	assert.Equal(t, walltime.MustParse("12:30:00"), walltime.MustParse("12:30:00").FloorTo(15))
	assert.Equal(t, walltime.MustParse("07:45:00"), walltime.MustParse("07:59:59").FloorTo(15))
	assert.Equal(t, walltime.MustParse("07:59:59"), walltime.MustParse("07:59:59").FloorTo(0))
}

func TestCeilMinute(t *testing.T) {
	assert.Equal(t, walltime.MustParse("16:00:00"), walltime.MustParse("15:59:59").CeilMinute())
	assert.Equal(t, walltime.MustParse("15:59:00"), walltime.MustParse("15:59:00").CeilMinute())
}

func TestAccessors(t *testing.T) {
	w := walltime.MustParse("19:05:30")

	assert.Equal(t, 19, w.Hour())
	assert.Equal(t, 5, w.Minute())
	assert.Equal(t, 30, w.Second())
	assert.Equal(t, 19*60+5, w.Minutes())
	assert.Equal(t, walltime.MustParse("20:35:30"), w.AddMinutes(90))
	assert.True(t, w.Valid())
}

func TestOn(t *testing.T) {
	day := time.Date(2021, 10, 21, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2021, 10, 21, 12, 40, 0, 0, time.UTC), walltime.MustParse("12:40:00").On(day))
	assert.Equal(t, walltime.MustParse("12:40:00"), walltime.Of(time.Date(2021, 10, 21, 12, 40, 0, 0, time.UTC)))
}

func TestJSON(t *testing.T) {
	raw, err := json.Marshal(struct {
		Start walltime.WallTime `json:"start"`
	}{Start: walltime.MustParse("08:15:00")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"08:15:00"}`, string(raw))

	var out struct {
		Start walltime.WallTime `json:"start"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, walltime.MustParse("08:15:00"), out.Start)

	err = json.Unmarshal([]byte(`{"start":"8am"}`), &out)
	assert.Equal(t, failure.ReasonInvalidTimeFormat, failure.GetReason(err))
}

func TestScan(t *testing.T) {
	var w walltime.WallTime

	require.NoError(t, w.Scan([]byte("21:00:00")))
	assert.Equal(t, walltime.MustParse("21:00:00"), w)

	require.NoError(t, w.Scan("09:30:00.000000"))
	assert.Equal(t, walltime.MustParse("09:30:00"), w)

	require.NoError(t, w.Scan(time.Date(0, 1, 1, 6, 0, 0, 0, time.UTC)))
	assert.Equal(t, walltime.MustParse("06:00:00"), w)

	assert.Error(t, w.Scan(42))

	value, err := walltime.MustParse("06:00:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "06:00:00", value)
}

func TestValidateRange(t *testing.T) {
	assert.NoError(t, walltime.ValidateRange(walltime.MustParse("06:00:00"), walltime.MustParse("22:00:00")))

	err := walltime.ValidateRange(walltime.MustParse("22:00:00"), walltime.MustParse("06:00:00"))
	assert.ErrorIs(t, err, failure.InvalidRange)
	assert.Equal(t, "014", failure.GetReason(err))

	assert.Error(t, walltime.ValidateRange(walltime.MustParse("06:00:00"), walltime.MustParse("06:00:00")))
}

func TestDateSet(t *testing.T) {
	set, err := walltime.ParseDateSet("2021-10-22", "2021-10-21", "2021-10-22")
	require.NoError(t, err)
	assert.Equal(t, walltime.DateSet{"2021-10-21", "2021-10-22"}, set)

	assert.True(t, set.Contains(time.Date(2021, 10, 21, 0, 0, 0, 0, time.UTC)))
	assert.False(t, set.Contains(time.Date(2021, 10, 23, 0, 0, 0, 0, time.UTC)))
	assert.False(t, set.Empty())
	assert.True(t, walltime.DateSet(nil).Empty())

	_, err = walltime.ParseDateSet("2021-02-30")
	assert.ErrorIs(t, err, failure.InvalidDate)
}

func TestDateSetSQL(t *testing.T) {
	set := walltime.DateSet{"2021-10-21"}

	value, err := set.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte(`["2021-10-21"]`), value)

	value, err = walltime.DateSet(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), value)

	var scanned walltime.DateSet
	require.NoError(t, scanned.Scan([]byte(`["2021-10-21","2021-10-22"]`)))
	assert.Equal(t, walltime.DateSet{"2021-10-21", "2021-10-22"}, scanned)

	require.NoError(t, scanned.Scan(nil))
	assert.Nil(t, scanned)

	assert.Error(t, scanned.Scan(12))
	assert.Error(t, scanned.Scan("{not json"))
}
