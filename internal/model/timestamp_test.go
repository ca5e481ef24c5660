package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "rfc3339", input: `"2024-01-02T10:30:00Z"`, want: time.Date(2024, 1, 2, 10, 30, 0, 0, time.UTC)},
		{name: "rfc3339 with millis and offset", input: `"2024-01-02T12:30:00.250+02:00"`, want: time.Date(2024, 1, 2, 10, 30, 0, 250_000_000, time.UTC)},
		{name: "date only", input: `"2024-01-01"`, want: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{name: "epoch millis", input: `1704067200000`, want: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{name: "epoch millis as string", input: `"1704067200000"`, want: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{name: "empty string", input: `""`},
		{name: "year only", input: `"2024"`, want: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{name: "year and month", input: `"2024-03"`, want: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{name: "negative epoch millis", input: `-86400000`, want: time.Date(1969, 12, 31, 0, 0, 0, 0, time.UTC)},
		{name: "garbage", input: `"yesterday"`, wantErr: true},
		{name: "nan string", input: `"NaN"`, wantErr: true},
		{name: "infinity string", input: `"Infinity"`, wantErr: true},
		{name: "negative infinity string", input: `"-Inf"`, wantErr: true},
		{name: "millis beyond date range", input: `1e30`, wantErr: true},
		{name: "millis string beyond date range", input: `"8640000000000001"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			err := json.Unmarshal([]byte(tt.input), &ts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(ts.Time), "got %s", ts.Time)
		})
	}
}

func TestTimestamp_NullFieldIsNil(t *testing.T) {
	var body struct {
		CompletedAt *Timestamp `json:"completedAt"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"completedAt":null}`), &body))

	assert.Nil(t, body.CompletedAt.TimePtr())
}

func TestLegacyID_AcceptsStringsAndNumbers(t *testing.T) {
	var users []LegacyUser
	require.NoError(t, json.Unmarshal([]byte(`[{"id":"legacy1","email":"a@x.com"},{"id":1712345678901,"email":"b@x.com"}]`), &users))

	require.Len(t, users, 2)
	assert.Equal(t, LegacyID("legacy1"), users[0].ID)
	assert.Equal(t, LegacyID("1712345678901"), users[1].ID)
}

func TestNoteInput_RejectsInvalidDate(t *testing.T) {
	for _, date := range []string{`"NaN"`, `"Infinity"`, `"-Inf"`, `1e30`} {
		var in NoteInput
		err := json.Unmarshal([]byte(`{"lectureNumber":1,"date":`+date+`}`), &in)
		assert.Error(t, err, "date %s", date)
	}
}

func TestNoteInput_ToNoteDefaultsDate(t *testing.T) {
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	lecture := LectureNumber(4)
	note := NoteInput{LectureNumber: &lecture, UploadedBy: "A", Email: "a@x.com"}.ToNote(now)

	assert.Equal(t, now, note.Date)
	assert.Equal(t, 4, note.LectureNumber)
}
