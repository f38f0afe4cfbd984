package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestNewDayoffRule(t *testing.T) {
	tests := []struct {
		name    string
		fields  DayoffFields
		want    DayoffRule
		wantErr bool
	}{
		{
			name:   "annual date",
			fields: DayoffFields{Kind: DayoffAnnualDate, Month: intPtr(3), Day: intPtr(2)},
			want:   AnnualDateRule{Month: time.March, Day: 2},
		},
		{
			name:   "leap day allowed",
			fields: DayoffFields{Kind: DayoffAnnualDate, Month: intPtr(2), Day: intPtr(29)},
			want:   AnnualDateRule{Month: time.February, Day: 29},
		},
		{
			name:   "weekly ignores stray month",
			fields: DayoffFields{Kind: DayoffWeekly, Month: intPtr(4), Weekday: intPtr(0)},
			want:   WeeklyRule{Weekday: time.Sunday},
		},
		{name: "annual without day", fields: DayoffFields{Kind: DayoffAnnualDate, Month: intPtr(3)}, wantErr: true},
		{name: "annual day out of range", fields: DayoffFields{Kind: DayoffAnnualDate, Month: intPtr(4), Day: intPtr(31)}, wantErr: true},
		{name: "annual month out of range", fields: DayoffFields{Kind: DayoffAnnualDate, Month: intPtr(13), Day: intPtr(1)}, wantErr: true},
		{name: "weekly without weekday", fields: DayoffFields{Kind: DayoffWeekly}, wantErr: true},
		{name: "weekly weekday out of range", fields: DayoffFields{Kind: DayoffWeekly, Weekday: intPtr(7)}, wantErr: true},
		{name: "unknown kind", fields: DayoffFields{Kind: "DAILY"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := NewDayoffRule(tt.fields)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidDayoffRule)
				assert.Equal(t, KindInvalidInput, KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, rule)
		})
	}
}

func TestFieldsOf_SetsOnlyKindFields(t *testing.T) {
	annual := FieldsOf(AnnualDateRule{Month: time.March, Day: 2})
	assert.Equal(t, DayoffAnnualDate, annual.Kind)
	assert.Equal(t, 3, *annual.Month)
	assert.Equal(t, 2, *annual.Day)
	assert.Nil(t, annual.Weekday)

	weekly := FieldsOf(WeeklyRule{Weekday: time.Saturday})
	assert.Equal(t, DayoffWeekly, weekly.Kind)
	assert.Equal(t, 6, *weekly.Weekday)
	assert.Nil(t, weekly.Month)
	assert.Nil(t, weekly.Day)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(ErrTourNotFound))
	assert.Equal(t, KindForbidden, KindOf(fmt.Errorf("approve: %w", ErrForbidden)))
	assert.Equal(t, KindInternal, KindOf(fmt.Errorf("%w: storage: %w", ErrInternal, ErrReservationNotFound)))
	assert.Equal(t, KindInternal, KindOf(fmt.Errorf("plain")))
	assert.Equal(t, "CancellationWindowClosed", KindCancellationWindowClosed.String())
}
