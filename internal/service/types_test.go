package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktrack/internal/service"
)

func TestNextPrevStatus(t *testing.T) {
	tests := map[string]struct {
		from    service.Status
		next    service.Status
		hasNext bool
		prev    service.Status
		hasPrev bool
	}{
		"to do": {
			from: service.StatusToDo, next: service.StatusInProgress, hasNext: true,
		},
		"in progress": {
			from: service.StatusInProgress, next: service.StatusCompleted, hasNext: true,
			prev: service.StatusToDo, hasPrev: true,
		},
		"completed": {
			from: service.StatusCompleted, prev: service.StatusInProgress, hasPrev: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			next, ok := service.NextStatus(test.from)
			assert.Equal(t, test.hasNext, ok)
			assert.Equal(t, test.next, next)

			prev, ok := service.PrevStatus(test.from)
			assert.Equal(t, test.hasPrev, ok)
			assert.Equal(t, test.prev, prev)
		})
	}
}

func TestParseStatus(t *testing.T) {
	tests := map[string]struct {
		in     string
		exp    service.Status
		expErr bool
	}{
		"canonical":        {in: "IN_PROGRESS", exp: service.StatusInProgress},
		"lower with dash":  {in: "in-progress", exp: service.StatusInProgress},
		"todo shorthand":   {in: "todo", exp: service.StatusToDo},
		"done shorthand":   {in: "Done", exp: service.StatusCompleted},
		"blocked rejected": {in: "BLOCKED", expErr: true},
		"empty rejected":   {in: " ", expErr: true},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := service.ParseStatus(test.in)
			if test.expErr {
				require.ErrorIs(t, err, service.ErrNotValid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.exp, got)
		})
	}
}

func TestNewPageInvariants(t *testing.T) {
	p := service.NewPage([]int{7}, 2, 10, 21)

	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.Last)
	assert.False(t, p.First)
	assert.Equal(t, 1, p.NumberOfElements)
	assert.True(t, p.Valid())

	first := service.NewPage([]int{1, 2}, 0, 2, 4)
	assert.True(t, first.First)
	assert.False(t, first.Last)
	assert.True(t, first.Valid())

	empty := service.NewPage[int](nil, 0, 10, 0)
	assert.True(t, empty.Empty)
	assert.True(t, empty.First)
	assert.True(t, empty.Last)
	assert.NotNil(t, empty.Content)
}

func TestPageValidDetectsInconsistency(t *testing.T) {
	p := service.Page[int]{Content: []int{1}, TotalPages: 3, Number: 2, First: false, Last: false, NumberOfElements: 1}
	assert.False(t, p.Valid())

	p.Last = true
	assert.True(t, p.Valid())

	p.NumberOfElements = 2
	assert.False(t, p.Valid())
}
