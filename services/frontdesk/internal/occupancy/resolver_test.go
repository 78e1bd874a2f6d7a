package occupancy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diagnosis/hotel-frontdesk/services/frontdesk/internal/domain"
)

func res(id int64, in, out string) domain.Reservation {
	r := domain.Reservation{ID: id, RoomID: 101, GuestID: id * 10}
	if in != "" {
		r.CheckIn = domain.MustParseDate(in)
	}
	if out != "" {
		r.CheckOut = domain.MustParseDate(out)
	}
	return r
}

func day(s string) domain.Date { return domain.MustParseDate(s) }

func TestResolveScenario(t *testing.T) {
	ctx := context.Background()
	list := []domain.Reservation{res(1, "2024-06-12", "2024-06-15")}

	got := Resolve(ctx, list, day("2024-06-13"))
	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.ID)

	assert.Nil(t, Resolve(ctx, list, day("2024-06-15")), "checkout day is free")
}

func TestResolveHalfOpenOverWholeStay(t *testing.T) {
	ctx := context.Background()
	list := []domain.Reservation{res(1, "2024-06-12", "2024-06-15")}

	for d := day("2024-06-05"); d.Before(day("2024-06-20")); d = d.AddDays(1) {
		want := !d.Before(day("2024-06-12")) && d.Before(day("2024-06-15"))
		got := Resolve(ctx, list, d)
		assert.Equal(t, want, got != nil, d.String())
	}
}

func TestResolveSameDayTurnover(t *testing.T) {
	list := []domain.Reservation{
		res(1, "2024-06-12", "2024-06-15"),
		res(2, "2024-06-15", "2024-06-18"),
	}
	got := Resolve(context.Background(), list, day("2024-06-15"))
	require.NotNil(t, got)
	assert.Equal(t, int64(2), got.ID, "arriving guest holds the turnover day")
}

func TestResolveSkipsMalformed(t *testing.T) {
	list := []domain.Reservation{
		res(1, "", "2024-06-15"),
		res(2, "2024-06-16", "2024-06-12"),
		res(3, "2024-06-12", ""),
		res(4, "2024-06-12", "2024-06-15"),
	}
	got := Resolve(context.Background(), list, day("2024-06-13"))
	require.NotNil(t, got)
	assert.Equal(t, int64(4), got.ID)
}

func TestResolveFirstInOrderOnCorruptData(t *testing.T) {
	list := []domain.Reservation{
		res(7, "2024-06-10", "2024-06-20"),
		res(3, "2024-06-12", "2024-06-15"),
	}
	got := Resolve(context.Background(), list, day("2024-06-13"))
	require.NotNil(t, got)
	assert.Equal(t, int64(7), got.ID)
}

func TestResolveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	list := []domain.Reservation{res(1, "2024-06-12", "2024-06-15"), res(2, "2024-06-20", "2024-06-22")}
	snapshot := append([]domain.Reservation(nil), list...)

	first := Resolve(ctx, list, day("2024-06-14"))
	second := Resolve(ctx, list, day("2024-06-14"))
	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, list, "input must not be modified")
}

func TestResolveEmpty(t *testing.T) {
	assert.Nil(t, Resolve(context.Background(), nil, day("2024-06-14")))
}

func TestOverlapping(t *testing.T) {
	list := []domain.Reservation{
		res(1, "2024-06-01", "2024-06-05"),
		res(2, "2024-06-05", "2024-06-08"),
		res(3, "2024-06-10", "2024-06-12"),
		res(4, "", ""),
	}
	window := domain.DateRange{CheckIn: day("2024-06-04"), CheckOut: day("2024-06-10")}

	got := Overlapping(context.Background(), list, window)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)
}
