package search

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromOffset_PageMath(t *testing.T) {
	for _, rows := range []int{1, 3, 10, 25} {
		total := 103
		for first := 0; first < total; first++ {
			p := FromOffset(first, rows)
			require.Equal(t, first/rows+1, p.PageNumber, "first=%d rows=%d", first, rows)
			require.Equal(t, rows, p.PageSize)
			require.LessOrEqual(t, p.First(), first)
			require.Greater(t, p.First()+rows, first)
		}
	}
}

func TestFromOffset_DefaultsInvalidInput(t *testing.T) {
	p := FromOffset(-5, 0)
	require.Equal(t, Pagination{PageNumber: 1, PageSize: DefaultPageSize}, p)
}

func TestPagination_Validate(t *testing.T) {
	require.NoError(t, NewPagination(10).Validate())
	require.Error(t, Pagination{PageNumber: 0, PageSize: 10}.Validate())
	require.Error(t, Pagination{PageNumber: 1, PageSize: 0}.Validate())
}

func TestPagination_TotalPagesAndClamp(t *testing.T) {
	p := NewPagination(10)
	cases := []struct {
		total int
		want  int
	}{
		{0, 1},
		{1, 1},
		{10, 1},
		{11, 2},
		{25, 3},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, p.TotalPages(tc.total), "total=%d", tc.total)
	}

	require.Equal(t, 2, p.WithPage(3).Clamp(20).PageNumber)
	require.Equal(t, 3, p.WithPage(3).Clamp(21).PageNumber)
	require.Equal(t, 1, p.WithPage(4).Clamp(0).PageNumber)
}

func TestPagination_WithSizeKeepsFirstRow(t *testing.T) {
	p := NewPagination(10).WithPage(3) // rows 20..29
	resized := p.WithSize(25)
	require.Equal(t, 1, resized.PageNumber)
	require.Equal(t, 25, resized.PageSize)

	require.Equal(t, p, p.WithSize(0), "non-positive size is ignored")
}

func TestPagination_ResetAndWithPage(t *testing.T) {
	p := NewPagination(5).WithPage(7)
	require.Equal(t, 1, p.Reset().PageNumber)
	require.Equal(t, 1, p.WithPage(-2).PageNumber)
}
