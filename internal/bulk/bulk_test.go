package bulk_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nwpfetch/nwpfetch/internal/bulk"
	"github.com/nwpfetch/nwpfetch/internal/request"
	"github.com/nwpfetch/nwpfetch/internal/resolver"
)

func TestRunSortsByLeadThenInitTime(t *testing.T) {
	base := request.Request{Model: "hrrr", Product: "sfc"}
	dates := []time.Time{
		time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	leads := []time.Duration{2 * time.Hour, 1 * time.Hour}

	o := bulk.New(2)
	items := o.Run(context.Background(), base, dates, leads, func(_ context.Context, req request.Request) (resolver.Result, error) {
		return resolver.Result{}, nil
	})

	require.Len(t, items, 4)
	for i := 1; i < len(items); i++ {
		require.True(t, items[i-1].Lead <= items[i].Lead)
		if items[i-1].Lead == items[i].Lead {
			require.True(t, !items[i].InitTime.Before(items[i-1].InitTime))
		}
	}
}

func TestRunCollectsFailuresWithoutAbortingBatch(t *testing.T) {
	base := request.Request{Model: "hrrr"}
	dates := []time.Time{time.Now().UTC()}
	leads := []time.Duration{1 * time.Hour, 2 * time.Hour, 3 * time.Hour}

	o := bulk.New(3)
	items := o.Run(context.Background(), base, dates, leads, func(_ context.Context, req request.Request) (resolver.Result, error) {
		if req.Lead == 2*time.Hour {
			return resolver.Result{}, fmt.Errorf("boom")
		}
		return resolver.Result{}, nil
	})

	require.Len(t, items, 3)
	failed := bulk.Failures(items)
	require.Len(t, failed, 1)
	require.Equal(t, 2*time.Hour, failed[0].Lead)
}
