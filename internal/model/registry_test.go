package model_test

import (
	"testing"
	"time"

	"github.com/nwpfetch/nwpfetch/internal/model"
	"github.com/nwpfetch/nwpfetch/internal/request"
	"github.com/stretchr/testify/require"
)

func TestBuildIsPureAndDeterministic(t *testing.T) {
	r := model.NewRegistry()
	req := request.Request{
		Model:    "hrrr",
		Product:  "sfc",
		InitTime: time.Date(2023, 1, 1, 6, 0, 0, 0, time.UTC),
		Lead:     0,
	}

	out1, err := r.Build(req)
	require.NoError(t, err)
	out2, err := r.Build(req)
	require.NoError(t, err)
	require.Equal(t, out1, out2)
	require.NotEmpty(t, out1.Sources)
	require.Equal(t, model.Wgrib2, out1.IdxDialect)
}

func TestAliasResolution(t *testing.T) {
	r := model.NewRegistry()
	req := request.Request{
		Model:    "alaska",
		InitTime: time.Date(2023, 1, 1, 6, 0, 0, 0, time.UTC),
		Lead:     0,
	}
	out, err := r.Build(req)
	require.NoError(t, err)
	require.NotEmpty(t, out.Sources)
}

func TestDeprecatedAlias(t *testing.T) {
	r := model.NewRegistry()
	req := request.Request{
		Model:    "ecmwf",
		InitTime: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Lead:     0,
	}
	out, err := r.Build(req)
	require.NoError(t, err)
	require.Equal(t, model.Eccodes, out.IdxDialect)
}

func TestMissingFieldForEnsembleModel(t *testing.T) {
	r := model.NewRegistry()
	req := request.Request{
		Model:    "gefs",
		InitTime: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		Lead:     0,
	}
	_, err := r.Build(req)
	require.Error(t, err)
}

func TestUnknownModel(t *testing.T) {
	r := model.NewRegistry()
	req := request.Request{
		Model:    "not-a-model",
		InitTime: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	_, err := r.Build(req)
	require.Error(t, err)
}

func TestGFSCutover(t *testing.T) {
	r := model.NewRegistry()
	before, err := r.Build(request.Request{Model: "gfs", InitTime: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	after, err := r.Build(request.Request{Model: "gfs", InitTime: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	require.NotEqual(t, before.URL("aws"), after.URL("aws"))
}
