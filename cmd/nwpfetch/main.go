// Command nwpfetch is the thin CLI shell over the acquisition engine
// (§6.6): it parses flags, builds a Request, and dispatches to one of
// five subcommands (data, index, inventory, download, bulk).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/gops/agent"

	"github.com/nwpfetch/nwpfetch/internal/bulk"
	"github.com/nwpfetch/nwpfetch/internal/cache"
	"github.com/nwpfetch/nwpfetch/internal/config"
	"github.com/nwpfetch/nwpfetch/internal/download"
	"github.com/nwpfetch/nwpfetch/internal/httpx"
	"github.com/nwpfetch/nwpfetch/internal/inventory"
	"github.com/nwpfetch/nwpfetch/internal/metrics"
	"github.com/nwpfetch/nwpfetch/internal/mirror"
	"github.com/nwpfetch/nwpfetch/internal/model"
	"github.com/nwpfetch/nwpfetch/internal/notify"
	"github.com/nwpfetch/nwpfetch/internal/request"
	"github.com/nwpfetch/nwpfetch/internal/resolver"
	"github.com/nwpfetch/nwpfetch/internal/statusserver"
	"github.com/nwpfetch/nwpfetch/pkg/log"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]

	fs := flag.NewFlagSet(sub, flag.ExitOnError)
	date := fs.String("date", "", "initialization time, RFC3339 or 2006-01-02T15 form")
	modelName := fs.String("model", "", "model name or alias")
	product := fs.String("product", "", "product name")
	fxx := fs.String("fxx", "0", "forecast lead, hours or a Go duration string")
	priority := fs.String("priority", "", "comma-separated mirror priority")
	subset := fs.String("subset", "", "regex selector over the inventory search_key")
	verbose := fs.Bool("verbose", false, "enable debug logging")
	gops := fs.Bool("gops", false, "listen via github.com/google/gops/agent for debugging")
	configPath := fs.String("config", "", "override the default config file path")
	dates := fs.String("dates", "", "bulk: comma-separated initialization times")
	leads := fs.String("leads", "", "bulk: comma-separated forecast leads (hours)")
	workers := fs.Int("workers", 0, "bulk: worker pool size (0 uses the config default)")
	if err := fs.Parse(os.Args[2:]); err != nil {
		os.Exit(2)
	}

	if *gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			log.Fatalf("gops/agent.Listen failed: %s", err)
		}
	}
	if *verbose {
		log.SetLogLevel("debug")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %s", err)
	}
	if !*verbose {
		log.SetLogLevel(cfg.LogLevel)
	}
	notify.Connect(cfg.Nats)

	if cfg.StatusServer.Addr != "" {
		srv := statusserver.New(cfg.StatusServer.Addr)
		if err := srv.Start(); err != nil {
			log.Warnf("statusserver: %v", err)
		}
	}

	reg := model.NewRegistry()
	if cfg.ExtensionDir != "" {
		if err := reg.LoadExtensions(cfg.ExtensionDir); err != nil {
			log.Warnf("model: loading extensions from %s: %v", cfg.ExtensionDir, err)
		}
	}

	req, err := buildRequest(cfg, *modelName, *product, *date, *fxx, *priority)
	if err != nil {
		log.Fatalf("request: %s", err)
	}

	httpClient := httpx.NewClient()
	httpClient.RatePerSecond = cfg.HTTP.RatePerSecond
	httpClient.Burst = cfg.HTTP.Burst

	res := resolver.New(httpClient)
	res.ProbeTimeout = cfg.HTTP.HeadTimeoutSeconds
	if s3, err := mirror.NewClient(context.Background(), ""); err == nil {
		res.S3 = s3
	}

	ctx := context.Background()

	var exitErr error
	switch sub {
	case "data":
		exitErr = cmdData(ctx, reg, res, req)
	case "index":
		exitErr = cmdIndex(ctx, reg, res, req)
	case "inventory":
		exitErr = cmdInventory(ctx, reg, res, httpClient, req, *subset)
	case "download":
		exitErr = cmdDownload(ctx, reg, res, httpClient, req, *subset, cfg)
	case "bulk":
		exitErr = cmdBulk(ctx, reg, res, req, *dates, *leads, *workers, cfg)
	default:
		usage()
		os.Exit(2)
	}

	if exitErr != nil {
		log.Errorf("%s: %s", sub, exitErr)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: nwpfetch <data|index|inventory|download|bulk> [flags]")
}

func loadConfig(override string) (config.Config, error) {
	path := override
	if path == "" {
		p, err := config.Path()
		if err != nil {
			return config.Config{}, err
		}
		path = p
	}
	return config.Load(path)
}

func buildRequest(cfg config.Config, modelName, product, date, fxxStr, priorityFlag string) (request.Request, error) {
	var initTime time.Time
	var err error
	if date != "" {
		initTime, err = parseDate(date)
		if err != nil {
			return request.Request{}, err
		}
	} else {
		initTime = time.Now().UTC().Add(-6 * time.Hour).Truncate(6 * time.Hour)
	}

	lead, err := request.ParseLead(fxxStr)
	if err != nil {
		return request.Request{}, fmt.Errorf("invalid --fxx %q: %w", fxxStr, err)
	}

	priority := cfg.DefaultPriority
	if priorityFlag != "" {
		priority = splitCSV(priorityFlag)
	}

	req := request.Request{
		Model:    modelName,
		Product:  product,
		InitTime: initTime,
		Lead:     lead,
		Priority: priority,
		SaveDir:  cfg.SaveDir,
	}
	if err := req.Validate(); err != nil {
		return request.Request{}, err
	}
	return req, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func splitCSV(s string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	return out
}

func cmdData(ctx context.Context, reg *model.Registry, res *resolver.Resolver, req request.Request) error {
	out, err := reg.Build(req)
	if err != nil {
		return err
	}
	result := res.Resolve(ctx, req, out)
	metrics.ResolvesTotal.WithLabelValues(req.Model, outcomeLabel(result.GRIB.Resolved())).Inc()
	if !result.GRIB.Resolved() {
		return fmt.Errorf("no GRIB resolved for %s", req.Model)
	}
	fmt.Println(locationString(result.GRIB))
	return nil
}

func cmdIndex(ctx context.Context, reg *model.Registry, res *resolver.Resolver, req request.Request) error {
	out, err := reg.Build(req)
	if err != nil {
		return err
	}
	result := res.Resolve(ctx, req, out)
	if !result.Idx.Resolved() {
		return fmt.Errorf("no index resolved for %s", req.Model)
	}
	fmt.Println(locationString(result.Idx))
	return nil
}

func cmdInventory(ctx context.Context, reg *model.Registry, res *resolver.Resolver, httpClient *httpx.Client, req request.Request, subset string) error {
	table, dialect, err := loadInventory(ctx, reg, res, httpClient, req)
	if err != nil {
		return err
	}
	filtered, err := inventory.Filter(table, subset, dialect)
	if err != nil {
		return err
	}
	for _, row := range filtered.Rows {
		fmt.Printf("%d\t%d\t%d\t%s\n", row.Message, row.StartByte, row.EndByte, row.SearchKey)
	}
	return nil
}

func cmdDownload(ctx context.Context, reg *model.Registry, res *resolver.Resolver, httpClient *httpx.Client, req request.Request, subset string, cfg config.Config) error {
	out, err := reg.Build(req)
	if err != nil {
		return err
	}
	result := res.Resolve(ctx, req, out)
	if !result.GRIB.Resolved() {
		return fmt.Errorf("no GRIB resolved for %s", req.Model)
	}

	src := resolver.Location{Path: result.GRIB.Path, URL: result.GRIB.URL, Source: result.GRIB.Source}
	dl := download.New(httpClient)
	dl.GetTimeout = cfg.HTTP.GetTimeoutSeconds
	dl.S3 = res.S3

	if subset == "" || subset == ":" || !result.Idx.Resolved() {
		dest := cache.LocalPath(req, out)
		if err := dl.Full(ctx, src, dest, req.Identity()); err != nil {
			return err
		}
		fmt.Println(dest)
		return nil
	}

	table, dialect, err := loadInventory(ctx, reg, res, httpClient, req)
	if err != nil {
		return err
	}
	filtered, err := inventory.Filter(table, subset, dialect)
	if err != nil {
		return err
	}
	if len(filtered.Rows) == 0 {
		return fmt.Errorf("selector %q matched no inventory rows", subset)
	}

	dest := cache.SubsetPath(req, out, inventory.MessageNumbers(filtered))
	if err := dl.Subset(ctx, src, filtered.Rows, dest, req.Identity()); err != nil {
		return err
	}
	fmt.Println(dest)
	return nil
}

func loadInventory(ctx context.Context, reg *model.Registry, res *resolver.Resolver, httpClient *httpx.Client, req request.Request) (inventory.Table, inventory.Dialect, error) {
	out, err := reg.Build(req)
	if err != nil {
		return inventory.Table{}, "", err
	}
	result := res.Resolve(ctx, req, out)
	dialect := inventory.Dialect(out.IdxDialect)

	idxLocation := result.Idx.URL
	if idxLocation == "" {
		idxLocation = result.Idx.Path
	}
	gribPath := result.GRIB.Path

	loader := inventory.NewLoader(httpClient)
	localPath := cache.LocalPath(req, out)
	table, err := loader.Load(ctx, idxLocation, gribPath, dialect, dirOf(localPath), req.Identity(), 30)
	return table, dialect, err
}

func dirOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return "."
}

func locationString(loc resolver.Location) string {
	if loc.Path != "" {
		return loc.Path
	}
	return loc.URL
}

func outcomeLabel(ok bool) string {
	if ok {
		return "hit"
	}
	return "miss"
}

func cmdBulk(ctx context.Context, reg *model.Registry, res *resolver.Resolver, base request.Request, datesFlag, leadsFlag string, workers int, cfg config.Config) error {
	if datesFlag == "" || leadsFlag == "" {
		return fmt.Errorf("bulk requires --dates and --leads")
	}
	dates, err := parseDates(datesFlag)
	if err != nil {
		return err
	}
	leadDurations, err := parseLeads(leadsFlag)
	if err != nil {
		return err
	}
	if workers <= 0 {
		workers = cfg.Bulk.MaxWorkers
	}

	o := bulk.New(workers)
	items := o.Run(ctx, base, dates, leadDurations, bulk.ResolveOp(reg, res))
	for _, item := range items {
		if item.Err != nil {
			fmt.Printf("%s\t%s\tERROR: %s\n", item.InitTime.Format(time.RFC3339), item.Lead, item.Err)
			continue
		}
		fmt.Printf("%s\t%s\t%s\n", item.InitTime.Format(time.RFC3339), item.Lead, locationString(item.Result.GRIB))
	}
	if failed := bulk.Failures(items); len(failed) > 0 {
		return fmt.Errorf("%d/%d requests failed", len(failed), len(items))
	}
	return nil
}

func parseDates(csv string) ([]time.Time, error) {
	var out []time.Time
	for _, s := range splitCSV(csv) {
		t, err := parseDate(s)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func parseLeads(csv string) ([]time.Duration, error) {
	var out []time.Duration
	for _, s := range splitCSV(csv) {
		d, err := request.ParseLead(s)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
