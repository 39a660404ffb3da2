package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/beetlebugorg/gini/pkg/gini"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
)

// parseBBox parses "minlon,minlat,maxlon,maxlat". An empty string returns
// bounds covering the whole globe.
func parseBBox(s string) (gini.Bounds, error) {
	if strings.TrimSpace(s) == "" {
		return gini.Bounds{MinLon: -180, MaxLon: 180, MinLat: -90, MaxLat: 90}, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return gini.Bounds{}, fmt.Errorf("ginitool: bbox %q must have four comma separated values", s)
	}
	v := make([]float64, 4)
	for i, part := range parts {
		f, err := cast.ToFloat64E(strings.TrimSpace(part))
		if err != nil {
			return gini.Bounds{}, fmt.Errorf("ginitool: invalid bbox %q: %v", s, err)
		}
		v[i] = f
	}
	b := gini.Bounds{MinLon: v[0], MinLat: v[1], MaxLon: v[2], MaxLat: v[3]}
	if b.MinLon > b.MaxLon || b.MinLat > b.MaxLat {
		return gini.Bounds{}, fmt.Errorf("ginitool: bbox %q has min greater than max", s)
	}
	return b, nil
}

func (cfg *Cfg) timeOption(key string) (time.Time, error) {
	s := cfg.GetString(key)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := cast.ToTimeE(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("ginitool: invalid %s time %q: %v", key, s, err)
	}
	return t, nil
}

func (cfg *Cfg) queryOptions() (gini.QueryOptions, error) {
	var q gini.QueryOptions
	var err error
	if q.PhysicalElements, err = cfg.intSlice("element"); err != nil {
		return q, err
	}
	if q.Sectors, err = cfg.intSlice("sector"); err != nil {
		return q, err
	}
	if q.Entities, err = cfg.intSlice("entity"); err != nil {
		return q, err
	}
	if q.Since, err = cfg.timeOption("since"); err != nil {
		return q, err
	}
	if q.Until, err = cfg.timeOption("until"); err != nil {
		return q, err
	}
	return q, nil
}

func (cfg *Cfg) runIndex(w io.Writer, dir string) error {
	bounds, err := parseBBox(cfg.GetString("bbox"))
	if err != nil {
		return err
	}
	q, err := cfg.queryOptions()
	if err != nil {
		return err
	}

	opts := gini.DefaultLoadOptions()
	if n := cfg.GetInt("workers"); n > 0 {
		opts.Workers = n
	}
	opts.Logger = cfg.log
	opts.Progress = func(loaded, total int) {
		cfg.log.WithFields(logrus.Fields{"loaded": loaded, "total": total}).Trace("ginitool: indexing")
	}

	start := time.Now()
	idx, err := gini.BuildIndexFromDir(dir, gini.NewParser(), opts)
	if err != nil {
		return fmt.Errorf("ginitool: %w", err)
	}
	cfg.log.WithFields(logrus.Fields{
		"dir":      dir,
		"products": idx.Count(),
		"elapsed":  time.Since(start),
	}).Info("ginitool: built index")

	entries := idx.Query(bounds, q)
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d km\t%s\n",
			e.Time.Format(time.RFC3339), e.ElementName, gini.SectorName(e.Sector), e.Projection, e.Resolution, e.Path)
	}
	fmt.Fprintf(w, "%d of %d products match\n", len(entries), idx.Count())
	return nil
}
