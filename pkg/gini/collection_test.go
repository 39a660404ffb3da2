package gini

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductPriority(t *testing.T) {
	coarse := mercatorFile(20, -130, 50, -60)
	coarse.resolution = 8
	coarse.when = t1300

	fineOld := mercatorFile(30, -110, 45, -80)
	fineOld.resolution = 1
	fineOld.when = t1200

	fineNew := mercatorFile(30, -110, 45, -80)
	fineNew.resolution = 1
	fineNew.when = t1300

	elsewhere := mercatorFile(0, 10, 10, 20)

	set := &ProductSet{Products: []*Product{
		parseBytes(t, coarse.bytes()),
		parseBytes(t, fineOld.bytes()),
		parseBytes(t, fineNew.bytes()),
		parseBytes(t, elsewhere.bytes()),
	}}

	covering := set.ProductsCoveringPoint(35, -95)
	assert.Len(t, covering, 3)

	ranked := set.ProductPriority(35, -95)
	require.Len(t, ranked, 3)
	assert.Same(t, set.Products[2], ranked[0])
	assert.Same(t, set.Products[1], ranked[1])
	assert.Same(t, set.Products[0], ranked[2])

	// Only the coarse product reaches this far west.
	ranked = set.ProductPriority(25, -125)
	require.Len(t, ranked, 1)
	assert.Same(t, set.Products[0], ranked[0])

	assert.Empty(t, set.ProductPriority(-60, 0))
}

func TestProductPriorityCalibrated(t *testing.T) {
	raw := mercatorFile(20, -130, 50, -60)
	cal := mercatorFile(20, -130, 50, -60)
	cal.levels = [][4]int32{{0, 255, 0, 2550000}}

	set := &ProductSet{Products: []*Product{
		parseBytes(t, raw.bytes()),
		parseBytes(t, cal.bytes()),
	}}
	ranked := set.ProductPriority(35, -95)
	require.Len(t, ranked, 2)
	assert.NotNil(t, ranked[0].Calibration())
}

func TestCompositeBounds(t *testing.T) {
	unknown := mercatorFile(20, -130, 50, -60)
	unknown.proj = 7
	set := &ProductSet{Products: []*Product{
		parseBytes(t, unknown.bytes()),
		parseBytes(t, mercatorFile(20, -130, 50, -60).bytes()),
		parseBytes(t, mercatorFile(0, 10, 10, 20).bytes()),
	}}

	b := set.CompositeBounds()
	assert.InDelta(t, -130, b.MinLon, 1e-6)
	assert.InDelta(t, 20, b.MaxLon, 1e-6)
	assert.InDelta(t, 0, b.MinLat, 1e-6)
	assert.InDelta(t, 50, b.MaxLat, 1e-6)

	assert.True(t, (&ProductSet{}).CompositeBounds().IsEmpty())
}

// writeNumbered writes n products named p00.gini, p01.gini, ... whose
// acquisition minute is their index. The file at index bad is corrupt.
func writeNumbered(t *testing.T, n, bad int) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, n)
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("p%02d.gini", i)
		if i == bad {
			paths[i] = filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(paths[i], []byte("corrupt"), 0o644))
			continue
		}
		tf := mercatorFile(20, -130, 50, -60)
		tf.when = time.Date(2004, 3, 1, 12, i, 0, 0, time.UTC)
		paths[i] = tf.write(t, dir, name)
	}
	return paths
}

func TestLoadProductsParallel(t *testing.T) {
	paths := writeNumbered(t, 12, 5)
	logger, hook := test.NewNullLogger()

	var mu sync.Mutex
	var calls, last int
	opts := LoadOptions{
		Parallel:   true,
		Workers:    4,
		SkipErrors: true,
		Progress: func(loaded, total int) {
			mu.Lock()
			defer mu.Unlock()
			calls++
			last = loaded
			assert.Equal(t, 12, total)
		},
		Logger: logger,
	}

	set, errs := LoadProductsParallel(paths, NewParser(), opts)
	require.NotNil(t, set)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "p05.gini")
	require.Len(t, set.Products, 11)

	// Input order is preserved.
	for i, p := range set.Products {
		want := i
		if i >= 5 {
			want = i + 1
		}
		assert.Equal(t, want, p.Time().Minute(), "product %d", i)
	}

	assert.Equal(t, 12, calls)
	assert.Equal(t, 12, last)

	warned := 0
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warned++
			assert.Equal(t, paths[5], e.Data["path"])
		}
	}
	assert.Equal(t, 1, warned)
}

func TestLoadProductsParallelStopOnError(t *testing.T) {
	paths := writeNumbered(t, 6, 2)
	opts := DefaultLoadOptions()
	opts.SkipErrors = false

	set, errs := LoadProductsParallel(paths, NewParser(), opts)
	assert.Nil(t, set)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "p02.gini")
}

func TestLoadProductsSerial(t *testing.T) {
	paths := writeNumbered(t, 5, 3)

	var progress []int
	opts := LoadOptions{
		Parallel:   false,
		SkipErrors: true,
		Progress:   func(loaded, total int) { progress = append(progress, loaded) },
	}
	set, errs := LoadProductsParallel(paths, NewParser(), opts)
	require.Len(t, errs, 1)
	require.Len(t, set.Products, 4)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, progress)

	opts.SkipErrors = false
	set, errs = LoadProductsParallel(paths, NewParser(), opts)
	assert.Nil(t, set)
	assert.Len(t, errs, 1)
}

func TestLoadProductsParallelEmpty(t *testing.T) {
	set, errs := LoadProductsParallel(nil, NewParser(), DefaultLoadOptions())
	assert.Empty(t, errs)
	assert.Empty(t, set.Products)
}

func TestLoadProducts(t *testing.T) {
	paths := writeNumbered(t, 4, 2)

	_, err := LoadProducts(paths, NewParser())
	assert.Error(t, err)

	set, err := LoadProducts(append(paths[:2:2], paths[3]), NewParser())
	require.NoError(t, err)
	assert.Len(t, set.Products, 3)

	set, errs := LoadProductsWithErrors(paths, NewParser())
	assert.Len(t, errs, 1)
	assert.Len(t, set.Products, 3)
	assert.NoError(t, set.Close())
}
