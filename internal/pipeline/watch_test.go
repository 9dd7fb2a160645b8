package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type outcome struct {
	res *Result
	err error
}

func TestWatch_RerunsOnChange(t *testing.T) {
	f := newFixture(t, map[string]string{"a.php": "<?php\nfunction wp_one() {}\n"}, "")

	p, err := New(Options{Config: f.cfg, Now: fixedNow})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())

	results := make(chan outcome, 8)
	done := make(chan error, 1)

	go func() {
		done <- p.Watch(ctx, 20*time.Millisecond, func(res *Result, err error) {
			results <- outcome{res, err}
		})
	}()

	next := func() outcome {
		t.Helper()

		select {
		case o := <-results:
			return o
		case <-time.After(5 * time.Second):
			t.Fatal("no pass reported")
			return outcome{}
		}
	}

	first := next()
	require.NoError(t, first.err)
	assert.Equal(t, 1, first.res.Functions)

	f.write("sub/b.php", "<?php\nfunction wp_two() {}\n")

	// The first pass rewrote the mapping file, which may itself trigger a
	// pass; wait for one that sees the new file.
	for {
		o := next()
		require.NoError(t, o.err)

		if o.res.Functions == 2 {
			break
		}
	}

	assert.Contains(t, f.output("bindings.php"), "function wp_two(")

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestRelevant(t *testing.T) {
	f := newFixture(t, nil, "")
	f.cfg.Exclude = []string{"vendor/"}

	p, err := New(Options{Config: f.cfg})
	require.NoError(t, err)

	src := f.cfg.Source
	tests := []struct {
		path string
		want bool
	}{
		{src + "/a.php", true},
		{src + "/lib/B.PHP", true},
		{src + "/a.txt", false},
		{src + "/vendor/x.php", false},
		{f.cfg.Output + "/app/Misc.php", false},
		{f.cfg.Mapping, true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, p.relevant(fsEvent(tt.path)))
		})
	}
}

func fsEvent(path string) fsnotify.Event {
	return fsnotify.Event{Name: path, Op: fsnotify.Write}
}
