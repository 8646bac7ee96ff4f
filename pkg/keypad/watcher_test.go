package keypad

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInit_WatchesOverrides(t *testing.T) {
	dir := t.TempDir()
	overrides := filepath.Join(dir, "overrides.yaml")
	require.NoError(t, os.WriteFile(overrides, []byte("en:\n  decimal_digits: 1\n"), 0644))

	q := NewQueueDispatcher(16)
	options := DefaultOptions()
	options.Locale = "en"
	options.OverridesPath = overrides
	options.WatchFiles = true
	options.Dispatcher = q

	rt, err := Init(options)
	require.NoError(t, err)
	defer rt.Close()
	require.Equal(t, 1, rt.Profiles.Profile().DefaultDecimalDigits)

	require.NoError(t, os.WriteFile(overrides, []byte("en:\n  decimal_digits: 1\n  group_separator: \"'\"\n"), 0644))

	require.Eventually(t, func() bool {
		q.Drain()
		return rt.Profiles.Profile().GroupSeparator == "'"
	}, 3*time.Second, 10*time.Millisecond)
}

func TestProfileWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "overrides.json")

	holder := NewProfileHolder(usProfile())
	rebuilt := make(chan struct{}, 8)
	pw, err := NewProfileWatcher(holder, DispatcherFunc(func(fn func()) { fn() }), func() (LocaleProfile, error) {
		rebuilt <- struct{}{}
		return deProfile(), nil
	}, watched)
	require.NoError(t, err)
	defer pw.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0644))
	select {
	case <-rebuilt:
		t.Fatal("rebuilt for an unrelated file")
	case <-time.After(300 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(watched, []byte("{}"), 0644))
	select {
	case <-rebuilt:
	case <-time.After(3 * time.Second):
		t.Fatal("no rebuild after the watched file changed")
	}
	require.Eventually(t, func() bool {
		return holder.Profile().DecimalSeparator == ","
	}, time.Second, 10*time.Millisecond)
}
