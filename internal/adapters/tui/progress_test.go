package tui_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	dmprogrock "go.trai.ch/darkmagic/internal/adapters/telemetry/progrock"
	"go.trai.ch/darkmagic/internal/adapters/tui"
)

func TestProgress_NotInteractive(t *testing.T) {
	p := tui.NewProgress(dmprogrock.NewFeed())
	p.SetOutput(&bytes.Buffer{})
	assert.False(t, p.Interactive())
}

func TestProgress_DrawsUntilFeedCloses(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	feed := dmprogrock.NewFeed()
	recorder := dmprogrock.NewRecorder(feed)

	out := &bytes.Buffer{}
	p := tui.NewProgress(feed)
	p.SetOutput(out)

	wait := p.Start(context.Background())

	_, ok := recorder.Record(context.Background(), "IMG_0001.CR2")
	ok.Complete(nil)
	_, bad := recorder.Record(context.Background(), "notes.txt")
	bad.Complete(errors.New("no exif data"))
	require.NoError(t, recorder.Close())

	require.NoError(t, wait())
	assert.Contains(t, out.String(), "IMG_0001.CR2")
	assert.Contains(t, out.String(), "notes.txt")
	assert.Contains(t, out.String(), "2 files: 1 read, 0 cached, 1 failed")
}

func TestProgress_SameFileTwice(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	feed := dmprogrock.NewFeed()
	recorder := dmprogrock.NewRecorder(feed)

	out := &bytes.Buffer{}
	p := tui.NewProgress(feed)
	p.SetOutput(out)

	wait := p.Start(context.Background())

	_, first := recorder.Record(context.Background(), "/x/a.cr2")
	_, second := recorder.Record(context.Background(), "/x/a.cr2")
	first.Complete(nil)
	second.Complete(errors.New("boom"))
	require.NoError(t, recorder.Close())

	require.NoError(t, wait())
	assert.Contains(t, out.String(), "2 files: 1 read, 0 cached, 1 failed")
}

func TestProgress_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	p := tui.NewProgress(dmprogrock.NewFeed())
	p.SetOutput(&bytes.Buffer{})

	wait := p.Start(ctx)
	cancel()
	assert.NoError(t, wait())
}
