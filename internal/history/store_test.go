package history

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"codeberg.org/snonux/persianpro/internal/storage"
	"codeberg.org/snonux/persianpro/internal/testutil"
)

// clockAt returns a clock that yields the given Unix millisecond values in order
func clockAt(ms ...int64) func() time.Time {
	i := 0
	return func() time.Time {
		t := time.UnixMilli(ms[i])
		if i < len(ms)-1 {
			i++
		}
		return t
	}
}

func idSequence(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func candidate(src, tgt string) Candidate {
	return Candidate{
		SourceText:     src,
		TranslatedText: tgt,
		SourceLang:     "French",
		TargetLang:     "Persian",
	}
}

func TestStore_AddPrependsNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewStore(storage.NewMemory(), zap.NewNop(),
		WithClock(clockAt(100, 200, 300)),
		WithIDGenerator(idSequence("e")))

	a, err := store.Add(ctx, candidate("chat", "gorbe"))
	require.NoError(t, err)
	b, err := store.Add(ctx, candidate("chien", "sag"))
	require.NoError(t, err)
	c, err := store.Add(ctx, candidate("pain", "nan"))
	require.NoError(t, err)

	assert.Equal(t, int64(100), a.Timestamp)
	assert.Equal(t, int64(200), b.Timestamp)
	assert.Equal(t, int64(300), c.Timestamp)

	list := store.List()
	require.Len(t, list, 3)
	assert.Equal(t, []string{c.ID, b.ID, a.ID}, []string{list[0].ID, list[1].ID, list[2].ID})
}

func TestStore_UniqueIDsAndOrder(t *testing.T) {
	ctx := context.Background()
	store := NewStore(storage.NewMemory(), nil)

	for i := 0; i < 50; i++ {
		_, err := store.Add(ctx, candidate(fmt.Sprintf("mot %d", i), fmt.Sprintf("kalame %d", i)))
		require.NoError(t, err)
	}

	list := store.List()
	require.Len(t, list, 50)

	seen := make(map[string]bool)
	for i, e := range list {
		assert.False(t, seen[e.ID], "duplicate id %s", e.ID)
		seen[e.ID] = true
		if i > 0 {
			assert.LessOrEqual(t, e.Timestamp, list[i-1].Timestamp)
		}
	}
	assert.Equal(t, "mot 49", list[0].SourceText)
}

func TestStore_TimestampNeverDecreases(t *testing.T) {
	ctx := context.Background()
	store := NewStore(storage.NewMemory(), nil, WithClock(clockAt(500, 400)))

	first, err := store.Add(ctx, candidate("un", "yek"))
	require.NoError(t, err)
	second, err := store.Add(ctx, candidate("deux", "do"))
	require.NoError(t, err)

	assert.Equal(t, first.Timestamp, second.Timestamp)
}

func TestStore_AddRejectsInvalidCandidate(t *testing.T) {
	tests := []struct {
		name      string
		candidate Candidate
	}{
		{"empty source", candidate("", "gorbe")},
		{"blank source", candidate("   ", "gorbe")},
		{"empty translation", candidate("chat", "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore(storage.NewMemory(), nil)
			_, err := store.Add(context.Background(), tt.candidate)
			assert.ErrorIs(t, err, ErrInvalidCandidate)
			assert.Zero(t, store.Len())
		})
	}
}

func TestStore_AddAcceptsMissingLanguageLabels(t *testing.T) {
	store := NewStore(storage.NewMemory(), nil)
	entry, err := store.Add(context.Background(), Candidate{SourceText: "chat", TranslatedText: "gorbe"})
	require.NoError(t, err)
	assert.Empty(t, entry.SourceLang)
	assert.Equal(t, 1, store.Len())
}

func TestStore_AddNormalizesLineEndings(t *testing.T) {
	store := NewStore(storage.NewMemory(), nil)
	c := candidate("deux\r\nlignes", "do\rkhat")
	c.Definition = "line1\r\nline2"

	entry, err := store.Add(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, "deux\nlignes", entry.SourceText)
	assert.Equal(t, "do\nkhat", entry.TranslatedText)
	assert.Equal(t, "line1\nline2", entry.Definition)
}

func TestStore_ListIsNeverNil(t *testing.T) {
	ctx := context.Background()

	empty := NewStore(storage.NewMemory(), nil)
	assert.NotNil(t, empty.List())

	kv := storage.NewMemory()
	require.NoError(t, kv.Set(ctx, storage.KeyHistory, "null"))
	fromNull := NewStore(kv, nil)
	require.NoError(t, fromNull.Load(ctx))
	assert.NotNil(t, fromNull.List())

	cleared := NewStore(storage.NewMemory(), nil)
	_, err := cleared.Add(ctx, candidate("chat", "gorbe"))
	require.NoError(t, err)
	ok, err := cleared.Clear(ctx, ConfirmFunc(func(string) bool { return true }))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotNil(t, cleared.List())
	assert.Empty(t, cleared.List())
}

func TestStore_AddTrimsText(t *testing.T) {
	store := NewStore(storage.NewMemory(), nil)
	c := candidate("  chat ", " gorbe\n")
	c.Definition = " a small cat "

	entry, err := store.Add(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, "chat", entry.SourceText)
	assert.Equal(t, "gorbe", entry.TranslatedText)
	assert.Equal(t, "a small cat", entry.Definition)
}

func TestStore_PersistsAndReloads(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()

	store := NewStore(kv, nil, WithClock(clockAt(100, 200)))
	_, err := store.Add(ctx, candidate("chat", "gorbe"))
	require.NoError(t, err)
	_, err = store.Add(ctx, candidate("chien", "sag"))
	require.NoError(t, err)

	reloaded := NewStore(kv, nil)
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, store.List(), reloaded.List())
}

func TestStore_LoadScenario(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(ctx, storage.KeyHistory,
		`[{"id":"B","sourceText":"chien","translatedText":"sag","sourceLang":"French","targetLang":"Persian","timestamp":200},`+
			`{"id":"A","sourceText":"chat","translatedText":"gorbe","sourceLang":"French","targetLang":"Persian","timestamp":100}]`))

	store := NewStore(kv, nil, WithClock(clockAt(300)), WithIDGenerator(func() string { return "C" }))
	require.NoError(t, store.Load(ctx))

	_, err := store.Add(ctx, candidate("pain", "nan"))
	require.NoError(t, err)

	var ids []string
	for _, e := range store.List() {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"C", "B", "A"}, ids)
}

func TestStore_LoadFailureStartsEmpty(t *testing.T) {
	tests := []struct {
		name string
		kv   storage.KV
	}{
		{"storage unavailable", &testutil.FailingKV{GetErr: errors.New("storage unavailable")}},
		{"corrupt document", func() storage.KV {
			kv := storage.NewMemory()
			_ = kv.Set(context.Background(), storage.KeyHistory, "{not json")
			return kv
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore(tt.kv, nil)
			assert.Error(t, store.Load(context.Background()))
			assert.Empty(t, store.List())
			assert.NotNil(t, store.List())
		})
	}
}

func TestStore_LoadMissingKey(t *testing.T) {
	store := NewStore(storage.NewMemory(), nil)
	assert.NoError(t, store.Load(context.Background()))
	assert.Zero(t, store.Len())
}

func TestStore_WriteFailureKeepsMemoryState(t *testing.T) {
	kv := &testutil.FailingKV{SetErr: &storage.StorageError{Op: "set", Key: storage.KeyHistory, Err: errors.New("quota exceeded")}}
	store := NewStore(kv, nil)

	entry, err := store.Add(context.Background(), candidate("chat", "gorbe"))

	var storageErr *storage.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "chat", entry.SourceText)
	require.Equal(t, 1, store.Len())
	assert.Equal(t, entry, store.List()[0])
}

func TestStore_Clear(t *testing.T) {
	tests := []struct {
		name        string
		answer      bool
		wantCleared bool
		wantLen     int
	}{
		{"confirmed", true, true, 0},
		{"declined", false, false, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			kv := storage.NewMemory()
			store := NewStore(kv, nil)
			_, err := store.Add(ctx, candidate("chat", "gorbe"))
			require.NoError(t, err)
			_, err = store.Add(ctx, candidate("chien", "sag"))
			require.NoError(t, err)
			before := store.List()

			var asked string
			cleared, err := store.Clear(ctx, ConfirmFunc(func(prompt string) bool {
				asked = prompt
				return tt.answer
			}))
			require.NoError(t, err)

			assert.Equal(t, ClearPrompt, asked)
			assert.Equal(t, tt.wantCleared, cleared)
			assert.Equal(t, tt.wantLen, store.Len())
			if !tt.wantCleared {
				assert.Equal(t, before, store.List())
			}

			reloaded := NewStore(kv, nil)
			require.NoError(t, reloaded.Load(ctx))
			assert.Equal(t, tt.wantLen, reloaded.Len())
		})
	}
}

func TestStore_ClearWithoutConfirmer(t *testing.T) {
	store := NewStore(storage.NewMemory(), nil)
	_, err := store.Add(context.Background(), candidate("chat", "gorbe"))
	require.NoError(t, err)

	cleared, err := store.Clear(context.Background(), nil)
	assert.NoError(t, err)
	assert.False(t, cleared)
	assert.Equal(t, 1, store.Len())
}

func TestStore_ListIsSnapshot(t *testing.T) {
	store := NewStore(storage.NewMemory(), nil)
	_, err := store.Add(context.Background(), candidate("chat", "gorbe"))
	require.NoError(t, err)

	list := store.List()
	list[0].SourceText = "modified"

	assert.Equal(t, "chat", store.List()[0].SourceText)
}
