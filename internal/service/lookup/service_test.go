package lookup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/heartmarshall/wudao-dict/internal/domain"
	"github.com/heartmarshall/wudao-dict/internal/render"
)

//go:generate moq -out source_mock_test.go -pkg lookup . Source
//go:generate moq -out recorder_mock_test.go -pkg lookup . Recorder

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const testDoc = `{
	"word": "test",
	"pronunciation": {"uk": "[test]", "usa": "", "other": ""},
	"paraphrase": {"n.": ["测试"]},
	"sentence": [["This is a test.", "这是一个测试。"]]
}`

// dictSource serves documents from a map and reports not-found otherwise.
func dictSource(name string, docs map[string]string) *SourceMock {
	return &SourceMock{
		NameFunc: func() string { return name },
		FetchFunc: func(_ context.Context, word string, _ domain.Lang) ([]byte, error) {
			if doc, ok := docs[word]; ok {
				return []byte(doc), nil
			}
			return nil, fmt.Errorf("%s: %q: %w", name, word, domain.ErrNotFound)
		},
	}
}

func okRecorder() *RecorderMock {
	return &RecorderMock{RecordFunc: func(context.Context, domain.HistoryRecord) error { return nil }}
}

func TestService_Lookup_Success(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	src := dictSource("youdao", map[string]string{"test": testDoc})
	rec := okRecorder()
	svc := NewService(newTestLogger(), []Source{src}, WithRecorder(rec))

	res, err := svc.Lookup(ctx, "test", render.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Source != "youdao" {
		t.Errorf("Source = %q, want youdao", res.Source)
	}
	if res.Entry.Lang != domain.LangEnglish || res.Entry.Word() != "test" {
		t.Errorf("Entry = %+v", res.Entry)
	}
	want := []string{"test", "英 [test]", "测试", "", "例句", "1. [example] This is a test.  这是一个测试。"}
	if len(res.Blocks) != len(want) {
		t.Fatalf("len(Blocks) = %d, want %d", len(res.Blocks), len(want))
	}
	for i, b := range res.Blocks {
		if b.String() != want[i] {
			t.Errorf("Blocks[%d] = %q, want %q", i, b.String(), want[i])
		}
	}

	calls := rec.RecordCalls()
	if len(calls) != 1 {
		t.Fatalf("Record calls = %d, want 1", len(calls))
	}
	got := calls[0].Rec
	if got.Word != "test" || got.Lang != domain.LangEnglish || got.Source != "youdao" || got.LookedUpAt.IsZero() {
		t.Errorf("recorded %+v", got)
	}
}

func TestService_Lookup_Short(t *testing.T) {
	t.Parallel()

	svc := NewService(newTestLogger(), []Source{dictSource("local", map[string]string{"test": testDoc})})

	res, err := svc.Lookup(context.Background(), "test", render.Options{Short: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Blocks) != 3 {
		t.Errorf("short lookup returned %d blocks, want 3", len(res.Blocks))
	}
}

func TestService_Lookup_NormalizesQuery(t *testing.T) {
	t.Parallel()

	src := dictSource("local", map[string]string{"test": testDoc})
	svc := NewService(newTestLogger(), []Source{src})

	res, err := svc.Lookup(context.Background(), "  ＴＥＳＴ ", render.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Query != "  ＴＥＳＴ " {
		t.Errorf("Query = %q, want the original input", res.Query)
	}
	calls := src.FetchCalls()
	if len(calls) != 1 || calls[0].Word != "test" || calls[0].Lang != domain.LangEnglish {
		t.Errorf("Fetch calls = %+v", calls)
	}
}

func TestService_Lookup_Chinese(t *testing.T) {
	t.Parallel()

	src := dictSource("local", map[string]string{"猫": `{"word":"猫","pronunciation":"māo","paraphrase":["cat  ;  puss"]}`})
	svc := NewService(newTestLogger(), []Source{src})

	res, err := svc.Lookup(context.Background(), "猫", render.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Entry.Lang != domain.LangChinese {
		t.Errorf("Lang = %q, want zh", res.Entry.Lang)
	}
	if src.FetchCalls()[0].Lang != domain.LangChinese {
		t.Error("source should be asked for a Chinese entry")
	}
	if got := res.Blocks[2].Text(); got != "cat, puss" {
		t.Errorf("paraphrase block = %q, want %q", got, "cat, puss")
	}
}

func TestService_Lookup_FallsThroughOnNotFound(t *testing.T) {
	t.Parallel()

	local := dictSource("local", nil)
	online := dictSource("youdao", map[string]string{"test": testDoc})
	svc := NewService(newTestLogger(), []Source{local, online})

	res, err := svc.Lookup(context.Background(), "test", render.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != "youdao" {
		t.Errorf("Source = %q, want youdao", res.Source)
	}
	if len(local.FetchCalls()) != 1 || len(online.FetchCalls()) != 1 {
		t.Error("both sources should be asked once")
	}
}

func TestService_Lookup_FirstHitWins(t *testing.T) {
	t.Parallel()

	local := dictSource("local", map[string]string{"test": testDoc})
	online := dictSource("youdao", map[string]string{"test": testDoc})
	svc := NewService(newTestLogger(), []Source{local, online})

	if _, err := svc.Lookup(context.Background(), "test", render.Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(online.FetchCalls()) != 0 {
		t.Error("online source should not be asked after a local hit")
	}
}

func TestService_Lookup_Errors(t *testing.T) {
	t.Parallel()

	upstream := &SourceMock{
		NameFunc: func() string { return "youdao" },
		FetchFunc: func(context.Context, string, domain.Lang) ([]byte, error) {
			return nil, fmt.Errorf("youdao: unexpected status 503: %w", domain.ErrUpstream)
		},
	}

	tests := []struct {
		name    string
		sources []Source
		query   string
		want    error
	}{
		{name: "empty query", sources: []Source{dictSource("local", nil)}, query: "  ", want: domain.ErrValidation},
		{name: "not found anywhere", sources: []Source{dictSource("a", nil), dictSource("b", nil)}, query: "zzz", want: domain.ErrNotFound},
		{name: "no sources", sources: nil, query: "test", want: domain.ErrNotFound},
		{name: "upstream failure", sources: []Source{upstream, dictSource("b", map[string]string{"test": testDoc})}, query: "test", want: domain.ErrUpstream},
		{name: "document without word", sources: []Source{dictSource("a", map[string]string{"test": `{"paraphrase":{}}`})}, query: "test", want: domain.ErrInvariant},
		{name: "document not json", sources: []Source{dictSource("a", map[string]string{"test": `<html>`})}, query: "test", want: domain.ErrInvariant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := okRecorder()
			svc := NewService(newTestLogger(), tt.sources, WithRecorder(rec))

			_, err := svc.Lookup(context.Background(), tt.query, render.Options{})
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			if len(rec.RecordCalls()) != 0 {
				t.Error("failed lookups must not be recorded")
			}
		})
	}
}

func TestService_Lookup_RecorderFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	rec := &RecorderMock{RecordFunc: func(context.Context, domain.HistoryRecord) error {
		return errors.New("connection refused")
	}}
	svc := NewService(newTestLogger(), []Source{dictSource("local", map[string]string{"test": testDoc})}, WithRecorder(rec))

	if _, err := svc.Lookup(context.Background(), "test", render.Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.RecordCalls()) != 1 {
		t.Error("recorder should have been called")
	}
}

func TestService_Lookup_DuplicateRecordIsQuiet(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	rec := &RecorderMock{RecordFunc: func(context.Context, domain.HistoryRecord) error {
		return fmt.Errorf("history.Record: %w", domain.ErrAlreadyExists)
	}}
	svc := NewService(logger, []Source{dictSource("local", map[string]string{"test": testDoc})}, WithRecorder(rec))

	if _, err := svc.Lookup(context.Background(), "test", render.Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(logs.String(), "lookup already recorded") {
		t.Errorf("duplicate record not logged: %s", logs.String())
	}
	if strings.Contains(logs.String(), "level=WARN") {
		t.Errorf("duplicate record logged as a warning: %s", logs.String())
	}
}

func TestService_LookupMany_KeepsOrder(t *testing.T) {
	t.Parallel()

	docs := map[string]string{
		"a": `{"word":"a"}`,
		"b": `{"word":"b"}`,
		"c": `{"word":"c"}`,
	}
	// Earlier queries finish later.
	delays := map[string]time.Duration{"a": 30 * time.Millisecond, "b": 15 * time.Millisecond}
	src := &SourceMock{
		NameFunc: func() string { return "local" },
		FetchFunc: func(_ context.Context, word string, _ domain.Lang) ([]byte, error) {
			time.Sleep(delays[word])
			if doc, ok := docs[word]; ok {
				return []byte(doc), nil
			}
			return nil, domain.ErrNotFound
		},
	}
	svc := NewService(newTestLogger(), []Source{src}, WithMaxParallel(3))

	queries := []string{"a", "missing", "b", "", "c"}
	out, err := svc.LookupMany(context.Background(), queries, render.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != len(queries) {
		t.Fatalf("len(outcomes) = %d, want %d", len(out), len(queries))
	}

	for i, q := range queries {
		if out[i].Query != q {
			t.Errorf("outcomes[%d].Query = %q, want %q", i, out[i].Query, q)
		}
	}
	for _, i := range []int{0, 2, 4} {
		if out[i].Err != nil || out[i].Result == nil || out[i].Result.Entry.Word() != queries[i] {
			t.Errorf("outcomes[%d] = %+v, want word %q", i, out[i], queries[i])
		}
	}
	if !errors.Is(out[1].Err, domain.ErrNotFound) {
		t.Errorf("outcomes[1].Err = %v, want ErrNotFound", out[1].Err)
	}
	if !errors.Is(out[3].Err, domain.ErrValidation) {
		t.Errorf("outcomes[3].Err = %v, want ErrValidation", out[3].Err)
	}
}

func TestService_LookupMany_BoundsParallelism(t *testing.T) {
	t.Parallel()

	var inFlight, peak atomic.Int32
	src := &SourceMock{
		NameFunc: func() string { return "local" },
		FetchFunc: func(_ context.Context, word string, _ domain.Lang) ([]byte, error) {
			n := inFlight.Add(1)
			defer inFlight.Add(-1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			return []byte(`{"word":"` + word + `"}`), nil
		},
	}
	svc := NewService(newTestLogger(), []Source{src}, WithMaxParallel(2))

	words := []string{"a", "b", "c", "d", "e", "f"}
	out, err := svc.LookupMany(context.Background(), words, render.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != len(words) {
		t.Fatalf("len(outcomes) = %d", len(out))
	}
	if peak.Load() > 2 {
		t.Errorf("peak concurrency = %d, want <= 2", peak.Load())
	}
}

func TestService_LookupMany_UpstreamFailureAborts(t *testing.T) {
	t.Parallel()

	src := &SourceMock{
		NameFunc: func() string { return "youdao" },
		FetchFunc: func(ctx context.Context, word string, _ domain.Lang) ([]byte, error) {
			if word == "down" {
				return nil, fmt.Errorf("youdao: %w", domain.ErrUpstream)
			}
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	svc := NewService(newTestLogger(), []Source{src}, WithMaxParallel(4))

	_, err := svc.LookupMany(context.Background(), []string{"a", "down", "b"}, render.Options{})
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("error = %v, want ErrUpstream", err)
	}
}

func TestResult_Document(t *testing.T) {
	t.Parallel()

	svc := NewService(newTestLogger(), []Source{dictSource("local", map[string]string{"test": testDoc})})
	res, err := svc.Lookup(context.Background(), "TEST", render.Options{Short: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc := res.Document()
	if doc.Word != "test" || doc.Lang != domain.LangEnglish || len(doc.Blocks) != len(res.Blocks) {
		t.Errorf("Document() = %+v", doc)
	}
}
