package lookup

import (
	"context"
	"sync"

	"github.com/heartmarshall/wudao-dict/internal/domain"
)

var _ Source = &SourceMock{}

type SourceMock struct {
	FetchFunc func(ctx context.Context, word string, lang domain.Lang) ([]byte, error)
	NameFunc  func() string

	calls struct {
		Fetch []struct {
			Ctx  context.Context
			Word string
			Lang domain.Lang
		}
		Name []struct{}
	}
	lockFetch sync.RWMutex
	lockName  sync.RWMutex
}

func (mock *SourceMock) Fetch(ctx context.Context, word string, lang domain.Lang) ([]byte, error) {
	if mock.FetchFunc == nil {
		panic("SourceMock.FetchFunc: method is nil but Source.Fetch was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Word string
		Lang domain.Lang
	}{Ctx: ctx, Word: word, Lang: lang}
	mock.lockFetch.Lock()
	mock.calls.Fetch = append(mock.calls.Fetch, callInfo)
	mock.lockFetch.Unlock()
	return mock.FetchFunc(ctx, word, lang)
}

func (mock *SourceMock) FetchCalls() []struct {
	Ctx  context.Context
	Word string
	Lang domain.Lang
} {
	mock.lockFetch.RLock()
	calls := mock.calls.Fetch
	mock.lockFetch.RUnlock()
	return calls
}

func (mock *SourceMock) Name() string {
	if mock.NameFunc == nil {
		panic("SourceMock.NameFunc: method is nil but Source.Name was just called")
	}
	mock.lockName.Lock()
	mock.calls.Name = append(mock.calls.Name, struct{}{})
	mock.lockName.Unlock()
	return mock.NameFunc()
}

func (mock *SourceMock) NameCalls() []struct{} {
	mock.lockName.RLock()
	calls := mock.calls.Name
	mock.lockName.RUnlock()
	return calls
}
