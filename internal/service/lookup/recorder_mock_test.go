package lookup

import (
	"context"
	"sync"

	"github.com/heartmarshall/wudao-dict/internal/domain"
)

var _ Recorder = &RecorderMock{}

type RecorderMock struct {
	RecordFunc func(ctx context.Context, rec domain.HistoryRecord) error

	calls struct {
		Record []struct {
			Ctx context.Context
			Rec domain.HistoryRecord
		}
	}
	lockRecord sync.RWMutex
}

func (mock *RecorderMock) Record(ctx context.Context, rec domain.HistoryRecord) error {
	if mock.RecordFunc == nil {
		panic("RecorderMock.RecordFunc: method is nil but Recorder.Record was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Rec domain.HistoryRecord
	}{Ctx: ctx, Rec: rec}
	mock.lockRecord.Lock()
	mock.calls.Record = append(mock.calls.Record, callInfo)
	mock.lockRecord.Unlock()
	return mock.RecordFunc(ctx, rec)
}

func (mock *RecorderMock) RecordCalls() []struct {
	Ctx context.Context
	Rec domain.HistoryRecord
} {
	mock.lockRecord.RLock()
	calls := mock.calls.Record
	mock.lockRecord.RUnlock()
	return calls
}
