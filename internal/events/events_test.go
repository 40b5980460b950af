package events

import (
	"context"
	"testing"
	"time"
)

func TestEmitReachesRegisteredHandler(t *testing.T) {
	received := make(chan DataChangeEvent, 1)
	OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		received <- e
	})

	EmitDataChanged(context.Background(), DataChangeEvent{
		CollectionName: "kensaDB",
		Operation:      OpUpdate,
	})

	select {
	case e := <-received:
		if e.CollectionName != "kensaDB" || e.Operation != OpUpdate {
			t.Errorf("event = %+v, want kensaDB/update", e)
		}
	case <-time.After(time.Second):
		t.Fatal("handler was not invoked")
	}
}

func TestPanickingHandlerDoesNotBlockOthers(t *testing.T) {
	received := make(chan struct{}, 1)
	OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		panic("broken handler")
	})
	OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		received <- struct{}{}
	})

	EmitDataChanged(context.Background(), DataChangeEvent{
		CollectionName: "pressDB",
		Operation:      OpDelete,
	})

	select {
	case <-received:
	case <-time.After(time.Second):
		t.Fatal("second handler was not invoked")
	}
}
