package observability

import (
	"context"
	"testing"
	"time"
)

type testProcessingHooks struct {
	NoopProcessingHooks
	scenes int
}

func (h *testProcessingHooks) OnSceneComplete(_ context.Context, _, _, _ int, _ error) {
	h.scenes++
}

type testCacheHooks struct {
	NoopCacheHooks
	hits int
}

func (h *testCacheHooks) OnCacheHit(context.Context, string) { h.hits++ }

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopProcessingHooks{}
	p.OnProcessStart(ctx, 3)
	p.OnSceneComplete(ctx, 0, 5, 1, nil)
	p.OnProcessComplete(ctx, 3, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "visualization")
	c.OnCacheMiss(ctx, "visualization")
	c.OnCacheSet(ctx, "visualization", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Processing().(NoopProcessingHooks); !ok {
		t.Error("Processing() should return NoopProcessingHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	customProcessing := &testProcessingHooks{}
	SetProcessingHooks(customProcessing)
	if Processing() != customProcessing {
		t.Error("SetProcessingHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	Processing().OnSceneComplete(context.Background(), 0, 2, 0, nil)
	if customProcessing.scenes != 1 {
		t.Error("registered hooks should receive events")
	}

	Reset()
	if _, ok := Processing().(NoopProcessingHooks); !ok {
		t.Error("Reset() should restore NoopProcessingHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testProcessingHooks{}
	SetProcessingHooks(custom)
	SetProcessingHooks(nil)
	if Processing() != custom {
		t.Error("SetProcessingHooks(nil) should keep previous hooks")
	}

	SetCacheHooks(nil)
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("SetCacheHooks(nil) should keep noop default")
	}
}
