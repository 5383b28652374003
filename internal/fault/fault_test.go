package fault

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// recordingTracker запоминает все переданные ему ошибки.
type recordingTracker struct {
	mu     sync.Mutex
	errs   []error
	notify chan struct{}
}

func newRecordingTracker() *recordingTracker {
	return &recordingTracker{notify: make(chan struct{}, 16)}
}

func (r *recordingTracker) Track(err error) {
	r.mu.Lock()
	r.errs = append(r.errs, err)
	r.mu.Unlock()
	r.notify <- struct{}{}
}

func (r *recordingTracker) tracked() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error(nil), r.errs...)
}

// syncBuffer - bytes.Buffer, безопасный для записи из горутин.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// installForTest сбрасывает глобальное состояние и регистрирует обработчик заново.
func installForTest(t *testing.T) (*syncBuffer, *recordingTracker) {
	t.Helper()
	mu.Lock()
	installOnce = sync.Once{}
	current = nil
	mu.Unlock()

	buf := &syncBuffer{}
	tracker := newRecordingTracker()
	Install(log.New(buf, "", 0), tracker)
	return buf, tracker
}

func TestInstall_OnlyFirstCallWins(t *testing.T) {
	buf, tracker := installForTest(t)

	var other bytes.Buffer
	Install(log.New(&other, "", 0), NopTracker{})

	Report(errors.New("first handler"))
	assert.Contains(t, buf.String(), "Global error caught: first handler")
	assert.Empty(t, other.String())
	assert.Len(t, tracker.tracked(), 1)
}

func TestReport_NilIsIgnored(t *testing.T) {
	buf, tracker := installForTest(t)
	Report(nil)
	assert.Nil(t, ReportPanic(nil))
	assert.Empty(t, buf.String())
	assert.Empty(t, tracker.tracked())
}

func TestReportPanic_WrapsValue(t *testing.T) {
	_, tracker := installForTest(t)

	cause := errors.New("root cause")
	err := ReportPanic(cause)

	var pe *PanicError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, cause, pe.Value)
	assert.NotEmpty(t, pe.Stack)
	assert.ErrorIs(t, err, cause)
	assert.Len(t, tracker.tracked(), 1)

	err = ReportPanic("just a string")
	assert.EqualError(t, err, "panic: just a string")
	assert.Nil(t, errors.Unwrap(err))
}

// TestGo_PanicDoesNotCrash: паника в горутине попадает в обработчик процесса.
func TestGo_PanicDoesNotCrash(t *testing.T) {
	buf, tracker := installForTest(t)

	Go(func() {
		var notARealFunction func()
		notARealFunction()
	})

	select {
	case <-tracker.notify:
	case <-time.After(2 * time.Second):
		t.Fatal("обработчик процесса не получил панику из горутины")
	}
	assert.Contains(t, buf.String(), "Global error caught: panic: runtime error")
}

func TestGo_NoPanicNoReport(t *testing.T) {
	_, tracker := installForTest(t)
	done := make(chan struct{})
	Go(func() { close(done) })
	<-done
	// Отчет в рамках Go отправляется до выхода из горутины; без паники его нет.
	time.Sleep(10 * time.Millisecond)
	assert.Empty(t, tracker.tracked())
}

// TestMiddleware_RecoversPanic: паника в обработчике превращается в 500 с общим сообщением.
func TestMiddleware_RecoversPanic(t *testing.T) {
	buf, tracker := installForTest(t)

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("handler exploded")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"An unexpected error occurred."}`, rr.Body.String())
	assert.Contains(t, buf.String(), "Global error caught: panic: handler exploded")
	assert.Len(t, tracker.tracked(), 1)
}

func TestMiddleware_PassesThrough(t *testing.T) {
	_, tracker := installForTest(t)

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.Empty(t, tracker.tracked())
}

func TestMiddleware_RepanicsOnAbortHandler(t *testing.T) {
	_, tracker := installForTest(t)

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Empty(t, tracker.tracked())
}

func TestUnaryServerInterceptor(t *testing.T) {
	buf, _ := installForTest(t)
	interceptor := UnaryServerInterceptor()
	info := &grpc.UnaryServerInfo{FullMethod: "/calculator.v1.CalculatorService/Evaluate"}

	resp, err := interceptor(context.Background(), "req", info, func(ctx context.Context, req any) (any, error) {
		panic("rpc exploded")
	})
	assert.Nil(t, resp)
	assert.Equal(t, codes.Internal, status.Code(err))
	assert.Equal(t, "An unexpected error occurred.", status.Convert(err).Message())
	assert.Contains(t, buf.String(), "rpc exploded")

	resp, err = interceptor(context.Background(), "req", info, func(ctx context.Context, req any) (any, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
}
