package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestEngineError_IsByCode(t *testing.T) {
	cause := stderrors.New("unexpected EOF")
	err := fmt.Errorf("redact: %w", ImageLoadError("/tmp/x.png", cause))

	if !stderrors.Is(err, New(ErrImageLoad, "")) {
		t.Error("errors.Is should match by code")
	}
	if stderrors.Is(err, New(ErrImageEncode, "")) {
		t.Error("different code must not match")
	}
	if !stderrors.Is(err, cause) {
		t.Error("cause should be reachable through Unwrap")
	}
	if GetErrorCode(err) != ErrImageLoad || !HasCode(err, ErrImageLoad) {
		t.Errorf("GetErrorCode = %d", GetErrorCode(err))
	}
}

func TestEngineError_Error(t *testing.T) {
	err := ProcessorError("pdf", "/tmp/a.pdf", "read text", stderrors.New("bad xref"))
	msg := err.Error()
	for _, want := range []string{"[ERROR]", "[pdf]", "read text failed", "/tmp/a.pdf", "bad xref"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}
	if !strings.Contains(FileNotFoundError("/x").UserMessage(), "hint:") {
		t.Error("UserMessage should carry a hint for missing files")
	}
}

func TestWrapError(t *testing.T) {
	if WrapError(nil, ErrUnknown, "x") != nil {
		t.Error("nil should stay nil")
	}
	wrapped := WrapError(stderrors.New("boom"), ErrEngineFailed, "process")
	if wrapped.Code != ErrEngineFailed || wrapped.Cause == nil {
		t.Errorf("wrapped = %+v", wrapped)
	}
	again := WrapError(wrapped, ErrUnknown, "outer")
	if again.Code != ErrEngineFailed || !strings.HasPrefix(again.Message, "outer: ") {
		t.Errorf("rewrap = %+v", again)
	}
}

func TestIsRecoverable(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{OCRError("/a.png", nil), true},
		{TimeoutError("/a.png", 0), true},
		{ImageLoadError("/a.png", nil), false},
		{New(ErrOCRFailed, "x").WithLevel(LevelFatal), false},
		{stderrors.New("plain"), false},
	}
	for _, tt := range tests {
		if got := IsRecoverable(tt.err); got != tt.want {
			t.Errorf("IsRecoverable(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestSafeExecute(t *testing.T) {
	err := SafeExecute(func() error {
		panic("kaboom")
	})
	if GetErrorCode(err) != ErrInternal {
		t.Fatalf("err = %v", err)
	}
	if !AsEngineError(err).IsFatal() {
		t.Error("recovered panic should be fatal")
	}

	v, err := SafeExecuteWithResult(func() (int, error) { return 7, nil })
	if v != 7 || err != nil {
		t.Errorf("SafeExecuteWithResult = %d, %v", v, err)
	}
}

func TestRetryWithResult(t *testing.T) {
	calls := 0
	v, err := RetryWithResult(func() (string, error) {
		calls++
		if calls < 2 {
			return "", OCRError("/a.png", stderrors.New("busy"))
		}
		return "ok", nil
	}, &RetryConfig{MaxAttempts: 3, ShouldRetry: IsRecoverable})
	if err != nil || v != "ok" || calls != 2 {
		t.Errorf("v=%q err=%v calls=%d", v, err, calls)
	}

	calls = 0
	_, err = RetryWithResult(func() (string, error) {
		calls++
		return "", ImageLoadError("/a.png", nil)
	}, nil)
	if calls != 1 || GetErrorCode(err) != ErrImageLoad {
		t.Errorf("non-recoverable error retried: calls=%d err=%v", calls, err)
	}
}

func TestErrorCollection(t *testing.T) {
	c := NewErrorCollection()
	c.Add(nil)
	c.Add(NoContentError("/a.txt"))
	c.Add(stderrors.New("plain"))
	if !c.HasErrors() || len(c.Errors()) != 1 || len(c.Warnings()) != 1 {
		t.Errorf("summary = %s", c.Summary())
	}
	if !c.Warnings()[0].IsWarning() || c.Errors()[0].IsWarning() {
		t.Error("warning level not preserved")
	}
}

func TestEngineError_Extra(t *testing.T) {
	e := FileTooLargeError("/big.png", 300, 100)
	if e.Extra["size"] != "300" || e.Extra["max_size"] != "100" {
		t.Errorf("extra = %v", e.Extra)
	}

	err := SafeExecute(func() error { panic("boom") })
	ee := AsEngineError(err)
	if ee.Code != ErrInternal || ee.Extra["stack"] == "" {
		t.Errorf("panic error = %+v", ee)
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LoggerOptions{Level: "info", Format: "json", Output: &buf})
	l.Debug("hidden")
	l.Info("classified", "doc_type", "PAN Card")
	l.SetMinLevel(LevelError)
	l.Log(NoContentError("/a.txt"))
	l.Log(ImageLoadError("/b.png", stderrors.New("bad header")))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug message should be filtered")
	}
	if !strings.Contains(out, `"doc_type":"PAN Card"`) {
		t.Errorf("missing attribute in %s", out)
	}
	if strings.Contains(out, "/a.txt") {
		t.Error("warning below min level should be dropped")
	}
	if !strings.Contains(out, `"code":5002`) || !strings.Contains(out, "bad header") {
		t.Errorf("engine error not logged: %s", out)
	}

	child := l.With("request_id", "r1")
	child.Warning("slow")
	if !strings.Contains(buf.String(), `"request_id":"r1"`) {
		t.Error("With attributes missing")
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]string{"debug": "DEBUG", "WARNING": "WARN", "error": "ERROR", "": "INFO"} {
		if got := ParseLevel(in).String(); got != want {
			t.Errorf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
