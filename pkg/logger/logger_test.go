package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func TestErrorIncludesContextFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Level: ParseLevel("debug"), Output: buf})

	ctx := context.Background()
	ctx = log.WithRequestID(ctx, "req-123")
	ctx = log.WithEnquiryCode(ctx, "ENQ-0042")

	log.Error(ctx, "boom", errors.New("boom"))

	if !bytes.Contains(buf.Bytes(), []byte("\"request_id\"")) {
		t.Fatalf("expected request_id to be preserved; entry=%s", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("\"enquiry_code\"")) {
		t.Fatalf("expected enquiry_code to be preserved; entry=%s", buf.String())
	}
}

func TestWithFieldsDoesNotMutateParentContext(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Level: ParseLevel("debug"), Output: buf})

	parent := log.WithField(context.Background(), "tier", "workload")
	_ = log.WithField(parent, "tier", "round-robin")

	log.Info(parent, "pick")
	if !bytes.Contains(buf.Bytes(), []byte("\"tier\":\"workload\"")) {
		t.Fatalf("parent context field changed; entry=%s", buf.String())
	}
}
