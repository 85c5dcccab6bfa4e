// internal/sse/decoder_test.go
package sse

import (
	"reflect"
	"testing"
)

func TestFeedWholeFrames(t *testing.T) {
	d := NewDecoder()

	got := d.Feed("data: {\"type\":\"status\"}\n\ndata: {\"type\":\"done\"}\n\n")
	want := []string{`{"type":"status"}`, `{"type":"done"}`}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Feed() = %v, want %v", got, want)
	}
}

func TestFeedSplitAcrossChunks(t *testing.T) {
	d := NewDecoder()

	chunks := []string{
		"da", "ta: {\"type\":", "\"bull_token\",\"token\":\"Hi\"}", "\n", "\n",
		"data: {\"type\":\"done\"}\n", "\n",
	}

	var got []string
	for _, c := range chunks {
		got = append(got, d.Feed(c)...)
	}

	want := []string{`{"type":"bull_token","token":"Hi"}`, `{"type":"done"}`}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("accumulated frames = %v, want %v", got, want)
	}
}

func TestFeedPreservesOrder(t *testing.T) {
	d := NewDecoder()

	var input string
	for _, p := range []string{"a", "b", "c", "d", "e"} {
		input += "data: " + p + "\n\n"
	}

	got := d.Feed(input)
	want := []string{"a", "b", "c", "d", "e"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Feed() = %v, want %v", got, want)
	}
}

func TestFeedDropsNonDataFrames(t *testing.T) {
	d := NewDecoder()

	got := d.Feed("data: one\n\n: keepalive comment\n\nevent: ping\n\ndata: two\n\n")
	want := []string{"one", "two"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Feed() = %v, want %v", got, want)
	}
}

func TestFeedCRLFDelimiters(t *testing.T) {
	d := NewDecoder()

	got := d.Feed("data: one\r\n\r\ndata: two\r\n\r\n")
	want := []string{"one", "two"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Feed() = %v, want %v", got, want)
	}
}

func TestEndDiscardsPartialFrame(t *testing.T) {
	d := NewDecoder()

	if got := d.Feed("data: complete\n\ndata: {\"type\":\"trunc"); len(got) != 1 {
		t.Fatalf("expected 1 frame before End, got %d", len(got))
	}

	d.End()

	if got := d.Feed("ated\"}\n\n"); got != nil {
		t.Errorf("Feed after End returned %v, want nil", got)
	}
}

func TestFeedEmptyPayloadDropped(t *testing.T) {
	d := NewDecoder()

	got := d.Feed("data: \n\ndata: real\n\n")
	want := []string{"real"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Feed() = %v, want %v", got, want)
	}
}
