package rnacompete

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"io"
	"io/ioutil"
	"strings"
	"testing"
)

type closeCounter struct {
	io.Reader
	closed int
}

func (c *closeCounter) Close() error {
	c.closed++
	return nil
}

func TestMaybeDecompressGzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte("RBP\tvalue\n")); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	dt, err := DetectDataType(bufio.NewReader(bytes.NewReader(buf.Bytes())))
	if err != nil {
		t.Fatal(err)
	}
	if dt != DataTypeGzip {
		t.Fatalf("Expected gzip, detected %s", dt)
	}

	src := &closeCounter{Reader: &buf}
	rc, err := MaybeDecompress(src)
	if err != nil {
		t.Fatal(err)
	}

	body, err := ioutil.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != "RBP\tvalue\n" {
		t.Errorf("Unexpected body %q", body)
	}

	if err := rc.Close(); err != nil || src.closed != 1 {
		t.Errorf("Expected the source to be closed once, got %d (%v)", src.closed, err)
	}
}

func TestMaybeDecompressPlain(t *testing.T) {
	for _, input := range []string{"Probe_ID\tRNCMPT00001\n", "x", ""} {
		rc, err := MaybeDecompress(&closeCounter{Reader: strings.NewReader(input)})
		if err != nil {
			t.Fatalf("%q: %v", input, err)
		}

		body, err := ioutil.ReadAll(rc)
		if err != nil {
			t.Fatal(err)
		}
		if string(body) != input {
			t.Errorf("Expected %q unchanged, got %q", input, body)
		}
	}
}
