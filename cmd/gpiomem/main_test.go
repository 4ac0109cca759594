package main

import (
	"reflect"
	"testing"

	"github.com/euikook/gpiomem/regions"
)

func TestParseProt(t *testing.T) {
	tests := []struct {
		in      string
		want    regions.Prot
		wantErr bool
	}{
		{"r", regions.R, false},
		{"rw", regions.R | regions.W, false},
		{"wr", regions.R | regions.W, false},
		{"rwx", regions.R | regions.W | regions.X, false},
		{"", 0, false},
		{"q", 0, true},
		{"rq", 0, true},
		{"RW", 0, true},
	}
	for _, tc := range tests {
		got, err := parseProt(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseProt(%q) = %v, want an error", tc.in, got)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("parseProt(%q) = %v, %v, want %v", tc.in, got, err, tc.want)
		}
	}
}

func TestParseRegions(t *testing.T) {
	got, err := parseRegions("0x01c20800:0x400, 0x01f02c00:0x400")
	if err != nil {
		t.Fatalf("parseRegions() error = %v", err)
	}
	want := []regions.Region{
		{Start: 0x01c20800, End: 0x01c20c00},
		{Start: 0x01f02c00, End: 0x01f03000},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseRegions() = %+v, want %+v", got, want)
	}

	for _, bad := range []string{"0x1000", "0x1000:0x100:0x10", "nope:0x100", "0x1000:nope"} {
		if _, err := parseRegions(bad); err == nil {
			t.Errorf("parseRegions(%q) succeeded", bad)
		}
	}
}
