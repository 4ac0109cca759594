package regions

import (
	"errors"
	"reflect"
	"testing"
)

func TestRegionCountFromCells(t *testing.T) {
	tests := []struct {
		cells   int
		want    int
		wantErr bool
	}{
		{0, 0, false},
		{4, 1, false},
		{128, 32, false},
		{3, 0, true},
		{6, 0, true},
		{129, 0, true},
	}
	for _, tc := range tests {
		got, err := RegionCountFromCells(tc.cells)
		if tc.wantErr {
			if !errors.Is(err, ErrRegionCount) {
				t.Errorf("RegionCountFromCells(%d) error = %v, want ErrRegionCount", tc.cells, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("RegionCountFromCells(%d) = %d, %v, want %d", tc.cells, got, err, tc.want)
		}
	}
}

func TestDecodeRegCells(t *testing.T) {
	cells := []uint32{
		0x0, 0x01c20800, 0x0, 0x400, // below 4 GiB
		0x1, 0x00000000, 0x0, 0x10000, // start needs the high cell
	}
	want := []Region{
		{Start: 0x01c20800, End: 0x01c20c00},
		{Start: 0x100000000, End: 0x100010000},
	}
	got, err := DecodeRegCells(cells)
	if err != nil {
		t.Fatalf("DecodeRegCells() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DecodeRegCells() = %+v, want %+v", got, want)
	}
}

func TestDecodeRegCellsPartialDescriptor(t *testing.T) {
	_, err := DecodeRegCells(make([]uint32, 5))
	if !errors.Is(err, ErrRegionCount) {
		t.Errorf("DecodeRegCells() error = %v, want ErrRegionCount", err)
	}
}

func TestEncodeRegCells(t *testing.T) {
	wins := []Region{{Start: 0x101c20800, End: 0x101c20c00}}
	want := []uint32{0x1, 0x01c20800, 0x0, 0x400}
	if got := EncodeRegCells(wins); !reflect.DeepEqual(got, want) {
		t.Errorf("EncodeRegCells() = %#v, want %#v", got, want)
	}
	back, err := DecodeRegCells(EncodeRegCells(wins))
	if err != nil || !reflect.DeepEqual(back, wins) {
		t.Errorf("decode(encode()) = %+v, %v, want %+v", back, err, wins)
	}
}
