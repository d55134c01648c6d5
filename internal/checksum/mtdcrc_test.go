package checksum

import "testing"

func TestMTDKnownVectors(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want uint32
	}{
		{"empty", nil, 0x00000000},
		{"four zero bytes", []byte{0, 0, 0, 0}, 0x2144df1c},
		{"ascii", []byte("123456789"), 0xcbf43926},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := MTD(c.in); got != c.want {
				t.Errorf("MTD(%q) = 0x%08x, want 0x%08x", c.in, got, c.want)
			}
		})
	}
}

func TestVerify(t *testing.T) {
	data := []byte("jffs2 node header")
	good := MTD(data)

	if !Verify(data, good) {
		t.Error("Verify rejected a correct checksum")
	}
	if Verify(data, good+1) {
		t.Error("Verify accepted a corrupted checksum")
	}
}
