package calcexpr_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/zephyrtronium/calcexpr"
)

func FuzzDecode(f *testing.F) {
	for _, src := range []string{"", "1.5", "sin(30)+π", "(1+2)×3!"} {
		var b bytes.Buffer
		if err := calcexpr.NewEncoder(&b).Encode(build(f, src)); err != nil {
			f.Fatal(err)
		}
		f.Add(b.Bytes())
	}
	f.Fuzz(func(t *testing.T, b []byte) {
		d := calcexpr.NewDecoder(bytes.NewReader(b))
		for {
			e, err := d.Decode()
			if err != nil {
				if e != nil {
					t.Errorf("non-nil buffer %q with error %v", e.String(), err)
				}
				var fe *calcexpr.FormatError
				if !errors.As(err, &fe) {
					t.Errorf("unexpected error type %#v", err)
				}
				return
			}
		}
	})
}
