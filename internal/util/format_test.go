package util

import "testing"

func TestFormatThousands(t *testing.T) {
	t.Parallel()

	for in, want := range map[int64]string{
		0:       "0",
		999:     "999",
		1500:    "1,500",
		1234567: "1,234,567",
		-2500:   "-2,500",
	} {
		if got := FormatThousands(in); got != want {
			t.Fatalf("FormatThousands(%d)=%q, want %q", in, got, want)
		}
	}
}

func TestGroupDigits(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]string{
		"7":                       "7",
		"1234":                    "1,234",
		"123456":                  "123,456",
		"-123456":                 "-123,456",
		"99999999999999999999999": "99,999,999,999,999,999,999,999",
	} {
		if got := GroupDigits(in); got != want {
			t.Fatalf("GroupDigits(%q)=%q, want %q", in, got, want)
		}
	}
}

func TestFormatQuantity_Truncates(t *testing.T) {
	t.Parallel()

	if got := FormatQuantity(1999.9); got != "1,999" {
		t.Fatalf("FormatQuantity=%q", got)
	}
}

func TestBrowserCommands(t *testing.T) {
	t.Parallel()

	url := "http://localhost:20261"
	for _, goos := range []string{"windows", "darwin", "linux"} {
		cmds := browserCommands(goos, url)
		if len(cmds) == 0 {
			t.Fatalf("%s: no commands", goos)
		}
		for _, c := range cmds {
			if c[len(c)-1] != url {
				t.Fatalf("%s: url not passed last: %v", goos, c)
			}
		}
	}
	if got := browserCommands("darwin", url)[0][0]; got != "open" {
		t.Fatalf("darwin command=%q", got)
	}
}
