package editor

import "testing"

func TestPlainText(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"<p>Hello</p>", "Hello"},
		{"<h1><b>Hi</b> there</h1>", "Hi there"},
		{"<p>&nbsp;&nbsp;x&nbsp;</p>", "x"},
		{"", ""},
	}
	for _, c := range cases {
		if got := PlainText(c.in); got != c.want {
			t.Fatalf("PlainText(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestIsEmpty(t *testing.T) {
	t.Parallel()

	empty := []string{
		"",
		"<p><br></p>",
		"<p>&nbsp;</p>",
		"  <div> \n </div>  ",
	}
	for _, in := range empty {
		if !IsEmpty(in) {
			t.Fatalf("IsEmpty(%q) = false, want true", in)
		}
	}

	if IsEmpty("<p>a</p>") {
		t.Fatalf("IsEmpty with visible text = true, want false")
	}
}
