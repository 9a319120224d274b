package buffer

import (
	"errors"
	"testing"
)

func TestIndent(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		configure func(*Options)
		setup     func(b *Buffer)
		want      []string
	}{
		{
			name: "current line",
			text: "a\nb\n",
			want: []string{"\ta", "b", ""},
		},
		{
			name:      "spaces",
			text:      "a\n",
			configure: func(o *Options) { o.TabsToSpaces = true; o.TabSize = 4 },
			want:      []string{"    a", ""},
		},
		{
			name: "region skips empty lines",
			text: "a\n\nb\n",
			setup: func(b *Buffer) {
				b.SetMark()
				b.GotoLine(3, 1)
			},
			want: []string{"\ta", "", "\tb", ""},
		},
		{
			name: "region ending at line start",
			text: "a\nb\nc\n",
			setup: func(b *Buffer) {
				b.SetMark()
				b.GotoLine(3, 0)
			},
			want: []string{"\ta", "\tb", "c", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBuffer(t, tt.text, tt.configure)
			if tt.setup != nil {
				tt.setup(b)
			}
			original := b.Lines()
			if err := b.Indent(); err != nil {
				t.Fatalf("Indent() = %v", err)
			}
			checkValid(t, b)
			checkLines(t, b, tt.want...)

			if _, err := b.Undo(); err != nil {
				t.Fatal(err)
			}
			checkValid(t, b)
			checkLines(t, b, original...)
		})
	}
}

func TestIndentNothing(t *testing.T) {
	b := newTestBuffer(t, "", nil)
	if err := b.Indent(); !errors.Is(err, ErrNothingToIndent) {
		t.Errorf("Indent() = %v, want ErrNothingToIndent", err)
	}
}

func TestUnindent(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		setup func(b *Buffer)
		want  []string
		err   error
	}{
		{name: "tab", text: "\tx\n", want: []string{"x", ""}},
		{name: "one level of spaces", text: "      x\n", want: []string{"  x", ""}},
		{name: "no indentation", text: "abc\n", err: ErrNothingToIndent},
		{
			name: "unindentable line in region",
			text: "  a\nb\n",
			setup: func(b *Buffer) {
				b.SetMark()
				b.GotoLine(2, 1)
			},
			err: ErrNothingToIndent,
		},
		{
			name: "blank line in region",
			text: "\ta\n\n\tb\n",
			setup: func(b *Buffer) {
				b.SetMark()
				b.GotoLine(3, 2)
			},
			want: []string{"a", "", "b", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBuffer(t, tt.text, func(o *Options) { o.TabSize = 4 })
			if tt.setup != nil {
				tt.setup(b)
			}
			err := b.Unindent()
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("Unindent() = %v, want %v", err, tt.err)
				}
				if b.History().Len() != 0 {
					t.Error("refused unindent should record nothing")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unindent() = %v", err)
			}
			checkValid(t, b)
			checkLines(t, b, tt.want...)
		})
	}
}

func TestComment(t *testing.T) {
	b := newTestBuffer(t, "a\nb\n", nil)
	b.SetMark()
	b.GotoLine(2, 1)

	if err := b.Comment(); err != nil {
		t.Fatal(err)
	}
	checkValid(t, b)
	checkLines(t, b, "#a", "#b", "")
	if got := b.LastAction().String(); got != "comment" {
		t.Errorf("LastAction() = %s, want comment", got)
	}

	if err := b.Comment(); err != nil {
		t.Fatal(err)
	}
	checkValid(t, b)
	checkLines(t, b, "a", "b", "")
	if got := b.LastAction().String(); got != "uncomment" {
		t.Errorf("LastAction() = %s, want uncomment", got)
	}

	if _, err := b.Undo(); err != nil {
		t.Fatal(err)
	}
	checkLines(t, b, "#a", "#b", "")
}

func TestCommentBracketing(t *testing.T) {
	b := newTestBuffer(t, "x\n", func(o *Options) { o.CommentSeq = "/*|*/" })
	if err := b.Comment(); err != nil {
		t.Fatal(err)
	}
	checkValid(t, b)
	checkLines(t, b, "/*x*/", "")
	if err := b.Comment(); err != nil {
		t.Fatal(err)
	}
	checkValid(t, b)
	checkLines(t, b, "x", "")
}

func TestCommentBlankLines(t *testing.T) {
	b := newTestBuffer(t, "  \n", nil)
	if err := b.Comment(); err != nil {
		t.Fatal(err)
	}
	checkValid(t, b)
	checkLines(t, b, "#  ", "")
}

func TestCommentRefusals(t *testing.T) {
	b := newTestBuffer(t, "", nil)
	if err := b.Comment(); !errors.Is(err, ErrCannotComment) {
		t.Errorf("Comment() on the magic line = %v, want ErrCannotComment", err)
	}

	b = newTestBuffer(t, "x\n", func(o *Options) { o.CommentSeq = "" })
	if err := b.Comment(); !errors.Is(err, ErrCannotComment) {
		t.Errorf("Comment() without a sequence = %v, want ErrCannotComment", err)
	}
}
