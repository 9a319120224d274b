package lines

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// ID is a stable handle to a line record in an Arena.
type ID int32

// None is the nil line handle.
const None ID = 0

// Seq is a line sequence identified by its first and last line.
// The zero Seq is empty.
type Seq struct {
	Top ID
	Bot ID
}

// IsEmpty reports whether the sequence holds no lines.
func (s Seq) IsEmpty() bool {
	return s.Top == None
}

type record struct {
	data []byte
	prev ID
	next ID
	num  int
	live bool
}

// Arena owns line records.
type Arena struct {
	recs []record
	free []ID
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	// Slot 0 backs None and is never handed out.
	return &Arena{recs: make([]record, 1, 64)}
}

func (a *Arena) alloc() ID {
	if n := len(a.free); n > 0 {
		id := a.free[n-1]
		a.free = a.free[:n-1]
		a.recs[id] = record{live: true}
		return id
	}
	a.recs = append(a.recs, record{live: true})
	return ID(len(a.recs) - 1)
}

func (a *Arena) rec(id ID) *record {
	r := &a.recs[id]
	if id == None || !r.live {
		panic("lines: use of freed or nil line")
	}
	return r
}

// New creates an empty line whose prev is prev and whose number follows
// prev's. prev is not linked to the new line; the caller finishes linkage.
func (a *Arena) New(prev ID) ID {
	id := a.alloc()
	num := 1
	if prev != None {
		num = a.rec(prev).num + 1
	}
	r := &a.recs[id]
	r.prev = prev
	r.num = num
	return id
}

// NewText is New followed by setting a copy of data as the content.
func (a *Arena) NewText(prev ID, data []byte) ID {
	id := a.New(prev)
	a.recs[id].data = clone(data)
	return id
}

// Copy duplicates a line. The copy has its own content and the same links
// and number as src.
func (a *Arena) Copy(src ID) ID {
	s := *a.rec(src)
	id := a.alloc()
	a.recs[id] = record{
		data: clone(s.data),
		prev: s.prev,
		next: s.next,
		num:  s.num,
		live: true,
	}
	return id
}

// Splice links id directly after after, updating both neighbors.
func (a *Arena) Splice(after, id ID) {
	next := a.rec(after).next
	r := a.rec(id)
	r.next = next
	r.prev = after
	if next != None {
		a.rec(next).prev = id
	}
	a.rec(after).next = id
}

// Unlink disconnects id from its neighbors and frees it.
func (a *Arena) Unlink(id ID) {
	r := a.rec(id)
	prev, next := r.prev, r.next
	if prev != None {
		a.rec(prev).next = next
	}
	if next != None {
		a.rec(next).prev = prev
	}
	a.Delete(id)
}

// Delete frees a single line without touching its neighbors.
func (a *Arena) Delete(id ID) {
	a.rec(id)
	a.recs[id] = record{}
	a.free = append(a.free, id)
}

// CopySeq duplicates the sequence from top to its end. The copy's head has
// no prev and is structurally independent of the source.
func (a *Arena) CopySeq(top ID) Seq {
	if top == None {
		return Seq{}
	}
	head := a.Copy(top)
	a.recs[head].prev = None
	last := head
	for src := a.rec(top).next; src != None; src = a.rec(src).next {
		c := a.Copy(src)
		a.recs[c].prev = last
		a.recs[last].next = c
		last = c
	}
	a.recs[last].next = None
	return Seq{Top: head, Bot: last}
}

// FreeSeq frees every line from top to the end of its sequence.
// The caller must already have detached it from anything in use.
func (a *Arena) FreeSeq(top ID) {
	for top != None {
		next := a.rec(top).next
		a.Delete(top)
		top = next
	}
}

// Renumber recomputes line numbers from line to the end of its sequence,
// starting at one more than the predecessor's number.
func (a *Arena) Renumber(line ID) {
	if line == None {
		return
	}
	num := 0
	if prev := a.rec(line).prev; prev != None {
		num = a.rec(prev).num
	}
	for line != None {
		num++
		r := a.rec(line)
		r.num = num
		line = r.next
	}
}

// Data returns the content of a line. The slice is owned by the arena and
// must not be modified or retained across mutations.
func (a *Arena) Data(id ID) []byte {
	return a.rec(id).data
}

// SetData replaces the content of a line. The arena takes ownership of data.
func (a *Arena) SetData(id ID, data []byte) {
	a.rec(id).data = data
}

// Text returns the content of a line as a string.
func (a *Arena) Text(id ID) string {
	return string(a.rec(id).data)
}

// Len returns the byte length of a line.
func (a *Arena) Len(id ID) int {
	return len(a.rec(id).data)
}

// Next returns the line after id, or None.
func (a *Arena) Next(id ID) ID {
	return a.rec(id).next
}

// Prev returns the line before id, or None.
func (a *Arena) Prev(id ID) ID {
	return a.rec(id).prev
}

// SetNext sets the next link of id without touching the other line.
func (a *Arena) SetNext(id, next ID) {
	a.rec(id).next = next
}

// SetPrev sets the prev link of id without touching the other line.
func (a *Arena) SetPrev(id, prev ID) {
	a.rec(id).prev = prev
}

// Number returns the 1-based sequence number of a line.
func (a *Arena) Number(id ID) int {
	return a.rec(id).num
}

// Valid reports whether id refers to a live line.
func (a *Arena) Valid(id ID) bool {
	return id > None && int(id) < len(a.recs) && a.recs[id].live
}

// Live returns the number of allocated lines.
func (a *Arena) Live() int {
	return len(a.recs) - 1 - len(a.free)
}

// Last returns the final line of the sequence containing top.
func (a *Arena) Last(top ID) ID {
	if top == None {
		return None
	}
	for {
		next := a.rec(top).next
		if next == None {
			return top
		}
		top = next
	}
}

// Count returns the number of lines from top to the end of its sequence.
func (a *Arena) Count(top ID) int {
	n := 0
	for ; top != None; top = a.rec(top).next {
		n++
	}
	return n
}

// Find returns the line numbered num, searching forward from top.
func (a *Arena) Find(top ID, num int) ID {
	for ; top != None; top = a.rec(top).next {
		if a.recs[top].num == num {
			return top
		}
	}
	return None
}

// Size returns the number of characters from top through bot, counting one
// separator between consecutive lines and none after bot.
func (a *Arena) Size(top, bot ID) int {
	if top == None {
		return 0
	}
	total := 0
	for line := top; ; line = a.rec(line).next {
		total += utf8.RuneCount(a.rec(line).data) + 1
		if line == bot || a.recs[line].next == None {
			break
		}
	}
	return total - 1
}

// Parse builds a new sequence from text, splitting on '\n'. A trailing
// newline yields a trailing empty line. Empty input yields one empty line.
func (a *Arena) Parse(text []byte) Seq {
	var seq Seq
	for {
		i := bytes.IndexByte(text, '\n')
		chunk := text
		if i >= 0 {
			chunk = text[:i]
		}
		id := a.NewText(seq.Bot, chunk)
		if seq.Top == None {
			seq.Top = id
		} else {
			a.recs[seq.Bot].next = id
		}
		seq.Bot = id
		if i < 0 {
			return seq
		}
		text = text[i+1:]
	}
}

// Bytes serializes the sequence from top, joining lines with '\n'.
func (a *Arena) Bytes(top ID) []byte {
	var buf bytes.Buffer
	for line := top; line != None; line = a.rec(line).next {
		if line != top {
			buf.WriteByte('\n')
		}
		buf.Write(a.recs[line].data)
	}
	return buf.Bytes()
}

// Lines returns the content of every line from top as strings.
func (a *Arena) Lines(top ID) []string {
	var out []string
	for line := top; line != None; line = a.rec(line).next {
		out = append(out, string(a.recs[line].data))
	}
	return out
}

// String renders the sequence from top for debugging.
func (a *Arena) String(top ID) string {
	return strings.Join(a.Lines(top), "\n")
}

func clone(b []byte) []byte {
	if len(b) == 0 {
		return []byte{}
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
