package model

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Dump writes the visible entries one per line, marking skip targets and
// collapsed containers
func (m *ViewModel) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i := 0; i < m.Tail(); i = m.Forward(i) {
		n := m.nodes[i]
		bw.WriteString("LINE: ")
		bw.WriteString(strings.Repeat("  ", n.Entry.Indent))
		if n.Entry.HasKey {
			bw.WriteString(n.Entry.Key)
			bw.WriteString(": ")
		}
		bw.WriteString(n.Entry.Value)
		if n.Entry.Collapsible() {
			bw.WriteString(" (skip to ")
			bw.WriteString(strconv.Itoa(n.skip))
			bw.WriteString(")")
		}
		if n.collapsed {
			bw.WriteString(" [COLLAPSED]")
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
