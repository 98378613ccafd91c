package draw

import (
	"io"
	"os"
	"strconv"

	"golang.org/x/term"
)

// ANSI control sequences.
const (
	escClear      = "\033[H\033[2J"
	escHideCursor = "\033[?25l"
	escShowCursor = "\033[?25h"
)

// maxChunkSize is the largest single write. Roughly one MTU, which keeps
// SSH output smooth.
const maxChunkSize = 1400

// ChunkWriter buffers one frame of terminal output and hands it to the
// underlying writer in chunks of at most maxChunkSize bytes. Cursor
// positions are canvas-relative: (1, 1) is the canvas's top-left cell and
// the centering offset is added on output.
type ChunkWriter struct {
	w      io.Writer
	buf    []byte
	offCol int
	offRow int
}

// NewChunkWriter creates a ChunkWriter that writes to w.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		w:      w,
		buf:    make([]byte, 0, 16*1024),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset updates the centering offset after a resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

// MoveCursor positions the cursor at canvas cell (col, row), both 1-based.
// Zero and termWidth+1 address the border around the canvas.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.buf = append(cw.buf, "\033["...)
	cw.buf = strconv.AppendInt(cw.buf, int64(row+cw.offRow), 10)
	cw.buf = append(cw.buf, ';')
	cw.buf = strconv.AppendInt(cw.buf, int64(col+cw.offCol), 10)
	cw.buf = append(cw.buf, 'H')
}

// Write implements io.Writer.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	cw.buf = append(cw.buf, p...)
	return len(p), nil
}

// WriteString appends s.
func (cw *ChunkWriter) WriteString(s string) {
	cw.buf = append(cw.buf, s...)
}

// WriteAt writes s starting at canvas cell (col, row).
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.WriteString(s)
}

// ClearScreen queues a full screen clear.
func (cw *ChunkWriter) ClearScreen() { cw.WriteString(escClear) }

// HideCursor queues hiding the cursor.
func (cw *ChunkWriter) HideCursor() { cw.WriteString(escHideCursor) }

// ShowCursor queues showing the cursor.
func (cw *ChunkWriter) ShowCursor() { cw.WriteString(escShowCursor) }

// Flush writes everything buffered and empties the buffer, even on error.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf
	cw.buf = cw.buf[:0]
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := cw.w.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

var _ io.Writer = (*ChunkWriter)(nil)

// TermSizeFunc reports the terminal size in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc reads the size of the terminal attached to stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// FitView returns the largest render area inside a termWidth x termHeight
// terminal, capped at maxWidth x maxHeight, that keeps the world's aspect
// ratio. Each cell is two square sub-pixels tall. The offsets center the area.
func FitView(termWidth, termHeight int, worldWidth, worldHeight float64, maxWidth, maxHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, maxWidth)
	renderHeight = min(termHeight, maxHeight)
	if renderWidth < 1 || renderHeight < 1 || worldWidth <= 0 || worldHeight <= 0 {
		return max(renderWidth, 1), max(renderHeight, 1), 0, 0
	}

	if float64(renderWidth)*worldHeight > float64(renderHeight*2)*worldWidth {
		renderWidth = max(1, int(float64(renderHeight*2)*worldWidth/worldHeight))
	} else {
		renderHeight = max(1, int(float64(renderWidth)*worldHeight/worldWidth/2))
	}

	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return renderWidth, renderHeight, offsetCol, offsetRow
}
