// ABOUTME: Implementations of the bindable editing actions.
// ABOUTME: Kills feed the kill ring; each edit records one undo step.

package editor

import "unicode/utf8"

func (c *Controller) run(a Action) Result {
	switch a {
	case ActionCursorLeft:
		c.doc.MoveGraphemes(-1)
	case ActionCursorRight:
		c.doc.MoveGraphemes(1)
	case ActionCursorUp, ActionCursorDown:
		// Single-line buffers leave Up/Down to the host, e.g. for history.
		if c.doc.LineCount() == 1 {
			return Result{Status: StatusIgnored}
		}
		if a == ActionCursorUp {
			c.doc.MoveLines(-1)
		} else {
			c.doc.MoveLines(1)
		}
	case ActionWordLeft:
		warnIf(c.doc.SetCursor(c.doc.FindPreviousWordStart()))
	case ActionWordRight:
		warnIf(c.doc.SetCursor(c.doc.FindNextWordEnd()))
	case ActionHome:
		warnIf(c.doc.SetCursor(c.doc.LineStart()))
	case ActionEnd:
		warnIf(c.doc.SetCursor(c.doc.LineEnd()))
	case ActionDeleteBack:
		c.deleteBack()
	case ActionDeleteForward:
		c.deleteForward()
	case ActionDeleteWordBack:
		c.killBackward(c.doc.Cursor() - c.doc.FindPreviousWordStart())
	case ActionDeleteWordForward:
		c.killForward(c.doc.FindNextWordEnd() - c.doc.Cursor())
	case ActionKillLine:
		n := c.doc.LineEnd() - c.doc.Cursor()
		if n == 0 && c.doc.Cursor() < c.doc.Len() {
			n = 1 // join with the next line
		}
		c.killForward(n)
	case ActionKillLineBack:
		c.killBackward(c.doc.Cursor() - c.doc.LineStart())
	case ActionYank:
		c.yank()
	case ActionYankPop:
		c.yankPop()
	case ActionUndo:
		if s, ok := c.history.Undo(c.current()); ok {
			c.restore(s)
		}
	case ActionRedo:
		if s, ok := c.history.Redo(c.current()); ok {
			c.restore(s)
		}
	case ActionTranspose:
		c.transpose()
	case ActionComplete:
		c.startCompletion(false)
	case ActionCompletePrev:
		c.startCompletion(true)
	case ActionAccept:
		text := c.doc.Text()
		c.reset()
		return Result{Status: StatusAccept, Text: text}
	case ActionAbort:
		text := c.doc.Text()
		c.reset()
		return Result{Status: StatusAbort, Text: text}
	case ActionExit:
		if c.doc.Len() == 0 {
			return Result{Status: StatusExit}
		}
		c.deleteForward()
	case ActionNewline:
		c.saveUndo()
		c.doc.InsertText("\n")
	default:
		return Result{Status: StatusIgnored}
	}
	return Result{Status: StatusContinue}
}

// deleteBack removes the grapheme cluster before the cursor.
func (c *Controller) deleteBack() {
	n := c.doc.GraphemeBefore()
	if n == 0 {
		return
	}
	if c.last != ActionDeleteBack {
		c.saveUndo()
	}
	_, err := c.doc.DeleteBeforeCursor(n)
	warnIf(err)
}

// deleteForward removes the grapheme cluster after the cursor.
func (c *Controller) deleteForward() {
	n := c.doc.GraphemeAfter()
	if n == 0 {
		return
	}
	if c.last != ActionDeleteForward && c.last != ActionExit {
		c.saveUndo()
	}
	_, err := c.doc.DeleteAfterCursor(n)
	warnIf(err)
}

func (c *Controller) isKill(a Action) bool {
	switch a {
	case ActionDeleteWordBack, ActionDeleteWordForward, ActionKillLine, ActionKillLineBack:
		return true
	}
	return false
}

// killBackward removes n runes before the cursor into the kill ring.
// Consecutive kills accumulate into one entry.
func (c *Controller) killBackward(n int) {
	if n <= 0 {
		return
	}
	c.saveUndo()
	removed, err := c.doc.DeleteBeforeCursor(n)
	warnIf(err)
	if c.isKill(c.last) {
		c.ring.Append(removed, true)
	} else {
		c.ring.Push(removed)
	}
}

// killForward removes n runes after the cursor into the kill ring.
func (c *Controller) killForward(n int) {
	if n <= 0 {
		return
	}
	c.saveUndo()
	removed, err := c.doc.DeleteAfterCursor(n)
	warnIf(err)
	if c.isKill(c.last) {
		c.ring.Append(removed, false)
	} else {
		c.ring.Push(removed)
	}
}

func (c *Controller) yank() {
	text := c.ring.Yank()
	if text == "" {
		c.yankSize = 0
		return
	}
	c.saveUndo()
	c.doc.InsertText(text)
	c.yankSize = utf8.RuneCountInString(text)
}

// yankPop replaces the text just yanked with the next older kill. It only
// acts right after a yank or another yank-pop.
func (c *Controller) yankPop() {
	if (c.last != ActionYank && c.last != ActionYankPop) || c.yankSize == 0 {
		return
	}
	_, err := c.doc.DeleteBeforeCursor(c.yankSize)
	warnIf(err)
	text := c.ring.YankPop()
	c.doc.InsertText(text)
	c.yankSize = utf8.RuneCountInString(text)
}

// transpose swaps the rune before the cursor with the one under it and
// advances, or swaps the last two runes at the end of a line.
func (c *Controller) transpose() {
	if c.doc.Cursor() == 0 || c.doc.Len() < 2 {
		return
	}
	c.saveUndo()
	if r, ok := c.doc.CharRelativeToCursor(0); ok && r != '\n' {
		warnIf(c.doc.SetCursor(c.doc.Cursor() + 1))
	}
	c.doc.SwapCharsBeforeCursor()
}
