package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/termtris/termtris/internal/config"
	"github.com/termtris/termtris/internal/core"
	"github.com/termtris/termtris/internal/game"
	"github.com/termtris/termtris/internal/multiplayer"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:     lipgloss.NewStyle(),
	core.ColorRed:         lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:        lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:     lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:        lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:       lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightWhite: lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:      lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Fixed layout. Cells are two runes wide so the well looks square.
const (
	holdX    = 0
	boardX   = 12
	boardY   = 1
	statsX   = 0
	previewX = boardX + game.BoardWidth*2 + 4
	oppX     = previewX + 14
)

// GameView draws a round into a Screen buffer.
type GameView struct {
	filled    string
	ghost     string
	showGhost bool
}

// NewGameView creates a renderer using the configured visual settings.
func NewGameView(visual config.VisualSettings) *GameView {
	filled, ghost := visual.BlockChars()
	return &GameView{filled: filled, ghost: ghost, showGhost: visual.ShowGhost}
}

// Draw renders a single-player round: board, hold, preview, stats, and
// any state overlay.
func (v *GameView) Draw(s *core.Screen, g *game.Game) {
	s.Clear()
	v.drawBoard(s, g)
	v.drawHold(s, g)
	v.drawPreview(s, g)
	v.drawStats(s, g)
	v.drawOverlay(s, g)
}

// DrawVersus renders the local round plus the opponent's board and
// stats to the right.
func (v *GameView) DrawVersus(s *core.Screen, g *game.Game, opp *multiplayer.OpponentView) {
	v.Draw(s, g)
	v.drawOpponent(s, opp)
}

// cellPos maps a board coordinate to the screen position of the cell's
// left rune. Board row 0 is the bottom; screen y grows downward.
func cellPos(row, col int) (x, y int) {
	return boardX + 1 + col*2, boardY + game.BoardHeight - row
}

// drawCell writes a two-rune cell string. Indexed by rune, the block
// characters are multi-byte.
func drawCell(s *core.Screen, x, y int, cell string, c core.Color) {
	i := 0
	for _, r := range cell {
		s.SetColored(x+i, y, r, c)
		i++
	}
}

func (v *GameView) drawBoard(s *core.Screen, g *game.Game) {
	s.DrawBox(boardX, boardY, game.BoardWidth*2+2, game.BoardHeight+2)

	board := g.Board()
	for row := 0; row < game.BoardHeight; row++ {
		for col := 0; col < game.BoardWidth; col++ {
			cell, _ := board.Get(row, col)
			if cell.IsEmpty() {
				continue
			}
			x, y := cellPos(row, col)
			drawCell(s, x, y, v.filled, cell.Color)
		}
	}

	piece := g.CurrentPiece()
	if piece == nil || g.State() == game.StateCountdown {
		return
	}

	if v.showGhost {
		ghostRow := piece.GhostRow(board)
		if ghostRow != piece.Row {
			for _, off := range piece.Kind.Shape(piece.Rotation) {
				row, col := ghostRow+off.Row, piece.Col+off.Col
				if row >= game.BoardHeight {
					continue
				}
				x, y := cellPos(row, col)
				drawCell(s, x, y, v.ghost, core.ColorGray)
			}
		}
	}

	color := piece.Kind.Color()
	for _, p := range piece.BlockPositions() {
		if p.Row >= game.BoardHeight {
			continue
		}
		x, y := cellPos(p.Row, p.Col)
		drawCell(s, x, y, v.filled, color)
	}
}

// drawKind draws a kind's spawn shape with (cx, cy) as the pivot cell.
func (v *GameView) drawKind(s *core.Screen, cx, cy int, kind game.Kind) {
	color := kind.Color()
	for _, off := range kind.Shape(game.North) {
		drawCell(s, cx+off.Col*2, cy-off.Row, v.filled, color)
	}
}

func (v *GameView) drawHold(s *core.Screen, g *game.Game) {
	s.DrawText(holdX, boardY, "HOLD")
	s.DrawBox(holdX, boardY+1, 10, 4)
	if kind, ok := g.HoldPiece(); ok {
		v.drawKind(s, holdX+3, boardY+3, kind)
	}
}

func (v *GameView) drawPreview(s *core.Screen, g *game.Game) {
	s.DrawText(previewX, boardY, "NEXT")
	for i, kind := range g.Preview(5) {
		v.drawKind(s, previewX+3, boardY+3+i*3, kind)
	}
}

func (v *GameView) drawStats(s *core.Screen, g *game.Game) {
	score := g.Score()
	ms := g.ModeState()

	y := boardY + 7
	s.DrawText(statsX, y, ms.Mode.Name())
	s.DrawText(statsX, y+2, "SCORE")
	s.DrawText(statsX, y+3, fmt.Sprintf("%d", score.Points))
	s.DrawText(statsX, y+5, fmt.Sprintf("Level %d", score.Level))
	s.DrawText(statsX, y+6, fmt.Sprintf("Lines %d", score.Lines))
	s.DrawText(statsX, y+8, ms.FormatTime())

	if remaining, ok := ms.LinesRemaining(score.Lines); ok {
		s.DrawText(statsX, y+9, fmt.Sprintf("Left  %d", remaining))
	}
	if left := ms.FormatRemaining(); left != "" {
		s.DrawText(statsX, y+9, "Time  "+left)
	}

	if action := g.LastAction(); action != "" {
		s.DrawTextColored(statsX, y+11, action, core.ColorBrightWhite)
	}
}

func (v *GameView) drawOverlay(s *core.Screen, g *game.Game) {
	centerY := boardY + game.BoardHeight/2
	switch g.State() {
	case game.StateCountdown:
		v.overlayText(s, centerY, fmt.Sprintf("  %d  ", g.Countdown()))
	case game.StatePaused:
		v.overlayText(s, centerY, " PAUSED ")
		v.overlayText(s, centerY+2, " p resume / q quit ")
	case game.StateGameOver:
		v.overlayText(s, centerY, " GAME OVER ")
		v.overlayText(s, centerY+2, " r restart / b menu ")
	case game.StateVictory:
		v.overlayText(s, centerY, " FINISHED! ")
		v.overlayText(s, centerY+1, " "+g.ModeState().FormatTime()+" ")
		v.overlayText(s, centerY+3, " r restart / b menu ")
	}
}

// overlayText draws bright text centered over the board.
func (v *GameView) overlayText(s *core.Screen, y int, text string) {
	x := boardX + 1 + (game.BoardWidth*2-len(text))/2
	s.DrawTextColored(x, y, text, core.ColorBrightWhite)
}

func (v *GameView) drawOpponent(s *core.Screen, opp *multiplayer.OpponentView) {
	s.DrawText(oppX, boardY, opp.Name)
	s.DrawBox(oppX, boardY+1, game.BoardWidth+2, game.BoardHeight+2)

	for row := 0; row < game.BoardHeight; row++ {
		y := boardY + 1 + game.BoardHeight - row
		for col := 0; col < game.BoardWidth; col++ {
			c := opp.Cells[row][col]
			if c == core.ColorDefault {
				continue
			}
			s.SetColored(oppX+1+col, y, '█', c)
		}
	}

	statsY := boardY + game.BoardHeight + 4
	s.DrawText(oppX, statsY, fmt.Sprintf("Score %d", opp.Points))
	s.DrawText(oppX, statsY+1, fmt.Sprintf("Lines %d  Lv %d", opp.Lines, opp.Level))
	if opp.GameOver {
		s.DrawTextColored(oppX+1, boardY+1+game.BoardHeight/2, "TOPPED OUT", core.ColorRed)
	}
}
