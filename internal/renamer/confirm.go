package renamer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Nomadcxx/mkvrenamer/internal/ui"
)

// Confirmer decides whether a plan is applied
type Confirmer interface {
	Confirm(plan *Plan) (bool, error)
}

// PromptConfirmer shows the plan on Out and reads one line from In.
// Only the literal answer "y" proceeds.
type PromptConfirmer struct {
	In      io.Reader
	Printer *ui.Printer
}

// Confirm prints the renames and the container, then waits for an answer.
// End of input counts as a refusal.
func (c *PromptConfirmer) Confirm(plan *Plan) (bool, error) {
	p := c.Printer

	p.Title("The following renames will be performed:")
	rows := make([]ui.PlanRow, 0, len(plan.Entries))
	for _, e := range plan.Entries {
		rows = append(rows, ui.PlanRow{From: e.Source, To: filepath.Base(e.Destination)})
	}
	p.Block(p.RenderPlan(rows))

	p.Printf("Renamed files go to: %s\n\n", plan.RenamesDir)

	p.Title("The following directory will be created:")
	p.Println(p.Highlight(plan.Container))
	p.Println()

	p.Println("Proceed? 'y' to proceed or any other key to abort")

	line, err := readLine(c.In)
	if err != nil {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	return line == "y", nil
}

// readLine returns the first line of r without its terminator. End of input
// before any data is an empty answer.
func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}

	if trimmed, ok := strings.CutSuffix(line, "\n"); ok {
		line = strings.TrimSuffix(trimmed, "\r")
	}
	return line, nil
}

// StaticConfirmer answers every prompt the same way
type StaticConfirmer struct {
	Answer bool
	Asked  int
}

// Confirm records the call and returns Answer
func (c *StaticConfirmer) Confirm(*Plan) (bool, error) {
	c.Asked++
	return c.Answer, nil
}
