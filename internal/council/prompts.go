package council

import (
	"fmt"
	"strings"

	"github.com/neves/zen-council/internal/rank"
)

// buildJudgePrompt asks a judge to compare two labeled answers and report a
// single verdict token. A refers to the first answer, B to the second.
func buildJudgePrompt(task, labelA, textA, labelB, textB string) string {
	var b strings.Builder

	b.WriteString("You are judging two answers to the same task.\n\n")
	b.WriteString("TASK:\n")
	b.WriteString(task)
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "ANSWER A (%s):\n%s\n\n", labelA, textA)
	fmt.Fprintf(&b, "ANSWER B (%s):\n%s\n\n", labelB, textB)

	b.WriteString(`Compare the two answers on correctness, completeness, and clarity.
You may reason as much as you like, but you MUST end your reply with exactly
one of these verdict tokens:

  [[A≫B]]  A is much better
  [[A>B]]  A is better
  [[A=B]]  the answers are equally good
  [[B>A]]  B is better
  [[B≫A]]  B is much better

Only the last token in your reply counts. Example ending: "... overall A is
more accurate. [[A>B]]"`)

	return b.String()
}

// chairmanSystem is the system prompt for the synthesis call.
const chairmanSystem = `You are the chairman of a council of AI models. Several models have answered
the same task and reviewed one another. Write the single best final answer by
combining the strongest points of each response and resolving disagreements.
Provide only the synthesized answer, no meta-commentary.`

// buildSynthesisPrompt assembles the chairman's user message: the task, every
// successful answer under its display label, and a compact ranking digest.
func buildSynthesisPrompt(task string, candidates []Answer, labels []string, scores map[string]rank.Scores, names []string, labelOf map[string]string) string {
	var b strings.Builder

	b.WriteString("TASK:\n")
	b.WriteString(task)
	b.WriteString("\n\nANSWERS:\n")
	for i, c := range candidates {
		fmt.Fprintf(&b, "\n=== %s ===\n%s\n", labels[i], c.Text)
	}

	if len(scores) > 0 {
		b.WriteString("\nPEER-REVIEW RANKINGS (best first):\n")
		for _, method := range []string{"borda", "bradley_terry", "elo"} {
			s, ok := scores[method]
			if !ok {
				continue
			}
			ranked := rank.Ranking(s.Scores, names)
			display := make([]string, len(ranked))
			for i, name := range ranked {
				display[i] = labelOf[name]
			}
			fmt.Fprintf(&b, "  %s: %s\n", method, strings.Join(display, " > "))
		}
	}

	b.WriteString("\nWrite the final synthesized answer.")
	return b.String()
}
