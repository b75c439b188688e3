package assistant

import (
	"fmt"
	"strings"

	"github.com/humiapp/humi/internal/models"
)

// BuildPrompt renders the natural-language message sent to the assistant:
// the vision output, the user's stated interests (steering tone of the
// generated description), and an optional user-supplied name correction.
func BuildPrompt(vr models.VisionResult, interests []string, nameHint string) string {
	interestText := "No specific interests were noted."
	if len(interests) > 0 {
		interestText = fmt.Sprintf("The smoker is interested in: %s.", strings.Join(interests, ", "))
	}

	hintText := ""
	if nameHint != "" {
		hintText = fmt.Sprintf("They think it might be: %q.", nameHint)
	}

	visibleWords := vr.ProbableName
	if visibleWords == "" {
		visibleWords = "N/A"
	}
	description := vr.BandDescription
	if description == "" {
		description = "No detail provided"
	}

	var sb strings.Builder
	sb.WriteString("A cigar band was scanned. Here's what the AI vision saw:\n")
	fmt.Fprintf(&sb, "- Visible words: %q\n", visibleWords)
	fmt.Fprintf(&sb, "- Visual Description: %q\n\n", description)
	sb.WriteString(interestText)
	if hintText != "" {
		sb.WriteString("\n")
		sb.WriteString(hintText)
	}
	sb.WriteString("\n\nIdentify the best matching cigar from the attached cigar database. Use your knowledge to fill in any missing metadata. Return only valid JSON as described in your instructions.")

	return sb.String()
}
