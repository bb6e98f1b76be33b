package reports

import (
	"fmt"
	"strings"

	"github.com/pawalert/pawalert/internal/models"
)

// The analysis prompts embed the structured report fields into fixed
// instructional templates. The injury template asks for severity and
// immediate care, the abuse template additionally asks for legal
// recommendations.

func injuryAnalysisPrompt(animalType, location, description string) string {
	return fmt.Sprintf(`An injured animal has been reported.
Animal: %s
Location: %s
Description of the injury: %s

Assess the likely severity of the injury and give step-by-step first-aid
instructions the reporter can follow until professional help arrives.`,
		animalType, location, description)
}

func abuseAnalysisPrompt(animalType, location, category, description string) string {
	return fmt.Sprintf(`A case of suspected animal abuse has been reported.
Animal: %s
Location: %s
Category: %s
Description of the incident: %s

Summarise the situation, recommend how to document evidence safely, and list
the legal provisions and authorities relevant to animal cruelty cases that the
reporter should know about.`,
		animalType, location, category, description)
}

func dispatchGuidancePrompt(c *models.Case, facility models.Facility) string {
	return fmt.Sprintf(`An ambulance from %s has been dispatched for an injured %s at %s.
The reported injury: %s

Tell the reporter what to do while waiting for the responder to arrive.`,
		facility.Name, c.AnimalType, c.Location, c.Description)
}

func notifyGuidancePrompt(c *models.Case) string {
	return fmt.Sprintf(`An animal abuse report has been forwarded to the authorities
with reference number %s. The reported incident: %s at %s.

Explain to the reporter what happens next in the process and how they can
follow up on the filing.`,
		c.ReferenceNumber, c.Description, c.Location)
}

// chatPrompt builds the assistant prompt from a short window of prior
// transcript entries and, when set, a summary of the active case.
func chatPrompt(window []models.ChatMessage, activeCase *models.Case) string {
	var b strings.Builder
	b.WriteString("You are chatting with someone who reported an animal in need.\n")
	if activeCase != nil {
		b.WriteString("They are asking about this case:\n")
		b.WriteString(activeCase.Summary())
		b.WriteString("\n")
	}
	b.WriteString("\nConversation so far:\n")
	for _, message := range window {
		b.WriteString(fmt.Sprintf("%s: %s\n", message.Speaker, message.Text))
	}
	b.WriteString("\nReply to the latest user message.")
	return b.String()
}
